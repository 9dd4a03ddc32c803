package model

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/benbeisheim/chessrules/internal/engine"
	"github.com/benbeisheim/chessrules/internal/notation"
)

var (
	ErrGameOver          = errors.New("game is over")
	ErrOutOfBounds       = errors.New("square is off the board")
	ErrNoPiece           = errors.New("no piece at from square")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrIllegalMove       = errors.New("illegal move")
	ErrPromotionRequired = errors.New("promotion piece required")
	ErrBadPromotion      = errors.New("cannot promote to that piece")
)

// Game is one board driven through the engine, plus everything a client
// needs to show it.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       engine.Board
	state       GameState
	connections *GameConnections
}

type GameState struct {
	Board          [][]*engine.Piece `json:"board"`
	ToMove         engine.Color      `json:"toMove"`
	MoveHistory    []HistoryEntry    `json:"moveHistory"`
	CapturedPieces CapturedPieces    `json:"capturedPieces"`
	IsCheck        bool              `json:"isCheck"`
	Result         engine.GameOver   `json:"result,omitempty"`
	LastMove       *SimpleMove       `json:"lastMove"`
}

// CapturedPieces lists pieces by the side that captured them.
type CapturedPieces struct {
	White []*engine.Piece `json:"white"`
	Black []*engine.Piece `json:"black"`
}

func NewGame(id string) *Game {
	return NewGameFromPosition(id, engine.NewStandardBoard(), engine.White)
}

// NewGameFromPosition starts a game from an arbitrary position. The position
// may already be decided.
func NewGameFromPosition(id string, board engine.Board, toMove engine.Color) *Game {
	g := &Game{
		ID:          id,
		board:       board,
		connections: NewGameConnections(),
		state: GameState{
			ToMove:      toMove,
			MoveHistory: make([]HistoryEntry, 0),
			CapturedPieces: CapturedPieces{
				White: make([]*engine.Piece, 0),
				Black: make([]*engine.Piece, 0),
			},
		},
	}
	g.state.IsCheck = engine.IsInCheck(board, toMove)
	g.state.Result = engine.DetectGameOver(board, toMove)
	return g
}

// GetState returns a snapshot that stays valid after further moves.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameState {
	s := g.state
	s.Board = g.board.Rows()
	s.MoveHistory = append([]HistoryEntry(nil), g.state.MoveHistory...)
	s.CapturedPieces = CapturedPieces{
		White: append([]*engine.Piece(nil), g.state.CapturedPieces.White...),
		Black: append([]*engine.Piece(nil), g.state.CapturedPieces.Black...),
	}
	return s
}

func (g *Game) Board() engine.Board {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board
}

// RecentHistory returns at most the last n plies, oldest first.
func (g *Game) RecentHistory(n int) []HistoryEntry {
	g.mu.Lock()
	defer g.mu.Unlock()

	h := g.state.MoveHistory
	if n < 0 {
		n = 0
	}
	if n < len(h) {
		h = h[len(h)-n:]
	}
	return append([]HistoryEntry(nil), h...)
}

// LegalMoves lists the legal moves of the piece on from.
func (g *Game) LegalMoves(from engine.Position) ([]LegalMove, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !from.InBounds() {
		return nil, errors.Wrapf(ErrOutOfBounds, "(%d,%d)", from.X, from.Y)
	}
	piece := g.board.PieceAt(from)
	if piece == nil {
		return nil, errors.Wrap(ErrNoPiece, notation.Square(from))
	}
	moves := engine.MovesForPiece(piece, g.board, engine.Legal)
	out := make([]LegalMove, 0, len(moves))
	for _, m := range moves {
		tile, _ := g.board.TileAt(m.To)
		out = append(out, LegalMove{
			From:     m.From(),
			To:       m.To,
			Type:     m.Type,
			Notation: notation.Move(m),
			Promote:  engine.IsPawn(piece) && engine.ShouldPromotePawn(tile),
		})
	}
	return out, nil
}

// MakeMove validates req against the engine and plays it. On error the game
// is unchanged.
func (g *Game) MakeMove(req MoveRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Result != engine.NoGameOver {
		return errors.Wrap(ErrGameOver, string(g.state.Result))
	}
	move, err := g.validateMove(req)
	if err != nil {
		return err
	}
	g.executeMove(move, req.Promotion)

	g.broadcastState(g.snapshot())
	return nil
}

func (g *Game) validateMove(req MoveRequest) (engine.Move, error) {
	if !req.From.InBounds() || !req.To.InBounds() {
		return engine.Move{}, errors.Wrap(ErrOutOfBounds, "invalid move")
	}
	piece := g.board.PieceAt(req.From)
	if piece == nil {
		return engine.Move{}, errors.Wrap(ErrNoPiece, notation.Square(req.From))
	}
	if piece.Color != g.state.ToMove {
		return engine.Move{}, errors.Wrapf(ErrNotYourTurn, "%s to move", g.state.ToMove)
	}
	moves := engine.MovesForPiece(piece, g.board, engine.Legal)
	tile, _ := g.board.TileAt(req.To)
	move, ok := engine.LegalMoveForTarget(piece, moves, tile)
	if !ok {
		return engine.Move{}, errors.Wrapf(ErrIllegalMove, "%s", notation.Describe(piece, req.From, req.To))
	}
	if engine.IsPawn(piece) && engine.ShouldPromotePawn(tile) {
		if req.Promotion == "" {
			return engine.Move{}, errors.Wrap(ErrPromotionRequired, notation.Square(req.To))
		}
		if !engine.IsPromotionType(req.Promotion) {
			return engine.Move{}, errors.Wrapf(ErrBadPromotion, "%q", req.Promotion)
		}
	}
	return move, nil
}

func (g *Game) executeMove(move engine.Move, promotion engine.PieceType) {
	mover := move.Piece.Color
	next := engine.ApplyMove(g.board, move)

	entry := HistoryEntry{
		Piece:         move.Piece,
		From:          move.From(),
		To:            move.To,
		Type:          move.Type,
		CapturedPiece: move.Capture,
		Notation:      notation.Move(move),
		Description:   notation.Describe(move.Piece, move.From(), move.To),
	}
	if c := move.Castling; c != nil {
		entry.CastleRookMove = &CastleRookMove{From: c.Rook.Position, To: c.RookTo}
	}
	if promoted, ok := engine.Promote(next, move.To, promotion); ok {
		next = promoted
		entry.Promotion = promotion
		entry.Notation += "=" + notation.PieceLetter(promotion)
	}

	if move.Capture != nil {
		switch mover {
		case engine.White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, move.Capture)
		case engine.Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, move.Capture)
		}
	}

	g.board = next
	g.switchTurn()
	g.state.IsCheck = engine.IsInCheck(next, g.state.ToMove)
	g.state.Result = engine.DetectGameOver(next, g.state.ToMove)
	switch {
	case g.state.Result == engine.Checkmate:
		entry.Notation += "#"
	case g.state.IsCheck:
		entry.Notation += "+"
	}
	g.state.MoveHistory = append(g.state.MoveHistory, entry)
	g.state.LastMove = &SimpleMove{From: move.From(), To: move.To}
}

func (g *Game) switchTurn() {
	g.state.ToMove = g.state.ToMove.Opposite()
}
