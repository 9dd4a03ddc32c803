package notation

import (
	"sort"
	"strings"

	"github.com/notnil/chess"
	"github.com/pkg/errors"

	"github.com/benbeisheim/chessrules/internal/engine"
)

// ErrBadFEN is returned for records that do not parse or describe an
// impossible position.
var ErrBadFEN = errors.New("bad FEN")

var pieceTypes = map[chess.PieceType]engine.PieceType{
	chess.King:   engine.King,
	chess.Queen:  engine.Queen,
	chess.Rook:   engine.Rook,
	chess.Bishop: engine.Bishop,
	chess.Knight: engine.Knight,
	chess.Pawn:   engine.Pawn,
}

func color(c chess.Color) engine.Color {
	if c == chess.Black {
		return engine.Black
	}
	return engine.White
}

func position(sq chess.Square) engine.Position {
	return engine.Position{X: int(sq.File()), Y: engine.Size - 1 - int(sq.Rank())}
}

// FromFEN builds a board and the side to move from a FEN record.
//
// The board has no move history, so castling rights become HasMoved flags:
// a king keeps HasMoved false while it may still castle on either side, and
// a corner rook while its side is still allowed. The en passant square marks
// the pawn in front of it as DoubleStepped.
func FromFEN(fen string) (engine.Board, engine.Color, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return engine.Board{}, "", errors.Wrapf(ErrBadFEN, "parse: %v", err)
	}
	pos := chess.NewGame(opt).Position()
	rights := pos.CastleRights()

	squares := pos.Board().SquareMap()
	occupied := make([]chess.Square, 0, len(squares))
	for sq := range squares {
		occupied = append(occupied, sq)
	}
	// Row-major order keeps sequence ids stable across imports.
	sort.Slice(occupied, func(i, j int) bool {
		a, b := position(occupied[i]), position(occupied[j])
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	ids := map[engine.PieceKey]int{}
	pieces := make([]*engine.Piece, 0, len(occupied))
	for _, sq := range occupied {
		p := squares[sq]
		t, ok := pieceTypes[p.Type()]
		if !ok {
			continue
		}
		c := color(p.Color())
		key := engine.PieceKey{Color: c, Type: t}
		piece := engine.NewPiece(t, c, ids[key], position(sq))
		ids[key]++
		piece.HasMoved = hasMoved(piece, rights, p.Color())
		pieces = append(pieces, piece)
	}
	board := engine.NewBoard(pieces...)

	if behind, ok := enPassantSquare(fen); ok {
		pawnAt := engine.Position{X: behind.X, Y: behind.Y + 1}
		if behind.Y > engine.Size/2 {
			pawnAt.Y = behind.Y - 1
		}
		if p := board.PieceAt(pawnAt); engine.IsPawn(p) {
			marked := *p
			marked.DoubleStepped = true
			board = board.WithPiece(&marked)
		}
	}

	if err := board.Validate(); err != nil {
		return engine.Board{}, "", errors.Wrapf(ErrBadFEN, "invalid position: %v", err)
	}
	return board, color(pos.Turn()), nil
}

// enPassantSquare reads the fourth FEN field, which chess.FEN has already
// validated.
func enPassantSquare(fen string) (engine.Position, bool) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || fields[3] == "-" {
		return engine.Position{}, false
	}
	pos, err := ParseSquare(fields[3])
	if err != nil {
		return engine.Position{}, false
	}
	return pos, true
}

func hasMoved(p *engine.Piece, rights chess.CastleRights, c chess.Color) bool {
	homeRow := engine.Size - 1
	if p.Color == engine.Black {
		homeRow = 0
	}
	switch p.Type {
	case engine.King:
		return !rights.CanCastle(c, chess.KingSide) && !rights.CanCastle(c, chess.QueenSide)
	case engine.Rook:
		if p.Position == (engine.Position{X: 0, Y: homeRow}) {
			return !rights.CanCastle(c, chess.QueenSide)
		}
		if p.Position == (engine.Position{X: engine.Size - 1, Y: homeRow}) {
			return !rights.CanCastle(c, chess.KingSide)
		}
		return true
	case engine.Pawn:
		startRow := engine.Size - 2
		if p.Color == engine.Black {
			startRow = 1
		}
		return p.Position.Y != startRow
	}
	return false
}
