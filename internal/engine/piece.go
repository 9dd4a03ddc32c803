package engine

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == Black {
		return White
	}
	return Black
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Piece is placed on a board and then treated as read-only. Boards share
// piece pointers, so anything that changes a piece copies it first.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	ID       int       `json:"id"`
	Position Position  `json:"position"`
	// HasMoved gates castling for kings and rooks.
	HasMoved bool `json:"hasMoved"`
	// DoubleStepped marks a pawn that advanced two squares on the last ply,
	// making it capturable en passant.
	DoubleStepped bool `json:"doubleStepped,omitempty"`
}

// PieceKey identifies a piece for the whole game regardless of where it
// stands.
type PieceKey struct {
	Color Color
	Type  PieceType
	ID    int
}

func (p *Piece) Key() PieceKey {
	return PieceKey{Color: p.Color, Type: p.Type, ID: p.ID}
}

// movedTo returns a copy of the piece standing on pos.
func (p *Piece) movedTo(pos Position) *Piece {
	cp := *p
	cp.Position = pos
	return &cp
}

func newPiece(t PieceType, color Color, id int, pos Position) *Piece {
	return &Piece{Type: t, Color: color, ID: id, Position: pos}
}

// NewPiece builds a piece of any type. It returns nil for an unknown type.
func NewPiece(t PieceType, color Color, id int, pos Position) *Piece {
	switch t {
	case Pawn:
		return NewPawn(color, id, pos)
	case Rook:
		return NewRook(color, id, pos)
	case Knight:
		return NewKnight(color, id, pos)
	case Bishop:
		return NewBishop(color, id, pos)
	case Queen:
		return NewQueen(color, id, pos)
	case King:
		return NewKing(color, id, pos)
	}
	return nil
}

func isType(p *Piece, t PieceType) bool {
	return p != nil && p.Type == t
}
