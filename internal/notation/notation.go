// Package notation converts between engine positions and the names players
// use for squares, moves and positions.
package notation

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/benbeisheim/chessrules/internal/engine"
)

var ErrBadSquare = errors.New("bad square")

// Square names a position, "a8" being (0,0) and "h1" (7,7).
func Square(pos engine.Position) string {
	return fmt.Sprintf("%c%d", pos.X+'a', engine.Size-pos.Y)
}

func File(pos engine.Position) string {
	return fmt.Sprintf("%c", pos.X+'a')
}

func ParseSquare(s string) (engine.Position, error) {
	if len(s) != 2 {
		return engine.Position{}, errors.Wrapf(ErrBadSquare, "%q", s)
	}
	pos := engine.Position{X: int(s[0] - 'a'), Y: engine.Size - int(s[1]-'0')}
	if !pos.InBounds() {
		return engine.Position{}, errors.Wrapf(ErrBadSquare, "%q", s)
	}
	return pos, nil
}

// PieceLetter is empty for pawns.
func PieceLetter(t engine.PieceType) string {
	switch t {
	case engine.King:
		return "K"
	case engine.Queen:
		return "Q"
	case engine.Rook:
		return "R"
	case engine.Bishop:
		return "B"
	case engine.Knight:
		return "N"
	}
	return ""
}

// Move writes move in short algebraic form without check marks or
// disambiguation.
func Move(move engine.Move) string {
	if move.Castling != nil {
		if move.To.X > move.From().X {
			return "O-O"
		}
		return "O-O-O"
	}
	var b strings.Builder
	b.WriteString(PieceLetter(move.Piece.Type))
	if move.Type.IsCapture() {
		if engine.IsPawn(move.Piece) {
			b.WriteString(File(move.From()))
		}
		b.WriteString("x")
	}
	b.WriteString(Square(move.To))
	if move.Type == engine.CaptureEnPassant {
		b.WriteString(" e.p.")
	}
	return b.String()
}

// Describe reads like "White Pawn from e2 to e4".
func Describe(piece *engine.Piece, from, to engine.Position) string {
	if piece == nil {
		return fmt.Sprintf("from %s to %s", Square(from), Square(to))
	}
	return fmt.Sprintf("%s %s from %s to %s",
		capitalize(string(piece.Color)), capitalize(string(piece.Type)), Square(from), Square(to))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
