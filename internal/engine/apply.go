package engine

// ApplyMove plays move on board and returns the resulting board. The input
// board is left as it was.
//
// The mover is copied to its destination with HasMoved set. A captured piece
// is dropped from its own square, which differs from the destination only for
// en passant. Castling also relocates the rook. A pawn that advanced two
// squares is marked DoubleStepped and the marks on the opponent's pawns are
// cleared, since their en passant window has passed.
func ApplyMove(board Board, move Move) Board {
	piece := move.Piece
	if piece == nil {
		return board
	}
	next := board
	if move.Capture != nil {
		next = next.Without(move.Capture.Position)
	}
	moved := piece.movedTo(move.To)
	moved.HasMoved = true
	moved.DoubleStepped = piece.Type == Pawn && abs(move.To.Y-piece.Position.Y) == 2
	next = next.WithSubstitution(piece.Position, move.To, moved)

	if c := move.Castling; c != nil && c.Rook != nil {
		rook := c.Rook.movedTo(c.RookTo)
		rook.HasMoved = true
		next = next.WithSubstitution(c.Rook.Position, c.RookTo, rook)
	}

	for _, p := range next.Pieces(piece.Color.Opposite()) {
		if p.DoubleStepped {
			cleared := *p
			cleared.DoubleStepped = false
			next = next.WithPiece(&cleared)
		}
	}
	return next
}

// PromotionTypes are the piece types a pawn may be promoted to.
var PromotionTypes = []PieceType{Queen, Rook, Bishop, Knight}

func IsPromotionType(t PieceType) bool {
	for _, pt := range PromotionTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// Promote replaces the pawn on pos with a piece of type to. It reports false
// and returns board unchanged when there is no pawn on a promotion tile or to
// is not a promotion type.
func Promote(board Board, pos Position, to PieceType) (Board, bool) {
	tile, ok := board.TileAt(pos)
	if !ok || !IsPawn(tile.Piece) || !ShouldPromotePawn(tile) || !IsPromotionType(to) {
		return board, false
	}
	pawn := tile.Piece
	promoted := NewPiece(to, pawn.Color, promotedID(board, pawn.Color, to), pos)
	promoted.HasMoved = true
	return board.WithPiece(promoted), true
}

// promotedID picks the next free sequence id for a promoted piece so that
// piece keys stay unique.
func promotedID(board Board, color Color, t PieceType) int {
	id := 0
	for _, p := range board.Pieces(color) {
		if p.Type == t && p.ID >= id {
			id = p.ID + 1
		}
	}
	return id
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
