package engine

var rookDirections = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

func IsRook(p *Piece) bool { return isType(p, Rook) }

func NewRook(color Color, id int, pos Position) *Piece {
	return newPiece(Rook, color, id, pos)
}

func RookMoves(piece *Piece, board Board, mode CheckMode) []Move {
	return slidingMoves(rookDirections, piece, board, mode)
}
