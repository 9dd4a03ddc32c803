package engine

var bishopDirections = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}

func IsBishop(p *Piece) bool { return isType(p, Bishop) }

func NewBishop(color Color, id int, pos Position) *Piece {
	return newPiece(Bishop, color, id, pos)
}

func BishopMoves(piece *Piece, board Board, mode CheckMode) []Move {
	return slidingMoves(bishopDirections, piece, board, mode)
}
