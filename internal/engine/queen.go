package engine

var queenDirections = append(append([]Position{}, rookDirections...), bishopDirections...)

func IsQueen(p *Piece) bool { return isType(p, Queen) }

func NewQueen(color Color, id int, pos Position) *Piece {
	return newPiece(Queen, color, id, pos)
}

func QueenMoves(piece *Piece, board Board, mode CheckMode) []Move {
	return slidingMoves(queenDirections, piece, board, mode)
}
