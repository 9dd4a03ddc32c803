package engine

var knightSteps = []Position{
	{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1},
	{X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2},
}

func IsKnight(p *Piece) bool { return isType(p, Knight) }

func NewKnight(color Color, id int, pos Position) *Piece {
	return newPiece(Knight, color, id, pos)
}

func KnightMoves(piece *Piece, board Board, mode CheckMode) []Move {
	return stepMoves(knightSteps, piece, board, mode)
}
