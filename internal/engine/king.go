package engine

var kingSteps = []Position{
	{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: -1},
}

func IsKing(p *Piece) bool { return isType(p, King) }

func NewKing(color Color, id int, pos Position) *Piece {
	return newPiece(King, color, id, pos)
}

// KingMoves includes castling only in Legal mode. Castling needs IsInCheck,
// which generates the opponent's Pseudo moves, so offering it in Pseudo mode
// would recurse between the two kings.
func KingMoves(piece *Piece, board Board, mode CheckMode) []Move {
	moves := stepMoves(kingSteps, piece, board, mode)
	if mode == Legal && piece != nil {
		moves = append(moves, castlingMoves(piece, board)...)
	}
	return moves
}

func castlingMoves(king *Piece, board Board) []Move {
	if king.HasMoved || IsInCheck(board, king.Color) {
		return nil
	}
	var moves []Move
	for _, rookX := range []int{0, Size - 1} {
		if m, ok := castle(king, board, rookX); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

// castle checks the unmoved rook in column rookX, an empty path between it
// and the king, and that the king neither crosses nor lands on an attacked
// square.
func castle(king *Piece, board Board, rookX int) (Move, bool) {
	y := king.Position.Y
	rook := board.PieceAt(Position{X: rookX, Y: y})
	if !IsRook(rook) || rook.Color != king.Color || rook.HasMoved {
		return Move{}, false
	}
	dir := 1
	if rookX < king.Position.X {
		dir = -1
	}
	for x := king.Position.X + dir; x != rookX; x += dir {
		if board.PieceAt(Position{X: x, Y: y}) != nil {
			return Move{}, false
		}
	}
	step := Position{X: 2 * dir, Y: 0}
	to := king.Position.Add(step)
	if !to.InBounds() {
		return Move{}, false
	}
	for _, s := range []Position{{X: dir, Y: 0}, step} {
		if board.PieceAt(king.Position.Add(s)) != nil || WouldExposeOwnKingToCheck(king, board, s) {
			return Move{}, false
		}
	}
	rookTo := Position{X: to.X - dir, Y: y}
	return Move{
		Step:  step,
		Type:  Valid,
		Piece: king,
		To:    to,
		Castling: &Castling{
			Rook:     rook,
			RookTo:   rookTo,
			RookStep: Position{X: rookTo.X - rook.Position.X, Y: 0},
		},
	}, true
}
