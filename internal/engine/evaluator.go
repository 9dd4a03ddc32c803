package engine

// IsInCheck reports whether any piece of the opposite color could capture
// color's king on board.
func IsInCheck(board Board, color Color) bool {
	return exposesKing(color, board)
}

// LegalMoves lists every legal move of color in board order.
func LegalMoves(board Board, color Color) []Move {
	var moves []Move
	for _, p := range board.Pieces(color) {
		moves = append(moves, MovesForPiece(p, board, Legal)...)
	}
	return moves
}

func hasLegalMove(board Board, color Color) bool {
	for _, p := range board.Pieces(color) {
		for _, m := range MovesForPiece(p, board, Legal) {
			if m.Type != Invalid {
				return true
			}
		}
	}
	return false
}

// DetectStalemate returns Stalemate when turn has no legal move at all,
// whether or not its king is attacked. DetectGameOver tells the two apart.
func DetectStalemate(board Board, turn Color) GameOver {
	if hasLegalMove(board, turn) {
		return NoGameOver
	}
	return Stalemate
}

// DetectCheckmate returns Checkmate when the opponent of turn could capture
// turn's king right now. It does not look at turn's own moves.
func DetectCheckmate(board Board, turn Color) GameOver {
	if IsInCheck(board, turn) {
		return Checkmate
	}
	return NoGameOver
}

// DetectGameOver checks for checkmate only after stalemate has fired. A side
// that still has a legal move is never reported, even while in check.
func DetectGameOver(board Board, turn Color) GameOver {
	result := DetectStalemate(board, turn)
	if result == Stalemate {
		if DetectCheckmate(board, turn) == Checkmate {
			result = Checkmate
		}
	}
	return result
}

// LegalMoveForTarget finds the move in moves that lands on target. moves is
// the list previously generated for selected.
func LegalMoveForTarget(selected *Piece, moves []Move, target Tile) (Move, bool) {
	if selected == nil {
		return Move{}, false
	}
	for _, m := range moves {
		if m.To == target.Position {
			return m, true
		}
	}
	return Move{}, false
}
