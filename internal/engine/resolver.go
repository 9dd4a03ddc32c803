package engine

// ClassifyMoveType classifies moving piece by step on board. In Legal mode a
// move that would expose the mover's king is Invalid.
func ClassifyMoveType(piece *Piece, board Board, step Position, mode CheckMode) MoveType {
	if piece == nil {
		return Invalid
	}
	tile, ok := board.TileAt(piece.Position.Add(step))
	if !ok {
		return Invalid
	}
	t := Valid
	if target := tile.Piece; target != nil {
		if target.Color == piece.Color {
			return Invalid
		}
		t = Capture
		if target.Type == King {
			t = CaptureKing
		}
	}
	if mode == Legal && WouldExposeOwnKingToCheck(piece, board, step) {
		return Invalid
	}
	return t
}

// WouldExposeOwnKingToCheck plays piece by step on a hypothetical board and
// reports whether any opposing piece could then capture the mover's king.
func WouldExposeOwnKingToCheck(piece *Piece, board Board, step Position) bool {
	to := piece.Position.Add(step)
	return exposesKing(piece.Color, board.WithSubstitution(piece.Position, to, piece))
}

// exposesKing scans the opponents of color on a hypothetical board.
func exposesKing(color Color, hypothetical Board) bool {
	for _, p := range hypothetical.Pieces(color.Opposite()) {
		for _, m := range MovesForPiece(p, hypothetical, Pseudo) {
			if m.Type == CaptureKing {
				return true
			}
		}
	}
	return false
}

// stepMove turns a single-step classification into a move. ok is false when
// the step is Invalid.
func stepMove(piece *Piece, board Board, step Position, mode CheckMode) (Move, bool) {
	t := ClassifyMoveType(piece, board, step, mode)
	if t == Invalid {
		return Move{}, false
	}
	to := piece.Position.Add(step)
	return Move{
		Step:    step,
		Type:    t,
		Piece:   piece,
		Capture: board.PieceAt(to),
		To:      to,
	}, true
}

func stepMoves(steps []Position, piece *Piece, board Board, mode CheckMode) []Move {
	moves := make([]Move, 0, len(steps))
	for _, step := range steps {
		if m, ok := stepMove(piece, board, step, mode); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

// SlidingMoves walks direction until the board edge or a friendly piece. The
// first enemy piece on the ray is included and ends the walk.
//
// The ray is blocked by occupancy only. In Legal mode a square that would
// expose the king is left out but the walk goes on, since a farther square on
// the same ray may still block a check.
func SlidingMoves(direction Position, piece *Piece, board Board, mode CheckMode) []Move {
	if piece == nil {
		return nil
	}
	var moves []Move
	for i := 1; i < Size; i++ {
		m, ok := stepMove(piece, board, direction.Scale(i), Pseudo)
		if !ok {
			break
		}
		blocked := m.Type == Capture || m.Type == CaptureKing
		if mode == Pseudo || !WouldExposeOwnKingToCheck(piece, board, m.Step) {
			moves = append(moves, m)
		}
		if blocked {
			break
		}
	}
	return moves
}

func slidingMoves(directions []Position, piece *Piece, board Board, mode CheckMode) []Move {
	var moves []Move
	for _, dir := range directions {
		moves = append(moves, SlidingMoves(dir, piece, board, mode)...)
	}
	return moves
}
