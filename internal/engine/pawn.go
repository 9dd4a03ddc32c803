package engine

func IsPawn(p *Piece) bool { return isType(p, Pawn) }

func NewPawn(color Color, id int, pos Position) *Piece {
	return newPiece(Pawn, color, id, pos)
}

// pawnForward is -1 for white and +1 for black.
func pawnForward(color Color) int {
	if color == White {
		return -1
	}
	return 1
}

func pawnStartRow(color Color) int {
	if color == White {
		return Size - 2
	}
	return 1
}

func PawnMoves(piece *Piece, board Board, mode CheckMode) []Move {
	if piece == nil {
		return nil
	}
	var moves []Move
	dy := pawnForward(piece.Color)

	one := Position{X: 0, Y: dy}
	if tile, ok := board.TileAt(piece.Position.Add(one)); ok && tile.Piece == nil {
		if m, ok := stepMove(piece, board, one, mode); ok {
			moves = append(moves, m)
		}
		two := Position{X: 0, Y: 2 * dy}
		if piece.Position.Y == pawnStartRow(piece.Color) {
			if tile, ok := board.TileAt(piece.Position.Add(two)); ok && tile.Piece == nil {
				if m, ok := stepMove(piece, board, two, mode); ok {
					moves = append(moves, m)
				}
			}
		}
	}

	for _, dx := range []int{-1, 1} {
		diag := Position{X: dx, Y: dy}
		tile, ok := board.TileAt(piece.Position.Add(diag))
		if !ok {
			continue
		}
		if tile.Piece != nil {
			if m, ok := stepMove(piece, board, diag, mode); ok {
				moves = append(moves, m)
			}
			continue
		}
		if m, ok := enPassant(piece, board, diag, mode); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

// enPassant captures the enemy pawn beside piece that double-stepped on the
// previous ply, landing on the empty square behind it.
func enPassant(piece *Piece, board Board, diag Position, mode CheckMode) (Move, bool) {
	beside := piece.Position.Add(Position{X: diag.X, Y: 0})
	victim := board.PieceAt(beside)
	if !IsPawn(victim) || victim.Color == piece.Color || !victim.DoubleStepped {
		return Move{}, false
	}
	to := piece.Position.Add(diag)
	if mode == Legal {
		hypothetical := board.WithSubstitution(piece.Position, to, piece).Without(beside)
		if exposesKing(piece.Color, hypothetical) {
			return Move{}, false
		}
	}
	return Move{
		Step:    diag,
		Type:    CaptureEnPassant,
		Piece:   piece,
		Capture: victim,
		To:      to,
	}, true
}

// ShouldPromotePawn reports whether a pawn arriving on tile must be promoted.
// The replacement piece is the caller's choice; see Promote.
func ShouldPromotePawn(tile Tile) bool {
	return tile.Position.Y == 0 || tile.Position.Y == Size-1
}
