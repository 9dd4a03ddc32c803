package engine

// MovesForPiece generates the moves of piece on board. A nil piece has no
// moves.
func MovesForPiece(piece *Piece, board Board, mode CheckMode) []Move {
	if piece == nil {
		return nil
	}
	switch piece.Type {
	case Pawn:
		return PawnMoves(piece, board, mode)
	case Rook:
		return RookMoves(piece, board, mode)
	case Knight:
		return KnightMoves(piece, board, mode)
	case Bishop:
		return BishopMoves(piece, board, mode)
	case Queen:
		return QueenMoves(piece, board, mode)
	case King:
		return KingMoves(piece, board, mode)
	default:
		return nil
	}
}
