package model

import "github.com/benbeisheim/chessrules/internal/engine"

// MoveRequest is a move as a driver submits it. Promotion is required when a
// pawn reaches the last row and ignored otherwise.
type MoveRequest struct {
	From      engine.Position  `json:"from"`
	To        engine.Position  `json:"to"`
	Promotion engine.PieceType `json:"promotion,omitempty"`
}

type CastleRookMove struct {
	From engine.Position `json:"from"`
	To   engine.Position `json:"to"`
}

// HistoryEntry records one ply.
type HistoryEntry struct {
	Piece          *engine.Piece    `json:"piece"`
	From           engine.Position  `json:"from"`
	To             engine.Position  `json:"to"`
	Type           engine.MoveType  `json:"type"`
	CapturedPiece  *engine.Piece    `json:"capturedPiece"`
	CastleRookMove *CastleRookMove  `json:"castleRookMove"`
	Promotion      engine.PieceType `json:"promotion,omitempty"`
	Notation       string           `json:"notation"`
	Description    string           `json:"description"`
}

type SimpleMove struct {
	From engine.Position `json:"from"`
	To   engine.Position `json:"to"`
}

// LegalMove is the driver-facing view of an engine move.
type LegalMove struct {
	From     engine.Position `json:"from"`
	To       engine.Position `json:"to"`
	Type     engine.MoveType `json:"type"`
	Notation string          `json:"notation"`
	Promote  bool            `json:"promote"`
}
