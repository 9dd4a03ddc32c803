package engine

type MoveType string

const (
	// Invalid marks a square the piece cannot move to, including moves that
	// would leave its own king capturable.
	Invalid          MoveType = "invalid"
	Valid            MoveType = "valid"
	Capture          MoveType = "capture"
	CaptureKing      MoveType = "captureKing"
	CaptureEnPassant MoveType = "captureEnPassant"
)

func (t MoveType) IsCapture() bool {
	return t == Capture || t == CaptureKing || t == CaptureEnPassant
}

type Move struct {
	Step     Position  `json:"step"`
	Type     MoveType  `json:"type"`
	Piece    *Piece    `json:"piece"`
	Capture  *Piece    `json:"capture"`
	To       Position  `json:"to"`
	Castling *Castling `json:"castling,omitempty"`
}

type Castling struct {
	Rook     *Piece   `json:"rook"`
	RookTo   Position `json:"rookTo"`
	RookStep Position `json:"rookStep"`
}

func (m Move) From() Position {
	return m.Piece.Position
}

// CheckMode selects whether generated moves are filtered for self-check.
//
// Pseudo is used while scanning for attacks on a king. Filtering there would
// recurse into the opponent's own filtering, so check scans must always run
// in Pseudo mode.
type CheckMode int

const (
	Pseudo CheckMode = iota
	Legal
)

type GameOver string

const (
	NoGameOver GameOver = ""
	Checkmate  GameOver = "checkmate"
	Stalemate  GameOver = "stalemate"
)
