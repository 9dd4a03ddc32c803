package service

import (
	"log"

	"github.com/pkg/errors"

	"github.com/benbeisheim/chessrules/internal/engine"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/notation"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID, err := gs.gameManager.CreateGame()
	if err != nil {
		return "", errors.Wrap(err, "failed to create game")
	}
	return gameID, nil
}

func (gs *GameService) ImportGame(fen string) (string, error) {
	gameID, err := gs.gameManager.ImportGame(fen)
	if err != nil {
		return "", errors.Wrap(err, "failed to import game")
	}
	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// LegalMoves lists the legal moves of the piece on square, e.g. "e2".
func (gs *GameService) LegalMoves(gameID string, square string) ([]model.LegalMove, error) {
	from, err := notation.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	return gs.gameManager.LegalMoves(gameID, from)
}

// HandleMove plays a move given in algebraic squares.
func (gs *GameService) HandleMove(gameID string, from, to, promotion string) error {
	req, err := ParseMoveRequest(from, to, promotion)
	if err != nil {
		return err
	}
	if err := gs.gameManager.MakeMove(gameID, req); err != nil {
		log.Printf("game %s: rejected %s-%s: %v", gameID, from, to, err)
		return err
	}
	return nil
}

func (gs *GameService) RegisterConnection(gameID string, clientID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, clientID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, clientID, conn)
}

func (gs *GameService) Close() error {
	return gs.gameManager.Close()
}

// ParseMoveRequest builds a move request from algebraic squares and an
// optional promotion piece name such as "queen".
func ParseMoveRequest(from, to, promotion string) (model.MoveRequest, error) {
	fromPos, err := notation.ParseSquare(from)
	if err != nil {
		return model.MoveRequest{}, err
	}
	toPos, err := notation.ParseSquare(to)
	if err != nil {
		return model.MoveRequest{}, err
	}
	return model.MoveRequest{From: fromPos, To: toPos, Promotion: engine.PieceType(promotion)}, nil
}

func (gs *GameService) Game(gameID string) (*model.Game, error) {
	return gs.gameManager.GetGame(gameID)
}
