// service/game_manager.go
package service

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/benbeisheim/chessrules/internal/engine"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/notation"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

// CreateGame starts a game from the standard position under a new id.
func (gm *GameManager) CreateGame() (string, error) {
	gameID := uuid.New().String()
	return gameID, gm.add(model.NewGame(gameID))
}

// ImportGame starts a game from a FEN position under a new id.
func (gm *GameManager) ImportGame(fen string) (string, error) {
	board, toMove, err := notation.FromFEN(fen)
	if err != nil {
		return "", err
	}
	gameID := uuid.New().String()
	return gameID, gm.add(model.NewGameFromPosition(gameID, board, toMove))
}

func (gm *GameManager) add(game *model.Game) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[game.ID]; exists {
		return errors.Wrap(ErrGameExists, game.ID)
	}
	gm.games[game.ID] = game
	log.Printf("created game %s", game.ID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.Wrap(ErrGameNotFound, gameID)
	}
	return game, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) LegalMoves(gameID string, from engine.Position) ([]model.LegalMove, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(from)
}

func (gm *GameManager) MakeMove(gameID string, move model.MoveRequest) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(move)
}

func (gm *GameManager) RegisterConnection(gameID string, clientID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(clientID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, clientID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(clientID, conn)
}

// Close drops every game and closes its observers, reporting all failures.
func (gm *GameManager) Close() error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	var result error
	for id, game := range gm.games {
		if err := game.CloseConnections(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "game %s", id))
		}
		delete(gm.games, id)
	}
	return result
}
