package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbeisheim/chessrules/internal/engine"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/notation"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
)

func newTestApp() (*fiber.App, *service.GameService) {
	gs := service.NewGameService(service.NewGameManager())
	gc := NewGameController(gs)

	app := fiber.New()
	game := app.Group("/api/game")
	game.Post("/create", gc.CreateGame)
	game.Post("/import", gc.ImportGame)
	game.Get("/:gameId", gc.GetGameState)
	game.Get("/:gameId/moves/:square", gc.LegalMoves)
	game.Post("/:gameId/move", gc.MakeMove)
	return app, gs
}

func do(t *testing.T, app *fiber.App, method, path, body string, out interface{}) int {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type created struct {
	GameID string `json:"game_id"`
}

func TestCreateAndGetGame(t *testing.T) {
	app, _ := newTestApp()

	var c created
	assert.Equal(t, http.StatusCreated, do(t, app, http.MethodPost, "/api/game/create", "", &c))
	require.NotEmpty(t, c.GameID)

	var state model.GameState
	assert.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/api/game/"+c.GameID, "", &state))
	assert.Equal(t, engine.White, state.ToMove)
	require.Len(t, state.Board, engine.Size)
	assert.True(t, engine.IsKing(state.Board[7][4]))

	var failure struct{ Error string }
	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodGet, "/api/game/missing", "", &failure))
	assert.Contains(t, failure.Error, "game not found")
}

func TestImportGame(t *testing.T) {
	app, _ := newTestApp()

	var c created
	status := do(t, app, http.MethodPost, "/api/game/import", `{"fen":"k1K5/8/1Q6/8/8/8/8/8 b - - 0 1"}`, &c)
	require.Equal(t, http.StatusCreated, status)

	var state model.GameState
	assert.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/api/game/"+c.GameID, "", &state))
	assert.Equal(t, engine.Stalemate, state.Result)

	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, "/api/game/import", `{"fen":"bogus"}`, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, "/api/game/import", `{`, nil))
}

func TestLegalMovesEndpoint(t *testing.T) {
	app, gs := newTestApp()
	id, err := gs.CreateGame()
	require.NoError(t, err)

	var body struct {
		Square string            `json:"square"`
		Moves  []model.LegalMove `json:"moves"`
	}
	assert.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/api/game/"+id+"/moves/b1", "", &body))
	assert.Equal(t, "b1", body.Square)
	var names []string
	for _, m := range body.Moves {
		names = append(names, m.Notation)
	}
	assert.ElementsMatch(t, []string{"Na3", "Nc3"}, names)

	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodGet, "/api/game/"+id+"/moves/x9", "", nil))
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodGet, "/api/game/"+id+"/moves/e4", "", nil))
}

func TestMakeMoveEndpoint(t *testing.T) {
	app, gs := newTestApp()
	id, err := gs.CreateGame()
	require.NoError(t, err)
	path := "/api/game/" + id + "/move"

	var state model.GameState
	assert.Equal(t, http.StatusOK, do(t, app, http.MethodPost, path, `{"from":"e2","to":"e4"}`, &state))
	assert.Equal(t, engine.Black, state.ToMove)
	require.Len(t, state.MoveHistory, 1)
	assert.Equal(t, "e4", state.MoveHistory[0].Notation)

	assert.Equal(t, http.StatusUnprocessableEntity, do(t, app, http.MethodPost, path, `{"from":"d2","to":"d4"}`, nil))
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, app, http.MethodPost, path, `{"from":"e7","to":"e4"}`, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, path, `{"from":"e7"}`, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodPost, path, `not json`, nil))
	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodPost, "/api/game/missing/move", `{"from":"e7","to":"e5"}`, nil))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.Wrap(service.ErrGameNotFound, "x"), fiber.StatusNotFound},
		{errors.Wrap(notation.ErrBadSquare, "x"), fiber.StatusBadRequest},
		{errors.Wrap(notation.ErrBadFEN, "x"), fiber.StatusBadRequest},
		{model.ErrNoPiece, fiber.StatusBadRequest},
		{model.ErrOutOfBounds, fiber.StatusBadRequest},
		{model.ErrNotYourTurn, fiber.StatusUnprocessableEntity},
		{model.ErrIllegalMove, fiber.StatusUnprocessableEntity},
		{model.ErrPromotionRequired, fiber.StatusUnprocessableEntity},
		{model.ErrBadPromotion, fiber.StatusUnprocessableEntity},
		{model.ErrGameOver, fiber.StatusUnprocessableEntity},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestHandleMessage(t *testing.T) {
	gs := service.NewGameService(service.NewGameManager())
	wsc := NewWebSocketController(gs)
	id, err := gs.CreateGame()
	require.NoError(t, err)

	sel, err := ws.NewMessage(ws.MessageTypeSelect, ws.SelectPayload{Square: "e2"})
	require.NoError(t, err)
	reply, err := wsc.handleMessage(id, sel)
	require.NoError(t, err)
	require.NotNil(t, reply)
	assert.Equal(t, ws.MessageTypeLegalMoves, reply.Type)
	var payload struct {
		Square string            `json:"square"`
		Moves  []model.LegalMove `json:"moves"`
	}
	require.NoError(t, json.Unmarshal(reply.Payload, &payload))
	assert.Equal(t, "e2", payload.Square)
	assert.Len(t, payload.Moves, 2)

	move, err := ws.NewMessage(ws.MessageTypeMove, ws.MovePayload{From: "e2", To: "e4"})
	require.NoError(t, err)
	reply, err = wsc.handleMessage(id, move)
	require.NoError(t, err)
	assert.Nil(t, reply)

	_, err = wsc.handleMessage(id, move)
	assert.True(t, errors.Is(err, model.ErrNoPiece), "got %v", err)

	_, err = wsc.handleMessage(id, ws.Message{Type: "resign"})
	assert.True(t, errors.Is(err, ErrUnknownMessage), "got %v", err)

	_, err = wsc.handleMessage(id, ws.Message{Type: ws.MessageTypeSelect, Payload: json.RawMessage(`[`)})
	assert.Error(t, err)
}
