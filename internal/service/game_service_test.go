package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbeisheim/chessrules/internal/engine"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/notation"
)

type stubConn struct {
	closeErr error
}

func (c *stubConn) WriteJSON(interface{}) error     { return nil }
func (c *stubConn) WriteMessage(int, []byte) error { return nil }
func (c *stubConn) Close() error                   { return c.closeErr }

func newService() *GameService {
	return NewGameService(NewGameManager())
}

func TestCreateGame(t *testing.T) {
	gs := newService()

	id, err := gs.CreateGame()
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	state, err := gs.GetGameState(id)
	require.NoError(t, err)
	assert.Equal(t, engine.White, state.ToMove)
	assert.Len(t, state.Board, engine.Size)

	other, err := gs.CreateGame()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestImportGame(t *testing.T) {
	gs := newService()

	id, err := gs.ImportGame("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	require.NoError(t, err)
	state, err := gs.GetGameState(id)
	require.NoError(t, err)
	assert.Equal(t, engine.Black, state.ToMove)

	_, err = gs.ImportGame("nonsense")
	assert.True(t, errors.Is(err, notation.ErrBadFEN), "got %v", err)
}

func TestUnknownGame(t *testing.T) {
	gs := newService()

	_, err := gs.GetGameState("missing")
	assert.True(t, errors.Is(err, ErrGameNotFound), "got %v", err)
	err = gs.HandleMove("missing", "e2", "e4", "")
	assert.True(t, errors.Is(err, ErrGameNotFound), "got %v", err)
	_, err = gs.LegalMoves("missing", "e2")
	assert.True(t, errors.Is(err, ErrGameNotFound), "got %v", err)
	err = gs.RegisterConnection("missing", "alice", &stubConn{})
	assert.True(t, errors.Is(err, ErrGameNotFound), "got %v", err)
}

func TestHandleMove(t *testing.T) {
	gs := newService()
	id, err := gs.CreateGame()
	require.NoError(t, err)

	moves, err := gs.LegalMoves(id, "g1")
	require.NoError(t, err)
	assert.Len(t, moves, 2)

	require.NoError(t, gs.HandleMove(id, "g1", "f3", ""))
	err = gs.HandleMove(id, "g8", "g6", "")
	assert.True(t, errors.Is(err, model.ErrIllegalMove), "got %v", err)
	err = gs.HandleMove(id, "z9", "f6", "")
	assert.True(t, errors.Is(err, notation.ErrBadSquare), "got %v", err)

	state, err := gs.GetGameState(id)
	require.NoError(t, err)
	require.Len(t, state.MoveHistory, 1)
	assert.Equal(t, "Nf3", state.MoveHistory[0].Notation)
}

func TestParseMoveRequest(t *testing.T) {
	r, err := ParseMoveRequest("a7", "a8", "queen")
	require.NoError(t, err)
	assert.Equal(t, model.MoveRequest{
		From:      engine.Position{X: 0, Y: 1},
		To:        engine.Position{X: 0, Y: 0},
		Promotion: engine.Queen,
	}, r)

	_, err = ParseMoveRequest("a7", "", "")
	assert.True(t, errors.Is(err, notation.ErrBadSquare), "got %v", err)
}

func TestClose(t *testing.T) {
	gs := newService()
	a, err := gs.CreateGame()
	require.NoError(t, err)
	b, err := gs.CreateGame()
	require.NoError(t, err)

	require.NoError(t, gs.RegisterConnection(a, "alice", &stubConn{closeErr: errors.New("reset")}))
	require.NoError(t, gs.RegisterConnection(b, "bob", &stubConn{closeErr: errors.New("reset")}))
	require.NoError(t, gs.RegisterConnection(b, "carol", &stubConn{}))

	err = gs.Close()
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr), "got %v", err)
	assert.Len(t, merr.Errors, 2)

	_, err = gs.GetGameState(a)
	assert.True(t, errors.Is(err, ErrGameNotFound), "got %v", err)
	assert.NoError(t, gs.Close())
}
