package controller

import (
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
)

// fakeSocket delivers queued frames, then reports a closed connection once
// hangup is closed.
type fakeSocket struct {
	frames chan []byte
	hangup chan struct{}

	mu      sync.Mutex
	written []ws.Message
	closed  bool
}

func newFakeSocket() *fakeSocket {
	return &fakeSocket{frames: make(chan []byte, 8), hangup: make(chan struct{})}
}

func (s *fakeSocket) ReadMessage() (int, []byte, error) {
	select {
	case f := <-s.frames:
		return websocket.TextMessage, f, nil
	case <-s.hangup:
		return 0, nil, io.EOF
	}
}

func (s *fakeSocket) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written = append(s.written, v.(ws.Message))
	return nil
}

func (s *fakeSocket) WriteMessage(int, []byte) error { return nil }

func (s *fakeSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSocket) messages() []ws.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ws.Message(nil), s.written...)
}

func TestServeDuplicateKeepsLiveConnection(t *testing.T) {
	gs := service.NewGameService(service.NewGameManager())
	wsc := NewWebSocketController(gs)
	id, err := gs.CreateGame()
	require.NoError(t, err)
	game, err := gs.Game(id)
	require.NoError(t, err)

	live := newFakeSocket()
	done := make(chan struct{})
	go func() {
		wsc.serve(id, "alice", live)
		close(done)
	}()
	require.Eventually(t, func() bool { return game.ConnectionCount() == 1 }, time.Second, 5*time.Millisecond)

	dup := newFakeSocket()
	close(dup.hangup)
	wsc.serve(id, "alice", dup)
	assert.True(t, dup.closed)
	assert.Equal(t, 1, game.ConnectionCount())

	move, err := ws.NewMessage(ws.MessageTypeMove, ws.MovePayload{From: "e2", To: "e4"})
	require.NoError(t, err)
	frame, err := json.Marshal(move)
	require.NoError(t, err)
	live.frames <- frame
	require.Eventually(t, func() bool { return len(live.messages()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, ws.MessageTypeGameState, live.messages()[1].Type)

	close(live.hangup)
	<-done
	assert.Equal(t, 0, game.ConnectionCount())
}

func TestServeUnknownGame(t *testing.T) {
	wsc := NewWebSocketController(service.NewGameService(service.NewGameManager()))

	s := newFakeSocket()
	wsc.serve("missing", "alice", s)

	msgs := s.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, ws.MessageTypeError, msgs[0].Type)
	assert.True(t, s.closed)
}
