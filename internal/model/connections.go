package model

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/benbeisheim/chessrules/internal/ws"
)

var ErrDuplicateConnection = errors.New("connection already exists")

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// SyncConn serializes writes to a Conn. The websocket allows one writer at a
// time, so everything writing to a registered connection goes through the
// same SyncConn.
type SyncConn struct {
	Conn
	mu sync.Mutex
}

func NewSyncConn(conn Conn) *SyncConn {
	if sc, ok := conn.(*SyncConn); ok {
		return sc
	}
	return &SyncConn{Conn: conn}
}

func (c *SyncConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(v)
}

func (c *SyncConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

func (c *SyncConn) is(conn Conn) bool {
	return c == conn || c.Conn == conn
}

// GameConnections holds the observers of one game, keyed by client id.
type GameConnections struct {
	connections map[string]*SyncConn
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*SyncConn),
	}
}

// RegisterConnection adds an observer and sends it the current state. A
// second connection for a client that already has one is closed and
// ErrDuplicateConnection returned; the first stays registered.
func (g *Game) RegisterConnection(clientID string, conn Conn) error {
	sc := NewSyncConn(conn)

	g.mu.Lock()
	defer g.mu.Unlock()

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[clientID]; exists {
		g.connections.mu.Unlock()
		if err := sc.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		); err != nil {
			log.Printf("game %s: close frame to duplicate %s: %v", g.ID, clientID, err)
		}
		if err := sc.Close(); err != nil {
			log.Printf("game %s: close duplicate %s: %v", g.ID, clientID, err)
		}
		return errors.Wrap(ErrDuplicateConnection, clientID)
	}
	g.connections.connections[clientID] = sc
	g.connections.mu.Unlock()
	log.Printf("game %s: registered connection for %s", g.ID, clientID)

	msg, err := stateMessage(g.snapshot())
	if err != nil {
		return err
	}
	if err := sc.WriteJSON(msg); err != nil {
		log.Printf("game %s: send state to %s: %v", g.ID, clientID, err)
		g.UnregisterConnection(clientID, sc)
	}
	return nil
}

// UnregisterConnection removes the observer for clientID if it is conn. A
// stale connection cannot remove the one that replaced it.
func (g *Game) UnregisterConnection(clientID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if sc, exists := g.connections.connections[clientID]; exists && sc.is(conn) {
		log.Printf("game %s: unregistering connection for %s", g.ID, clientID)
		delete(g.connections.connections, clientID)
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()

	return len(g.connections.connections)
}

func stateMessage(state GameState) (ws.Message, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return ws.Message{}, errors.Wrap(err, "marshal state")
	}
	return ws.Message{Type: ws.MessageTypeGameState, Payload: payload}, nil
}

// broadcastState sends state to every observer. Callers hold g.mu, so
// observers see states in the order moves were played. Observers that fail
// to receive it are dropped.
func (g *Game) broadcastState(state GameState) {
	msg, err := stateMessage(state)
	if err != nil {
		log.Printf("game %s: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*SyncConn, len(g.connections.connections))
	for clientID, conn := range g.connections.connections {
		active[clientID] = conn
	}
	g.connections.mu.RUnlock()

	for clientID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("game %s: send state to %s: %v", g.ID, clientID, err)
			g.UnregisterConnection(clientID, conn)
		}
	}
}

// CloseConnections closes every observer and reports all failures.
func (g *Game) CloseConnections() error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	var result error
	for clientID, conn := range g.connections.connections {
		if err := conn.Close(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "close %s", clientID))
		}
		delete(g.connections.connections, clientID)
	}
	return result
}
