package controller

import (
	"encoding/json"
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/pkg/errors"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
)

var ErrUnknownMessage = errors.New("unknown message type")

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// socket is the part of a websocket connection the read loop uses.
type socket interface {
	model.Conn
	ReadMessage() (messageType int, p []byte, err error)
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	clientID, _ := c.Locals("wsClientID").(string)
	wsc.serve(gameID, clientID, c)
}

func (wsc *WebSocketController) serve(gameID, clientID string, s socket) {
	conn := model.NewSyncConn(s)
	if err := wsc.gameService.RegisterConnection(gameID, clientID, conn); err != nil {
		log.Printf("failed to register connection: %v", err)
		// A duplicate has already been closed by the game.
		if !errors.Is(err, model.ErrDuplicateConnection) {
			wsc.sendError(conn, err)
			if cerr := conn.Close(); cerr != nil {
				log.Printf("close %s: %v", clientID, cerr)
			}
		}
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, clientID, conn)

	for {
		messageType, message, err := s.ReadMessage()
		if err != nil {
			log.Printf("game %s: read from %s: %v", gameID, clientID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(conn, errors.Wrap(err, "parse message"))
			continue
		}
		reply, err := wsc.handleMessage(gameID, msg)
		if err != nil {
			wsc.sendError(conn, err)
			continue
		}
		if reply != nil {
			if err := conn.WriteJSON(reply); err != nil {
				log.Printf("game %s: write to %s: %v", gameID, clientID, err)
				return
			}
		}
	}
}

// handleMessage returns the direct reply to msg, if any. Moves are answered
// by the state broadcast to every observer.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) (*ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return nil, errors.Wrap(err, "parse move")
		}
		return nil, wsc.gameService.HandleMove(gameID, move.From, move.To, move.Promotion)

	case ws.MessageTypeSelect:
		var sel ws.SelectPayload
		if err := json.Unmarshal(msg.Payload, &sel); err != nil {
			return nil, errors.Wrap(err, "parse select")
		}
		moves, err := wsc.gameService.LegalMoves(gameID, sel.Square)
		if err != nil {
			return nil, err
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, struct {
			Square string            `json:"square"`
			Moves  []model.LegalMove `json:"moves"`
		}{sel.Square, moves})
		if err != nil {
			return nil, err
		}
		return &reply, nil
	}
	return nil, errors.Wrapf(ErrUnknownMessage, "%q", msg.Type)
}

func (wsc *WebSocketController) sendError(c model.Conn, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Message: err.Error()})
	if merr != nil {
		log.Printf("marshal error reply: %v", merr)
		return
	}
	if werr := c.WriteJSON(msg); werr != nil {
		log.Printf("send error reply: %v", werr)
	}
}
