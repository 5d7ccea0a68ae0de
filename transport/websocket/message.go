package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	actionNewGame = "game:new"
	actionGetGame = "game:get"
	actionTurn    = "game:turn"
	actionRestart = "game:restart"
	actionQuit    = "game:quit"
	actionError   = "error"
)

const (
	writeWait = 10 * time.Second
	idleWait  = 5 * time.Minute
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	GameID string `json:"game_id,omitempty"`
	Cell   *int   `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.Game `json:"game,omitempty"`
	Error string       `json:"error,omitempty"`
}

func sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func readMessage(conn *websocket.Conn) (*Message, error) {
	if err := conn.SetReadDeadline(time.Now().Add(idleWait)); err != nil {
		return nil, fmt.Errorf("failed to set read deadline: %w", err)
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}

	var message Message
	if err = json.Unmarshal(data, &message); err != nil {
		return &message, fmt.Errorf("%w: %w", errMalformedMessage, err)
	}

	return &message, nil
}
