package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/server"
)

var errMalformedMessage = errors.New("malformed message")

type gameUseCase interface {
	NewGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	Restart(ctx context.Context, id string) (*entity.Game, error)
	QuitGame(ctx context.Context, id string) error
}

type handlerFunc func(ctx context.Context, req *RequestPayload) (*entity.Game, error)

type Server struct {
	logger   *slog.Logger
	game     gameUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, game gameUseCase) *Server {
	that := &Server{
		logger: logger.With("component", "websocket"),
		game:   game,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
	}

	that.handlers[actionNewGame] = that.handleNewGame
	that.handlers[actionGetGame] = that.handleGetGame
	that.handlers[actionTurn] = that.handleTurn
	that.handlers[actionRestart] = that.handleRestart
	that.handlers[actionQuit] = that.handleQuit

	return that
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)
	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	return server.Run(ctx, port, that.Handler())
}

func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		// the upgrader has already replied with an HTTP error
		log.Debug("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Debug("WebSocket connection established", "remote", conn.RemoteAddr().String())

	that.handleMessages(req.Context(), conn)
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) {
	log := that.logger.With("method", "handleMessages")

	for {
		message, err := readMessage(conn)
		if errors.Is(err, errMalformedMessage) {
			if err = sendMessage(conn, actionError, ResponsePayload{Error: "malformed message"}); err != nil {
				log.Error("failed to send response", "error", err)
				return
			}
			continue
		}

		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("connection closed", "error", err)
			}
			return
		}

		if err = that.dispatch(ctx, conn, message); err != nil {
			log.Error("failed to send response", "action", message.Action, "error", err)
			return
		}
	}
}

func (that *Server) dispatch(ctx context.Context, conn *websocket.Conn, message *Message) error {
	handler, ok := that.handlers[message.Action]
	if !ok {
		return sendMessage(conn, message.Action, ResponsePayload{Error: "unknown action"})
	}

	var req RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &req); err != nil {
			return sendMessage(conn, message.Action, ResponsePayload{Error: "malformed payload"})
		}
	}

	game, err := handler(ctx, &req)
	if err != nil {
		return sendMessage(conn, message.Action, ResponsePayload{Error: that.publicError(message.Action, err)})
	}

	return sendMessage(conn, message.Action, ResponsePayload{Game: game})
}
