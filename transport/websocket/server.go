package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rocketscienceinc/ygame-backend/internal/entity"
	"github.com/rocketscienceinc/ygame-backend/internal/usecase"
)

const (
	shutdownTimeout = 5 * time.Second
	readLimit       = 1 << 16
)

type uMatch interface {
	Start(ctx context.Context, req usecase.StartRequest) (*entity.Snapshot, error)
	MakeMove(ctx context.Context, matchID, userID string, move entity.MoveInput) (*entity.Snapshot, error)
	ValidateMove(ctx context.Context, matchID, userID string, move entity.MoveInput) (entity.Coord, error)
	GetState(ctx context.Context, matchID string) (*entity.Snapshot, error)
	End(ctx context.Context, matchID, userID string) (*usecase.EndResult, error)
	BotModes() usecase.BotModes
}

type handlerFunc func(ctx context.Context, msg *Message) ResponsePayload

type Server struct {
	logger   *zap.Logger
	uMatch   uMatch
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *zap.Logger, uMatch uMatch) *Server {
	server := &Server{
		logger: logger.With(zap.String("component", "websocket")),
		uMatch: uMatch,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionStart] = server.handleStart
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionValidate] = server.handleValidate
	server.handlers[actionState] = server.handleState
	server.handlers[actionEnd] = server.handleEnd
	server.handlers[actionBotModes] = server.handleBotModes

	return server
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown WebSocket server", zap.Error(err))
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and serves it until the client leaves.
func (that *Server) upgradeToWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With(zap.String("method", "upgradeToWebSocket"))

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(readLimit)

	log.Info("WebSocket connection established", zap.String("remote", r.RemoteAddr))

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Debug("connection closed", zap.Error(err))
	}
}

// handleMessages - processes messages from the client. Replies are written in request order.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With(zap.String("method", "handleMessages"))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", zap.Error(err))

			if err = that.sendMessage(conn, actionError, ResponsePayload{Error: "invalid message"}); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", zap.String("action", message.Action))

			if err = that.sendMessage(conn, message.Action, ResponsePayload{Error: "unknown action"}); err != nil {
				return err
			}
			continue
		}

		if err = that.sendMessage(conn, message.Action, handler(ctx, &message)); err != nil {
			return err
		}
	}
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
