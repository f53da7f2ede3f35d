package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/morrisworks/morris-backend/internal/entity"
	"github.com/morrisworks/morris-backend/internal/morris"
)

type sessionManager interface {
	GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)

	HandleCellSelected(ctx context.Context, id string, row, col int) (*entity.Session, morris.Outcome, error)
	ResetSession(ctx context.Context, id string) (*entity.Session, error)
	EndSession(ctx context.Context, id string) error
}

// connection is the per-client state: the socket plus the session the client
// joined. One session per connection; both hotseat players share it.
type connection struct {
	conn      *websocket.Conn
	sessionID string
}

type Server struct {
	logger   *slog.Logger
	manager  sessionManager
	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, client *connection, message *Message) error
}

func New(logger *slog.Logger, manager sessionManager) *Server {
	server := &Server{
		logger:   logger,
		manager:  manager,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},

		handlers: make(map[string]func(context.Context, *connection, *Message) error),
	}

	server.handlers["session:join"] = server.handleJoin
	server.handlers["session:click"] = server.handleClick
	server.handlers["session:reset"] = server.handleReset
	server.handlers["session:state"] = server.handleState
	server.handlers["session:leave"] = server.handleLeave

	return server
}

// Start - starts the WebSocket server and shuts it down when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeHTTP upgrades the connection and runs the message loop until the
// client disconnects.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	client := &connection{conn: conn}

	if err = that.handleMessages(r.Context(), client); err != nil {
		var closeErr *websocket.CloseError
		if errors.Is(err, net.ErrClosed) || errors.As(err, &closeErr) {
			log.Info("WebSocket connection closed")
			return
		}

		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, client *connection) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, reqBody, err := client.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)

			if err = that.sendErrorResponse(client, message.Action, "unknown action"); err != nil {
				return err
			}

			continue
		}

		if err = handler(ctx, client, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) sendMessage(client *connection, action string, payload Payload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadBytes,
	}

	if err = client.conn.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(client *connection, action, errMsg string) error {
	return that.sendMessage(client, action, Payload{Error: errMsg})
}
