package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/morrisworks/morris-backend/internal/entity"
)

type sessionReader interface {
	GetSession(ctx context.Context, id string) (*entity.Session, error)
}

type Server struct {
	logger   *slog.Logger
	sessions sessionReader
}

func New(logger *slog.Logger, sessions sessionReader) *Server {
	return &Server{
		logger:   logger,
		sessions: sessions,
	}
}

// Start - starts the REST server with the liveness and read-only state routes.
func (that *Server) Start(port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.pingHandler)
	mux.HandleFunc("GET /sessions/{id}", that.sessionHandler)

	return mux
}
