package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/morrisworks/morris-backend/internal/apperror"
)

func (that *Server) pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// sessionHandler renders the full session snapshot for the presentation
// layer: board, turn, placed counts, winner, message, and selection.
func (that *Server) sessionHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "sessionHandler")

	session, err := that.sessions.GetSession(r.Context(), r.PathValue("id"))
	if errors.Is(err, apperror.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(session); err != nil {
		log.Error("failed to encode session", "error", err)
	}
}
