package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/morrisworks/morris-backend/internal/apperror"
	"github.com/morrisworks/morris-backend/internal/entity"
	"github.com/morrisworks/morris-backend/internal/morris"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// SessionManager orchestrates game sessions between the transports and the
// rules engine: it loads a session, runs the engine on it, and saves it back.
type SessionManager struct {
	logger   *slog.Logger
	sessions sessionRepo
}

func NewSessionManager(logger *slog.Logger, sessions sessionRepo) *SessionManager {
	return &SessionManager{
		logger: logger,

		sessions: sessions,
	}
}

// GetOrCreateSession returns the session with the given id, or mints a fresh
// one when id is empty.
func (that *SessionManager) GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error) {
	if id == "" {
		session := entity.NewSession(uuid.NewString())
		if err := that.sessions.CreateOrUpdate(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}

		that.logger.Info("created new session", "session_id", session.ID)

		return session, nil
	}

	session, err := that.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}

// GetSession is the read-only fetch used for rendering.
func (that *SessionManager) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}

// HandleCellSelected validates the coordinates, dispatches the click through
// the rules engine, and persists the result. The engine itself never fails:
// an invalid click comes back as morris.OutcomeIgnored with the session
// unchanged.
func (that *SessionManager) HandleCellSelected(ctx context.Context, id string, row, col int) (*entity.Session, morris.Outcome, error) {
	if !entity.ValidCoords(row, col) {
		return nil, morris.OutcomeIgnored, fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOutOfRange, row, col)
	}

	session, err := that.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, morris.OutcomeIgnored, fmt.Errorf("failed to get session by id: %w", err)
	}

	outcome := morris.HandleCellSelected(session, row, col)

	if outcome == morris.OutcomeIgnored {
		return session, outcome, nil
	}

	if err = that.sessions.CreateOrUpdate(ctx, session); err != nil {
		return nil, outcome, fmt.Errorf("failed to update session: %w", err)
	}

	if session.HasWinner() {
		that.logger.Info("game finished", "session_id", session.ID, "winner", session.Winner)
	}

	return session, outcome, nil
}

// ResetSession rebuilds the session to its initial state and persists it.
func (that *SessionManager) ResetSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	morris.ResetGame(session)

	if err = that.sessions.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	that.logger.Info("session reset", "session_id", session.ID)

	return session, nil
}

// EndSession drops the stored session entirely.
func (that *SessionManager) EndSession(ctx context.Context, id string) error {
	if err := that.sessions.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session by id: %w", err)
	}

	return nil
}
