package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/morrisworks/morris-backend/internal/apperror"
)

const errJoinFirst = "join a session first"

// handleJoin attaches the connection to a session: an existing one when the
// payload carries a known id, a freshly minted one otherwise.
func (that *Server) handleJoin(ctx context.Context, client *connection, msg *Message) error {
	log := that.logger.With("method", "handleJoin")

	var payloadReq Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	var sessionID string
	if payloadReq.Session != nil {
		sessionID = payloadReq.Session.ID
	}

	session, err := that.manager.GetOrCreateSession(ctx, sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return that.sendErrorResponse(client, msg.Action, "session not found")
	}

	if err != nil {
		log.Error("failed to get or create session", "error", err)
		return that.sendErrorResponse(client, msg.Action, "failed to join session")
	}

	client.sessionID = session.ID

	log.Info("client joined session", "session_id", session.ID)

	return that.sendMessage(client, msg.Action, Payload{Session: session})
}

// handleClick forwards a cell click to the rules engine and reports the
// resulting state plus whether the click was accepted.
func (that *Server) handleClick(ctx context.Context, client *connection, msg *Message) error {
	log := that.logger.With("method", "handleClick")

	if client.sessionID == "" {
		return that.sendErrorResponse(client, msg.Action, errJoinFirst)
	}

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Row == nil || payloadReq.Col == nil {
		return that.sendErrorResponse(client, msg.Action, "row and col are required")
	}

	session, outcome, err := that.manager.HandleCellSelected(ctx, client.sessionID, *payloadReq.Row, *payloadReq.Col)
	if errors.Is(err, apperror.ErrCellOutOfRange) {
		return that.sendErrorResponse(client, msg.Action, "cell coordinates out of range")
	}

	if errors.Is(err, apperror.ErrSessionNotFound) {
		return that.sendErrorResponse(client, msg.Action, "session not found")
	}

	if err != nil {
		log.Error("failed to handle click", "error", err)
		return that.sendErrorResponse(client, msg.Action, "failed to handle click")
	}

	return that.sendMessage(client, msg.Action, Payload{Session: session, Outcome: string(outcome)})
}

// handleReset rebuilds the joined session to its initial state.
func (that *Server) handleReset(ctx context.Context, client *connection, msg *Message) error {
	log := that.logger.With("method", "handleReset")

	if client.sessionID == "" {
		return that.sendErrorResponse(client, msg.Action, errJoinFirst)
	}

	session, err := that.manager.ResetSession(ctx, client.sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return that.sendErrorResponse(client, msg.Action, "session not found")
	}

	if err != nil {
		log.Error("failed to reset session", "error", err)
		return that.sendErrorResponse(client, msg.Action, "failed to reset session")
	}

	return that.sendMessage(client, msg.Action, Payload{Session: session})
}

// handleState re-sends the current session snapshot for rendering.
func (that *Server) handleState(ctx context.Context, client *connection, msg *Message) error {
	log := that.logger.With("method", "handleState")

	if client.sessionID == "" {
		return that.sendErrorResponse(client, msg.Action, errJoinFirst)
	}

	session, err := that.manager.GetSession(ctx, client.sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return that.sendErrorResponse(client, msg.Action, "session not found")
	}

	if err != nil {
		log.Error("failed to get session", "error", err)
		return that.sendErrorResponse(client, msg.Action, "failed to get session")
	}

	return that.sendMessage(client, msg.Action, Payload{Session: session})
}

// handleLeave drops the stored session and detaches the connection from it.
func (that *Server) handleLeave(ctx context.Context, client *connection, msg *Message) error {
	log := that.logger.With("method", "handleLeave")

	if client.sessionID == "" {
		return that.sendErrorResponse(client, msg.Action, errJoinFirst)
	}

	if err := that.manager.EndSession(ctx, client.sessionID); err != nil {
		log.Error("failed to end session", "error", err)
		return that.sendErrorResponse(client, msg.Action, "failed to leave session")
	}

	log.Info("client left session", "session_id", client.sessionID)
	client.sessionID = ""

	return that.sendMessage(client, msg.Action, Payload{})
}
