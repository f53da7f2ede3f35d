package websocket

import (
	"encoding/json"

	"github.com/morrisworks/morris-backend/internal/entity"
)

// Message is the wire envelope: an action name plus an action-specific
// payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries both request fields (session id, click coordinates) and
// response fields (session snapshot, click outcome, error). Row and Col are
// pointers so that a present 0 is distinguishable from an absent field.
type Payload struct {
	Session *entity.Session `json:"session,omitempty"`
	Outcome string          `json:"outcome,omitempty"`
	Row     *int            `json:"row,omitempty"`
	Col     *int            `json:"col,omitempty"`
	Error   string          `json:"error,omitempty"`
}
