// Package live defines the WebSocket protocol for interactive form
// sessions: a client opens a form over a schema, streams field edits,
// and receives recalculated state after every change.
package live

import (
	"encoding/json"

	"github.com/mfgworks/dynaform/internal/form"
	"github.com/mfgworks/dynaform/internal/types"
)

// ── Client → Server messages ────────────────────────────────────────────────

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string          `json:"type"` // "open", "set", "save", "ping"
	ID   string          `json:"id"`   // Client-assigned request ID
	Data json.RawMessage `json:"data,omitempty"`
}

// OpenData is the payload for "open" messages. RecordID is empty when
// opening a blank form.
type OpenData struct {
	SchemaID string `json:"schema_id"`
	RecordID string `json:"record_id,omitempty"`
}

// SetData is the payload for "set" messages: one field edit.
type SetData struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// ── Server → Client messages ────────────────────────────────────────────────

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type      string `json:"type"`                 // "session", "form", "saved", "error", "pong"
	RequestID string `json:"request_id,omitempty"` // Echoes client ID
	Data      any    `json:"data,omitempty"`
}

// SessionData identifies the established session.
type SessionData struct {
	SessionID string `json:"session_id"`
}

// FormData is the full form state sent after open and after every edit.
type FormData struct {
	SchemaID string         `json:"schema_id"`
	Record   types.Record   `json:"record"`
	Controls []form.Control `json:"controls"`
}

// SavedData acknowledges a successful save.
type SavedData struct {
	RecordID string `json:"record_id"`
}

// ErrorData carries an error message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
