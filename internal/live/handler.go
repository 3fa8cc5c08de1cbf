package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/mfgworks/dynaform/internal/form"
	"github.com/mfgworks/dynaform/internal/master"
	"github.com/mfgworks/dynaform/internal/store"
)

// Handler manages WebSocket connections for live form editing.
type Handler struct {
	sessions *Manager
	catalog  *store.Catalog
	masters  *master.Resolver
	log      zerolog.Logger
	origins  []string
}

func NewHandler(sessions *Manager, catalog *store.Catalog, masters *master.Resolver, origins []string, log zerolog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		catalog:  catalog,
		masters:  masters,
		origins:  origins,
		log:      log,
	}
}

// ServeHTTP upgrades to WebSocket and runs the message loop.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	sess := h.sessions.Create()
	defer h.sessions.Remove(sess.ID)
	ctx := r.Context()

	h.send(ctx, conn, ServerMessage{
		Type: "session",
		Data: SessionData{SessionID: sess.ID},
	})

	for {
		var msg ClientMessage
		err := wsjson.Read(ctx, conn, &msg)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				h.log.Debug().Int("status", int(websocket.CloseStatus(err))).Msg("connection closed")
			}
			return
		}
		// Lookup enforces the max-age and idle limits; an expired
		// session ends the connection.
		if h.sessions.Get(sess.ID) == nil {
			h.sendError(ctx, conn, msg.ID, "session_expired", "session expired")
			return
		}
		sess.Touch()

		switch msg.Type {
		case "open":
			h.handleOpen(ctx, conn, sess, msg)
		case "set":
			h.handleSet(ctx, conn, sess, msg)
		case "save":
			h.handleSave(ctx, conn, sess, msg)
		case "ping":
			h.send(ctx, conn, ServerMessage{Type: "pong", RequestID: msg.ID})
		default:
			h.sendError(ctx, conn, msg.ID, "unknown_type", fmt.Sprintf("unknown message type: %s", msg.Type))
		}
	}
}

func (h *Handler) handleOpen(ctx context.Context, conn *websocket.Conn, sess *Session, msg ClientMessage) {
	var data OpenData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "invalid open data")
		return
	}
	if data.SchemaID == "" {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "schema_id is required")
		return
	}

	sc, err := h.catalog.Schema(ctx, data.SchemaID)
	if err != nil {
		h.sendError(ctx, conn, msg.ID, "not_found", fmt.Sprintf("schema %s not found", data.SchemaID))
		return
	}

	if data.RecordID == "" {
		sess.Form = form.New(sc)
	} else {
		rec, err := h.catalog.Record(ctx, data.SchemaID, data.RecordID)
		if err != nil {
			h.sendError(ctx, conn, msg.ID, "not_found", fmt.Sprintf("record %s not found", data.RecordID))
			return
		}
		sess.Form = form.Load(sc, rec)
	}
	sess.SchemaID = data.SchemaID
	sess.RecordID = data.RecordID

	h.sendForm(ctx, conn, sess, msg.ID)
}

func (h *Handler) handleSet(ctx context.Context, conn *websocket.Conn, sess *Session, msg ClientMessage) {
	if sess.Form == nil {
		h.sendError(ctx, conn, msg.ID, "no_form", "no form open")
		return
	}
	var data SetData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "invalid set data")
		return
	}

	sess.Form.Set(data.Field, data.Value)
	h.sendForm(ctx, conn, sess, msg.ID)
}

func (h *Handler) handleSave(ctx context.Context, conn *websocket.Conn, sess *Session, msg ClientMessage) {
	if sess.Form == nil {
		h.sendError(ctx, conn, msg.ID, "no_form", "no form open")
		return
	}
	if err := sess.Form.Validate(); err != nil {
		var missing *form.MissingRequiredFieldError
		if errors.As(err, &missing) {
			h.sendError(ctx, conn, msg.ID, "missing_required", missing.Error())
			return
		}
		h.sendError(ctx, conn, msg.ID, "invalid", err.Error())
		return
	}

	var saved string
	if sess.RecordID == "" {
		rec, err := h.catalog.CreateRecord(ctx, sess.SchemaID, sess.Form.Record)
		if err != nil {
			h.sendError(ctx, conn, msg.ID, "save_failed", err.Error())
			return
		}
		saved = rec.ID()
		sess.RecordID = saved
	} else {
		rec, err := h.catalog.UpdateRecord(ctx, sess.SchemaID, sess.RecordID, sess.Form.Record)
		if err != nil {
			h.sendError(ctx, conn, msg.ID, "save_failed", err.Error())
			return
		}
		saved = rec.ID()
	}

	h.send(ctx, conn, ServerMessage{
		Type:      "saved",
		RequestID: msg.ID,
		Data:      SavedData{RecordID: saved},
	})
}

func (h *Handler) sendForm(ctx context.Context, conn *websocket.Conn, sess *Session, requestID string) {
	opts := h.masters.ResolveAll(ctx, sess.Form.Schema)
	h.send(ctx, conn, ServerMessage{
		Type:      "form",
		RequestID: requestID,
		Data: FormData{
			SchemaID: sess.SchemaID,
			Record:   sess.Form.Record,
			Controls: sess.Form.Controls(opts),
		},
	})
}

func (h *Handler) send(ctx context.Context, conn *websocket.Conn, msg ServerMessage) {
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		h.log.Warn().Err(err).Msg("websocket write")
	}
}

func (h *Handler) sendError(ctx context.Context, conn *websocket.Conn, requestID, code, message string) {
	h.send(ctx, conn, ServerMessage{
		Type:      "error",
		RequestID: requestID,
		Data:      ErrorData{Code: code, Message: message},
	})
}
