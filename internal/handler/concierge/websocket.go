package concierge

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/novawardrobe/concierge/pkg/utils"
)

// Inbound operation types accepted over the websocket.
const (
	opToggle  = "toggle"
	opInput   = "input"
	opAdvance = "advance"
)

// Outbound envelope types.
const (
	envelopeMessage = "message"
	envelopeState   = "state"
	envelopeError   = "error"
)

type inboundOp struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

type outgoingEnvelope struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handleWebSocket upgrades the connection and drives the session: each
// accepted operation is answered with the new transcript entries and a
// state snapshot; rejected operations get an error envelope without
// closing the connection.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.svc.GetSession(r.Context(), sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[concierge] websocket upgrade failed for session %s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	sent := 0
	sent = h.pushUpdates(r.Context(), conn, sessionID, sent)

	for {
		var op inboundOp
		if err := conn.ReadJSON(&op); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[concierge] websocket closed unexpectedly for session %s: %v", sessionID, err)
			}
			return
		}

		if err := h.applyOp(r.Context(), sessionID, op); err != nil {
			h.writeEnvelope(conn, outgoingEnvelope{
				Type:      envelopeError,
				SessionID: sessionID,
				Data:      err.Error(),
			})
			continue
		}

		sent = h.pushUpdates(r.Context(), conn, sessionID, sent)
	}
}

// applyOp dispatches one inbound operation to the session.
func (h *Handler) applyOp(ctx context.Context, sessionID string, op inboundOp) error {
	switch op.Type {
	case opToggle:
		return h.svc.ToggleChoice(ctx, sessionID, op.Value)
	case opInput:
		return h.svc.SetTextInput(ctx, sessionID, op.Value)
	case opAdvance:
		return h.svc.Advance(ctx, sessionID)
	default:
		return fmt.Errorf("unknown operation type %q", op.Type)
	}
}

// pushUpdates sends transcript entries the client has not seen yet,
// followed by a state snapshot. Returns the new sent watermark.
func (h *Handler) pushUpdates(ctx context.Context, conn *websocket.Conn, sessionID string, sent int) int {
	messages, err := h.svc.Transcript(ctx, sessionID)
	if err != nil {
		log.Printf("[concierge] failed to load transcript for session %s: %v", sessionID, err)
		return sent
	}

	for _, message := range messages[sent:] {
		h.writeEnvelope(conn, outgoingEnvelope{
			Type:      envelopeMessage,
			SessionID: sessionID,
			Data:      message,
		})
	}

	if state, err := h.svc.State(ctx, sessionID); err == nil {
		h.writeEnvelope(conn, outgoingEnvelope{
			Type:      envelopeState,
			SessionID: sessionID,
			Data:      state,
		})
	}

	return len(messages)
}

func (h *Handler) writeEnvelope(conn *websocket.Conn, envelope outgoingEnvelope) {
	envelope.Timestamp = time.Now().UnixMilli()
	if err := conn.WriteJSON(envelope); err != nil {
		log.Printf("[concierge] failed to write websocket envelope: %v", err)
	}
}
