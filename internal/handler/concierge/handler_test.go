package concierge

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/novawardrobe/concierge/internal/model/chat"
	"github.com/novawardrobe/concierge/internal/model/lead"
	"github.com/novawardrobe/concierge/internal/model/script"
	conciergeService "github.com/novawardrobe/concierge/internal/service/concierge"
	intakeService "github.com/novawardrobe/concierge/internal/service/intake"
)

func setupHandler() (*chi.Mux, *Handler, *conciergeService.Service) {
	intakeSvc := intakeService.NewService(lead.NewMemoryStore(), intakeService.NopForwarder{})
	svc := conciergeService.NewService(script.Script(), intakeSvc, 0)
	handler := New(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, handler, svc
}

func TestListSteps(t *testing.T) {
	r, _, _ := setupHandler()

	req := httptest.NewRequest(http.MethodGet, "/concierge/steps", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var steps []script.Step
	if err := json.Unmarshal(resp.Body.Bytes(), &steps); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(steps))
	}
	if steps[0].ID != "name" || steps[2].Kind != script.KindChoice {
		t.Fatalf("unexpected script: %+v", steps)
	}
}

func TestCreateSession(t *testing.T) {
	r, _, _ := setupHandler()

	req := httptest.NewRequest(http.MethodPost, "/concierge/session", bytes.NewReader(nil))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var decoded struct {
		SessionID string                 `json:"sessionId"`
		Messages  []chat.Message         `json:"messages"`
		State     conciergeService.State `json:"state"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if decoded.SessionID == "" {
		t.Fatal("expected session id")
	}
	if len(decoded.Messages) != 2 {
		t.Fatalf("expected 2 seeded messages, got %d", len(decoded.Messages))
	}
	if decoded.State.PreviewScore != 45 {
		t.Fatalf("expected preview score 45, got %d", decoded.State.PreviewScore)
	}
	if decoded.State.Step == nil || decoded.State.Step.ID != "name" {
		t.Fatalf("expected first step in state, got %+v", decoded.State.Step)
	}
}

func TestTranscriptUnknownSession(t *testing.T) {
	r, _, _ := setupHandler()

	req := httptest.NewRequest(http.MethodGet, "/concierge/session/missing/transcript", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestApplyOpDrivesSession(t *testing.T) {
	_, handler, svc := setupHandler()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	if err := handler.applyOp(ctx, session.ID, inboundOp{Type: opInput, Value: "Alex"}); err != nil {
		t.Fatalf("input op err: %v", err)
	}
	if err := handler.applyOp(ctx, session.ID, inboundOp{Type: opAdvance}); err != nil {
		t.Fatalf("advance op err: %v", err)
	}

	state, err := svc.State(ctx, session.ID)
	if err != nil {
		t.Fatalf("State err: %v", err)
	}
	if state.StepIndex != 1 {
		t.Fatalf("expected step index 1, got %d", state.StepIndex)
	}

	// Toggling on the email text step is rejected without advancing.
	if err := handler.applyOp(ctx, session.ID, inboundOp{Type: opToggle, Value: "luxury"}); err == nil {
		t.Fatal("expected toggle rejection on text step")
	}
}

func TestApplyOpUnknownType(t *testing.T) {
	_, handler, svc := setupHandler()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	if err := handler.applyOp(ctx, session.ID, inboundOp{Type: "restart"}); err == nil {
		t.Fatal("expected error for unknown op type")
	}
}
