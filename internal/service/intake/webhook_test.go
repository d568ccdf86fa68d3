package intake_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/novawardrobe/concierge/internal/model/lead"
	"github.com/novawardrobe/concierge/internal/service/intake"
)

func TestWebhookForwarderDeliversRecord(t *testing.T) {
	var gotMethod, gotContentType string
	var gotRecord lead.Record

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotRecord); err != nil {
			t.Errorf("decode webhook body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	forwarder := intake.NewWebhookForwarder(srv.URL, 5*time.Second)
	record := lead.Record{
		ID:        "lead-1",
		Name:      "Alex",
		Email:     "alex@x.com",
		Style:     []string{"luxury"},
		Notes:     "",
		Score:     88,
		CreatedAt: time.Now().UTC(),
	}

	if err := forwarder.Forward(context.Background(), record); err != nil {
		t.Fatalf("Forward err: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("expected POST, got %s", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Fatalf("unexpected content type: %s", gotContentType)
	}
	if gotRecord.ID != "lead-1" || gotRecord.Score != 88 {
		t.Fatalf("unexpected delivered record: %+v", gotRecord)
	}
}

func TestWebhookForwarderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	forwarder := intake.NewWebhookForwarder(srv.URL, time.Second)
	if err := forwarder.Forward(context.Background(), lead.Record{ID: "lead-1"}); err == nil {
		t.Fatal("expected delivery error")
	}
}
