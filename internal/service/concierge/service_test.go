package concierge_test

import (
	"context"
	"errors"
	"testing"

	"github.com/novawardrobe/concierge/internal/model/script"
	"github.com/novawardrobe/concierge/internal/service/concierge"
)

func TestServiceGetSessionNotFound(t *testing.T) {
	svc := concierge.NewService(script.Script(), &fakeSubmitter{}, 0)

	if _, err := svc.GetSession(context.Background(), "missing"); !errors.Is(err, concierge.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestConcurrentReadsDuringAdvance(t *testing.T) {
	svc := concierge.NewService(script.Script(), &fakeSubmitter{score: 90}, 0)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	// Transcript and state reads from another request must not tear while
	// the driving connection mutates the session.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			if _, err := svc.Transcript(ctx, session.ID); err != nil {
				t.Errorf("Transcript err: %v", err)
				return
			}
			if _, err := svc.State(ctx, session.ID); err != nil {
				t.Errorf("State err: %v", err)
				return
			}
		}
	}()

	input := func(value string) {
		if err := svc.SetTextInput(ctx, session.ID, value); err != nil {
			t.Fatalf("SetTextInput err: %v", err)
		}
	}
	pick := func(value string) {
		if err := svc.ToggleChoice(ctx, session.ID, value); err != nil {
			t.Fatalf("ToggleChoice err: %v", err)
		}
	}
	next := func() {
		if err := svc.Advance(ctx, session.ID); err != nil {
			t.Fatalf("Advance err: %v", err)
		}
	}

	input("Alex")
	next()
	input("alex@x.com")
	next()
	pick("minimal")
	next()
	pick("daily")
	next()
	pick("under-150")
	next()
	input("nothing specific")
	next()

	<-done

	state, err := svc.State(ctx, session.ID)
	if err != nil {
		t.Fatalf("State err: %v", err)
	}
	if state.Status != concierge.StatusSuccess {
		t.Fatalf("expected success status, got %s", state.Status)
	}

	messages, err := svc.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	// 2 seeded + 2 per step (echo and next prompt, closing line last).
	if len(messages) != 14 {
		t.Fatalf("expected 14 transcript entries, got %d", len(messages))
	}
}
