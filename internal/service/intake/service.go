package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/novawardrobe/concierge/internal/model/lead"
)

var requiredFields = []string{"name", "email"}

// friendlyNames maps payload fields to the labels surfaced in validation
// messages.
var friendlyNames = map[string]string{
	"name":   "First name",
	"email":  "Email",
	"style":  "Style preferences",
	"fit":    "Wardrobe focus",
	"budget": "Budget",
	"notes":  "Notes",
}

// ValidationError reports required fields that were missing or blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "Missing: " + strings.Join(e.Fields, ", ")
}

// Validate checks the required fields and returns a *ValidationError
// listing the friendly names of any that are missing.
func Validate(payload lead.Payload) error {
	var missing []string
	for _, field := range requiredFields {
		var value string
		switch field {
		case "name":
			value = payload.Name
		case "email":
			value = payload.Email
		}
		if strings.TrimSpace(value) == "" {
			missing = append(missing, friendlyNames[field])
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Score computes the authoritative lead score. It intentionally differs
// from the client-side preview formula; the two are never unified.
func Score(payload lead.Payload) int {
	score := 40

	score += len(payload.Style) * 6
	for _, style := range payload.Style {
		if style == "luxury" || style == "bold" {
			score += 14
			break
		}
	}

	switch lead.FirstOf(payload.Budget) {
	case "over-600":
		score += 28
	case "300-600":
		score += 20
	case "150-300":
		score += 12
	default:
		score += 4
	}

	if utf8.RuneCountInString(payload.Notes) > 40 {
		score += 8
	}

	if score > 100 {
		score = 100
	}
	return score
}

// Service validates submissions, scores them, and fans the resulting
// record out to storage and the optional webhook.
type Service struct {
	store     lead.Store
	forwarder Forwarder
}

// NewService wires the intake pipeline to its collaborators.
func NewService(store lead.Store, forwarder Forwarder) *Service {
	if forwarder == nil {
		forwarder = NopForwarder{}
	}
	return &Service{store: store, forwarder: forwarder}
}

// Submit validates the payload, builds the record, and dispatches the
// persist and webhook-forward side effects in parallel. Side-effect
// failures are logged and discarded; the returned score reflects only
// validation and scoring.
func (s *Service) Submit(ctx context.Context, payload lead.Payload) (int, error) {
	if err := Validate(payload); err != nil {
		return 0, err
	}

	score := Score(payload)
	record := lead.Record{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(payload.Name),
		Email:     strings.ToLower(payload.Email),
		Style:     append(make([]string, 0, len(payload.Style)), payload.Style...),
		Fit:       payload.Fit,
		Budget:    payload.Budget,
		Notes:     strings.TrimSpace(payload.Notes),
		Score:     score,
		CreatedAt: time.Now().UTC(),
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := s.store.Append(ctx, record); err != nil {
			log.Printf("[intake] failed to persist lead %s: %v", record.ID, err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.forwarder.Forward(ctx, record); err != nil {
			log.Printf("[intake] failed to forward lead %s to webhook: %v", record.ID, err)
		}
	}()
	wg.Wait()

	return score, nil
}

// SubmitAnswers submits a completed conversation's answers map. The map is
// round-tripped through JSON so the concierge hands the intake pipeline
// the same shape an HTTP client would.
func (s *Service) SubmitAnswers(ctx context.Context, answers map[string]any) (int, error) {
	raw, err := json.Marshal(answers)
	if err != nil {
		return 0, fmt.Errorf("encode answers: %w", err)
	}
	var payload lead.Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return 0, fmt.Errorf("decode answers: %w", err)
	}
	return s.Submit(ctx, payload)
}
