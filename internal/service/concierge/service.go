package concierge

import (
	"context"
	"sync"
	"time"

	"github.com/novawardrobe/concierge/internal/model/chat"
	"github.com/novawardrobe/concierge/internal/model/script"
)

// Service is the uuid-keyed session registry. The registry lock guards the
// map; each session carries its own mutex for its mutable state.
type Service struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	steps      []script.Step
	submitter  Submitter
	replyDelay time.Duration
}

// NewService bootstraps the in-memory concierge over the given script.
func NewService(steps []script.Step, submitter Submitter, replyDelay time.Duration) *Service {
	return &Service{
		sessions:   make(map[string]*Session),
		steps:      steps,
		submitter:  submitter,
		replyDelay: replyDelay,
	}
}

// Steps returns the script driving every session.
func (s *Service) Steps() []script.Step {
	return append([]script.Step(nil), s.steps...)
}

// CreateSession provisions a session seeded with the welcome line and the
// first prompt.
func (s *Service) CreateSession(_ context.Context) (*Session, error) {
	session := newSession(s.steps)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// ToggleChoice applies a choice selection to the named session.
func (s *Service) ToggleChoice(ctx context.Context, sessionID, value string) error {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	return session.ToggleChoice(value)
}

// SetTextInput applies text input to the named session.
func (s *Service) SetTextInput(ctx context.Context, sessionID, value string) error {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	return session.SetTextInput(value)
}

// Advance commits the named session's pending input.
func (s *Service) Advance(ctx context.Context, sessionID string) error {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	return session.Advance(ctx, s.submitter, s.replyDelay)
}

// Transcript returns a copy of the session's messages.
func (s *Service) Transcript(ctx context.Context, sessionID string) ([]chat.Message, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return append([]chat.Message(nil), session.Messages...), nil
}

// State is the renderable snapshot of a session pushed to clients after
// every operation.
type State struct {
	SessionID    string       `json:"sessionId"`
	StepIndex    int          `json:"stepIndex"`
	TotalSteps   int          `json:"totalSteps"`
	Step         *script.Step `json:"step,omitempty"`
	Pending      []string     `json:"pending"`
	CanAdvance   bool         `json:"canAdvance"`
	Status       Status       `json:"status"`
	PreviewScore int          `json:"previewScore"`
	Complete     bool         `json:"complete"`
}

// State snapshots the named session.
func (s *Service) State(ctx context.Context, sessionID string) (State, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	state := State{
		SessionID:    session.ID,
		StepIndex:    session.StepIndex,
		TotalSteps:   len(session.Steps),
		Pending:      append([]string{}, session.Pending...),
		CanAdvance:   session.canAdvance(),
		Status:       session.Status,
		PreviewScore: PreviewScore(session.Answers),
		Complete:     session.complete(),
	}
	if step, ok := session.currentStep(); ok {
		state.Step = &step
	}
	return state, nil
}
