package concierge

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/novawardrobe/concierge/internal/model/chat"
	"github.com/novawardrobe/concierge/internal/model/script"
)

// Status tracks where a session sits in its lifecycle. There is no
// transition back to collecting after submission.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

const (
	successLine = "Saved! I'll drop a curated lookbook and size recommendations in your inbox shortly."
	apologyLine = "Something glitched while saving your details. Mind trying again in a sec?"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionComplete = errors.New("session already complete")
	ErrNotChoiceStep   = errors.New("current step does not take choices")
	ErrChoiceStep      = errors.New("current step takes choices, not text")
	ErrUnknownOption   = errors.New("value is not one of the step's options")
	ErrCannotAdvance   = errors.New("current step has no committed answer")
)

// Submitter receives the full answers map when the final step completes.
type Submitter interface {
	SubmitAnswers(ctx context.Context, answers map[string]any) (int, error)
}

// Session holds the state of one prospect conversation: the transcript,
// the answers collected so far, the step cursor, and the uncommitted input
// for the current step. The mutex serializes websocket-driven mutations
// against transcript and state reads from other requests.
type Session struct {
	mu        sync.Mutex
	ID        string
	Steps     []script.Step
	Messages  []chat.Message
	Answers   map[string]any
	StepIndex int
	Pending   []string
	Status    Status
	CreatedAt time.Time
}

func newSession(steps []script.Step) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Steps:     steps,
		Answers:   make(map[string]any, len(steps)),
		Status:    StatusIdle,
		CreatedAt: time.Now().UTC(),
	}
	s.appendMessage(chat.AuthorAgent, script.WelcomeLine)
	if len(steps) > 0 {
		s.appendMessage(chat.AuthorAgent, steps[0].Prompt)
	}
	return s
}

// CurrentStep returns the step under the cursor, if any remains.
func (s *Session) CurrentStep() (script.Step, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentStep()
}

func (s *Session) currentStep() (script.Step, bool) {
	if s.StepIndex < 0 || s.StepIndex >= len(s.Steps) {
		return script.Step{}, false
	}
	return s.Steps[s.StepIndex], true
}

// Complete reports whether every step has been answered.
func (s *Session) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete()
}

func (s *Session) complete() bool {
	return s.StepIndex >= len(s.Steps)
}

// ToggleChoice records an option selection on the current choice step.
// Single-select steps replace the pending value; multi-select steps toggle
// membership, preserving insertion order.
func (s *Session) ToggleChoice(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	step, ok := s.currentStep()
	if !ok {
		return ErrSessionComplete
	}
	if !step.Choice() {
		return ErrNotChoiceStep
	}
	if !validOption(step, value) {
		return ErrUnknownOption
	}

	if !step.Multiple {
		s.Pending = []string{value}
		return nil
	}
	for i, existing := range s.Pending {
		if existing == value {
			s.Pending = append(s.Pending[:i], s.Pending[i+1:]...)
			return nil
		}
	}
	s.Pending = append(s.Pending, value)
	return nil
}

// SetTextInput replaces the pending value of the current non-choice step.
func (s *Session) SetTextInput(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	step, ok := s.currentStep()
	if !ok {
		return ErrSessionComplete
	}
	if step.Choice() {
		return ErrChoiceStep
	}
	s.Pending = []string{value}
	return nil
}

// CanAdvance reports whether the pending input satisfies the current step:
// choice steps need at least one selection, text steps need non-whitespace
// content.
func (s *Session) CanAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canAdvance()
}

func (s *Session) canAdvance() bool {
	step, ok := s.currentStep()
	if !ok {
		return false
	}
	if step.Choice() {
		return len(s.Pending) > 0
	}
	return len(s.Pending) > 0 && strings.TrimSpace(s.Pending[0]) != ""
}

// Advance commits the pending input as the current step's answer, echoes
// it into the transcript, and moves the cursor. Completing the final step
// submits the accumulated answers; the submission outcome lands in Status
// and the transcript, never as a returned error.
func (s *Session) Advance(ctx context.Context, submitter Submitter, replyDelay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	step, ok := s.currentStep()
	if !ok {
		return ErrSessionComplete
	}
	if !s.canAdvance() {
		return ErrCannotAdvance
	}

	var answer any
	var echoed []string
	if step.Choice() {
		values := append([]string(nil), s.Pending...)
		echoed = values
		if step.Multiple {
			answer = values
		} else {
			answer = values[0]
		}
	} else {
		value := strings.TrimSpace(s.Pending[0])
		answer = value
		echoed = []string{value}
	}

	s.appendMessage(chat.AuthorProspect, prettyJoin(echoed))
	s.Answers[step.ID] = answer
	s.StepIndex++
	s.Pending = nil

	if next, ok := s.currentStep(); ok {
		// Cosmetic pacing before the agent's next prompt; zero in tests.
		if replyDelay > 0 {
			timer := time.NewTimer(replyDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}
		s.appendMessage(chat.AuthorAgent, next.Prompt)
		return nil
	}

	s.Status = StatusSubmitting
	if _, err := submitter.SubmitAnswers(ctx, s.Answers); err != nil {
		log.Printf("[concierge] submission failed for session %s: %v", s.ID, err)
		s.Status = StatusError
		s.appendMessage(chat.AuthorAgent, apologyLine)
		return nil
	}
	s.Status = StatusSuccess
	s.appendMessage(chat.AuthorAgent, successLine)
	return nil
}

func (s *Session) appendMessage(author, content string) {
	s.Messages = append(s.Messages, chat.Message{
		ID:        uuid.NewString(),
		Author:    author,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
}

func validOption(step script.Step, value string) bool {
	for _, option := range step.Options {
		if option.Value == value {
			return true
		}
	}
	return false
}

// prettyJoin renders answer values the way the transcript shows them:
// a single value as-is, more as "a, b and c".
func prettyJoin(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values[:len(values)-1], ", ") + " and " + values[len(values)-1]
	}
}
