// Package dialog publishes operator prompts. The billing flow asks questions
// (print the receipt?) without knowing how the station renders them; the
// front surface polls the active prompt and posts the answer back.
package dialog

import (
	"context"
	stdErrors "errors"
	"sync"

	"github.com/google/uuid"

	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
)

// Kind distinguishes prompt layouts.
type Kind string

const (
	KindConfirm Kind = "CONFIRM"
	KindNotice  Kind = "NOTICE"
)

// Prompt is one question awaiting the operator.
type Prompt struct {
	ID      string `json:"id"`
	Kind    Kind   `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ErrDismissed is the answer when a prompt is cancelled without a choice.
var ErrDismissed = stdErrors.New("prompt dismissed")

// Service holds at most one active prompt. Confirm blocks the asking flow
// until the operator answers or the context ends; a second prompt while one
// is active waits its turn.
type Service struct {
	mu      sync.Mutex
	gate    chan struct{}
	current *Prompt
	answer  chan bool
}

func New() *Service {
	gate := make(chan struct{}, 1)
	gate <- struct{}{}
	return &Service{gate: gate}
}

// Confirm publishes a yes/no prompt and waits for the answer.
func (s *Service) Confirm(ctx context.Context, title, message string) (bool, error) {
	return s.ask(ctx, Prompt{Kind: KindConfirm, Title: title, Message: message})
}

// Notice publishes an acknowledgement-only prompt and waits until dismissed.
func (s *Service) Notice(ctx context.Context, title, message string) error {
	_, err := s.ask(ctx, Prompt{Kind: KindNotice, Title: title, Message: message})
	return err
}

func (s *Service) ask(ctx context.Context, prompt Prompt) (bool, error) {
	select {
	case <-s.gate:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	defer func() { s.gate <- struct{}{} }()

	prompt.ID = uuid.NewString()
	answer := make(chan bool, 1)

	s.mu.Lock()
	s.current = &prompt
	s.answer = answer
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.current = nil
		s.answer = nil
		s.mu.Unlock()
	}()

	select {
	case choice, ok := <-answer:
		if !ok {
			return false, ErrDismissed
		}
		return choice, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Active returns the prompt currently awaiting an answer, or nil.
func (s *Service) Active() *Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// Answer resolves the active prompt. The id must match so a stale screen
// cannot answer a newer question.
func (s *Service) Answer(id string, choice bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.ID != id {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no such prompt")
	}
	s.answer <- choice
	s.current = nil
	s.answer = nil
	return nil
}

// Dismiss cancels the active prompt without a choice.
func (s *Service) Dismiss(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.ID != id {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no such prompt")
	}
	close(s.answer)
	s.current = nil
	s.answer = nil
	return nil
}
