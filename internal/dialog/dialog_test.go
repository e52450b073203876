package dialog

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/arjunkrish/pharmapos-terminal/pkg/errors"
)

func waitForPrompt(t *testing.T, s *Service) *Prompt {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if p := s.Active(); p != nil {
			return p
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no prompt published in time")
	return nil
}

func TestConfirmAnswered(t *testing.T) {
	s := New()
	result := make(chan bool, 1)

	go func() {
		ok, err := s.Confirm(context.Background(), "Bill created", "Print the receipt?")
		if err != nil {
			t.Errorf("confirm: %v", err)
		}
		result <- ok
	}()

	prompt := waitForPrompt(t, s)
	if prompt.Kind != KindConfirm || prompt.Title != "Bill created" {
		t.Fatalf("unexpected prompt: %+v", prompt)
	}
	if err := s.Answer(prompt.ID, true); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if got := <-result; !got {
		t.Fatal("expected accepted answer")
	}
	if s.Active() != nil {
		t.Fatal("prompt should clear after answer")
	}
}

func TestAnswerWrongID(t *testing.T) {
	s := New()
	go s.Confirm(context.Background(), "t", "m")

	prompt := waitForPrompt(t, s)
	if err := s.Answer("stale-id", true); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
	s.Dismiss(prompt.ID)
}

func TestDismiss(t *testing.T) {
	s := New()
	result := make(chan error, 1)

	go func() {
		_, err := s.Confirm(context.Background(), "t", "m")
		result <- err
	}()

	prompt := waitForPrompt(t, s)
	if err := s.Dismiss(prompt.ID); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if err := <-result; !errors.Is(err, ErrDismissed) {
		t.Fatalf("expected ErrDismissed got %v", err)
	}
}

func TestConfirmHonoursContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)

	go func() {
		_, err := s.Confirm(ctx, "t", "m")
		result <- err
	}()

	waitForPrompt(t, s)
	cancel()
	if err := <-result; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation got %v", err)
	}
}

func TestSecondPromptWaitsItsTurn(t *testing.T) {
	s := New()
	first := make(chan bool, 1)
	second := make(chan bool, 1)

	go func() {
		ok, _ := s.Confirm(context.Background(), "first", "m")
		first <- ok
	}()
	prompt := waitForPrompt(t, s)

	go func() {
		ok, _ := s.Confirm(context.Background(), "second", "m")
		second <- ok
	}()

	// The second question must not replace the first.
	time.Sleep(20 * time.Millisecond)
	if active := s.Active(); active == nil || active.Title != "first" {
		t.Fatalf("expected first prompt still active, got %+v", active)
	}

	s.Answer(prompt.ID, true)
	<-first

	next := waitForPrompt(t, s)
	if next.Title != "second" {
		t.Fatalf("expected second prompt, got %+v", next)
	}
	s.Answer(next.ID, false)
	if got := <-second; got {
		t.Fatal("expected declined answer")
	}
}
