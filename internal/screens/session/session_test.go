package session

import (
	"context"
	"math/rand"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/rmarin/examdrill/internal/bank"
	"github.com/rmarin/examdrill/internal/progress"
	"github.com/rmarin/examdrill/internal/quiz"
)

// bankRepoStub serves a fixed bank.
type bankRepoStub struct {
	b *bank.Bank
}

func (s *bankRepoStub) Save(_ context.Context, b *bank.Bank) error { s.b = b; return nil }
func (s *bankRepoStub) Load(_ context.Context) (*bank.Bank, error) { return s.b, nil }
func (s *bankRepoStub) Delete(_ context.Context) error             { s.b = nil; return nil }

// progressRepoStub keeps everything in memory.
type progressRepoStub struct {
	saved *progress.Progress
}

func (s *progressRepoStub) Save(_ context.Context, p *progress.Progress) error {
	cp := *p
	s.saved = &cp
	return nil
}
func (s *progressRepoStub) Load(_ context.Context) (*progress.Progress, error) {
	return s.saved, nil
}
func (s *progressRepoStub) Delete(_ context.Context) error { s.saved = nil; return nil }

func fourQuestionBank() *bank.Bank {
	q := func(id string) bank.Question {
		return bank.Question{
			ID:     id,
			Module: "M",
			Axis:   "A",
			Text:   "prompt " + id,
			Choices: []bank.Choice{
				{ID: "A", Text: "alpha"},
				{ID: "B", Text: "beta"},
			},
			Answer: bank.Answer{CorrectChoiceID: "A"},
		}
	}
	return &bank.Bank{
		Meta:      map[string]any{},
		Questions: []bank.Question{q("q1"), q("q2"), q("q3"), q("q4")},
	}
}

// startSession builds a screen over a running mock session and returns the
// selection order alongside it.
func startSession(t *testing.T, count int) (*SessionScreen, *quiz.Controller, []string) {
	t.Helper()
	banks := bank.NewStore(&bankRepoStub{b: fourQuestionBank()})
	if err := banks.Load(context.Background()); err != nil {
		t.Fatalf("load bank: %v", err)
	}
	prog := progress.NewStore(&progressRepoStub{})
	ctrl := quiz.NewController(banks, prog, quiz.WithRandom(rand.NewSource(1)))
	order := ctrl.Start(quiz.Criteria{
		Mode:    quiz.ModeMock,
		AxisKey: bank.AxisAll,
		Count:   count,
	})
	return New(ctrl, prog), ctrl, order
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestJumpKeyMovesToPosition(t *testing.T) {
	s, ctrl, order := startSession(t, 4)

	s.Update(keyPress('g'))
	s.Update(keyPress('3'))

	snap := ctrl.Snapshot()
	if snap.Index != 2 {
		t.Fatalf("index = %d, want 2", snap.Index)
	}
	if snap.Question == nil || snap.Question.ID != order[2] {
		t.Fatalf("current question not synced to position 3")
	}
	if s.jumpPending {
		t.Fatal("jump overlay still pending after digit")
	}
}

func TestJumpOutOfRangeKeepsPosition(t *testing.T) {
	s, ctrl, _ := startSession(t, 2)

	s.Update(keyPress('g'))
	s.Update(keyPress('9'))

	if got := ctrl.Snapshot().Index; got != 0 {
		t.Fatalf("index = %d, want 0", got)
	}
	if s.jumpPending {
		t.Fatal("jump overlay still pending after out-of-range digit")
	}
}

func TestJumpCancelledByNonDigit(t *testing.T) {
	s, ctrl, _ := startSession(t, 4)

	s.Update(keyPress('g'))
	s.Update(keyPress('x'))

	if got := ctrl.Snapshot().Index; got != 0 {
		t.Fatalf("index = %d, want 0", got)
	}
	if s.jumpPending {
		t.Fatal("non-digit key did not cancel the jump overlay")
	}

	// The digit that follows is a choice pick again, not a jump: mock
	// mode records the answer and moves on.
	s.Update(keyPress('2'))
	if got := ctrl.Snapshot().Index; got != 1 {
		t.Fatalf("index = %d after answering, want 1", got)
	}
}

func TestJumpDisabledForSingleQuestion(t *testing.T) {
	s, _, _ := startSession(t, 1)

	s.Update(keyPress('g'))
	if s.jumpPending {
		t.Fatal("jump overlay armed for a single-question session")
	}
}
