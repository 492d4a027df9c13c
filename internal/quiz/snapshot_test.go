package quiz

import (
	"context"
	"testing"

	"github.com/rmarin/examdrill/internal/bank"
)

func TestSnapshotIdle(t *testing.T) {
	f := newFixture(t, testBank())
	snap := f.ctrl.Snapshot()
	if snap.State != StateIdle {
		t.Errorf("state = %s, want idle", snap.State)
	}
	if snap.Question != nil || snap.Total != 0 {
		t.Error("idle snapshot must carry no session data")
	}
}

func TestSnapshotTracksSession(t *testing.T) {
	f := newFixture(t, testBank())
	f.ctrl.Start(Criteria{Mode: ModePractice, AxisKey: bank.AxisAll, Count: 4})
	order := f.ctrl.Session().Order

	f.ctrl.Answer(order[0], "A")
	f.ctrl.ToggleFlag(order[1])

	snap := f.ctrl.Snapshot()
	if snap.Total != 4 || snap.Index != 0 {
		t.Errorf("position = %d/%d, want 0/4", snap.Index, snap.Total)
	}
	if snap.Question == nil || snap.Question.ID != order[0] {
		t.Fatalf("question = %+v, want id %q", snap.Question, order[0])
	}
	if snap.ChosenChoiceID != "A" {
		t.Errorf("chosen = %q, want A", snap.ChosenChoiceID)
	}
	if snap.AnsweredCount != 1 || snap.FlaggedCount != 1 || snap.RemainingCount != 3 {
		t.Errorf("counts = answered %d flagged %d remaining %d",
			snap.AnsweredCount, snap.FlaggedCount, snap.RemainingCount)
	}

	if len(snap.Positions) != 4 {
		t.Fatalf("positions len = %d, want 4", len(snap.Positions))
	}
	if !snap.Positions[0].Answered || snap.Positions[0].Flagged {
		t.Errorf("position 0 = %+v, want answered only", snap.Positions[0])
	}
	if !snap.Positions[1].Flagged || snap.Positions[1].Answered {
		t.Errorf("position 1 = %+v, want flagged only", snap.Positions[1])
	}
}

func TestSnapshotNilQuestionAfterBankSwap(t *testing.T) {
	f := newFixture(t, testBank())
	f.ctrl.Start(Criteria{Mode: ModePractice, AxisKey: "M::A", Count: 2})

	// Swap in a bank that no longer has the axis-A questions.
	swapped := &bank.Bank{
		Meta:      map[string]any{},
		Questions: []bank.Question{mc("z1", "N", "Z", "A")},
	}
	if err := f.banks.Replace(context.Background(), swapped); err != nil {
		t.Fatalf("replace: %v", err)
	}

	snap := f.ctrl.Snapshot()
	if snap.Question != nil {
		t.Error("unresolvable current id must yield a nil question")
	}
}
