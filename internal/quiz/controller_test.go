package quiz

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/rmarin/examdrill/internal/bank"
	"github.com/rmarin/examdrill/internal/progress"
)

// bankRepoFake serves a fixed bank.
type bankRepoFake struct {
	b *bank.Bank
}

func (f *bankRepoFake) Save(_ context.Context, b *bank.Bank) error { f.b = b; return nil }
func (f *bankRepoFake) Load(_ context.Context) (*bank.Bank, error) { return f.b, nil }
func (f *bankRepoFake) Delete(_ context.Context) error             { f.b = nil; return nil }

// progressRepoFake counts saves so finish idempotence is observable.
type progressRepoFake struct {
	saved   *progress.Progress
	saves   int
	saveErr error
}

func (f *progressRepoFake) Save(_ context.Context, p *progress.Progress) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	cp := *p
	f.saved = &cp
	f.saves++
	return nil
}

func (f *progressRepoFake) Load(_ context.Context) (*progress.Progress, error) {
	return f.saved, nil
}

func (f *progressRepoFake) Delete(_ context.Context) error { f.saved = nil; return nil }

func mc(id, module, axis, correct string) bank.Question {
	return bank.Question{
		ID:     id,
		Module: module,
		Axis:   axis,
		Text:   "prompt " + id,
		Choices: []bank.Choice{
			{ID: "A", Text: "alpha"},
			{ID: "B", Text: "beta"},
			{ID: "C", Text: "gamma"},
		},
		Answer: bank.Answer{CorrectChoiceID: correct},
	}
}

func testBank() *bank.Bank {
	return &bank.Bank{
		Meta: map[string]any{},
		Questions: []bank.Question{
			mc("a1", "M", "A", "A"),
			mc("a2", "M", "A", "B"),
			mc("b1", "M", "B", "C"),
			mc("b2", "M", "B", "A"),
		},
	}
}

type fixture struct {
	ctrl     *Controller
	banks    *bank.Store
	prog     *progress.Store
	progRepo *progressRepoFake
	clock    *fakeClock
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFixture(t *testing.T, b *bank.Bank) *fixture {
	t.Helper()
	banks := bank.NewStore(&bankRepoFake{b: b})
	if err := banks.Load(context.Background()); err != nil {
		t.Fatalf("load bank: %v", err)
	}
	progRepo := &progressRepoFake{}
	prog := progress.NewStore(progRepo)
	clock := &fakeClock{t: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)}
	ctrl := NewController(banks, prog,
		WithRandom(rand.NewSource(1)),
		WithClock(clock.now),
	)
	return &fixture{ctrl: ctrl, banks: banks, prog: prog, progRepo: progRepo, clock: clock}
}

func TestStartSelectsFromAxisPool(t *testing.T) {
	f := newFixture(t, testBank())

	order := f.ctrl.Start(Criteria{Mode: ModePractice, AxisKey: "M::A", Count: 10})
	if len(order) != 2 {
		t.Fatalf("order len = %d, want 2 (pool size caps the request)", len(order))
	}
	seen := make(map[string]bool)
	for _, qid := range order {
		if qid != "a1" && qid != "a2" {
			t.Errorf("id %q not in axis pool", qid)
		}
		if seen[qid] {
			t.Errorf("duplicate id %q in order", qid)
		}
		seen[qid] = true
	}
	if f.ctrl.State() != StateRunning {
		t.Errorf("state = %s, want running", f.ctrl.State())
	}
}

func TestStartClampsCriteria(t *testing.T) {
	f := newFixture(t, testBank())

	f.ctrl.Start(Criteria{Mode: ModeMock, AxisKey: bank.AxisAll, Count: -5, TimerEnabled: true, TimerMinutes: 9999})
	sess := f.ctrl.Session()
	if sess.RequestedCount != MinCount {
		t.Errorf("count = %d, want clamped to %d", sess.RequestedCount, MinCount)
	}
	if sess.TimerMinutes != MaxMinutes {
		t.Errorf("minutes = %d, want clamped to %d", sess.TimerMinutes, MaxMinutes)
	}
	if len(sess.Order) != 1 {
		t.Errorf("order len = %d, want 1", len(sess.Order))
	}
	if sess.EndsAt == nil {
		t.Fatal("timed session must derive endsAt")
	}
	wantEnd := sess.StartedAt.Add(MaxMinutes * time.Minute)
	if !sess.EndsAt.Equal(wantEnd) {
		t.Errorf("endsAt = %v, want %v", sess.EndsAt, wantEnd)
	}
}

func TestStartUntimedHasNoDeadline(t *testing.T) {
	f := newFixture(t, testBank())
	f.ctrl.Start(Criteria{Mode: ModePractice, AxisKey: bank.AxisAll, Count: 4})
	if f.ctrl.Session().EndsAt != nil {
		t.Error("untimed session must not derive endsAt")
	}
	if _, ok := f.ctrl.Remaining(f.clock.now()); ok {
		t.Error("untimed session must not report a countdown")
	}
}

func TestEmptyPoolStartsAndFinishesAtZero(t *testing.T) {
	f := newFixture(t, testBank())

	order := f.ctrl.Start(Criteria{Mode: ModePractice, AxisKey: "M::missing", Count: 5})
	if len(order) != 0 {
		t.Fatalf("order len = %d, want 0", len(order))
	}
	if f.ctrl.State() != StateRunning {
		t.Fatalf("empty-pool session must still start, state = %s", f.ctrl.State())
	}

	finished, err := f.ctrl.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if !finished {
		t.Fatal("first advance of an empty session must finish it")
	}
	att := f.ctrl.Result()
	if att.Total != 0 || att.Correct != 0 {
		t.Errorf("attempt = %d/%d, want 0/0", att.Correct, att.Total)
	}
	if att.Percent() != 0 {
		t.Errorf("percent = %d, want 0", att.Percent())
	}
}

func TestAnswerOverwrites(t *testing.T) {
	f := newFixture(t, testBank())
	f.ctrl.Start(Criteria{Mode: ModePractice, AxisKey: bank.AxisAll, Count: 4})
	qid := f.ctrl.Session().Order[0]

	if err := f.ctrl.Answer(qid, "A"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	f.clock.advance(3 * time.Second)
	if err := f.ctrl.Answer(qid, "B"); err != nil {
		t.Fatalf("answer: %v", err)
	}

	mark := f.ctrl.Session().Answers[qid]
	if mark.ChoiceID != "B" {
		t.Errorf("choice = %q, want latest answer to win", mark.ChoiceID)
	}
	if len(f.ctrl.Session().Answers) != 1 {
		t.Errorf("answers len = %d, want 1", len(f.ctrl.Session().Answers))
	}
}

func TestToggleFlag(t *testing.T) {
	f := newFixture(t, testBank())
	f.ctrl.Start(Criteria{Mode: ModePractice, AxisKey: bank.AxisAll, Count: 4})
	qid := f.ctrl.Session().Order[0]

	f.ctrl.ToggleFlag(qid)
	if _, ok := f.ctrl.Session().Flags[qid]; !ok {
		t.Fatal("flag not set")
	}
	f.ctrl.ToggleFlag(qid)
	if _, ok := f.ctrl.Session().Flags[qid]; ok {
		t.Fatal("flag not cleared")
	}
}

func TestNavigation(t *testing.T) {
	f := newFixture(t, testBank())
	f.ctrl.Start(Criteria{Mode: ModeMock, AxisKey: bank.AxisAll, Count: 4})

	if err := f.ctrl.Previous(); err != nil {
		t.Fatalf("previous: %v", err)
	}
	if f.ctrl.Session().Current != 0 {
		t.Error("previous at index 0 must be a no-op")
	}

	if finished, _ := f.ctrl.Next(); finished {
		t.Fatal("next before last must not finish")
	}
	if f.ctrl.Session().Current != 1 {
		t.Errorf("index = %d, want 1", f.ctrl.Session().Current)
	}

	if err := f.ctrl.GoTo(3); err != nil {
		t.Fatalf("goto: %v", err)
	}
	if err := f.ctrl.GoTo(4); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("goto out of range: got %v", err)
	}
	if f.ctrl.Session().Current != 3 {
		t.Error("rejected goto must not mutate the index")
	}
	if err := f.ctrl.GoTo(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("goto negative: got %v", err)
	}
}

func TestNextOnLastFinishes(t *testing.T) {
	f := newFixture(t, testBank())
	f.ctrl.Start(Criteria{Mode: ModeMock, AxisKey: bank.AxisAll, Count: 4})
	f.ctrl.GoTo(3)

	finished, err := f.ctrl.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if !finished {
		t.Fatal("next on the last question is the submit action")
	}
	if f.ctrl.State() != StateFinished {
		t.Errorf("state = %s, want finished", f.ctrl.State())
	}
	if _, err := f.ctrl.Next(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("next after finish: got %v, want ErrNotRunning", err)
	}
}

func TestFinishRecordsAttempt(t *testing.T) {
	f := newFixture(t, testBank())
	f.ctrl.Start(Criteria{Mode: ModeMock, AxisKey: bank.AxisAll, Count: 4})
	sess := f.ctrl.Session()

	// One correct, one incorrect, two unanswered.
	correctQ := f.banks.Bank().Question(sess.Order[0])
	f.ctrl.Answer(correctQ.ID, correctQ.Answer.CorrectChoiceID)
	wrongQ := f.banks.Bank().Question(sess.Order[1])
	wrong := "A"
	if wrongQ.Answer.CorrectChoiceID == "A" {
		wrong = "B"
	}
	f.ctrl.Answer(wrongQ.ID, wrong)

	att, err := f.ctrl.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if att.Correct != 1 || att.Total != 4 {
		t.Errorf("attempt = %d/%d, want 1/4", att.Correct, att.Total)
	}
	if att.TimedOut {
		t.Error("manual finish must not be marked timed out")
	}

	p := f.prog.Current()
	if len(p.History) != 1 {
		t.Fatalf("history len = %d, want 1", len(p.History))
	}
	if p.Last != att {
		t.Error("last must be the finished attempt")
	}
	if f.progRepo.saves != 1 {
		t.Errorf("persisted %d times, want 1", f.progRepo.saves)
	}

	byAxisTotal := 0
	for _, a := range att.ByAxis {
		byAxisTotal += a.Total
	}
	if byAxisTotal != att.Total {
		t.Errorf("byAxis totals sum to %d, want %d", byAxisTotal, att.Total)
	}
}

func TestFinishIdempotent(t *testing.T) {
	f := newFixture(t, testBank())
	f.ctrl.Start(Criteria{Mode: ModeMock, AxisKey: bank.AxisAll, Count: 4})

	first, err := f.ctrl.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	second, err := f.ctrl.Finish()
	if err != nil {
		t.Fatalf("second finish: %v", err)
	}
	if first != second {
		t.Error("second finish must return the already-built attempt")
	}
	if len(f.prog.Current().History) != 1 {
		t.Fatalf("history len = %d, want exactly 1", len(f.prog.Current().History))
	}
	if f.progRepo.saves != 1 {
		t.Errorf("persisted %d times, want 1", f.progRepo.saves)
	}
}

func TestTimerAutoFinishes(t *testing.T) {
	f := newFixture(t, testBank())
	f.ctrl.Start(Criteria{
		Mode: ModeMock, AxisKey: bank.AxisAll, Count: 4,
		TimerEnabled: true, TimerMinutes: 1,
	})

	f.clock.advance(59 * time.Second)
	if f.ctrl.Tick(f.clock.now()) {
		t.Fatal("tick before the deadline must not finish")
	}
	left, ok := f.ctrl.Remaining(f.clock.now())
	if !ok || left != time.Second {
		t.Errorf("remaining = %v/%v, want 1s", left, ok)
	}

	f.clock.advance(1*time.Second + time.Millisecond)
	if !f.ctrl.Tick(f.clock.now()) {
		t.Fatal("tick past the deadline must finish")
	}
	att := f.ctrl.Result()
	if !att.TimedOut {
		t.Error("timer finish must set timedOut")
	}

	// A late tick after the finish is a no-op.
	f.clock.advance(time.Second)
	if f.ctrl.Tick(f.clock.now()) {
		t.Error("tick after finish must be a no-op")
	}
	if len(f.prog.Current().History) != 1 {
		t.Errorf("history len = %d, want 1", len(f.prog.Current().History))
	}
}

func TestManualFinishDisarmsTimer(t *testing.T) {
	f := newFixture(t, testBank())
	f.ctrl.Start(Criteria{
		Mode: ModeMock, AxisKey: bank.AxisAll, Count: 4,
		TimerEnabled: true, TimerMinutes: 1,
	})

	if _, err := f.ctrl.Finish(); err != nil {
		t.Fatalf("finish: %v", err)
	}
	f.clock.advance(2 * time.Minute)
	if f.ctrl.Tick(f.clock.now()) {
		t.Error("expired timer must not fire after a manual finish")
	}
	if len(f.prog.Current().History) != 1 {
		t.Errorf("history len = %d, want exactly 1", len(f.prog.Current().History))
	}
}

func TestStartSupersedesLiveSession(t *testing.T) {
	f := newFixture(t, testBank())
	f.ctrl.Start(Criteria{
		Mode: ModeMock, AxisKey: bank.AxisAll, Count: 4,
		TimerEnabled: true, TimerMinutes: 1,
	})
	firstID := f.ctrl.Session().ID

	f.ctrl.Start(Criteria{Mode: ModePractice, AxisKey: bank.AxisAll, Count: 2})
	if f.ctrl.Session().ID == firstID {
		t.Error("new start must create a fresh session")
	}

	// The superseded session's timer must not fire into the new one.
	f.clock.advance(2 * time.Minute)
	if f.ctrl.Tick(f.clock.now()) {
		t.Error("superseded timer must be deactivated")
	}
	if len(f.prog.Current().History) != 0 {
		t.Error("abandoned session must not be recorded")
	}
}

func TestReviewOnlyIncorrect(t *testing.T) {
	f := newFixture(t, testBank())

	// Prior attempt: q a1 wrong, q a2 right, b1/b2 untouched.
	f.prog.Current().Last = &progress.Attempt{
		Answers: map[string]progress.AnswerMark{
			"a1": {ChoiceID: "C"}, // correct is A
			"a2": {ChoiceID: "B"}, // correct is B
		},
	}

	order := f.ctrl.Start(Criteria{
		Mode: ModePractice, AxisKey: bank.AxisAll, Count: 10,
		ReviewOnlyIncorrect: true,
	})
	if len(order) != 1 || order[0] != "a1" {
		t.Fatalf("order = %v, want exactly [a1]", order)
	}
}

func TestReviewWithNoPriorAttempt(t *testing.T) {
	f := newFixture(t, testBank())
	order := f.ctrl.Start(Criteria{
		Mode: ModePractice, AxisKey: bank.AxisAll, Count: 10,
		ReviewOnlyIncorrect: true,
	})
	if len(order) != 0 {
		t.Fatalf("order = %v, want empty pool without a prior attempt", order)
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	f := newFixture(t, testBank())
	f.ctrl.Start(Criteria{Mode: ModePractice, AxisKey: bank.AxisAll, Count: 4, TimerEnabled: true, TimerMinutes: 5})

	f.ctrl.Reset()
	if f.ctrl.State() != StateIdle {
		t.Errorf("state = %s, want idle", f.ctrl.State())
	}
	if f.ctrl.Session() != nil {
		t.Error("reset must discard the session")
	}
	if err := f.ctrl.Answer("a1", "A"); !errors.Is(err, ErrNotRunning) {
		t.Errorf("answer after reset: got %v, want ErrNotRunning", err)
	}
}

func TestStorageFailureSurfacesButKeepsState(t *testing.T) {
	f := newFixture(t, testBank())
	f.progRepo.saveErr = errors.New("disk full")

	f.ctrl.Start(Criteria{Mode: ModeMock, AxisKey: bank.AxisAll, Count: 4})
	att, err := f.ctrl.Finish()
	if err == nil {
		t.Fatal("expected storage error to surface")
	}
	if att == nil {
		t.Fatal("attempt must still be produced")
	}
	if len(f.prog.Current().History) != 1 {
		t.Error("in-memory history must stay authoritative")
	}
	if f.ctrl.State() != StateFinished {
		t.Errorf("state = %s, want finished", f.ctrl.State())
	}
}

// Order size and membership across random seeds: len == min(count, pool),
// ids drawn from the pool without duplicates.
func TestOrderPermutationProperties(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		b := testBank()
		banks := bank.NewStore(&bankRepoFake{b: b})
		banks.Load(context.Background())
		prog := progress.NewStore(&progressRepoFake{})
		ctrl := NewController(banks, prog, WithRandom(rand.NewSource(seed)))

		order := ctrl.Start(Criteria{Mode: ModePractice, AxisKey: bank.AxisAll, Count: 3})
		if len(order) != 3 {
			t.Fatalf("seed %d: order len = %d, want 3", seed, len(order))
		}
		seen := make(map[string]bool)
		for _, qid := range order {
			if b.Question(qid) == nil {
				t.Errorf("seed %d: id %q not in bank", seed, qid)
			}
			if seen[qid] {
				t.Errorf("seed %d: duplicate id %q", seed, qid)
			}
			seen[qid] = true
		}
	}
}
