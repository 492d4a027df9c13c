package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rmarin/examdrill/internal/bank"
	"github.com/rmarin/examdrill/internal/progress"
)

// openTestStore opens an isolated in-memory database per test. The record
// table is keyed, so tests must not share a database.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='records'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "records" {
		t.Errorf("table name = %q, want 'records'", name)
	}
}

func TestBankRecordRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.BankRepo()
	ctx := context.Background()

	// No bank persisted yet.
	b, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if b != nil {
		t.Fatal("expected nil bank when none persisted")
	}

	if err := repo.Save(ctx, bank.Sample()); err != nil {
		t.Fatalf("save: %v", err)
	}

	b, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b == nil {
		t.Fatal("expected non-nil bank")
	}
	want := bank.Sample()
	if len(b.Questions) != len(want.Questions) {
		t.Fatalf("questions = %d, want %d", len(b.Questions), len(want.Questions))
	}
	if b.Questions[0].ID != want.Questions[0].ID {
		t.Errorf("first question id = %q, want %q", b.Questions[0].ID, want.Questions[0].ID)
	}
	if got := b.MetaString("source", ""); got != want.MetaString("source", "") {
		t.Errorf("meta source = %q, want %q", got, want.MetaString("source", ""))
	}
}

func TestBankSaveUpserts(t *testing.T) {
	s := openTestStore(t)
	repo := s.BankRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, bank.Sample()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := repo.Save(ctx, bank.Sample()); err != nil {
		t.Fatalf("second save: %v", err)
	}

	count, err := s.Client().Record.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("record rows = %d, want 1 (save must upsert)", count)
	}
}

func TestProgressRecordRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	p, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if p != nil {
		t.Fatal("expected nil progress when none persisted")
	}

	in := &progress.Progress{
		History: []progress.Summary{
			{FinishedAt: 1700000000000, Mode: "mock", AxisKey: "ALL", Correct: 8, Total: 10},
			{FinishedAt: 1700000100000, Mode: "practice", AxisKey: "M::A", Correct: 1, Total: 2},
		},
		Last: &progress.Attempt{
			ID:         "att-1",
			StartedAt:  1700000050000,
			FinishedAt: 1700000100000,
			Mode:       "practice",
			AxisKey:    "M::A",
			Order:      []string{"q1", "q2"},
			Answers: map[string]progress.AnswerMark{
				"q1": {ChoiceID: "A", At: 1700000060000},
			},
			Flags:   map[string]progress.FlagMark{"q2": {At: 1700000070000}},
			Correct: 1,
			Total:   2,
			ByAxis: map[string]progress.AxisScore{
				"M::A": {Module: "M", Axis: "A", Total: 2, Correct: 1},
			},
		},
	}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	p, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p == nil {
		t.Fatal("expected non-nil progress")
	}
	if len(p.History) != 2 {
		t.Fatalf("history = %d, want 2", len(p.History))
	}
	if p.History[1] != in.History[1] {
		t.Errorf("history[1] = %+v, want %+v", p.History[1], in.History[1])
	}
	if p.Last == nil {
		t.Fatal("expected last attempt to survive the round trip")
	}
	if p.Last.ID != "att-1" || p.Last.Correct != 1 || p.Last.Total != 2 {
		t.Errorf("last = %+v", p.Last)
	}
	if p.Last.Answers["q1"].ChoiceID != "A" {
		t.Errorf("last answer = %+v", p.Last.Answers["q1"])
	}
	if p.Streak() != 1 {
		t.Errorf("streak = %d, want 1", p.Streak())
	}
}

func TestLoadRejectsVersionMismatch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Client().Record.Create().
		SetKey(keyBank).
		SetVersion(recordVersion + 1).
		SetData(map[string]any{"meta": map[string]any{}, "questions": []any{}}).
		Save(ctx)
	if err != nil {
		t.Fatalf("seed record: %v", err)
	}

	_, err = s.BankRepo().Load(ctx)
	if err == nil {
		t.Fatal("expected version mismatch to be rejected")
	}
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("error type = %T, want *StorageError", err)
	}
}

func TestLoadRejectsInvalidPayload(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Well-versed record whose payload lacks the questions array.
	_, err := s.Client().Record.Create().
		SetKey(keyBank).
		SetVersion(recordVersion).
		SetData(map[string]any{"meta": map[string]any{}}).
		Save(ctx)
	if err != nil {
		t.Fatalf("seed record: %v", err)
	}

	_, err = s.BankRepo().Load(ctx)
	if err == nil {
		t.Fatal("expected schema validation to reject the payload")
	}
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("error type = %T, want *StorageError", err)
	}
}

func TestWipe(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.BankRepo().Save(ctx, bank.Sample()); err != nil {
		t.Fatalf("save bank: %v", err)
	}
	in := &progress.Progress{History: []progress.Summary{{Mode: "mock", AxisKey: "ALL", Correct: 1, Total: 1}}}
	if err := s.ProgressRepo().Save(ctx, in); err != nil {
		t.Fatalf("save progress: %v", err)
	}

	if err := s.Wipe(ctx); err != nil {
		t.Fatalf("wipe: %v", err)
	}

	b, err := s.BankRepo().Load(ctx)
	if err != nil || b != nil {
		t.Errorf("bank after wipe = %v, %v; want nil, nil", b, err)
	}
	p, err := s.ProgressRepo().Load(ctx)
	if err != nil || p != nil {
		t.Errorf("progress after wipe = %v, %v; want nil, nil", p, err)
	}
}
