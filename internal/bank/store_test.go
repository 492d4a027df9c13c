package bank

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

// memRepo is an in-memory bank.Repo.
type memRepo struct {
	saved   *Bank
	loadErr error
	saveErr error
}

func (m *memRepo) Save(_ context.Context, b *Bank) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = b
	return nil
}

func (m *memRepo) Load(_ context.Context) (*Bank, error) {
	return m.saved, m.loadErr
}

func (m *memRepo) Delete(_ context.Context) error {
	m.saved = nil
	return nil
}

func TestStoreStartsWithSample(t *testing.T) {
	s := NewStore(&memRepo{})
	if got := len(s.Bank().Questions); got == 0 {
		t.Fatal("expected sample bank questions")
	}
}

func TestStoreLoadFallsBackToSample(t *testing.T) {
	repo := &memRepo{loadErr: errors.New("record version 0, want 1")}
	s := NewStore(repo)
	if err := s.Load(context.Background()); err == nil {
		t.Fatal("expected load error to surface")
	}
	if len(s.Bank().Questions) == 0 {
		t.Fatal("sample bank should stay active after a failed load")
	}
}

func TestImportJSONSwapsAndPersists(t *testing.T) {
	repo := &memRepo{}
	s := NewStore(repo)

	raw, _ := json.Marshal(validDoc())
	b, err := s.ImportJSON(context.Background(), raw)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if s.Bank() != b {
		t.Error("imported bank not active")
	}
	if repo.saved != b {
		t.Error("imported bank not persisted")
	}
}

func TestImportJSONKeepsPreviousBankOnFailure(t *testing.T) {
	s := NewStore(&memRepo{})
	before := s.Bank()

	if _, err := s.ImportJSON(context.Background(), []byte("{broken")); err == nil {
		t.Fatal("expected parse error")
	} else {
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("expected *ParseError, got %v", err)
		}
	}

	doc := validDoc()
	delete(question(doc, 0), "axis")
	raw, _ := json.Marshal(doc)
	if _, err := s.ImportJSON(context.Background(), raw); err == nil {
		t.Fatal("expected validation error")
	}

	if s.Bank() != before {
		t.Error("previous bank must remain active after failed import")
	}
}

// Persistence failure is non-fatal: the swap wins in memory.
func TestReplaceSurvivesStorageFailure(t *testing.T) {
	repo := &memRepo{saveErr: errors.New("disk full")}
	s := NewStore(repo)

	raw, _ := json.Marshal(validDoc())
	b, err := s.ImportJSON(context.Background(), raw)
	if err == nil {
		t.Fatal("expected storage error to surface")
	}
	if b == nil || s.Bank() != b {
		t.Error("in-memory bank must stay authoritative despite persistence failure")
	}
}

func TestResetRestoresSample(t *testing.T) {
	repo := &memRepo{}
	s := NewStore(repo)
	raw, _ := json.Marshal(validDoc())
	if _, err := s.ImportJSON(context.Background(), raw); err != nil {
		t.Fatalf("import: %v", err)
	}

	if err := s.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if repo.saved != nil {
		t.Error("persisted bank should be deleted on reset")
	}
	if s.Bank().MetaString("source", "") != "Built-in sample bank" {
		t.Error("sample bank should be active after reset")
	}
}

func TestAxisKeys(t *testing.T) {
	b := mustValidate(t, validDoc())
	keys := b.AxisKeys()
	want := []string{"::A2", "M1::A1"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}
