package progress

import (
	"context"
	"fmt"
)

// Repo persists the progress document. Implemented by internal/store.
type Repo interface {
	Save(ctx context.Context, p *Progress) error
	// Load returns the persisted progress, or nil when none has been saved.
	Load(ctx context.Context) (*Progress, error)
	Delete(ctx context.Context) error
}

// Store owns the attempt history for the running process. Only the session
// controller appends to it, once per finished session.
type Store struct {
	repo Repo
	cur  Progress
}

func NewStore(repo Repo) *Store {
	return &Store{repo: repo}
}

// Load replaces in-memory progress with the persisted document. A missing
// or unreadable record yields empty progress, mirroring first run.
func (s *Store) Load(ctx context.Context) error {
	p, err := s.repo.Load(ctx)
	if err != nil || p == nil {
		s.cur = Progress{}
		return err
	}
	s.cur = *p
	return nil
}

// Current returns the live progress document.
func (s *Store) Current() *Progress {
	return &s.cur
}

// RecordAttempt appends the attempt and persists the updated document. The
// in-memory append holds even when persistence fails; the error is returned
// so the UI can warn that state may not survive a restart.
func (s *Store) RecordAttempt(ctx context.Context, a *Attempt) error {
	s.cur.Record(a)
	if err := s.repo.Save(ctx, &s.cur); err != nil {
		return fmt.Errorf("persist progress: %w", err)
	}
	return nil
}

// Reset clears history and the last attempt, in memory and on disk.
func (s *Store) Reset(ctx context.Context) error {
	s.cur = Progress{}
	if err := s.repo.Delete(ctx); err != nil {
		return fmt.Errorf("clear persisted progress: %w", err)
	}
	return nil
}
