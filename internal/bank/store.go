package bank

import (
	"context"
	"fmt"
)

// Repo persists the active bank document. Implemented by internal/store.
type Repo interface {
	// Save replaces the persisted bank wholesale.
	Save(ctx context.Context, b *Bank) error
	// Load returns the persisted bank, or nil when none has been saved.
	Load(ctx context.Context) (*Bank, error)
	// Delete removes the persisted bank.
	Delete(ctx context.Context) error
}

// Store owns the active validated bank for the running process. Mutation is
// always a whole swap; a failed import or load never disturbs the bank that
// is already active.
type Store struct {
	repo Repo
	cur  *Bank
}

// NewStore creates a Store with the embedded sample bank active. Call Load
// to pick up a previously imported bank.
func NewStore(repo Repo) *Store {
	return &Store{repo: repo, cur: Sample()}
}

// Load replaces the active bank with the persisted one. When nothing usable
// is persisted (no record, incompatible version, failed re-validation) the
// sample bank stays active; that is the first-run path, not an error.
func (s *Store) Load(ctx context.Context) error {
	b, err := s.repo.Load(ctx)
	if err != nil || b == nil {
		s.cur = Sample()
		return err
	}
	s.cur = b
	return nil
}

// Bank returns the active bank.
func (s *Store) Bank() *Bank {
	return s.cur
}

// Replace swaps in an already validated bank and persists it. The swap wins
// even when persistence fails: in-memory state stays authoritative and the
// storage error is returned for the caller to surface.
func (s *Store) Replace(ctx context.Context, b *Bank) error {
	s.cur = b
	if err := s.repo.Save(ctx, b); err != nil {
		return fmt.Errorf("persist bank: %w", err)
	}
	return nil
}

// ImportJSON runs the full import boundary: parse, validate, swap, persist.
// On any parse or validation failure the previous bank remains active.
func (s *Store) ImportJSON(ctx context.Context, raw []byte) (*Bank, error) {
	doc, err := ParseJSON(raw)
	if err != nil {
		return nil, err
	}
	b, err := Validate(doc)
	if err != nil {
		return nil, err
	}
	if err := s.Replace(ctx, b); err != nil {
		return b, err
	}
	return b, nil
}

// Reset restores the sample bank and removes the persisted record.
func (s *Store) Reset(ctx context.Context) error {
	s.cur = Sample()
	if err := s.repo.Delete(ctx); err != nil {
		return fmt.Errorf("clear persisted bank: %w", err)
	}
	return nil
}
