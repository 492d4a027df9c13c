package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rmarin/examdrill/ent"
	"github.com/rmarin/examdrill/ent/record"
	"github.com/rmarin/examdrill/internal/bank"
	"github.com/rmarin/examdrill/internal/progress"
)

// Record keys. Each document lives in its own row so the bank and progress
// have independent lifecycles.
const (
	keyBank     = "bank"
	keyProgress = "progress"
)

// recordVersion is the payload schema version. Loads reject any other
// version instead of silently reinterpreting old data.
const recordVersion = 1

// StorageError marks a persistence failure. The engine treats these as
// non-fatal: in-memory state stays authoritative for the process lifetime.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// bankRepo implements bank.Repo over the keyed record table.
type bankRepo struct {
	client *ent.Client
}

func (r *bankRepo) Save(ctx context.Context, b *bank.Bank) error {
	data, err := toMap(b)
	if err != nil {
		return &StorageError{Op: "marshal bank", Err: err}
	}
	return saveRecord(ctx, r.client, keyBank, data)
}

func (r *bankRepo) Load(ctx context.Context) (*bank.Bank, error) {
	data, err := loadRecord(ctx, r.client, keyBank)
	if err != nil || data == nil {
		return nil, err
	}
	if err := validatePayload("bank-record", bankRecordSchema, data); err != nil {
		return nil, &StorageError{Op: "validate bank record", Err: err}
	}
	var b bank.Bank
	if err := fromMap(data, &b); err != nil {
		return nil, &StorageError{Op: "unmarshal bank", Err: err}
	}
	return &b, nil
}

func (r *bankRepo) Delete(ctx context.Context) error {
	return deleteRecord(ctx, r.client, keyBank)
}

// progressRepo implements progress.Repo over the keyed record table.
type progressRepo struct {
	client *ent.Client
}

func (r *progressRepo) Save(ctx context.Context, p *progress.Progress) error {
	data, err := toMap(p)
	if err != nil {
		return &StorageError{Op: "marshal progress", Err: err}
	}
	return saveRecord(ctx, r.client, keyProgress, data)
}

func (r *progressRepo) Load(ctx context.Context) (*progress.Progress, error) {
	data, err := loadRecord(ctx, r.client, keyProgress)
	if err != nil || data == nil {
		return nil, err
	}
	if err := validatePayload("progress-record", progressRecordSchema, data); err != nil {
		return nil, &StorageError{Op: "validate progress record", Err: err}
	}
	var p progress.Progress
	if err := fromMap(data, &p); err != nil {
		return nil, &StorageError{Op: "unmarshal progress", Err: err}
	}
	return &p, nil
}

func (r *progressRepo) Delete(ctx context.Context) error {
	return deleteRecord(ctx, r.client, keyProgress)
}

// saveRecord upserts the document under key at the current version.
func saveRecord(ctx context.Context, client *ent.Client, key string, data map[string]any) error {
	n, err := client.Record.Update().
		Where(record.Key(key)).
		SetVersion(recordVersion).
		SetData(data).
		Save(ctx)
	if err != nil {
		return &StorageError{Op: "update " + key, Err: err}
	}
	if n > 0 {
		return nil
	}
	_, err = client.Record.Create().
		SetKey(key).
		SetVersion(recordVersion).
		SetData(data).
		Save(ctx)
	if err != nil {
		return &StorageError{Op: "create " + key, Err: err}
	}
	return nil
}

// loadRecord returns the document under key, or nil when absent. A record
// with an unknown version is reported instead of being decoded.
func loadRecord(ctx context.Context, client *ent.Client, key string) (map[string]any, error) {
	rec, err := client.Record.Query().
		Where(record.Key(key)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, &StorageError{Op: "query " + key, Err: err}
	}
	if rec.Version != recordVersion {
		return nil, &StorageError{
			Op:  "load " + key,
			Err: fmt.Errorf("record version %d, want %d", rec.Version, recordVersion),
		}
	}
	return rec.Data, nil
}

func deleteRecord(ctx context.Context, client *ent.Client, key string) error {
	_, err := client.Record.Delete().
		Where(record.Key(key)).
		Exec(ctx)
	if err != nil {
		return &StorageError{Op: "delete " + key, Err: err}
	}
	return nil
}

// toMap converts a document struct to the map form ent stores as JSON.
func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// fromMap converts a stored map back into the typed document.
func fromMap(m map[string]any, out any) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
