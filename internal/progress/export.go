package progress

import (
	"encoding/json"
	"fmt"
	"time"
)

// ExportDocument is the downloadable progress artifact. It is a plain
// serialization of current state, no transformation.
type ExportDocument struct {
	ExportedAt string         `json:"exportedAt"`
	BankMeta   map[string]any `json:"bankMeta"`
	Progress   Progress       `json:"progress"`
}

// DefaultExportFilename is used when the caller does not name a target.
const DefaultExportFilename = "examdrill_progress.json"

// BuildExport assembles the export document for the given moment.
func BuildExport(now time.Time, bankMeta map[string]any, p Progress) ExportDocument {
	if bankMeta == nil {
		bankMeta = map[string]any{}
	}
	return ExportDocument{
		ExportedAt: now.UTC().Format(time.RFC3339),
		BankMeta:   bankMeta,
		Progress:   p,
	}
}

// MarshalIndent renders the export document for writing to a file.
func (d ExportDocument) MarshalIndent() ([]byte, error) {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return raw, nil
}

// ParseExport reads an export document back. Reimporting what Export wrote
// yields a Progress equal to the one exported.
func ParseExport(raw []byte) (ExportDocument, error) {
	var d ExportDocument
	if err := json.Unmarshal(raw, &d); err != nil {
		return ExportDocument{}, fmt.Errorf("parse export: %w", err)
	}
	return d, nil
}
