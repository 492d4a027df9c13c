package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rmarin/examdrill/internal/store"
)

func TestWarnLoadSilentOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	warnLoad(&buf, "bank", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestWarnLoadReportsStorageError(t *testing.T) {
	var buf bytes.Buffer
	err := &store.StorageError{Op: "load bank record", Err: errors.New("unsupported version 2")}
	warnLoad(&buf, "bank", err)

	out := buf.String()
	if !strings.HasPrefix(out, "warning: stored bank could not be loaded") {
		t.Fatalf("unexpected warning prefix: %q", out)
	}
	if !strings.Contains(out, "unsupported version 2") {
		t.Fatalf("warning does not name the cause: %q", out)
	}
}

func TestConfirmReset(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"lower y", "y\n", true},
		{"upper yes", "YES\n", true},
		{"yes without newline", "yes", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"eof", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got := confirmReset(strings.NewReader(tc.input), &out)
			if got != tc.want {
				t.Fatalf("confirmReset(%q) = %v, want %v", tc.input, got, tc.want)
			}
			if !strings.Contains(out.String(), "Continue? [y/N]") {
				t.Fatalf("prompt not written: %q", out.String())
			}
		})
	}
}
