package cmd

import (
	"fmt"
	"io"

	"github.com/rmarin/examdrill/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "examdrill",
	Short: "Terminal practice-exam trainer",
	Long:  "Examdrill — terminal trainer for certification-style multiple-choice exams: timed mock runs, per-topic scoring, and attempt history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EXAMDRILL_DB env var)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then EXAMDRILL_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// warnLoad reports a non-fatal storage load failure on stderr. The
// in-memory fallback (sample bank, empty history) stays authoritative, so
// the command keeps going.
func warnLoad(w io.Writer, what string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "warning: stored %s could not be loaded: %v\n", what, err)
}
