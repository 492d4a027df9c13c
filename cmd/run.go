package cmd

import (
	"fmt"

	"github.com/rmarin/examdrill/internal/app"
	"github.com/rmarin/examdrill/internal/bank"
	"github.com/rmarin/examdrill/internal/progress"
	"github.com/rmarin/examdrill/internal/quiz"
	"github.com/rmarin/examdrill/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// A broken persisted record falls back to the sample bank or empty
	// history; warn instead of blocking launch.
	banks := bank.NewStore(st.BankRepo())
	warnLoad(cmd.ErrOrStderr(), "bank", banks.Load(ctx))

	prog := progress.NewStore(st.ProgressRepo())
	warnLoad(cmd.ErrOrStderr(), "progress", prog.Load(ctx))

	return app.Run(app.Options{
		Banks:      banks,
		Progress:   prog,
		Controller: quiz.NewController(banks, prog),
	})
}
