package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rmarin/examdrill/internal/bank"
	"github.com/rmarin/examdrill/internal/progress"
	"github.com/rmarin/examdrill/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a question bank",
	Long:  "Validate a question bank JSON file and make it the active bank. The previous bank is replaced wholesale; attempt history is kept.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read bank file: %w", err)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		banks := bank.NewStore(st.BankRepo())
		warnLoad(cmd.ErrOrStderr(), "bank", banks.Load(cmd.Context()))

		b, err := banks.ImportJSON(cmd.Context(), raw)
		if err != nil {
			return describeBankError(err)
		}

		fmt.Printf("Imported %q: %d questions, %d topics.\n",
			b.MetaString("source", args[0]), len(b.Questions), len(b.AxisKeys()))

		// The prior attempt history may reference question ids that no
		// longer exist; that is fine, scoring tolerates it.
		prog := progress.NewStore(st.ProgressRepo())
		warnLoad(cmd.ErrOrStderr(), "progress", prog.Load(cmd.Context()))
		if n := len(prog.Current().History); n > 0 {
			fmt.Printf("Kept %d past attempts.\n", n)
		}
		return nil
	},
}

// describeBankError rewraps parse and validation errors with user-facing
// context before cobra prints them.
func describeBankError(err error) error {
	var perr *bank.ParseError
	if errors.As(err, &perr) {
		return fmt.Errorf("bank is not valid JSON: %w", perr)
	}
	var verr *bank.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("bank rejected: %w", verr)
	}
	return err
}
