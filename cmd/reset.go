package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rmarin/examdrill/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete attempt history and restore the sample bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmReset(cmd.InOrStdin(), cmd.OutOrStdout()) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
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

		if err := st.Wipe(cmd.Context()); err != nil {
			return fmt.Errorf("wipe store: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Reset complete: history cleared, sample bank restored.")
		return nil
	},
}

// confirmReset prompts before a destructive wipe. Anything but an explicit
// yes, including EOF on a non-interactive stdin, aborts.
func confirmReset(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "This deletes all attempt history and restores the sample bank. Continue? [y/N] ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
