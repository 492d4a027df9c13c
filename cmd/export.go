package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rmarin/examdrill/internal/bank"
	"github.com/rmarin/examdrill/internal/progress"
	"github.com/rmarin/examdrill/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export attempt history to JSON",
	Long:  "Write the attempt history plus the active bank's metadata to a JSON file.",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		prog := progress.NewStore(st.ProgressRepo())
		warnLoad(cmd.ErrOrStderr(), "progress", prog.Load(cmd.Context()))

		doc := progress.BuildExport(time.Now(), banks.Bank().Meta, *prog.Current())
		raw, err := doc.MarshalIndent()
		if err != nil {
			return fmt.Errorf("encode export: %w", err)
		}

		out, _ := cmd.Flags().GetString("output")
		if err := os.WriteFile(out, raw, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}

		fmt.Printf("Exported %d attempts to %s\n", len(prog.Current().History), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", progress.DefaultExportFilename, "Output file path")
}
