package cmd

import (
	"fmt"
	"os"

	"github.com/rmarin/examdrill/internal/bank"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.json>",
	Short: "Validate a question bank without importing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read bank file: %w", err)
		}

		doc, err := bank.ParseJSON(raw)
		if err != nil {
			return describeBankError(err)
		}
		b, err := bank.Validate(doc)
		if err != nil {
			return describeBankError(err)
		}

		fmt.Printf("OK: %d questions, %d topics", len(b.Questions), len(b.AxisKeys()))
		if b.Scenario != nil {
			fmt.Print(", scenario present")
		}
		fmt.Println(".")
		return nil
	},
}
