package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/rmarin/examdrill/internal/bank"
	"github.com/rmarin/examdrill/internal/progress"
	"github.com/rmarin/examdrill/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show attempt statistics",
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

		b := banks.Bank()
		p := prog.Current()

		fmt.Printf("Bank:     %s (%d questions, %d topics)\n",
			b.MetaString("source", "unknown"), len(b.Questions), len(b.AxisKeys()))
		fmt.Printf("Attempts: %d\n", len(p.History))
		fmt.Printf("Streak:   %d\n", p.Streak())

		if p.Last == nil {
			return nil
		}

		last := p.Last
		fmt.Printf("Last:     %d%% (%d/%d) · %s · %s\n",
			last.Percent(), last.Correct, last.Total, last.Mode,
			time.UnixMilli(last.FinishedAt).Format("Jan 02, 2006 15:04"))

		if len(last.ByAxis) == 0 {
			return nil
		}
		fmt.Println("\nLast attempt by topic:")
		keys := make([]string, 0, len(last.ByAxis))
		for k := range last.ByAxis {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			a := last.ByAxis[k]
			fmt.Printf("  %-40s %d/%d\n", a.Module+" / "+a.Axis, a.Correct, a.Total)
		}
		return nil
	},
}
