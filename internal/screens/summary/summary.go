package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rmarin/examdrill/internal/bank"
	"github.com/rmarin/examdrill/internal/progress"
	"github.com/rmarin/examdrill/internal/router"
	"github.com/rmarin/examdrill/internal/screen"
	"github.com/rmarin/examdrill/internal/ui/components"
	"github.com/rmarin/examdrill/internal/ui/layout"
	"github.com/rmarin/examdrill/internal/ui/theme"
)

// passPercent is the threshold for the green/red score coloring, matching
// the streak rule.
const passPercent = 70

// SummaryScreen displays a finished attempt.
type SummaryScreen struct {
	attempt *progress.Attempt
	prog    *progress.Store
	warn    error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen. warn carries a non-fatal storage failure
// from submitting, shown so the user knows the attempt may not persist.
func New(attempt *progress.Attempt, prog *progress.Store, warn error) *SummaryScreen {
	return &SummaryScreen{attempt: attempt, prog: prog, warn: warn}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	att := s.attempt
	if att == nil {
		return ""
	}

	var b strings.Builder

	headline := "Session complete!"
	if att.TimedOut {
		headline = "Time's up!"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(headline))
	b.WriteString("\n\n")

	// Score line.
	pct := att.Percent()
	scoreStyle := theme.Incorrect
	if pct >= passPercent {
		scoreStyle = theme.Correct
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		scoreStyle.Render(fmt.Sprintf("%d%%", pct))+
			lipgloss.NewStyle().Foreground(theme.Text).
				Render(fmt.Sprintf("   %d of %d correct", att.Correct, att.Total))))
	b.WriteString("\n")
	bar := components.NewProgressBar("", float64(pct)/100, false, min(width-8, 48))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	// Mode, topic, duration.
	axisLabel := att.AxisKey
	if axisLabel == bank.AxisAll {
		axisLabel = "All topics"
	}
	duration := time.Duration(att.FinishedAt-att.StartedAt) * time.Millisecond
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · %s · %s",
			att.Mode, axisLabel, layout.FormatClock(int(duration.Seconds())))))
	b.WriteString("\n\n")

	// Per-topic breakdown.
	if len(att.ByAxis) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Topics")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		keys := make([]string, 0, len(att.ByAxis))
		for k := range att.ByAxis {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			a := att.ByAxis[k]
			axisPct := 0
			if a.Total > 0 {
				axisPct = int(float64(a.Correct)/float64(a.Total)*100 + 0.5)
			}
			style := lipgloss.NewStyle().Foreground(theme.Error)
			if axisPct >= passPercent {
				style = lipgloss.NewStyle().Foreground(theme.Success)
			}
			line := fmt.Sprintf("  %s / %s    %d/%d    %d%%",
				a.Module, a.Axis, a.Correct, a.Total, axisPct)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				style.Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Streak after this attempt.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(fmt.Sprintf("★ streak: %d", s.prog.Current().Streak())))

	if s.warn != nil {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Warning: attempt could not be saved to disk."))
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
