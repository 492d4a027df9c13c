package history

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rmarin/examdrill/internal/bank"
	"github.com/rmarin/examdrill/internal/progress"
	"github.com/rmarin/examdrill/internal/router"
	"github.com/rmarin/examdrill/internal/screen"
	"github.com/rmarin/examdrill/internal/ui/layout"
	"github.com/rmarin/examdrill/internal/ui/theme"
)

// HistoryScreen lists past attempts, newest first.
type HistoryScreen struct {
	banks    *bank.Store
	prog     *progress.Store
	selected int
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(banks *bank.Store, prog *progress.Store) *HistoryScreen {
	return &HistoryScreen{banks: banks, prog: prog}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	count := len(s.prog.Current().History)
	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < count-1 {
			s.selected++
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	p := s.prog.Current()
	if len(p.History) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	// KPI line on top.
	best := 0
	for _, h := range p.History {
		if pct := percent(h.Correct, h.Total); pct > best {
			best = pct
		}
	}
	kpis := fmt.Sprintf("%d attempts   ·   streak %d   ·   best %d%%",
		len(p.History), p.Streak(), best)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(kpis)))
	b.WriteString("\n\n")

	// Newest first; the cursor indexes this reversed view.
	for i := 0; i < len(p.History); i++ {
		h := p.History[len(p.History)-1-i]

		dateStr := time.UnixMilli(h.FinishedAt).Format("Jan 02, 2006 15:04")
		axisLabel := h.AxisKey
		if axisLabel == bank.AxisAll {
			axisLabel = "All topics"
		}
		pct := percent(h.Correct, h.Total)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-8s  %-24s  %d/%d",
			prefix, dateStr, h.Mode, axisLabel, h.Correct, h.Total)

		scoreStyle := lipgloss.NewStyle().Foreground(theme.Error)
		if pct >= 70 {
			scoreStyle = lipgloss.NewStyle().Foreground(theme.Success)
		}
		rendered := line + "  " + scoreStyle.Render(fmt.Sprintf("%3d%%", pct))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(rendered)))
		b.WriteString("\n")
	}

	return b.String()
}

func percent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(correct)/float64(total)*100 + 0.5)
}
