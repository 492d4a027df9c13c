package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rmarin/examdrill/internal/bank"
	"github.com/rmarin/examdrill/internal/progress"
	"github.com/rmarin/examdrill/internal/quiz"
	"github.com/rmarin/examdrill/internal/router"
	"github.com/rmarin/examdrill/internal/screen"
	"github.com/rmarin/examdrill/internal/screens/history"
	"github.com/rmarin/examdrill/internal/screens/setup"
	"github.com/rmarin/examdrill/internal/ui/components"
	"github.com/rmarin/examdrill/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	ctrl  *quiz.Controller
	banks *bank.Store
	prog  *progress.Store
	menu  components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(ctrl *quiz.Controller, banks *bank.Store, prog *progress.Store) *HomeScreen {
	h := &HomeScreen{ctrl: ctrl, banks: banks, prog: prog}

	items := []components.MenuItem{
		{Label: "PRACTICE SESSION", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(ctrl, banks, prog, quiz.ModePractice, false)}
			}
		}},
		{Label: "MOCK EXAM", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(ctrl, banks, prog, quiz.ModeMock, false)}
			}
		}},
		{Label: "REVIEW INCORRECT", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(ctrl, banks, prog, quiz.ModePractice, true)}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(banks, prog)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	b := h.banks.Bank()
	p := h.prog.Current()

	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("EXAMDRILL"))
	sections = append(sections, theme.Subtitle.Width(width).Render(
		b.MetaString("source", "Question bank")))

	sections = append(sections, renderStatsBar(b, p, width))
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// renderStatsBar shows the bank size and attempt history at a glance.
func renderStatsBar(b *bank.Bank, p *progress.Progress, width int) string {
	lastPct := 0
	if p.Last != nil {
		lastPct = p.Last.Percent()
	}

	stats := []string{
		fmt.Sprintf("%d questions", len(b.Questions)),
		fmt.Sprintf("%d topics", len(b.AxisKeys())),
		fmt.Sprintf("%d attempts", len(p.History)),
		fmt.Sprintf("streak %d", p.Streak()),
	}
	if len(p.History) > 0 {
		stats = append(stats, fmt.Sprintf("last %d%%", lastPct))
	}

	line := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(strings.Join(stats, "   ·   "))

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Render(line)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}
