package setup

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
	"github.com/rmarin/examdrill/internal/screens/session"
	"github.com/rmarin/examdrill/internal/ui/components"
	"github.com/rmarin/examdrill/internal/ui/layout"
	"github.com/rmarin/examdrill/internal/ui/theme"
)

type field int

const (
	fieldAxis field = iota
	fieldCount
	fieldTimer
	fieldMinutes
	fieldReview
	fieldStart
)

const (
	defaultCount   = 10
	defaultMinutes = 20
)

// SetupScreen collects the session criteria before a run starts.
type SetupScreen struct {
	ctrl  *quiz.Controller
	banks *bank.Store
	prog  *progress.Store
	mode  quiz.Mode

	axes    []string // bank.AxisAll first, then the bank's axis keys
	axisIdx int
	count   components.TextInput
	timer   bool
	minutes components.TextInput
	review  bool
	focus   field
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a setup screen for the given mode. With review set the form
// starts preconfigured to replay the last attempt's incorrect answers.
func New(ctrl *quiz.Controller, banks *bank.Store, prog *progress.Store, mode quiz.Mode, review bool) *SetupScreen {
	axes := append([]string{bank.AxisAll}, banks.Bank().AxisKeys()...)

	count := components.NewTextInput(fmt.Sprintf("%d", defaultCount), true, 4)
	count.SetValue(fmt.Sprintf("%d", defaultCount))
	minutes := components.NewTextInput(fmt.Sprintf("%d", defaultMinutes), true, 3)
	minutes.SetValue(fmt.Sprintf("%d", defaultMinutes))

	return &SetupScreen{
		ctrl:    ctrl,
		banks:   banks,
		prog:    prog,
		mode:    mode,
		axes:    axes,
		count:   count,
		timer:   mode == quiz.ModeMock,
		minutes: minutes,
		review:  review,
		focus:   fieldStart,
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	if s.mode == quiz.ModeMock {
		return "Mock exam setup"
	}
	return "Practice setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "shift+tab":
		if s.focus > fieldAxis {
			s.focus--
			if s.focus == fieldMinutes && !s.timer {
				s.focus--
			}
		}
		return s, nil
	case "down", "tab":
		if s.focus < fieldStart {
			s.focus++
			if s.focus == fieldMinutes && !s.timer {
				s.focus++
			}
		}
		return s, nil
	case "left", "h":
		s.cycle(-1)
		return s, nil
	case "right", "l":
		s.cycle(1)
		return s, nil
	case "enter":
		if s.focus == fieldStart {
			return s, s.start()
		}
		s.focus = fieldStart
		return s, nil
	}

	// Digits go to the focused numeric field.
	var cmd tea.Cmd
	switch s.focus {
	case fieldCount:
		s.count, cmd = s.count.Update(msg)
	case fieldMinutes:
		s.minutes, cmd = s.minutes.Update(msg)
	}
	return s, cmd
}

// cycle adjusts the focused field left or right.
func (s *SetupScreen) cycle(dir int) {
	switch s.focus {
	case fieldAxis:
		s.axisIdx = (s.axisIdx + dir + len(s.axes)) % len(s.axes)
	case fieldTimer:
		s.timer = !s.timer
	case fieldReview:
		s.review = !s.review
	}
}

// start begins the session and hands the screen over to it.
func (s *SetupScreen) start() tea.Cmd {
	count := defaultCount
	if n, err := s.count.NumericValue(); err == nil {
		count = n
	}
	minutes := defaultMinutes
	if n, err := s.minutes.NumericValue(); err == nil {
		minutes = n
	}

	s.ctrl.Start(quiz.Criteria{
		Mode:                s.mode,
		AxisKey:             s.axes[s.axisIdx],
		Count:               count,
		TimerEnabled:        s.timer,
		TimerMinutes:        minutes,
		ReviewOnlyIncorrect: s.review,
	})

	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: session.New(s.ctrl, s.prog)}
	}
}

func (s *SetupScreen) View(width, height int) string {
	label := func(f field, text string) string {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "   "
		if f == s.focus {
			style = theme.Selected
			prefix = " ▸ "
		}
		return style.Render(prefix + text)
	}

	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}

	axisLabel := "All topics"
	if s.axes[s.axisIdx] != bank.AxisAll {
		axisLabel = s.axes[s.axisIdx]
	}

	rows := []string{
		label(fieldAxis, fmt.Sprintf("Topic        ◂ %s ▸", axisLabel)),
		label(fieldCount, fmt.Sprintf("Questions    %s", s.count.Value())),
		label(fieldTimer, fmt.Sprintf("Timer        %s", onOff(s.timer))),
	}
	if s.timer {
		rows = append(rows, label(fieldMinutes, fmt.Sprintf("Minutes      %s", s.minutes.Value())))
	}
	rows = append(rows,
		label(fieldReview, fmt.Sprintf("Only missed  %s", onOff(s.review))),
		"",
		label(fieldStart, "START"),
	)

	if s.review && s.prog.Current().Last == nil {
		rows = append(rows, "",
			theme.Hint.Render("   No previous attempt to review yet."))
	}

	form := strings.Join(rows, "\n")
	card := theme.Card.Render(form)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
