package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rmarin/examdrill/internal/bank"
	"github.com/rmarin/examdrill/internal/quiz"
	"github.com/rmarin/examdrill/internal/ui/layout"
	"github.com/rmarin/examdrill/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	snap := s.ctrl.Snapshot()

	if snap.State != quiz.StateRunning {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Scoring...")
	}
	if s.confirmSubmit {
		return renderSubmitConfirm(snap, width)
	}
	if snap.Question == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No question to show. Press any key to submit.")
	}

	var b strings.Builder

	b.WriteString(renderInfoLine(snap, width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")
	b.WriteString(renderPositionStrip(snap, width))
	b.WriteString("\n\n")

	if snap.Scenario != nil && snap.Scenario.Text != "" {
		scen := lipgloss.NewStyle().
			Width(min(width-8, 76)).
			Foreground(theme.TextDim).
			Render(snap.Scenario.Text)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, scen))
		b.WriteString("\n\n")
	}

	b.WriteString(renderQuestion(snap.Question, width))
	b.WriteString("\n")

	choicesView := s.choices.View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, choicesView))

	if s.showFeedback {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(snap, width))
	}

	return b.String()
}

// renderInfoLine shows position, progress counts, flag state and countdown.
func renderInfoLine(snap quiz.Snapshot, width int) string {
	modeLabel := "Practice"
	if snap.Mode == quiz.ModeMock {
		modeLabel = "Mock"
	}
	axisLabel := snap.AxisKey
	if axisLabel == bank.AxisAll {
		axisLabel = "All topics"
	}

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", modeLabel, axisLabel))

	flagStr := ""
	if snap.Flagged {
		flagStr = theme.Flagged.Render("⚑  ")
	}
	timerStr := ""
	if snap.TimerEnabled {
		timerStr = "  " + lipgloss.NewStyle().Foreground(theme.Accent).
			Render(layout.FormatClock(int(snap.TimeLeft.Seconds())))
	}

	right := flagStr + lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  answered %d  left %d",
			snap.Index+1, snap.Total, snap.AnsweredCount, snap.RemainingCount)) +
		timerStr

	line := left
	rightPad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if rightPad > 0 {
		line += strings.Repeat(" ", rightPad) + right
	}
	return line
}

// renderPositionStrip draws one glyph per question: answered, flagged, open.
func renderPositionStrip(snap quiz.Snapshot, width int) string {
	var b strings.Builder
	for i, pos := range snap.Positions {
		glyph := "·"
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		switch {
		case pos.Flagged:
			glyph = "⚑"
			style = lipgloss.NewStyle().Foreground(theme.Accent)
		case pos.Answered:
			glyph = "●"
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		if i == snap.Index {
			style = style.Bold(true).Underline(true)
		}
		b.WriteString(style.Render(glyph))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func renderQuestion(q *bank.Question, width int) string {
	var b strings.Builder
	if q.Stem != "" {
		stem := lipgloss.NewStyle().
			Width(min(width-8, 76)).
			Foreground(theme.TextDim).
			Render(q.Stem)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, stem))
		b.WriteString("\n\n")
	}
	text := lipgloss.NewStyle().
		Width(min(width-8, 76)).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, text))
	b.WriteString("\n")
	return b.String()
}

// renderFeedback is the practice-mode reveal under the choices.
func (s *SessionScreen) renderFeedback(snap quiz.Snapshot, width int) string {
	q := snap.Question

	var b strings.Builder
	if snap.ChosenChoiceID == q.Answer.CorrectChoiceID {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Correct answer: %s", q.Answer.CorrectChoiceID)))
	}

	if q.Explanation != "" {
		b.WriteString("\n\n")
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))

	return b.String()
}

// renderSubmitConfirm is the early-submit dialog.
func renderSubmitConfirm(snap quiz.Snapshot, width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Submit now?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d of %d questions answered. Unanswered count as incorrect.",
			snap.AnsweredCount, snap.Total)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, score it"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
