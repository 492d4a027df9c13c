package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rmarin/examdrill/internal/ui/theme"
)

// ChoiceOption is one selectable answer choice.
type ChoiceOption struct {
	ID   string
	Text string
}

// ChoiceList is a single-select answer list. It only tracks the cursor; the
// recorded answer and the reveal state are owned by the caller and passed
// back in for rendering.
type ChoiceList struct {
	Options []ChoiceOption
	Cursor  int

	// ChosenID marks the recorded answer, empty when unanswered.
	ChosenID string

	// Reveal switches to feedback rendering: the correct choice is
	// highlighted and a wrong chosen one marked.
	Reveal    bool
	CorrectID string
}

// NewChoiceList creates a choice list with the cursor on the recorded answer
// when there is one.
func NewChoiceList(options []ChoiceOption, chosenID string) ChoiceList {
	cursor := 0
	for i, opt := range options {
		if chosenID != "" && opt.ID == chosenID {
			cursor = i
			break
		}
	}
	return ChoiceList{Options: options, Cursor: cursor, ChosenID: chosenID}
}

// Update handles cursor movement. Selection itself is the caller's call.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	}

	return c, nil
}

// Current returns the choice under the cursor.
func (c ChoiceList) Current() (ChoiceOption, bool) {
	if c.Cursor < 0 || c.Cursor >= len(c.Options) {
		return ChoiceOption{}, false
	}
	return c.Options[c.Cursor], true
}

// View renders the list.
func (c ChoiceList) View() string {
	var s string
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor && !c.Reveal {
			prefix = "▸ "
		}
		marker := " "
		if opt.ID == c.ChosenID {
			marker = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, opt.ID, opt.Text)

		var style lipgloss.Style
		switch {
		case c.Reveal && opt.ID == c.CorrectID:
			style = theme.Correct
		case c.Reveal && opt.ID == c.ChosenID:
			style = theme.Incorrect
		case c.Reveal:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Cursor:
			style = theme.Selected
		default:
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}
		s += style.Render(line) + "\n"
	}
	return s
}
