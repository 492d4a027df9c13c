package session

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/rmarin/examdrill/internal/progress"
	"github.com/rmarin/examdrill/internal/quiz"
	"github.com/rmarin/examdrill/internal/router"
	"github.com/rmarin/examdrill/internal/screen"
	"github.com/rmarin/examdrill/internal/screens/summary"
	"github.com/rmarin/examdrill/internal/ui/components"
	"github.com/rmarin/examdrill/internal/ui/layout"
)

// tickInterval is the UI refresh cadence for the countdown. The deadline
// check runs on every tick, so auto-submit lands within one interval of the
// timer running out.
const tickInterval = 250 * time.Millisecond

// SessionScreen drives a running quiz session. All session state lives in
// the controller; the screen holds only cursor and overlay state.
type SessionScreen struct {
	ctrl *quiz.Controller
	prog *progress.Store

	choices       components.ChoiceList
	showFeedback  bool  // practice mode reveal after answering
	confirmSubmit bool
	jumpPending   bool  // g pressed, next digit picks a position
	warn          error // storage failure surfaced on the summary
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New creates a session screen over an already started controller.
func New(ctrl *quiz.Controller, prog *progress.Store) *SessionScreen {
	s := &SessionScreen{ctrl: ctrl, prog: prog}
	s.sync()
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	snap := s.ctrl.Snapshot()
	if snap.State == quiz.StateRunning && snap.Total == 0 {
		// Nothing matched the criteria: submit the empty session and let
		// the summary explain the 0/0.
		return s.finishNow()
	}
	return tickCmd()
}

func (s *SessionScreen) Title() string {
	if s.ctrl.Snapshot().Mode == quiz.ModeMock {
		return "Mock exam"
	}
	return "Practice"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirmSubmit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit now"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	if s.jumpPending {
		return []layout.KeyHint{
			{Key: "1-9", Description: "Jump to question"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choice"},
		{Key: "Enter", Description: "Answer"},
		{Key: "←→", Description: "Question"},
		{Key: "G", Description: "Jump"},
		{Key: "F", Description: "Flag"},
		{Key: "Esc", Description: "Submit"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick()
	case finishedMsg:
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: summary.New(s.ctrl.Result(), s.prog, s.warn),
			}
		}
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.ctrl.Tick(time.Now()) {
		return s, func() tea.Msg { return finishedMsg{} }
	}
	if s.ctrl.State() != quiz.StateRunning {
		return s, nil
	}
	return s, tickCmd()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.ctrl.State() != quiz.StateRunning {
		return s, nil
	}

	key := msg.String()

	if s.confirmSubmit {
		switch key {
		case "y", "Y", "enter":
			s.confirmSubmit = false
			return s, s.finishNow()
		case "n", "N", "esc":
			s.confirmSubmit = false
		}
		return s, nil
	}

	// Practice feedback overlay: any key moves on.
	if s.showFeedback {
		s.showFeedback = false
		return s, s.advance()
	}

	// Jump overlay: the next digit picks a position on the strip.
	if s.jumpPending {
		s.jumpPending = false
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if err := s.ctrl.GoTo(int(key[0] - '1')); err == nil {
				s.sync()
			}
		}
		return s, nil
	}

	snap := s.ctrl.Snapshot()
	if snap.Question == nil {
		// The current id no longer resolves, likely a bank swap mid-run.
		return s, s.finishNow()
	}

	switch key {
	case "esc":
		s.confirmSubmit = true
		return s, nil
	case "enter":
		if opt, ok := s.choices.Current(); ok {
			return s, s.answer(snap.Question.ID, opt.ID)
		}
		return s, nil
	case "left", "h":
		if err := s.ctrl.Previous(); err == nil {
			s.sync()
		}
		return s, nil
	case "right", "l":
		return s, s.advance()
	case "g":
		if snap.Total > 1 {
			s.jumpPending = true
		}
		return s, nil
	case "f":
		s.ctrl.ToggleFlag(snap.Question.ID)
		return s, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key[0] - '1')
		if idx < len(s.choices.Options) {
			s.choices.Cursor = idx
			return s, s.answer(snap.Question.ID, s.choices.Options[idx].ID)
		}
		return s, nil
	case "up", "k", "down", "j":
		var cmd tea.Cmd
		s.choices, cmd = s.choices.Update(msg)
		return s, cmd
	}

	return s, nil
}

// answer records a choice. Practice mode reveals feedback in place; mock
// mode moves straight on.
func (s *SessionScreen) answer(questionID, choiceID string) tea.Cmd {
	if err := s.ctrl.Answer(questionID, choiceID); err != nil {
		return nil
	}
	if s.ctrl.Snapshot().Mode == quiz.ModePractice {
		s.showFeedback = true
		s.sync()
		return nil
	}
	return s.advance()
}

// advance moves to the next question; on the last one this submits.
func (s *SessionScreen) advance() tea.Cmd {
	finished, err := s.ctrl.Next()
	if finished {
		// err here is a storage failure; the attempt itself is complete.
		s.warn = err
		return func() tea.Msg { return finishedMsg{} }
	}
	if err != nil {
		return nil
	}
	s.sync()
	return nil
}

// finishNow submits the session manually.
func (s *SessionScreen) finishNow() tea.Cmd {
	_, err := s.ctrl.Finish()
	s.warn = err
	return func() tea.Msg { return finishedMsg{} }
}

// sync rebuilds the choice list from the controller's current question.
func (s *SessionScreen) sync() {
	snap := s.ctrl.Snapshot()
	if snap.Question == nil {
		s.choices = components.ChoiceList{}
		return
	}
	opts := make([]components.ChoiceOption, len(snap.Question.Choices))
	for i, c := range snap.Question.Choices {
		opts[i] = components.ChoiceOption{ID: c.ID, Text: c.Text}
	}
	s.choices = components.NewChoiceList(opts, snap.ChosenChoiceID)
	if s.showFeedback {
		s.choices.Reveal = true
		s.choices.CorrectID = snap.Question.Answer.CorrectChoiceID
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
