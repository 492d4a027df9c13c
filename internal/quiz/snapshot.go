package quiz

import (
	"time"

	"github.com/rmarin/examdrill/internal/bank"
)

// Position is the answered/flagged status of one slot in the session
// order, for rendering a jump list.
type Position struct {
	QuestionID string
	Answered   bool
	Flagged    bool
}

// Snapshot is the read-only view the UI renders after every call into the
// controller. There are no push events: the UI re-reads a fresh snapshot.
type Snapshot struct {
	State   State
	Mode    Mode
	AxisKey string

	Index int // 0-based position in the order
	Total int // len(order)

	// Question is the current question, nil when the order is empty or the
	// id no longer resolves in the (possibly since-replaced) bank. The UI
	// treats nil as "finish now".
	Question *bank.Question
	Scenario *bank.Scenario

	ChosenChoiceID string // answer recorded for the current question, "" if none
	Flagged        bool

	AnsweredCount  int
	FlaggedCount   int
	RemainingCount int
	Positions      []Position

	TimerEnabled bool
	TimeLeft     time.Duration
}

// Snapshot captures the current session for rendering. Outside a session it
// carries only the state.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{State: c.state}
	if c.sess == nil {
		return snap
	}

	sess := c.sess
	b := c.banks.Bank()

	snap.Mode = sess.Mode
	snap.AxisKey = sess.AxisKey
	snap.Index = sess.Current
	snap.Total = len(sess.Order)
	snap.Scenario = b.Scenario
	snap.AnsweredCount = len(sess.Answers)
	snap.FlaggedCount = len(sess.Flags)
	if snap.Total > snap.AnsweredCount {
		snap.RemainingCount = snap.Total - snap.AnsweredCount
	}

	snap.Positions = make([]Position, len(sess.Order))
	for i, qid := range sess.Order {
		_, answered := sess.Answers[qid]
		_, flagged := sess.Flags[qid]
		snap.Positions[i] = Position{QuestionID: qid, Answered: answered, Flagged: flagged}
	}

	if sess.Current >= 0 && sess.Current < len(sess.Order) {
		qid := sess.Order[sess.Current]
		snap.Question = b.Question(qid)
		snap.ChosenChoiceID = sess.Answers[qid].ChoiceID
		_, snap.Flagged = sess.Flags[qid]
	}

	snap.TimerEnabled = sess.TimerEnabled
	if left, ok := c.Remaining(c.now()); ok {
		snap.TimeLeft = left
	}

	return snap
}
