package quiz

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/rmarin/examdrill/internal/bank"
	"github.com/rmarin/examdrill/internal/progress"
)

// Mode selects the session behavior: practice shows feedback per question,
// mock defers everything to the summary.
type Mode string

const (
	ModePractice Mode = "practice"
	ModeMock     Mode = "mock"
)

// State is the controller's lifecycle position. Transitions are one-way
// within a session: Idle → Selecting → Running → Finished. Selecting is
// synchronous and never observable between calls.
type State int

const (
	StateIdle State = iota
	StateSelecting
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// Clamp limits for session criteria.
const (
	MinCount   = 1
	MaxCount   = 1000
	MinMinutes = 1
	MaxMinutes = 240
)

// Criteria configures a new session.
type Criteria struct {
	Mode                Mode
	AxisKey             string // bank.AxisAll or "module::axis"
	Count               int    // clamped to [MinCount, MaxCount]
	TimerEnabled        bool
	TimerMinutes        int // clamped to [MinMinutes, MaxMinutes]
	ReviewOnlyIncorrect bool
}

// Session is the mutable state of one quiz run. It is owned exclusively by
// the Controller; the UI observes it only through Snapshot.
type Session struct {
	ID             string
	Mode           Mode
	AxisKey        string
	RequestedCount int
	TimerEnabled   bool
	TimerMinutes   int
	Order          []string
	Current        int
	Answers        map[string]progress.AnswerMark
	Flags          map[string]progress.FlagMark
	StartedAt      time.Time
	EndsAt         *time.Time
}

// Controller is the session state machine. All methods are called from a
// single event loop; there is no concurrent mutation, so no locking. The
// one racy-looking interleaving — a timer tick and a manual finish both
// reaching finish — is resolved by the one-way Running → Finished guard.
type Controller struct {
	banks *bank.Store
	prog  *progress.Store
	rng   *rand.Rand
	now   func() time.Time

	state  State
	sess   *Session
	timer  *Timer
	result *progress.Attempt
}

// Option customizes a Controller, mainly for deterministic tests.
type Option func(*Controller)

// WithRandom replaces the shuffle source.
func WithRandom(src rand.Source) Option {
	return func(c *Controller) { c.rng = rand.New(src) }
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController creates an idle controller over the given stores.
func NewController(banks *bank.Store, prog *progress.Store, opts ...Option) *Controller {
	c := &Controller{
		banks: banks,
		prog:  prog,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
		state: StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Session returns the live session, nil outside Running/Finished.
func (c *Controller) Session() *Session {
	return c.sess
}

// Result returns the attempt of the finished session, nil before that.
func (c *Controller) Result() *progress.Attempt {
	return c.result
}

// Start supersedes any live session and begins a new one. An empty
// candidate pool is legal: the session starts with an empty order and the
// first advance finishes it at 0/0. Returns the selected order.
func (c *Controller) Start(crit Criteria) []string {
	c.stopTimer()
	c.state = StateSelecting
	c.result = nil

	count := clamp(crit.Count, MinCount, MaxCount)
	minutes := clamp(crit.TimerMinutes, MinMinutes, MaxMinutes)
	if crit.AxisKey == "" {
		crit.AxisKey = bank.AxisAll
	}

	b := c.banks.Bank()
	pool := candidatePool(b, crit.AxisKey, crit.ReviewOnlyIncorrect, c.prog.Current().Last)
	order := selectOrder(pool, count, c.rng)

	startedAt := c.now()
	sess := &Session{
		ID:             uuid.New().String(),
		Mode:           crit.Mode,
		AxisKey:        crit.AxisKey,
		RequestedCount: count,
		TimerEnabled:   crit.TimerEnabled,
		TimerMinutes:   minutes,
		Order:          order,
		Answers:        make(map[string]progress.AnswerMark),
		Flags:          make(map[string]progress.FlagMark),
		StartedAt:      startedAt,
	}
	if crit.TimerEnabled {
		endsAt := startedAt.Add(time.Duration(minutes) * time.Minute)
		sess.EndsAt = &endsAt
		c.timer = NewTimer(endsAt)
	}

	c.sess = sess
	c.state = StateRunning

	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Answer records the choice for a question, overwriting any prior answer.
// The choice id is not checked against the question's choices here: choices
// were validated at bank load time and the UI only offers valid ones. This
// is a deliberate weak contract, kept from the reviewed behavior.
func (c *Controller) Answer(questionID, choiceID string) error {
	if c.state != StateRunning {
		return ErrNotRunning
	}
	c.sess.Answers[questionID] = progress.AnswerMark{
		ChoiceID: choiceID,
		At:       c.now().UnixMilli(),
	}
	return nil
}

// ToggleFlag flips the review flag on a question.
func (c *Controller) ToggleFlag(questionID string) error {
	if c.state != StateRunning {
		return ErrNotRunning
	}
	if _, flagged := c.sess.Flags[questionID]; flagged {
		delete(c.sess.Flags, questionID)
	} else {
		c.sess.Flags[questionID] = progress.FlagMark{At: c.now().UnixMilli()}
	}
	return nil
}

// Next advances to the following question. On the last question — or on an
// empty order — advancing is the submit action and finishes the session.
// Returns true when the session finished.
func (c *Controller) Next() (bool, error) {
	if c.state != StateRunning {
		return false, ErrNotRunning
	}
	if c.sess.Current >= len(c.sess.Order)-1 {
		_, err := c.finish(false)
		return true, err
	}
	c.sess.Current++
	return false, nil
}

// Previous steps back one question; a no-op at the first.
func (c *Controller) Previous() error {
	if c.state != StateRunning {
		return ErrNotRunning
	}
	if c.sess.Current > 0 {
		c.sess.Current--
	}
	return nil
}

// GoTo jumps to the given 0-based position, used for revisiting flagged or
// answered questions.
func (c *Controller) GoTo(index int) error {
	if c.state != StateRunning {
		return ErrNotRunning
	}
	if index < 0 || index >= len(c.sess.Order) {
		return ErrIndexOutOfRange
	}
	c.sess.Current = index
	return nil
}

// Finish submits the session manually.
func (c *Controller) Finish() (*progress.Attempt, error) {
	return c.finish(false)
}

// Tick drives the countdown. When the deadline has passed the session is
// auto-submitted once with timedOut set. Returns true if this tick finished
// the session.
func (c *Controller) Tick(now time.Time) bool {
	if c.state != StateRunning || c.timer == nil {
		return false
	}
	if !c.timer.Expire(now) {
		return false
	}
	c.finish(true)
	return true
}

// Remaining returns the countdown for a timed running session.
func (c *Controller) Remaining(now time.Time) (time.Duration, bool) {
	if c.state != StateRunning || c.timer == nil {
		return 0, false
	}
	return c.timer.Remaining(now), true
}

// Reset discards any session and returns to Idle, the "go home" path. The
// finished attempt, if any, is already recorded and stays recorded.
func (c *Controller) Reset() {
	c.stopTimer()
	c.sess = nil
	c.result = nil
	c.state = StateIdle
}

// finish produces the attempt and records it. Idempotent in effect: the
// state flips to Finished before anything else, so a second caller — a
// timer tick racing a manual submit — gets the already-built attempt and
// history is appended exactly once.
func (c *Controller) finish(timedOut bool) (*progress.Attempt, error) {
	if c.state != StateRunning {
		return c.result, nil
	}
	c.state = StateFinished
	c.stopTimer()

	sess := c.sess
	score := Score(sess.Answers, sess.Order, c.banks.Bank())

	order := make([]string, len(sess.Order))
	copy(order, sess.Order)
	answers := make(map[string]progress.AnswerMark, len(sess.Answers))
	for k, v := range sess.Answers {
		answers[k] = v
	}
	flags := make(map[string]progress.FlagMark, len(sess.Flags))
	for k, v := range sess.Flags {
		flags[k] = v
	}

	attempt := &progress.Attempt{
		ID:         sess.ID,
		StartedAt:  sess.StartedAt.UnixMilli(),
		FinishedAt: c.now().UnixMilli(),
		Mode:       string(sess.Mode),
		AxisKey:    sess.AxisKey,
		TimedOut:   timedOut,
		Order:      order,
		Answers:    answers,
		Flags:      flags,
		Correct:    score.Correct,
		Total:      score.Total,
		ByAxis:     score.ByAxis,
	}
	c.result = attempt

	// Persistence failure is non-fatal: the attempt stays recorded in
	// memory and the error surfaces so the UI can warn the user.
	err := c.prog.RecordAttempt(context.Background(), attempt)
	return attempt, err
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
