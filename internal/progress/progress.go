package progress

// Timestamps throughout this package are Unix milliseconds, matching the
// persisted document format.

// AnswerMark records the choice picked for a question. A later answer for
// the same question overwrites the earlier one.
type AnswerMark struct {
	ChoiceID string `json:"choiceId"`
	At       int64  `json:"at"`
}

// FlagMark records when a question was flagged for review.
type FlagMark struct {
	At int64 `json:"at"`
}

// AxisScore is the per-topic slice of an attempt's result, keyed in the
// parent map by "module::axis".
type AxisScore struct {
	Module  string `json:"module"`
	Axis    string `json:"axis"`
	Total   int    `json:"total"`
	Correct int    `json:"correct"`
}

// Attempt is the immutable record of one completed session.
type Attempt struct {
	ID         string                `json:"id"`
	StartedAt  int64                 `json:"startedAt"`
	FinishedAt int64                 `json:"finishedAt"`
	Mode       string                `json:"mode"`
	AxisKey    string                `json:"axisKey"`
	TimedOut   bool                  `json:"timedOut"`
	Order      []string              `json:"order"`
	Answers    map[string]AnswerMark `json:"answers"`
	Flags      map[string]FlagMark   `json:"flags"`
	Correct    int                   `json:"correct"`
	Total      int                   `json:"total"`
	ByAxis     map[string]AxisScore  `json:"byAxis"`
}

// Percent returns the attempt score as a rounded percentage. An attempt
// with no questions scores 0.
func (a *Attempt) Percent() int {
	return percent(a.Correct, a.Total)
}

// Summary is the compact history entry kept for every finished attempt.
type Summary struct {
	FinishedAt int64  `json:"finishedAt"`
	Mode       string `json:"mode"`
	AxisKey    string `json:"axisKey"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
}

// Progress is the full persisted attempt history. History is append-only
// and never pruned by the engine; Last is the most recent full attempt.
type Progress struct {
	History []Summary `json:"history"`
	Last    *Attempt  `json:"last"`
}

// Record appends the attempt's summary to the history and makes it the
// most recent attempt.
func (p *Progress) Record(a *Attempt) {
	p.History = append(p.History, Summary{
		FinishedAt: a.FinishedAt,
		Mode:       a.Mode,
		AxisKey:    a.AxisKey,
		Correct:    a.Correct,
		Total:      a.Total,
	})
	p.Last = a
}

// passRatio is the score threshold an attempt must meet to extend a streak.
const passRatio = 0.70

// Streak counts consecutive most-recent attempts scoring at least 70%.
// An attempt with total 0 has ratio 0 and breaks the streak.
func (p *Progress) Streak() int {
	streak := 0
	for i := len(p.History) - 1; i >= 0; i-- {
		h := p.History[i]
		if h.Total == 0 || float64(h.Correct)/float64(h.Total) < passRatio {
			break
		}
		streak++
	}
	return streak
}

func percent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(correct)/float64(total)*100 + 0.5)
}
