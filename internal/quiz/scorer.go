package quiz

import (
	"github.com/rmarin/examdrill/internal/bank"
	"github.com/rmarin/examdrill/internal/progress"
)

// Result is the outcome of scoring one finished session.
type Result struct {
	Correct int
	// Total is always len(order), even when some ordered ids no longer
	// resolve in the bank: the percentage is computed against what the
	// session originally asked, not what survived a bank swap.
	Total  int
	ByAxis map[string]progress.AxisScore
}

// Score grades a finished session's answers against the bank. Pure: no
// state is read or written beyond the arguments. A missing answer is
// incorrect, never an error. Ids in order that the bank no longer contains
// are skipped and contribute to no axis bucket.
func Score(answers map[string]progress.AnswerMark, order []string, b *bank.Bank) Result {
	res := Result{
		Total:  len(order),
		ByAxis: make(map[string]progress.AxisScore),
	}

	for _, qid := range order {
		q := b.Question(qid)
		if q == nil {
			continue
		}

		mark, answered := answers[qid]
		ok := answered && mark.ChoiceID == q.Answer.CorrectChoiceID
		if ok {
			res.Correct++
		}

		key := q.AxisKey()
		axis, exists := res.ByAxis[key]
		if !exists {
			axis = progress.AxisScore{Module: q.Module, Axis: q.Axis}
		}
		axis.Total++
		if ok {
			axis.Correct++
		}
		res.ByAxis[key] = axis
	}

	return res
}
