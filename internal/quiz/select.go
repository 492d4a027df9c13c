package quiz

import (
	"math/rand"

	"github.com/rmarin/examdrill/internal/bank"
	"github.com/rmarin/examdrill/internal/progress"
)

// candidatePool filters the bank down to the ids eligible for selection.
// Axis filtering applies first, then the review restriction.
func candidatePool(b *bank.Bank, axisKey string, reviewOnlyIncorrect bool, last *progress.Attempt) []string {
	var incorrect map[string]bool
	if reviewOnlyIncorrect {
		incorrect = IncorrectAnswerIDs(last, b)
	}

	var pool []string
	for i := range b.Questions {
		q := &b.Questions[i]
		if axisKey != bank.AxisAll && q.AxisKey() != axisKey {
			continue
		}
		if reviewOnlyIncorrect && !incorrect[q.ID] {
			continue
		}
		pool = append(pool, q.ID)
	}
	return pool
}

// IncorrectAnswerIDs returns the ids answered incorrectly in the given
// attempt. An id counts as incorrect only when an answer exists for it and
// the chosen choice differs from the question's correct choice; unanswered
// questions are excluded from review, not treated as incorrect. Ids no
// longer present in the bank are dropped.
func IncorrectAnswerIDs(last *progress.Attempt, b *bank.Bank) map[string]bool {
	ids := make(map[string]bool)
	if last == nil {
		return ids
	}
	for qid, mark := range last.Answers {
		q := b.Question(qid)
		if q == nil || mark.ChoiceID == "" {
			continue
		}
		if mark.ChoiceID != q.Answer.CorrectChoiceID {
			ids[qid] = true
		}
	}
	return ids
}

// selectOrder produces the session order: a uniformly random permutation of
// the pool, truncated to at most count ids. The input slice is not mutated.
func selectOrder(pool []string, count int, rng *rand.Rand) []string {
	order := make([]string, len(pool))
	copy(order, pool)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	if count < len(order) {
		order = order[:count]
	}
	return order
}
