package quiz

import (
	"testing"

	"github.com/rmarin/examdrill/internal/progress"
)

func TestScoreCountsAndBuckets(t *testing.T) {
	b := testBank()
	order := []string{"a1", "a2", "b1"}
	answers := map[string]progress.AnswerMark{
		"a1": {ChoiceID: "A"}, // correct
		"a2": {ChoiceID: "C"}, // incorrect, correct is B
		// b1 left unanswered
	}

	res := Score(answers, order, b)
	if res.Correct != 1 || res.Total != 3 {
		t.Fatalf("score = %d/%d, want 1/3", res.Correct, res.Total)
	}

	axisA := res.ByAxis["M::A"]
	if axisA.Total != 2 || axisA.Correct != 1 {
		t.Errorf("M::A = %d/%d, want 1/2", axisA.Correct, axisA.Total)
	}
	if axisA.Module != "M" || axisA.Axis != "A" {
		t.Errorf("M::A labels = %q/%q", axisA.Module, axisA.Axis)
	}
	axisB := res.ByAxis["M::B"]
	if axisB.Total != 1 || axisB.Correct != 0 {
		t.Errorf("M::B = %d/%d, want 0/1", axisB.Correct, axisB.Total)
	}

	sum := 0
	for _, a := range res.ByAxis {
		sum += a.Total
	}
	if sum != res.Total {
		t.Errorf("axis totals sum to %d, want %d", sum, res.Total)
	}
}

func TestScoreEmptyOrder(t *testing.T) {
	res := Score(nil, nil, testBank())
	if res.Correct != 0 || res.Total != 0 {
		t.Errorf("score = %d/%d, want 0/0", res.Correct, res.Total)
	}
	if len(res.ByAxis) != 0 {
		t.Errorf("byAxis = %v, want empty", res.ByAxis)
	}
}

// A question removed from the bank after selection still counts toward the
// denominator but lands in no axis bucket.
func TestScoreVanishedQuestion(t *testing.T) {
	b := testBank()
	order := []string{"a1", "gone"}
	answers := map[string]progress.AnswerMark{
		"a1":   {ChoiceID: "A"},
		"gone": {ChoiceID: "A"},
	}

	res := Score(answers, order, b)
	if res.Correct != 1 || res.Total != 2 {
		t.Fatalf("score = %d/%d, want 1/2", res.Correct, res.Total)
	}
	sum := 0
	for _, a := range res.ByAxis {
		sum += a.Total
	}
	if sum != 1 {
		t.Errorf("axis totals sum to %d, want 1 (vanished id skipped)", sum)
	}
}

func TestScoreIsPure(t *testing.T) {
	b := testBank()
	order := []string{"a1", "b1"}
	answers := map[string]progress.AnswerMark{"a1": {ChoiceID: "A"}}

	first := Score(answers, order, b)
	second := Score(answers, order, b)
	if first.Correct != second.Correct || first.Total != second.Total {
		t.Errorf("repeated scoring diverged: %+v vs %+v", first, second)
	}
	if len(answers) != 1 {
		t.Error("scoring must not mutate the answers map")
	}
}
