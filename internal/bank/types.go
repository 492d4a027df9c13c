package bank

import "sort"

// AxisAll selects every question regardless of axis.
const AxisAll = "ALL"

// Choice is one selectable answer of a question.
type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Answer names the correct choice of a question.
type Answer struct {
	CorrectChoiceID string `json:"correctChoiceId"`
}

// Question is a single multiple-choice item. Questions are immutable once
// the bank they belong to has been validated.
type Question struct {
	ID          string   `json:"id"`
	Module      string   `json:"module,omitempty"`
	Axis        string   `json:"axis"`
	SubAxis     string   `json:"subAxis,omitempty"`
	Difficulty  int      `json:"difficulty,omitempty"`
	Stem        string   `json:"stem,omitempty"`
	Text        string   `json:"question"`
	Choices     []Choice `json:"choices"`
	Answer      Answer   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// AxisKey returns the composite topic key of the question. An empty module
// is a valid part of the key ("::axis").
func (q *Question) AxisKey() string {
	return q.Module + "::" + q.Axis
}

// Scenario is shared context text shown once per session, not tied to any
// single question.
type Scenario struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

// Bank is a validated set of questions plus free-form metadata. Replacing a
// bank is always a full swap, never an in-place merge.
type Bank struct {
	Meta      map[string]any `json:"meta"`
	Scenario  *Scenario      `json:"scenario,omitempty"`
	Questions []Question     `json:"questions"`
}

// Question returns the question with the given id, or nil if the bank does
// not contain it.
func (b *Bank) Question(id string) *Question {
	for i := range b.Questions {
		if b.Questions[i].ID == id {
			return &b.Questions[i]
		}
	}
	return nil
}

// AxisKeys returns the sorted set of distinct module::axis keys in the bank.
func (b *Bank) AxisKeys() []string {
	seen := make(map[string]bool)
	var keys []string
	for i := range b.Questions {
		k := b.Questions[i].AxisKey()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// MetaString returns a string meta value, or fallback when absent or not a
// string. Bank meta is free-form, so callers must not assume types.
func (b *Bank) MetaString(key, fallback string) string {
	if v, ok := b.Meta[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
