package bank

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func validDoc() map[string]any {
	return map[string]any{
		"meta": map[string]any{"version": "1"},
		"questions": []any{
			map[string]any{
				"id":       "Q1",
				"module":   "M1",
				"axis":     "A1",
				"question": "First?",
				"choices": []any{
					map[string]any{"id": "A", "text": "yes"},
					map[string]any{"id": "B", "text": "no"},
				},
				"answer": map[string]any{"correctChoiceId": "A"},
			},
			map[string]any{
				"id":       "Q2",
				"axis":     "A2",
				"question": "Second?",
				"choices": []any{
					map[string]any{"id": "A", "text": "yes"},
					map[string]any{"id": "B", "text": "no"},
				},
				"answer": map[string]any{"correctChoiceId": "B"},
			},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	b, err := Validate(validDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(b.Questions))
	}
	if b.Questions[0].AxisKey() != "M1::A1" {
		t.Errorf("axis key = %q, want %q", b.Questions[0].AxisKey(), "M1::A1")
	}
	// Empty module is a valid key component.
	if b.Questions[1].AxisKey() != "::A2" {
		t.Errorf("axis key = %q, want %q", b.Questions[1].AxisKey(), "::A2")
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(doc map[string]any)
		wantCode ErrorCode
		wantQID  string
	}{
		{
			name:     "questions missing",
			mutate:   func(d map[string]any) { delete(d, "questions") },
			wantCode: CodeMissingQuestions,
		},
		{
			name:     "questions not array",
			mutate:   func(d map[string]any) { d["questions"] = "nope" },
			wantCode: CodeMissingQuestions,
		},
		{
			name:     "scenario not object",
			mutate:   func(d map[string]any) { d["scenario"] = "text" },
			wantCode: CodeInvalidScenario,
		},
		{
			name: "scenario without text",
			mutate: func(d map[string]any) {
				d["scenario"] = map[string]any{"title": "T"}
			},
			wantCode: CodeInvalidScenario,
		},
		{
			name: "scenario title not string",
			mutate: func(d map[string]any) {
				d["scenario"] = map[string]any{"title": 7, "text": "shared context"}
			},
			wantCode: CodeInvalidScenario,
		},
		{
			name:     "question id missing",
			mutate:   func(d map[string]any) { delete(question(d, 0), "id") },
			wantCode: CodeMissingID,
		},
		{
			name:     "question id not string",
			mutate:   func(d map[string]any) { question(d, 0)["id"] = 12 },
			wantCode: CodeMissingID,
		},
		{
			name:     "axis missing",
			mutate:   func(d map[string]any) { delete(question(d, 1), "axis") },
			wantCode: CodeMissingAxis,
			wantQID:  "Q2",
		},
		{
			name:     "question text missing",
			mutate:   func(d map[string]any) { delete(question(d, 0), "question") },
			wantCode: CodeMissingQuestionText,
			wantQID:  "Q1",
		},
		{
			name: "single choice",
			mutate: func(d map[string]any) {
				question(d, 0)["choices"] = []any{map[string]any{"id": "A", "text": "only"}}
			},
			wantCode: CodeInsufficientChoices,
			wantQID:  "Q1",
		},
		{
			name:     "answer missing",
			mutate:   func(d map[string]any) { delete(question(d, 1), "answer") },
			wantCode: CodeDanglingCorrectAnswer,
			wantQID:  "Q2",
		},
		{
			name: "correct choice not among choices",
			mutate: func(d map[string]any) {
				question(d, 1)["answer"] = map[string]any{"correctChoiceId": "Z"}
			},
			wantCode: CodeDanglingCorrectAnswer,
			wantQID:  "Q2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			tt.mutate(doc)
			_, err := Validate(doc)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", verr.Code, tt.wantCode)
			}
			if verr.QuestionID != tt.wantQID {
				t.Errorf("question id = %q, want %q", verr.QuestionID, tt.wantQID)
			}
		})
	}
}

func TestValidateNotAnObject(t *testing.T) {
	for _, doc := range []any{nil, "string", 4.2, []any{}} {
		_, err := Validate(doc)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Code != CodeNotAnObject {
			t.Errorf("Validate(%v): got %v, want NotAnObject", doc, err)
		}
	}
}

func TestValidateDefaultsMeta(t *testing.T) {
	doc := validDoc()
	delete(doc, "meta")
	b, err := Validate(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Meta == nil {
		t.Fatal("meta not defaulted to empty object")
	}
	if len(b.Meta) != 0 {
		t.Errorf("meta = %v, want empty", b.Meta)
	}
}

// Validating a bank that already passed validation returns it unchanged;
// meta defaulting is itself idempotent.
func TestValidateIdempotent(t *testing.T) {
	first, err := Validate(validDoc())
	if err != nil {
		t.Fatalf("first validate: %v", err)
	}
	raw, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	doc, err := ParseJSON(raw)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	second, err := Validate(doc)
	if err != nil {
		t.Fatalf("second validate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("revalidation changed the bank:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestParseJSONError(t *testing.T) {
	_, err := ParseJSON([]byte("{not json"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

// Every question surfaced by a successful validation references an
// existing choice.
func TestValidatedCorrectChoiceResolvable(t *testing.T) {
	for _, b := range []*Bank{Sample(), mustValidate(t, validDoc())} {
		for i := range b.Questions {
			q := &b.Questions[i]
			found := false
			for _, c := range q.Choices {
				if c.ID == q.Answer.CorrectChoiceID {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("question %s: correct choice %q unresolvable", q.ID, q.Answer.CorrectChoiceID)
			}
		}
	}
}

func question(doc map[string]any, i int) map[string]any {
	return doc["questions"].([]any)[i].(map[string]any)
}

func mustValidate(t *testing.T, doc any) *Bank {
	t.Helper()
	b, err := Validate(doc)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	return b
}
