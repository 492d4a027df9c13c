package bank

import (
	"encoding/json"
	"fmt"
)

// ErrorCode identifies the structural defect that rejected a bank payload.
type ErrorCode string

const (
	CodeNotAnObject           ErrorCode = "not_an_object"
	CodeMissingQuestions      ErrorCode = "missing_questions"
	CodeInvalidScenario       ErrorCode = "invalid_scenario"
	CodeMissingID             ErrorCode = "missing_id"
	CodeMissingAxis           ErrorCode = "missing_axis"
	CodeMissingQuestionText   ErrorCode = "missing_question_text"
	CodeInsufficientChoices   ErrorCode = "insufficient_choices"
	CodeDanglingCorrectAnswer ErrorCode = "dangling_correct_answer"
)

// ValidationError describes why a bank payload was rejected. QuestionID is
// set when the defect belongs to a specific question, so the message can be
// shown to the user as-is.
type ValidationError struct {
	Code       ErrorCode
	QuestionID string
	Detail     string
}

func (e *ValidationError) Error() string {
	if e.QuestionID != "" {
		return fmt.Sprintf("bank validation: question %q: %s", e.QuestionID, e.Detail)
	}
	return "bank validation: " + e.Detail
}

// ParseError wraps a JSON syntax failure on an imported document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "parse bank document: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// ParseJSON decodes raw bytes into a generic JSON value for validation.
// Returns *ParseError if the bytes are not well-formed JSON.
func ParseJSON(raw []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	return doc, nil
}

// Validate runs the structural check and defaulting phases in sequence and
// returns the typed bank. A single defective question rejects the whole
// payload; the previously active bank is the caller's to keep.
func Validate(doc any) (*Bank, error) {
	if err := CheckStructure(doc); err != nil {
		return nil, err
	}
	obj := ApplyDefaults(doc.(map[string]any))

	// The payload is structurally sound; a round trip through encoding/json
	// produces the typed form. Unknown fields (tags, references, ...) are
	// carried by imported documents and simply dropped here.
	b, err := docToBank(obj)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return b, nil
}

// CheckStructure verifies the bank document shape without mutating it.
// Checks run in a fixed order and stop at the first failure.
func CheckStructure(doc any) *ValidationError {
	obj, ok := doc.(map[string]any)
	if !ok || obj == nil {
		return &ValidationError{Code: CodeNotAnObject, Detail: "document is not a JSON object"}
	}

	questions, ok := obj["questions"].([]any)
	if !ok {
		return &ValidationError{Code: CodeMissingQuestions, Detail: "missing 'questions' array"}
	}

	if raw, present := obj["scenario"]; present && raw != nil {
		if err := checkScenario(raw); err != nil {
			return err
		}
	}

	for _, rawQ := range questions {
		if err := checkQuestion(rawQ); err != nil {
			return err
		}
	}
	return nil
}

func checkScenario(raw any) *ValidationError {
	s, ok := raw.(map[string]any)
	if !ok {
		return &ValidationError{Code: CodeInvalidScenario, Detail: "'scenario' is not an object"}
	}
	if text, ok := s["text"].(string); !ok || text == "" {
		return &ValidationError{Code: CodeInvalidScenario, Detail: "'scenario.text' must be a non-empty string"}
	}
	if title, present := s["title"]; present {
		if _, ok := title.(string); !ok {
			return &ValidationError{Code: CodeInvalidScenario, Detail: "'scenario.title' must be a string"}
		}
	}
	return nil
}

func checkQuestion(raw any) *ValidationError {
	q, ok := raw.(map[string]any)
	if !ok {
		return &ValidationError{Code: CodeMissingID, Detail: "question entry is not an object"}
	}

	id, ok := q["id"].(string)
	if !ok || id == "" {
		return &ValidationError{Code: CodeMissingID, Detail: "question without string 'id'"}
	}
	if axis, ok := q["axis"].(string); !ok || axis == "" {
		return &ValidationError{Code: CodeMissingAxis, QuestionID: id, Detail: "missing 'axis'"}
	}
	if text, ok := q["question"].(string); !ok || text == "" {
		return &ValidationError{Code: CodeMissingQuestionText, QuestionID: id, Detail: "missing 'question'"}
	}

	choices, ok := q["choices"].([]any)
	if !ok || len(choices) < 2 {
		return &ValidationError{Code: CodeInsufficientChoices, QuestionID: id, Detail: "'choices' must be an array with at least 2 entries"}
	}

	correct, _ := answerCorrectChoiceID(q)
	if correct == "" {
		return &ValidationError{Code: CodeDanglingCorrectAnswer, QuestionID: id, Detail: "missing 'answer.correctChoiceId'"}
	}
	for _, rawC := range choices {
		if c, ok := rawC.(map[string]any); ok {
			if cid, ok := c["id"].(string); ok && cid == correct {
				return nil
			}
		}
	}
	return &ValidationError{Code: CodeDanglingCorrectAnswer, QuestionID: id,
		Detail: fmt.Sprintf("correct choice %q is not among the choices", correct)}
}

func answerCorrectChoiceID(q map[string]any) (string, bool) {
	ans, ok := q["answer"].(map[string]any)
	if !ok {
		return "", false
	}
	s, ok := ans["correctChoiceId"].(string)
	return s, ok
}

// ApplyDefaults fills optional top-level fields on a structurally checked
// document. Today that is only meta -> {}. Idempotent.
func ApplyDefaults(obj map[string]any) map[string]any {
	if _, ok := obj["meta"].(map[string]any); !ok {
		obj["meta"] = map[string]any{}
	}
	return obj
}

func docToBank(obj map[string]any) (*Bank, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	var b Bank
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
