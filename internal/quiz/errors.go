package quiz

import "errors"

var (
	// ErrNotRunning rejects session operations outside the Running state.
	// Running out of questions is not an error; this guards misuse.
	ErrNotRunning = errors.New("no session running")

	// ErrIndexOutOfRange rejects navigation to a position outside the
	// session order. State is never mutated on rejection.
	ErrIndexOutOfRange = errors.New("question index out of range")
)
