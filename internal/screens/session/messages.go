package session

import "time"

// tickMsg drives the countdown and the auto-submit check.
type tickMsg time.Time

// finishedMsg is sent when the session has been submitted by any path.
type finishedMsg struct{}
