package model

import "time"

// PracticeSession is the state of one timed practice run. It lives in Redis
// with a TTL equal to the timed window plus a grace period; answers inside a
// session are graded but never credited.
type PracticeSession struct {
	ID         string          `json:"id"`
	UserID     *string         `json:"user_id,omitempty"` // nil for guests
	Subject    Subject         `json:"subject"`
	CategoryID *string         `json:"category_id,omitempty"`
	ProblemIDs []string        `json:"problem_ids"`
	Answered   map[string]bool `json:"answered"` // problem id -> correct
	StartedAt  time.Time       `json:"started_at"`
	Deadline   time.Time       `json:"deadline"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
}

func (s *PracticeSession) Expired(now time.Time) bool {
	return now.After(s.Deadline)
}

type PracticeSummary struct {
	SessionID      string `json:"session_id"`
	Attempted      int    `json:"attempted"`
	Solved         int    `json:"solved"`
	Total          int    `json:"total"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	TimedOut       bool   `json:"timed_out"`
}
