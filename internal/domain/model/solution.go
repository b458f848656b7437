package model

import "time"

// Solution is one row of the append-only submission log. Incorrect attempts
// always append; a correct attempt appends only when it earns credit (the
// partial unique index forbids a second credited row per user/problem).
type Solution struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	ProblemID       string    `json:"problem_id"`
	SubmittedAnswer string    `json:"submitted_answer"`
	IsCorrect       bool      `json:"is_correct"`
	SolvedAt        time.Time `json:"solved_at"`
}

// SolveResult is what the solve endpoint reports back.
type SolveResult struct {
	Correct       bool    `json:"correct"`
	AlreadySolved bool    `json:"already_solved"`
	CorrectAnswer *string `json:"correct_answer,omitempty"` // revealed only on incorrect answers
	PointsEarned  int     `json:"points_earned"`
	NewScore      *int    `json:"new_score,omitempty"`
	NewLevel      *int    `json:"new_level,omitempty"`
}
