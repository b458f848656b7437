package model

import (
	"time"
)

type Subject string
type ProblemDifficulty string

const (
	SubjectMath        Subject = "math"
	SubjectInformatics Subject = "informatics"

	DifficultyEasy   ProblemDifficulty = "easy"
	DifficultyMedium ProblemDifficulty = "medium"
	DifficultyHard   ProblemDifficulty = "hard"
)

func (s Subject) Valid() bool {
	return s == SubjectMath || s == SubjectInformatics
}

func (d ProblemDifficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Subject     Subject   `json:"subject"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Problem struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Subject     Subject           `json:"subject"`
	Difficulty  ProblemDifficulty `json:"difficulty"`
	CategoryID  *string           `json:"category_id,omitempty"`
	// CorrectAnswer may encode several accepted alternatives separated by
	// ';' or ','. Never serialized to clients.
	CorrectAnswer string    `json:"-"`
	Points        int       `json:"points"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
