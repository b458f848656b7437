package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             string    `json:"id"`
	TelegramID     *int64    `json:"tg_id,omitempty"`
	Username       *string   `json:"username,omitempty"`
	Email          *string   `json:"email,omitempty"`
	HashedPassword *string   `json:"-"` // Not exposed
	Role           string    `json:"role"`
	Score          int       `json:"score"`
	Level          int       `json:"level"`
	SolvedCount    int       `json:"solved_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LevelForScore is the single level policy: one level per full 100 points.
func LevelForScore(score int) int {
	return score/100 + 1
}

type UserStats struct {
	Score             int `json:"score"`
	Level             int `json:"level"`
	SolvedCount       int `json:"solved_count"`
	MathSolved        int `json:"math_solved"`
	InformaticsSolved int `json:"informatics_solved"`
}

type WeeklyStats struct {
	SolvedCount int `json:"solved_count"`
}

type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	UserID   string  `json:"user_id"`
	Username *string `json:"username,omitempty"`
	Score    int     `json:"score"`
	Level    int     `json:"level"`
}
