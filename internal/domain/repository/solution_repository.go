package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"playex_v2/internal/common"
	"playex_v2/internal/domain/model"
)

// SolutionRepository is the storage side of the progress ledger.
type SolutionRepository interface {
	// AppendAttempt records a non-credited attempt (an incorrect answer).
	AppendAttempt(ctx context.Context, sol *model.Solution) error

	// CreditSolve atomically records the one credited correct solution for
	// a (user, problem) pair and applies the score/level/solved-count
	// mutation. Returns the new score and level. When another credited row
	// already exists the whole transaction rolls back and ErrConflict is
	// returned, which is how a concurrent double credit surfaces.
	CreditSolve(ctx context.Context, sol *model.Solution, points int) (int, int, error)

	HasCredited(ctx context.Context, userID, problemID string) (bool, error)
}

type pgSolutionRepository struct {
	db *sql.DB
}

func NewPgSolutionRepository(db *sql.DB) SolutionRepository {
	return &pgSolutionRepository{db: db}
}

const insertSolutionQuery = `INSERT INTO user_solutions (id, user_id, problem_id, submitted_answer, is_correct)
	VALUES ($1, $2, $3, $4, $5)`

func (r *pgSolutionRepository) AppendAttempt(ctx context.Context, sol *model.Solution) error {
	_, err := r.db.ExecContext(ctx, insertSolutionQuery,
		sol.ID, sol.UserID, sol.ProblemID, sol.SubmittedAnswer, sol.IsCorrect)
	if err != nil {
		return fmt.Errorf("pgSolutionRepository.AppendAttempt: %w", err)
	}
	return nil
}

func (r *pgSolutionRepository) CreditSolve(ctx context.Context, sol *model.Solution, points int) (int, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("pgSolutionRepository.CreditSolve begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, insertSolutionQuery,
		sol.ID, sol.UserID, sol.ProblemID, sol.SubmittedAnswer, true)
	if err != nil {
		// The partial unique index on credited solutions fires here when a
		// concurrent submission won the race.
		if common.IsUniqueViolation(err) {
			return 0, 0, fmt.Errorf("solution already credited: %w", common.ErrConflict)
		}
		return 0, 0, fmt.Errorf("pgSolutionRepository.CreditSolve insert: %w", err)
	}

	var score, level int
	err = tx.QueryRowContext(ctx, `
		UPDATE users
		SET score = score + $1,
		    level = (score + $1) / 100 + 1,
		    solved_count = solved_count + 1,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING score, level`, points, sol.UserID).Scan(&score, &level)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, common.ErrNotFound
		}
		return 0, 0, fmt.Errorf("pgSolutionRepository.CreditSolve update user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("pgSolutionRepository.CreditSolve commit: %w", err)
	}
	return score, level, nil
}

func (r *pgSolutionRepository) HasCredited(ctx context.Context, userID, problemID string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM user_solutions WHERE user_id = $1 AND problem_id = $2 AND is_correct
	)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, problemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("pgSolutionRepository.HasCredited: %w", err)
	}
	return exists, nil
}
