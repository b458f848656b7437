package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"playex_v2/internal/common"
	"playex_v2/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error)
	Stats(ctx context.Context, userID string) (*model.UserStats, error)
	WeeklyStats(ctx context.Context, userID string) (*model.WeeklyStats, error)
	TopByScore(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, tg_id, username, email, hashed_password, role, score, level, solved_count, created_at, updated_at`

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.TelegramID, &user.Username, &user.Email, &user.HashedPassword,
		&user.Role, &user.Score, &user.Level, &user.SolvedCount, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, tg_id, username, email, hashed_password, role, score, level, solved_count)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.TelegramID, user.Username, user.Email, user.HashedPassword,
		user.Role, user.Score, user.Level, user.SolvedCount)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("user with given identity already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, err
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, err
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return user, err
}

func (r *pgUserRepository) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE tg_id = $1`, tgID))
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("pgUserRepository.FindByTelegramID: %w", err)
	}
	return user, err
}

func (r *pgUserRepository) Stats(ctx context.Context, userID string) (*model.UserStats, error) {
	query := `
        SELECT u.score, u.level, u.solved_count,
               COUNT(s.id) FILTER (WHERE p.subject = 'math')        AS math_solved,
               COUNT(s.id) FILTER (WHERE p.subject = 'informatics') AS informatics_solved
        FROM users u
        LEFT JOIN user_solutions s ON s.user_id = u.id AND s.is_correct
        LEFT JOIN problems p ON p.id = s.problem_id
        WHERE u.id = $1
        GROUP BY u.score, u.level, u.solved_count`

	stats := &model.UserStats{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.Score, &stats.Level, &stats.SolvedCount, &stats.MathSolved, &stats.InformaticsSolved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.Stats: %w", err)
	}
	return stats, nil
}

func (r *pgUserRepository) WeeklyStats(ctx context.Context, userID string) (*model.WeeklyStats, error) {
	query := `SELECT COUNT(*) FROM user_solutions
	          WHERE user_id = $1 AND is_correct AND solved_at >= CURRENT_TIMESTAMP - INTERVAL '7 days'`
	stats := &model.WeeklyStats{}
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&stats.SolvedCount); err != nil {
		return nil, fmt.Errorf("pgUserRepository.WeeklyStats: %w", err)
	}
	return stats, nil
}

func (r *pgUserRepository) TopByScore(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	query := `SELECT id, username, score, level FROM users
	          ORDER BY score DESC, created_at ASC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.TopByScore: %w", err)
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Score, &e.Level); err != nil {
			return nil, fmt.Errorf("pgUserRepository.TopByScore scan: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.TopByScore rows.Err: %w", err)
	}
	return entries, nil
}
