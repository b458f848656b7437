package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"playex_v2/internal/common"
	"playex_v2/internal/domain/model"
)

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	ListByUser(ctx context.Context, userID string) ([]model.Task, error)
	Complete(ctx context.Context, userID, taskID string) (*model.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

type pgTaskRepository struct {
	db *sql.DB
}

func NewPgTaskRepository(db *sql.DB) TaskRepository {
	return &pgTaskRepository{db: db}
}

func (r *pgTaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `INSERT INTO tasks (id, user_id, title) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, task.ID, task.UserID, task.Title); err != nil {
		return fmt.Errorf("pgTaskRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTaskRepository) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	query := `SELECT id, user_id, title, done, created_at, completed_at
	          FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgTaskRepository.ListByUser: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Done, &t.CreatedAt, &t.CompletedAt); err != nil {
			return nil, fmt.Errorf("pgTaskRepository.ListByUser scan: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTaskRepository.ListByUser rows.Err: %w", err)
	}
	return tasks, nil
}

func (r *pgTaskRepository) Complete(ctx context.Context, userID, taskID string) (*model.Task, error) {
	query := `UPDATE tasks SET done = TRUE, completed_at = CURRENT_TIMESTAMP
	          WHERE id = $1 AND user_id = $2
	          RETURNING id, user_id, title, done, created_at, completed_at`
	t := &model.Task{}
	err := r.db.QueryRowContext(ctx, query, taskID, userID).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Done, &t.CreatedAt, &t.CompletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTaskRepository.Complete: %w", err)
	}
	return t, nil
}

func (r *pgTaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
