package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"playex_v2/internal/common"
	"playex_v2/internal/domain/model"
)

// ProblemFilter narrows ListProblems. Zero values mean "no filter".
type ProblemFilter struct {
	Subject    model.Subject
	Difficulty model.ProblemDifficulty
	CategoryID string
}

type ProblemRepository interface {
	ListCategories(ctx context.Context, subject model.Subject) ([]model.Category, error)
	FindCategoryByID(ctx context.Context, id string) (*model.Category, error)

	FindProblemByID(ctx context.Context, id string) (*model.Problem, error)
	ListProblems(ctx context.Context, filter ProblemFilter) ([]model.Problem, error)
	RandomProblems(ctx context.Context, subject model.Subject, categoryID string, limit int) ([]model.Problem, error)
}

type pgProblemRepository struct {
	db *sql.DB
}

func NewPgProblemRepository(db *sql.DB) ProblemRepository {
	return &pgProblemRepository{db: db}
}

func (r *pgProblemRepository) ListCategories(ctx context.Context, subject model.Subject) ([]model.Category, error) {
	query := `SELECT id, name, slug, subject, description, created_at FROM categories`
	args := []interface{}{}
	if subject != "" {
		query += ` WHERE subject = $1`
		args = append(args, subject)
	}
	query += ` ORDER BY subject, name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListCategories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Subject, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgProblemRepository.ListCategories scan: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListCategories rows.Err: %w", err)
	}
	return categories, nil
}

func (r *pgProblemRepository) FindCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	query := `SELECT id, name, slug, subject, description, created_at FROM categories WHERE id = $1`
	c := &model.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Slug, &c.Subject, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProblemRepository.FindCategoryByID: %w", err)
	}
	return c, nil
}

const problemColumns = `id, title, slug, description, subject, difficulty, category_id, correct_answer, points, created_at, updated_at`

func scanProblem(scan func(...interface{}) error) (*model.Problem, error) {
	p := &model.Problem{}
	err := scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.Subject, &p.Difficulty,
		&p.CategoryID, &p.CorrectAnswer, &p.Points, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgProblemRepository) FindProblemByID(ctx context.Context, id string) (*model.Problem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+problemColumns+` FROM problems WHERE id = $1`, id)
	p, err := scanProblem(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProblemRepository.FindProblemByID: %w", err)
	}
	return p, nil
}

func (r *pgProblemRepository) ListProblems(ctx context.Context, filter ProblemFilter) ([]model.Problem, error) {
	var query strings.Builder
	query.WriteString(`SELECT ` + problemColumns + ` FROM problems`)

	var conditions []string
	var args []interface{}
	argID := 1

	if filter.Subject != "" {
		conditions = append(conditions, fmt.Sprintf("subject = $%d", argID))
		args = append(args, filter.Subject)
		argID++
	}
	if filter.Difficulty != "" {
		conditions = append(conditions, fmt.Sprintf("difficulty = $%d", argID))
		args = append(args, filter.Difficulty)
		argID++
	}
	if filter.CategoryID != "" {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", argID))
		args = append(args, filter.CategoryID)
		argID++
	}
	if len(conditions) > 0 {
		query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	query.WriteString(" ORDER BY created_at ASC")

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListProblems: %w", err)
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		p, err := scanProblem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("pgProblemRepository.ListProblems scan: %w", err)
		}
		problems = append(problems, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListProblems rows.Err: %w", err)
	}
	return problems, nil
}

func (r *pgProblemRepository) RandomProblems(ctx context.Context, subject model.Subject, categoryID string, limit int) ([]model.Problem, error) {
	var query strings.Builder
	query.WriteString(`SELECT ` + problemColumns + ` FROM problems WHERE subject = $1`)
	args := []interface{}{subject}
	if categoryID != "" {
		query.WriteString(" AND category_id = $2")
		args = append(args, categoryID)
	}
	query.WriteString(fmt.Sprintf(" ORDER BY random() LIMIT $%d", len(args)+1))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.RandomProblems: %w", err)
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		p, err := scanProblem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("pgProblemRepository.RandomProblems scan: %w", err)
		}
		problems = append(problems, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.RandomProblems rows.Err: %w", err)
	}
	return problems, nil
}
