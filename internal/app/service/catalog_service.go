package service

import (
	"context"
	"fmt"

	"playex_v2/internal/common"
	"playex_v2/internal/domain/model"
	"playex_v2/internal/domain/repository"
)

// CatalogService is the read-only problem catalog: categories, filtered
// listings and the random pick.
type CatalogService struct {
	problemRepo repository.ProblemRepository
}

func NewCatalogService(problemRepo repository.ProblemRepository) *CatalogService {
	return &CatalogService{problemRepo: problemRepo}
}

func (s *CatalogService) ListCategories(ctx context.Context, subject model.Subject) ([]model.Category, error) {
	if subject != "" && !subject.Valid() {
		return nil, fmt.Errorf("unknown subject %q: %w", subject, common.ErrValidation)
	}
	categories, err := s.problemRepo.ListCategories(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) ListProblems(ctx context.Context, filter repository.ProblemFilter) ([]model.Problem, error) {
	if filter.Subject != "" && !filter.Subject.Valid() {
		return nil, fmt.Errorf("unknown subject %q: %w", filter.Subject, common.ErrValidation)
	}
	if filter.Difficulty != "" && !filter.Difficulty.Valid() {
		return nil, fmt.Errorf("unknown difficulty %q: %w", filter.Difficulty, common.ErrValidation)
	}
	problems, err := s.problemRepo.ListProblems(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	return problems, nil
}

func (s *CatalogService) GetProblem(ctx context.Context, id string) (*model.Problem, error) {
	problem, err := s.problemRepo.FindProblemByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load problem: %w", err)
	}
	return problem, nil
}

// RandomProblem picks one problem at random from a subject, optionally
// narrowed to a category.
func (s *CatalogService) RandomProblem(ctx context.Context, subject model.Subject, categoryID string) (*model.Problem, error) {
	if !subject.Valid() {
		return nil, fmt.Errorf("unknown subject %q: %w", subject, common.ErrValidation)
	}
	problems, err := s.problemRepo.RandomProblems(ctx, subject, categoryID, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to pick random problem: %w", err)
	}
	if len(problems) == 0 {
		return nil, fmt.Errorf("no problems found: %w", common.ErrNotFound)
	}
	return &problems[0], nil
}
