package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"playex_v2/internal/app/grading"
	"playex_v2/internal/common"
	"playex_v2/internal/domain/model"
	"playex_v2/internal/domain/repository"
	"playex_v2/internal/platform/logger"
	"playex_v2/internal/platform/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SolveService is the progress ledger: it grades a submission and applies
// score/level/solved-count credit at most once per (user, problem) pair.
type SolveService struct {
	problemRepo  repository.ProblemRepository
	solutionRepo repository.SolutionRepository
}

func NewSolveService(problemRepo repository.ProblemRepository, solutionRepo repository.SolutionRepository) *SolveService {
	return &SolveService{
		problemRepo:  problemRepo,
		solutionRepo: solutionRepo,
	}
}

type SolveRequest struct {
	ProblemID string `json:"problem_id"`
	Answer    string `json:"answer"`
}

// Solve grades req for the given user. A nil user is a guest: the answer is
// graded but nothing is persisted and no credit can be earned.
func (s *SolveService) Solve(ctx context.Context, user *model.User, req SolveRequest) (*model.SolveResult, error) {
	if req.ProblemID == "" {
		return nil, fmt.Errorf("problem_id is required: %w", common.ErrValidation)
	}
	if strings.TrimSpace(req.Answer) == "" {
		return nil, fmt.Errorf("answer is required: %w", common.ErrValidation)
	}

	problem, err := s.problemRepo.FindProblemByID(ctx, req.ProblemID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("problem not found: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load problem: %w", err)
	}

	correct := grading.Grade(problem.CorrectAnswer, req.Answer)

	if user == nil {
		metrics.SubmissionsGraded.WithLabelValues("guest").Inc()
		return guestResult(problem, correct), nil
	}

	alreadySolved, err := s.solutionRepo.HasCredited(ctx, user.ID, problem.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check solved state: %w", err)
	}
	if alreadySolved {
		metrics.SubmissionsGraded.WithLabelValues("already_solved").Inc()
		return &model.SolveResult{Correct: correct, AlreadySolved: true}, nil
	}

	if !correct {
		attempt := &model.Solution{
			ID:              uuid.NewString(),
			UserID:          user.ID,
			ProblemID:       problem.ID,
			SubmittedAnswer: req.Answer,
			IsCorrect:       false,
		}
		if err := s.solutionRepo.AppendAttempt(ctx, attempt); err != nil {
			return nil, fmt.Errorf("failed to record attempt: %w", err)
		}
		metrics.SubmissionsGraded.WithLabelValues("incorrect").Inc()
		answer := problem.CorrectAnswer
		return &model.SolveResult{Correct: false, CorrectAnswer: &answer}, nil
	}

	solution := &model.Solution{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		ProblemID:       problem.ID,
		SubmittedAnswer: req.Answer,
		IsCorrect:       true,
	}
	newScore, newLevel, err := s.solutionRepo.CreditSolve(ctx, solution, problem.Points)
	if err != nil {
		// A concurrent submission for the same pair may commit its credit
		// between HasCredited and here. The unique index turns that into
		// ErrConflict and the loser reports already solved.
		if errors.Is(err, common.ErrConflict) {
			metrics.SubmissionsGraded.WithLabelValues("already_solved").Inc()
			return &model.SolveResult{Correct: true, AlreadySolved: true}, nil
		}
		return nil, fmt.Errorf("failed to credit solution: %w", err)
	}

	metrics.SubmissionsGraded.WithLabelValues("correct").Inc()
	metrics.PointsAwarded.Add(float64(problem.Points))
	logger.Log.Info("solution credited",
		zap.String("user_id", user.ID),
		zap.String("problem_id", problem.ID),
		zap.Int("points", problem.Points),
		zap.Int("new_score", newScore),
	)

	return &model.SolveResult{
		Correct:      true,
		PointsEarned: problem.Points,
		NewScore:     &newScore,
		NewLevel:     &newLevel,
	}, nil
}

func guestResult(problem *model.Problem, correct bool) *model.SolveResult {
	result := &model.SolveResult{Correct: correct}
	if !correct {
		answer := problem.CorrectAnswer
		result.CorrectAnswer = &answer
	}
	return result
}
