package service

import (
	"context"
	"fmt"
	"time"

	"playex_v2/internal/app/grading"
	"playex_v2/internal/common"
	"playex_v2/internal/domain/model"
	"playex_v2/internal/domain/repository"
	"playex_v2/internal/platform/config"
	"playex_v2/internal/platform/metrics"

	"github.com/google/uuid"
)

// practiceGrace keeps a finished or expired session readable a little
// longer so the summary endpoint still works after the window closes.
const practiceGrace = 10 * time.Minute

// PracticeService runs timed practice: a batch of random problems answered
// against a deadline. Practice answers are graded with the same rules as
// real submissions but are never credited and never touch the user row.
type PracticeService struct {
	problemRepo repository.ProblemRepository
	store       repository.PracticeStore
}

func NewPracticeService(problemRepo repository.ProblemRepository, store repository.PracticeStore) *PracticeService {
	return &PracticeService{problemRepo: problemRepo, store: store}
}

type StartPracticeRequest struct {
	Subject    model.Subject `json:"subject"`
	CategoryID string        `json:"category_id,omitempty"`
	Minutes    int           `json:"minutes,omitempty"`
}

type StartPracticeResponse struct {
	SessionID string          `json:"session_id"`
	Deadline  time.Time       `json:"deadline"`
	Problems  []model.Problem `json:"problems"`
}

func (s *PracticeService) Start(ctx context.Context, user *model.User, req StartPracticeRequest) (*StartPracticeResponse, error) {
	if !req.Subject.Valid() {
		return nil, fmt.Errorf("unknown subject %q: %w", req.Subject, common.ErrValidation)
	}
	minutes := req.Minutes
	if minutes <= 0 {
		minutes = config.AppConfig.PracticeDefaultMinutes
	}

	problems, err := s.problemRepo.RandomProblems(ctx, req.Subject, req.CategoryID, config.AppConfig.PracticeProblemCount)
	if err != nil {
		return nil, fmt.Errorf("failed to pick practice problems: %w", err)
	}
	if len(problems) == 0 {
		return nil, fmt.Errorf("no problems found for practice: %w", common.ErrNotFound)
	}

	now := time.Now()
	session := &model.PracticeSession{
		ID:         uuid.NewString(),
		Subject:    req.Subject,
		ProblemIDs: make([]string, 0, len(problems)),
		Answered:   make(map[string]bool),
		StartedAt:  now,
		Deadline:   now.Add(time.Duration(minutes) * time.Minute),
	}
	if user != nil {
		session.UserID = &user.ID
	}
	if req.CategoryID != "" {
		session.CategoryID = &req.CategoryID
	}
	for _, p := range problems {
		session.ProblemIDs = append(session.ProblemIDs, p.ID)
	}

	if err := s.store.Save(ctx, session, time.Until(session.Deadline)+practiceGrace); err != nil {
		return nil, fmt.Errorf("failed to save practice session: %w", err)
	}

	metrics.PracticeSessionsStarted.Inc()
	return &StartPracticeResponse{
		SessionID: session.ID,
		Deadline:  session.Deadline,
		Problems:  problems,
	}, nil
}

type PracticeAnswerRequest struct {
	ProblemID string `json:"problem_id"`
	Answer    string `json:"answer"`
}

type PracticeAnswerResponse struct {
	Correct       bool    `json:"correct"`
	CorrectAnswer *string `json:"correct_answer,omitempty"`
	Remaining     int     `json:"remaining"`
}

func (s *PracticeService) Answer(ctx context.Context, sessionID string, req PracticeAnswerRequest) (*PracticeAnswerResponse, error) {
	if req.ProblemID == "" || req.Answer == "" {
		return nil, fmt.Errorf("problem_id and answer are required: %w", common.ErrValidation)
	}

	session, err := s.store.Find(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load practice session: %w", err)
	}
	now := time.Now()
	if session.FinishedAt != nil || session.Expired(now) {
		return nil, fmt.Errorf("practice window is closed: %w", common.ErrForbidden)
	}
	if !containsID(session.ProblemIDs, req.ProblemID) {
		return nil, fmt.Errorf("problem is not part of this session: %w", common.ErrBadRequest)
	}
	if solved, attempted := session.Answered[req.ProblemID]; attempted && solved {
		return nil, fmt.Errorf("problem already solved in this session: %w", common.ErrConflict)
	}

	problem, err := s.problemRepo.FindProblemByID(ctx, req.ProblemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load problem: %w", err)
	}

	correct := grading.Grade(problem.CorrectAnswer, req.Answer)
	session.Answered[req.ProblemID] = correct
	if err := s.store.Save(ctx, session, time.Until(session.Deadline)+practiceGrace); err != nil {
		return nil, fmt.Errorf("failed to save practice session: %w", err)
	}

	resp := &PracticeAnswerResponse{Correct: correct, Remaining: remaining(session)}
	if !correct {
		answer := problem.CorrectAnswer
		resp.CorrectAnswer = &answer
	}
	return resp, nil
}

func (s *PracticeService) Get(ctx context.Context, sessionID string) (*model.PracticeSession, error) {
	session, err := s.store.Find(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load practice session: %w", err)
	}
	return session, nil
}

func (s *PracticeService) Finish(ctx context.Context, sessionID string) (*model.PracticeSummary, error) {
	session, err := s.store.Find(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load practice session: %w", err)
	}

	now := time.Now()
	if session.FinishedAt == nil {
		session.FinishedAt = &now
		if err := s.store.Save(ctx, session, practiceGrace); err != nil {
			return nil, fmt.Errorf("failed to save practice session: %w", err)
		}
	}

	solved := 0
	for _, ok := range session.Answered {
		if ok {
			solved++
		}
	}
	elapsed := session.FinishedAt.Sub(session.StartedAt)
	if deadlineElapsed := session.Deadline.Sub(session.StartedAt); elapsed > deadlineElapsed {
		elapsed = deadlineElapsed
	}
	return &model.PracticeSummary{
		SessionID:      session.ID,
		Attempted:      len(session.Answered),
		Solved:         solved,
		Total:          len(session.ProblemIDs),
		ElapsedSeconds: int(elapsed.Seconds()),
		TimedOut:       session.FinishedAt.After(session.Deadline),
	}, nil
}

func remaining(session *model.PracticeSession) int {
	left := 0
	for _, id := range session.ProblemIDs {
		if solved, attempted := session.Answered[id]; !attempted || !solved {
			left++
		}
	}
	return left
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
