package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"playex_v2/internal/common"
	"playex_v2/internal/common/security"
	"playex_v2/internal/domain/model"
	"playex_v2/internal/domain/repository"
	"playex_v2/internal/platform/config"
	"playex_v2/internal/platform/logger"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	config.Load()
	logger.Log = zap.NewNop()
	security.InitJWT()
	os.Exit(m.Run())
}

// --- fake repositories -------------------------------------------------

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range f.users {
		if user.TelegramID != nil && u.TelegramID != nil && *user.TelegramID == *u.TelegramID {
			return fmt.Errorf("duplicate tg_id: %w", common.ErrConflict)
		}
		if user.Username != nil && u.Username != nil && *user.Username == *u.Username {
			return fmt.Errorf("duplicate username: %w", common.ErrConflict)
		}
		if user.Email != nil && u.Email != nil && *user.Email == *u.Email {
			return fmt.Errorf("duplicate email: %w", common.ErrConflict)
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email != nil && *u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username != nil && *u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	for _, u := range f.users {
		if u.TelegramID != nil && *u.TelegramID == tgID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) Stats(ctx context.Context, userID string) (*model.UserStats, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &model.UserStats{Score: u.Score, Level: u.Level, SolvedCount: u.SolvedCount}, nil
}

func (f *fakeUserRepo) WeeklyStats(ctx context.Context, userID string) (*model.WeeklyStats, error) {
	if _, ok := f.users[userID]; !ok {
		return nil, common.ErrNotFound
	}
	return &model.WeeklyStats{}, nil
}

func (f *fakeUserRepo) TopByScore(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	entries := []model.LeaderboardEntry{}
	for _, u := range f.users {
		if len(entries) == limit {
			break
		}
		entries = append(entries, model.LeaderboardEntry{UserID: u.ID, Score: u.Score, Level: u.Level})
	}
	return entries, nil
}

type fakeProblemRepo struct {
	problems   map[string]*model.Problem
	categories []model.Category
}

func newFakeProblemRepo(problems ...*model.Problem) *fakeProblemRepo {
	repo := &fakeProblemRepo{problems: map[string]*model.Problem{}}
	for _, p := range problems {
		repo.problems[p.ID] = p
	}
	return repo
}

func (f *fakeProblemRepo) ListCategories(ctx context.Context, subject model.Subject) ([]model.Category, error) {
	out := []model.Category{}
	for _, c := range f.categories {
		if subject == "" || c.Subject == subject {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeProblemRepo) FindCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			return &f.categories[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeProblemRepo) FindProblemByID(ctx context.Context, id string) (*model.Problem, error) {
	if p, ok := f.problems[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeProblemRepo) ListProblems(ctx context.Context, filter repository.ProblemFilter) ([]model.Problem, error) {
	out := []model.Problem{}
	for _, p := range f.problems {
		if filter.Subject != "" && p.Subject != filter.Subject {
			continue
		}
		if filter.Difficulty != "" && p.Difficulty != filter.Difficulty {
			continue
		}
		if filter.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != filter.CategoryID) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProblemRepo) RandomProblems(ctx context.Context, subject model.Subject, categoryID string, limit int) ([]model.Problem, error) {
	out := []model.Problem{}
	for _, p := range f.problems {
		if len(out) == limit {
			break
		}
		if p.Subject != subject {
			continue
		}
		if categoryID != "" && (p.CategoryID == nil || *p.CategoryID != categoryID) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

// fakeSolutionRepo implements the ledger in memory. Setting creditErr or
// appendErr forces that call to fail, which is how tests simulate a lost
// credit race (common.ErrConflict) or a storage outage.
type fakeSolutionRepo struct {
	users     *fakeUserRepo
	attempts  []model.Solution
	credited  map[string]bool
	creditErr error
	appendErr error
}

func newFakeSolutionRepo(users *fakeUserRepo) *fakeSolutionRepo {
	return &fakeSolutionRepo{users: users, credited: map[string]bool{}}
}

func creditKey(userID, problemID string) string {
	return userID + "|" + problemID
}

func (f *fakeSolutionRepo) AppendAttempt(ctx context.Context, sol *model.Solution) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.attempts = append(f.attempts, *sol)
	return nil
}

func (f *fakeSolutionRepo) CreditSolve(ctx context.Context, sol *model.Solution, points int) (int, int, error) {
	if f.creditErr != nil {
		return 0, 0, f.creditErr
	}
	key := creditKey(sol.UserID, sol.ProblemID)
	if f.credited[key] {
		return 0, 0, fmt.Errorf("solution already credited: %w", common.ErrConflict)
	}
	user, ok := f.users.users[sol.UserID]
	if !ok {
		return 0, 0, common.ErrNotFound
	}
	f.credited[key] = true
	f.attempts = append(f.attempts, *sol)
	user.Score += points
	user.Level = model.LevelForScore(user.Score)
	user.SolvedCount++
	return user.Score, user.Level, nil
}

func (f *fakeSolutionRepo) HasCredited(ctx context.Context, userID, problemID string) (bool, error) {
	return f.credited[creditKey(userID, problemID)], nil
}

type fakeTaskRepo struct {
	tasks []model.Task
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *model.Task) error {
	task.CreatedAt = time.Now()
	f.tasks = append(f.tasks, *task)
	return nil
}

func (f *fakeTaskRepo) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	out := []model.Task{}
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Complete(ctx context.Context, userID, taskID string) (*model.Task, error) {
	for i := range f.tasks {
		if f.tasks[i].ID == taskID && f.tasks[i].UserID == userID {
			now := time.Now()
			f.tasks[i].Done = true
			f.tasks[i].CompletedAt = &now
			clone := f.tasks[i]
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeTaskRepo) Delete(ctx context.Context, userID, taskID string) error {
	for i := range f.tasks {
		if f.tasks[i].ID == taskID && f.tasks[i].UserID == userID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

// fakePracticeStore round-trips sessions through JSON the way the Redis
// store does, so serialization mistakes surface in tests too.
type fakePracticeStore struct {
	sessions map[string][]byte
}

func newFakePracticeStore() *fakePracticeStore {
	return &fakePracticeStore{sessions: map[string][]byte{}}
}

func (f *fakePracticeStore) Save(ctx context.Context, session *model.PracticeSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	f.sessions[session.ID] = payload
	return nil
}

func (f *fakePracticeStore) Find(ctx context.Context, id string) (*model.PracticeSession, error) {
	payload, ok := f.sessions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	session := &model.PracticeSession{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (f *fakePracticeStore) Delete(ctx context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}
