package service

import (
	"context"
	"fmt"
	"strings"

	"playex_v2/internal/common"
	"playex_v2/internal/domain/model"
	"playex_v2/internal/domain/repository"

	"github.com/google/uuid"
)

type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

type CreateTaskRequest struct {
	Title string `json:"title"`
}

func (s *TaskService) Create(ctx context.Context, userID string, req CreateTaskRequest) (*model.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", common.ErrValidation)
	}

	task := &model.Task{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  title,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, userID string) ([]model.Task, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Complete(ctx context.Context, userID, taskID string) (*model.Task, error) {
	task, err := s.taskRepo.Complete(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if err := s.taskRepo.Delete(ctx, userID, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
