package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"notes-assistant/internal/core/domain"
	"notes-assistant/internal/core/ports"
)

type TaskUseCase struct {
	repo ports.TaskRepository
}

func NewTaskUseCase(repo ports.TaskRepository) *TaskUseCase {
	return &TaskUseCase{repo: repo}
}

func (uc *TaskUseCase) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create task", errors.New("title is required"))
	}
	if task.UserID <= 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create task", errors.New("user_id is required"))
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusOpen
	}
	if task.Status != domain.TaskStatusOpen {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create task", fmt.Errorf("tasks start as %s", domain.TaskStatusOpen))
	}

	if err := uc.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (uc *TaskUseCase) List(ctx context.Context, userID int64, status string) ([]domain.Task, error) {
	if status != "" && status != string(domain.TaskStatusOpen) && status != string(domain.TaskStatusDone) {
		return nil, domain.WrapError(domain.ErrInvalidInput, "list tasks", fmt.Errorf("unknown status %q", status))
	}
	tasks, err := uc.repo.List(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (uc *TaskUseCase) Complete(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := uc.repo.Complete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}
	return task, nil
}
