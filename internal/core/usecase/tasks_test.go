package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"notes-assistant/internal/core/domain"
)

type taskRepoFake struct {
	created   *domain.Task
	listed    []domain.Task
	gotStatus string
	completed *domain.Task
	err       error
}

func (f *taskRepoFake) Create(_ context.Context, task *domain.Task) error {
	if f.err != nil {
		return f.err
	}
	task.ID = 9
	copyTask := *task
	f.created = &copyTask
	return nil
}

func (f *taskRepoFake) List(_ context.Context, _ int64, status string) ([]domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotStatus = status
	return f.listed, nil
}

func (f *taskRepoFake) Complete(_ context.Context, id int64) (*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.completed == nil || f.completed.ID != id {
		return nil, domain.WrapError(domain.ErrTaskNotFound, "complete task", errors.New("no rows"))
	}
	return f.completed, nil
}

func TestTaskCreateDefaultsToOpen(t *testing.T) {
	repo := &taskRepoFake{}
	uc := NewTaskUseCase(repo)

	task, err := uc.Create(context.Background(), &domain.Task{UserID: 7, Title: "  buy milk  "})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if task.ID != 9 {
		t.Fatalf("expected assigned id, got %d", task.ID)
	}
	if task.Title != "buy milk" {
		t.Fatalf("expected trimmed title, got %q", task.Title)
	}
	if task.Status != domain.TaskStatusOpen {
		t.Fatalf("expected open status, got %s", task.Status)
	}
}

func TestTaskCreateValidation(t *testing.T) {
	uc := NewTaskUseCase(&taskRepoFake{})

	cases := []struct {
		name string
		task domain.Task
	}{
		{"empty title", domain.Task{UserID: 7, Title: "   "}},
		{"missing user", domain.Task{Title: "buy milk"}},
		{"done at creation", domain.Task{UserID: 7, Title: "buy milk", Status: domain.TaskStatusDone}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := tc.task
			if _, err := uc.Create(context.Background(), &task); !domain.IsKind(err, domain.ErrInvalidInput) {
				t.Fatalf("expected invalid-input kind, got %v", err)
			}
		})
	}
}

func TestTaskListStatusFilter(t *testing.T) {
	repo := &taskRepoFake{listed: []domain.Task{{ID: 1, Title: "a"}}}
	uc := NewTaskUseCase(repo)

	tasks, err := uc.List(context.Background(), 7, "open")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 1 || repo.gotStatus != "open" {
		t.Fatalf("expected filtered list, got %d tasks status %q", len(tasks), repo.gotStatus)
	}

	if _, err := uc.List(context.Background(), 7, "pending"); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid-input kind for unknown status, got %v", err)
	}
}

func TestTaskComplete(t *testing.T) {
	done := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	repo := &taskRepoFake{completed: &domain.Task{ID: 9, Status: domain.TaskStatusDone, CompletedAt: &done}}
	uc := NewTaskUseCase(repo)

	task, err := uc.Complete(context.Background(), 9)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if task.Status != domain.TaskStatusDone || task.CompletedAt == nil {
		t.Fatalf("expected done task, got %+v", task)
	}

	if _, err := uc.Complete(context.Background(), 99); !domain.IsKind(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected not-found kind, got %v", err)
	}
}
