package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"notes-assistant/internal/core/domain"
)

func TestTaskRepositoryCreateDefaultsStatusOpen(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("INSERT INTO tasks").
		WithArgs(int64(123), "buy milk", string(domain.TaskStatusOpen), nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	repo := NewTaskRepository(db)
	task := &domain.Task{UserID: 123, Title: "buy milk"}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if task.Status != domain.TaskStatusOpen {
		t.Fatalf("expected open status, got %s", task.Status)
	}
	if task.ID != 1 {
		t.Fatalf("expected id 1, got %d", task.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTaskRepositoryListFiltersByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "status", "due_at", "note_id", "created_at", "completed_at"}).
		AddRow(int64(1), int64(123), "buy milk", "open", nil, nil, time.Now(), nil)

	mock.ExpectQuery("FROM tasks").
		WithArgs(int64(123), "open").
		WillReturnRows(rows)

	repo := NewTaskRepository(db)
	tasks, err := repo.List(context.Background(), 123, "open")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTaskRepositoryCompleteSetsDoneAndTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	completed := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "status", "due_at", "note_id", "created_at", "completed_at"}).
		AddRow(int64(2), int64(123), "buy milk", "done", nil, nil, time.Now(), completed)

	mock.ExpectQuery("UPDATE tasks").
		WithArgs(int64(2), string(domain.TaskStatusDone), sqlmock.AnyArg()).
		WillReturnRows(rows)

	repo := NewTaskRepository(db)
	task, err := repo.Complete(context.Background(), 2)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if task.Status != domain.TaskStatusDone {
		t.Fatalf("expected done status, got %s", task.Status)
	}
	if task.CompletedAt == nil {
		t.Fatalf("expected completed_at set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTaskRepositoryCompleteMissingReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("UPDATE tasks").
		WithArgs(int64(99), string(domain.TaskStatusDone), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "status", "due_at", "note_id", "created_at", "completed_at"}))

	repo := NewTaskRepository(db)
	_, err = repo.Complete(context.Background(), 99)
	if !domain.IsKind(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected task-not-found kind, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
