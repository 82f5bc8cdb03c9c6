package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"notes-assistant/internal/core/domain"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.Status == "" {
		task.Status = domain.TaskStatusOpen
	}
	row := r.db.QueryRowContext(ctx, `
INSERT INTO tasks (user_id, title, status, due_at, note_id)
VALUES ($1,$2,$3,$4,$5)
RETURNING id, created_at
`, task.UserID, task.Title, string(task.Status), task.DueAt, task.NoteID)
	if err := row.Scan(&task.ID, &task.CreatedAt); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// List returns the owner's tasks ordered by due date, tasks without a
// due date last. An empty status means all statuses.
func (r *TaskRepository) List(ctx context.Context, userID int64, status string) ([]domain.Task, error) {
	query := `
SELECT id, user_id, title, status, due_at, note_id, created_at, completed_at
FROM tasks
WHERE user_id = $1
`
	args := []any{userID}
	if status != "" {
		query += "AND status = $2\n"
		args = append(args, status)
	}
	query += "ORDER BY due_at ASC NULLS LAST, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

// Complete marks the task done. COALESCE keeps the original completion
// timestamp when the task was already done, so the open->done transition
// sets it exactly once.
func (r *TaskRepository) Complete(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
UPDATE tasks
SET status = $2, completed_at = COALESCE(completed_at, $3)
WHERE id = $1
RETURNING id, user_id, title, status, due_at, note_id, created_at, completed_at
`, id, string(domain.TaskStatusDone), time.Now().UTC())

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrTaskNotFound, "complete task", err)
		}
		return nil, fmt.Errorf("complete task: %w", err)
	}
	return &task, nil
}

type taskScanner interface {
	Scan(dest ...any) error
}

func scanTask(row taskScanner) (domain.Task, error) {
	var task domain.Task
	var status string
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&status,
		&task.DueAt,
		&task.NoteID,
		&task.CreatedAt,
		&task.CompletedAt,
	)
	if err != nil {
		return domain.Task{}, err
	}
	task.Status = domain.TaskStatus(status)
	return task, nil
}
