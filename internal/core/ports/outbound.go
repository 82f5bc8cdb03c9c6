package ports

import (
	"context"
	"io"

	"notes-assistant/internal/core/domain"
)

// NoteRepository persists notes and serves note lookups.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	GetByID(ctx context.Context, id int64) (*domain.Note, error)
	Search(ctx context.Context, userID int64, term string, limit int) ([]domain.Note, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]domain.Note, error)
	UpdateSummary(ctx context.Context, id int64, summary string) error
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}

// TaskRepository persists tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	List(ctx context.Context, userID int64, status string) ([]domain.Task, error)
	Complete(ctx context.Context, id int64) (*domain.Task, error)
}

// FileStorage stores uploaded attachments on disk.
type FileStorage interface {
	Save(ctx context.Context, key string, data io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
	Path(key string) string
}

// TextExtractor pulls plain text out of a stored attachment.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// AIGateway wraps the hosted-model calls. Every method degrades to a
// fallback string instead of returning an error.
type AIGateway interface {
	// Summarize returns a one-sentence summary and whether the call
	// degraded to a fallback string.
	Summarize(ctx context.Context, text string) (string, bool)
	Answer(ctx context.Context, contextText, question string) string
	Transcribe(ctx context.Context, path string) string
}

// Summarizer is the error-returning model call used by the backfill
// worker, which wants to retry on failure instead of degrading.
type Summarizer interface {
	SummarizeText(ctx context.Context, text string) (string, error)
}

// SummaryQueue carries note ids whose summaries need a retry.
type SummaryQueue interface {
	PublishSummaryPending(ctx context.Context, noteID int64) error
	SubscribeSummaryPending(ctx context.Context, handler func(context.Context, int64) error) error
}
