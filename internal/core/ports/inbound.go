package ports

import (
	"context"
	"io"

	"notes-assistant/internal/core/domain"
)

// AttachmentIngestor is the inbound contract for the upload pipeline.
type AttachmentIngestor interface {
	Upload(ctx context.Context, userID int64, filename, contentType string, body io.Reader) (domain.UploadResult, error)
}

// NoteService is the inbound read/delete model for notes.
type NoteService interface {
	Get(ctx context.Context, id int64) (*domain.Note, error)
	AttachmentFile(ctx context.Context, id int64) (io.ReadCloser, string, error)
	Search(ctx context.Context, userID int64, term string) ([]domain.NoteSearchResult, error)
	Clear(ctx context.Context, userID int64) (int64, error)
}

// ChatService answers a question against the user's stored notes.
type ChatService interface {
	Answer(ctx context.Context, userID int64, question string) (string, error)
}

// TaskService is the inbound contract for task tracking.
type TaskService interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	List(ctx context.Context, userID int64, status string) ([]domain.Task, error)
	Complete(ctx context.Context, id int64) (*domain.Task, error)
}

// Transcriber turns an uploaded voice note into text.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, body io.Reader) (string, error)
}

// SummaryBackfiller retries summaries that degraded during upload.
type SummaryBackfiller interface {
	ProcessNote(ctx context.Context, noteID int64) error
}
