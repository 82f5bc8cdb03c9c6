package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"notes-assistant/internal/core/domain"
	"notes-assistant/internal/core/ports"
)

// ExecuteFunc runs fn under whatever retry policy the caller wires in.
type ExecuteFunc func(ctx context.Context, operation string, fn func(context.Context) error) error

type SummaryBackfillUseCase struct {
	repo       ports.NoteRepository
	summarizer ports.Summarizer
	execute    ExecuteFunc
	logger     *slog.Logger
}

func NewSummaryBackfillUseCase(
	repo ports.NoteRepository,
	summarizer ports.Summarizer,
	execute ExecuteFunc,
	logger *slog.Logger,
) *SummaryBackfillUseCase {
	if execute == nil {
		execute = func(ctx context.Context, _ string, fn func(context.Context) error) error {
			return fn(ctx)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryBackfillUseCase{
		repo:       repo,
		summarizer: summarizer,
		execute:    execute,
		logger:     logger,
	}
}

// ProcessNote retries the summary for one note. Notes that vanished,
// hold no text, or were already summarized are skipped without error so
// the queue message is not redelivered.
func (uc *SummaryBackfillUseCase) ProcessNote(ctx context.Context, noteID int64) error {
	note, err := uc.repo.GetByID(ctx, noteID)
	if err != nil {
		if domain.IsKind(err, domain.ErrNoteNotFound) {
			uc.logger.Info("backfill skipped, note deleted", slog.Int64("note_id", noteID))
			return nil
		}
		return fmt.Errorf("fetch note by id: %w", err)
	}

	if strings.TrimSpace(note.FullText) == "" {
		return nil
	}
	if note.Summary != "" && note.Summary != domain.MsgSummaryUnavailable {
		return nil
	}

	var summary string
	err = uc.execute(ctx, "summarize note", func(ctx context.Context) error {
		s, err := uc.summarizer.SummarizeText(ctx, note.FullText)
		if err != nil {
			return err
		}
		summary = strings.TrimSpace(s)
		return nil
	})
	if err != nil {
		return fmt.Errorf("summarize note %d: %w", noteID, err)
	}
	if summary == "" {
		return nil
	}

	if err := uc.repo.UpdateSummary(ctx, note.ID, summary); err != nil {
		return fmt.Errorf("update summary: %w", err)
	}

	uc.logger.Info("summary backfilled", slog.Int64("note_id", note.ID))
	return nil
}
