package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"notes-assistant/internal/core/domain"
	"notes-assistant/internal/core/ports"
)

const textPreviewLimit = 300

type UploadAttachmentUseCase struct {
	repo      ports.NoteRepository
	storage   ports.FileStorage
	extractor ports.TextExtractor
	ai        ports.AIGateway
	queue     ports.SummaryQueue
	logger    *slog.Logger
}

func NewUploadAttachmentUseCase(
	repo ports.NoteRepository,
	storage ports.FileStorage,
	extractor ports.TextExtractor,
	ai ports.AIGateway,
	queue ports.SummaryQueue,
	logger *slog.Logger,
) *UploadAttachmentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadAttachmentUseCase{
		repo:      repo,
		storage:   storage,
		extractor: extractor,
		ai:        ai,
		queue:     queue,
		logger:    logger,
	}
}

func (uc *UploadAttachmentUseCase) Upload(
	ctx context.Context,
	userID int64,
	filename, contentType string,
	body io.Reader,
) (domain.UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	storedName := uuid.NewString() + ext

	size, err := uc.storage.Save(ctx, storedName, body)
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("save attachment: %w", err)
	}

	// Extraction failure never fails the upload; the note is kept with
	// empty text.
	text, err := uc.extractor.Extract(ctx, uc.storage.Path(storedName))
	if err != nil {
		uc.logger.Warn("text extraction failed",
			slog.String("file", storedName),
			slog.String("error", err.Error()),
		)
		text = ""
	}

	summary, degraded := uc.ai.Summarize(ctx, text)

	note := &domain.Note{
		UserID:         userID,
		AttachmentPath: storedName,
		FullText:       text,
		Summary:        summary,
	}
	if err := uc.repo.Create(ctx, note); err != nil {
		return domain.UploadResult{}, fmt.Errorf("create note: %w", err)
	}

	if degraded && strings.TrimSpace(text) != "" && uc.queue != nil {
		if err := uc.queue.PublishSummaryPending(ctx, note.ID); err != nil {
			uc.logger.Warn("summary backfill publish failed",
				slog.Int64("note_id", note.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	uploadTime := note.CreatedAt
	if uploadTime.IsZero() {
		uploadTime = time.Now().UTC()
	}

	return domain.UploadResult{
		Success:          true,
		OriginalFilename: filename,
		StoredFilename:   storedName,
		ContentType:      contentType,
		Size:             size,
		UploadTime:       uploadTime,
		Location:         uc.storage.Path(storedName),
		NoteID:           note.ID,
		TextPreview:      textPreview(text),
	}, nil
}

func textPreview(text string) string {
	runes := []rune(text)
	if len(runes) <= textPreviewLimit {
		return text
	}
	return string(runes[:textPreviewLimit])
}
