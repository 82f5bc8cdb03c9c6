package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"notes-assistant/internal/core/ports"
)

type TranscribeUseCase struct {
	storage ports.FileStorage
	ai      ports.AIGateway
	logger  *slog.Logger
}

func NewTranscribeUseCase(storage ports.FileStorage, ai ports.AIGateway, logger *slog.Logger) *TranscribeUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &TranscribeUseCase{storage: storage, ai: ai, logger: logger}
}

// Transcribe stores the voice note under a temporary name for the
// duration of the model call, then removes it.
func (uc *TranscribeUseCase) Transcribe(ctx context.Context, filename string, body io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".ogg"
	}
	key := "temp_" + uuid.NewString() + ext

	if _, err := uc.storage.Save(ctx, key, body); err != nil {
		return "", fmt.Errorf("save voice file: %w", err)
	}
	defer func() {
		if err := uc.storage.Remove(ctx, key); err != nil {
			uc.logger.Warn("remove temp voice file failed",
				slog.String("file", key),
				slog.String("error", err.Error()),
			)
		}
	}()

	return uc.ai.Transcribe(ctx, uc.storage.Path(key)), nil
}
