package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"notes-assistant/internal/core/domain"
	"notes-assistant/internal/core/ports"
)

const (
	chatRecentNotes   = 3
	chatNoteTextLimit = 1500
	chatKeywordMinLen = 4
)

type ChatUseCase struct {
	repo ports.NoteRepository
	ai   ports.AIGateway
}

func NewChatUseCase(repo ports.NoteRepository, ai ports.AIGateway) *ChatUseCase {
	return &ChatUseCase{repo: repo, ai: ai}
}

// Answer builds the model context from notes matching the question,
// falling back to the most recent notes. With nothing stored at all the
// fixed message is returned and the model is not called.
func (uc *ChatUseCase) Answer(ctx context.Context, userID int64, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "chat", errors.New("question is required"))
	}

	notes, err := uc.matchNotes(ctx, userID, question)
	if err != nil {
		return "", err
	}
	if len(notes) == 0 {
		notes, err = uc.repo.ListRecent(ctx, userID, chatRecentNotes)
		if err != nil {
			return "", fmt.Errorf("list recent notes: %w", err)
		}
	}
	if len(notes) == 0 {
		return domain.MsgNoNotes, nil
	}

	return uc.ai.Answer(ctx, buildChatContext(notes), question), nil
}

func (uc *ChatUseCase) matchNotes(ctx context.Context, userID int64, question string) ([]domain.Note, error) {
	notes, err := uc.repo.Search(ctx, userID, question, chatRecentNotes)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	if len(notes) > 0 {
		return notes, nil
	}

	for _, keyword := range chatKeywords(question) {
		notes, err = uc.repo.Search(ctx, userID, keyword, chatRecentNotes)
		if err != nil {
			return nil, fmt.Errorf("search notes: %w", err)
		}
		if len(notes) > 0 {
			return notes, nil
		}
	}
	return nil, nil
}

func chatKeywords(question string) []string {
	fields := strings.Fields(question)
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?:;\"'")
		if len([]rune(f)) >= chatKeywordMinLen {
			keywords = append(keywords, f)
		}
	}
	return keywords
}

func buildChatContext(notes []domain.Note) string {
	var b strings.Builder
	for i, note := range notes {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Note %d (%s):\n", note.ID, note.CreatedAt.Format("2006-01-02"))
		b.WriteString(noteContextText(note))
	}
	return b.String()
}

func noteContextText(note domain.Note) string {
	if note.Summary != "" && note.Summary != domain.MsgSummaryUnavailable && note.Summary != domain.MsgNoText {
		return note.Summary
	}
	text := strings.TrimSpace(note.FullText)
	runes := []rune(text)
	if len(runes) > chatNoteTextLimit {
		return string(runes[:chatNoteTextLimit])
	}
	return text
}
