package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"notes-assistant/internal/core/domain"
	"notes-assistant/internal/core/ports"
)

const (
	snippetRadius     = 30
	snippetFallback   = 50
	defaultSearchSize = 3
)

type NoteQueryUseCase struct {
	repo        ports.NoteRepository
	storage     ports.FileStorage
	searchLimit int
}

func NewNoteQueryUseCase(repo ports.NoteRepository, storage ports.FileStorage, searchLimit int) *NoteQueryUseCase {
	if searchLimit <= 0 {
		searchLimit = defaultSearchSize
	}
	return &NoteQueryUseCase{repo: repo, storage: storage, searchLimit: searchLimit}
}

func (uc *NoteQueryUseCase) Get(ctx context.Context, id int64) (*domain.Note, error) {
	note, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch note by id: %w", err)
	}
	return note, nil
}

func (uc *NoteQueryUseCase) AttachmentFile(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	note, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("fetch note by id: %w", err)
	}

	rc, err := uc.storage.Open(ctx, note.AttachmentPath)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrFileMissing, "open attachment", err)
	}
	return rc, note.AttachmentPath, nil
}

func (uc *NoteQueryUseCase) Search(ctx context.Context, userID int64, term string) ([]domain.NoteSearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "search notes", errors.New("search term is required"))
	}

	notes, err := uc.repo.Search(ctx, userID, term, uc.searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}

	results := make([]domain.NoteSearchResult, 0, len(notes))
	for _, note := range notes {
		results = append(results, domain.NoteSearchResult{
			ID:           note.ID,
			Filename:     note.AttachmentPath,
			MatchPreview: matchPreview(note.FullText, term),
			CreatedAt:    note.CreatedAt,
		})
	}
	return results, nil
}

func (uc *NoteQueryUseCase) Clear(ctx context.Context, userID int64) (int64, error) {
	deleted, err := uc.repo.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("delete notes: %w", err)
	}
	return deleted, nil
}

// matchPreview windows the text around the first case-insensitive hit,
// falling back to a truncated head when the term only matched elsewhere
// (the summary, for instance). Windowing counts runes so multibyte text
// is never cut mid-character.
func matchPreview(text, term string) string {
	runes := []rune(text)
	termRunes := []rune(strings.ToLower(term))

	idx := runeIndex([]rune(strings.ToLower(text)), termRunes)
	if idx < 0 {
		if len(runes) > snippetFallback {
			return string(runes[:snippetFallback]) + "..."
		}
		return text
	}

	start := idx - snippetRadius
	if start < 0 {
		start = 0
	}
	end := idx + len(termRunes) + snippetRadius
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}

func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, r := range needle {
			if haystack[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
