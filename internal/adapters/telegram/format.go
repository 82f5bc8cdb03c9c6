package telegram

import (
	"fmt"
	"strings"

	"notes-assistant/internal/core/domain"
)

const noteTextLimit = 500

func formatNote(note *domain.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Note #%d (%s)\n", note.ID, note.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "File: %s\n", note.AttachmentPath)
	if note.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", note.Summary)
	}
	text := strings.TrimSpace(note.FullText)
	if text == "" {
		b.WriteString("No extracted text.")
		return b.String()
	}
	runes := []rune(text)
	if len(runes) > noteTextLimit {
		text = string(runes[:noteTextLimit]) + "..."
	}
	b.WriteString(text)
	return b.String()
}

func formatSearchResults(results []domain.NoteSearchResult) string {
	if len(results) == 0 {
		return "Nothing found."
	}
	var b strings.Builder
	b.WriteString("Found:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "#%d %s: %s\n", r.ID, r.Filename, r.MatchPreview)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatTasks(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return "No tasks yet. Add one with /add <title>."
	}
	var b strings.Builder
	b.WriteString("Your tasks:\n")
	for _, t := range tasks {
		marker := "[ ]"
		if t.Status == domain.TaskStatusDone {
			marker = "[x]"
		}
		fmt.Fprintf(&b, "%s #%d %s", marker, t.ID, t.Title)
		if t.DueAt != nil {
			fmt.Fprintf(&b, " (due %s)", t.DueAt.Format("2006-01-02"))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
