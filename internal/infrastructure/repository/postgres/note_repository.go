package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"notes-assistant/internal/core/domain"
)

type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	row := r.db.QueryRowContext(ctx, `
INSERT INTO notes (user_id, attachment_path, full_text, summary)
VALUES ($1,$2,$3,$4)
RETURNING id, created_at
`, note.UserID, note.AttachmentPath, note.FullText, nullableString(note.Summary))
	if err := row.Scan(&note.ID, &note.CreatedAt); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, attachment_path, full_text, summary, created_at
FROM notes
WHERE id = $1
`, id)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNoteNotFound, "get note", err)
		}
		return nil, fmt.Errorf("get note by id: %w", err)
	}
	return note, nil
}

// likeEscaper neutralizes LIKE metacharacters so a search term is
// matched literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search finds the owner's notes whose extracted text contains term,
// newest first. An empty term matches everything.
func (r *NoteRepository) Search(ctx context.Context, userID int64, term string, limit int) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, attachment_path, full_text, summary, created_at
FROM notes
WHERE user_id = $1 AND full_text ILIKE '%' || $2 || '%'
ORDER BY created_at DESC
LIMIT $3
`, userID, likeEscaper.Replace(term), limit)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	return collectNotes(rows)
}

func (r *NoteRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, attachment_path, full_text, summary, created_at
FROM notes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent notes: %w", err)
	}
	return collectNotes(rows)
}

func (r *NoteRepository) UpdateSummary(ctx context.Context, id int64, summary string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE notes
SET summary = $2
WHERE id = $1
`, id, summary)
	if err != nil {
		return fmt.Errorf("update note summary: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update note summary rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id=%d", domain.ErrNoteNotFound, id)
	}
	return nil
}

func (r *NoteRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete notes: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete notes rows affected: %w", err)
	}
	return affected, nil
}

type noteScanner interface {
	Scan(dest ...any) error
}

func scanNote(row noteScanner) (*domain.Note, error) {
	var note domain.Note
	var summary sql.NullString
	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.AttachmentPath,
		&note.FullText,
		&summary,
		&note.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	note.Summary = summary.String
	return &note, nil
}

func collectNotes(rows *sql.Rows) ([]domain.Note, error) {
	defer rows.Close()

	out := make([]domain.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return out, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
