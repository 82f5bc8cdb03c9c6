package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"notes-assistant/internal/core/domain"
)

func TestNoteRepositoryCreateAssignsIDAndTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	created := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO notes").
		WithArgs(int64(123), "data/files/abc.pdf", "invoice text", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), created))

	repo := NewNoteRepository(db)
	note := &domain.Note{
		UserID:         123,
		AttachmentPath: "data/files/abc.pdf",
		FullText:       "invoice text",
		Summary:        "An invoice.",
	}
	if err := repo.Create(context.Background(), note); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if note.ID != 7 {
		t.Fatalf("expected id 7, got %d", note.ID)
	}
	if !note.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at from db")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestNoteRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM notes").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "attachment_path", "full_text", "summary", "created_at"}))

	repo := NewNoteRepository(db)
	_, err = repo.GetByID(context.Background(), 99)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected note-not-found kind, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestNoteRepositorySearchScopedToOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "attachment_path", "full_text", "summary", "created_at"}).
		AddRow(int64(1), int64(123), "data/files/a.pdf", "MAGIC_STRING_INVOICE_100", nil, time.Now())

	mock.ExpectQuery("FROM notes").
		WithArgs(int64(123), "MAGIC", 3).
		WillReturnRows(rows)

	repo := NewNoteRepository(db)
	notes, err := repo.Search(context.Background(), 123, "MAGIC", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].Summary != "" {
		t.Fatalf("expected null summary scanned as empty string")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestNoteRepositorySearchEscapesLikeMetacharacters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "attachment_path", "full_text", "summary", "created_at"})
	mock.ExpectQuery("FROM notes").
		WithArgs(int64(123), `100\% sure\\really\_sure`, 3).
		WillReturnRows(rows)

	repo := NewNoteRepository(db)
	if _, err := repo.Search(context.Background(), 123, `100% sure\really_sure`, 3); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestNoteRepositoryDeleteByUserReturnsCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM notes").
		WithArgs(int64(123)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	repo := NewNoteRepository(db)
	count, err := repo.DeleteByUser(context.Background(), 123)
	if err != nil {
		t.Fatalf("DeleteByUser() error = %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 deleted, got %d", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestNoteRepositoryUpdateSummaryMissingNote(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE notes").
		WithArgs(int64(5), "A recovered summary.").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewNoteRepository(db)
	err = repo.UpdateSummary(context.Background(), 5, "A recovered summary.")
	if !domain.IsKind(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected note-not-found kind, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
