package domain

import "time"

// Note is one stored attachment with its extracted text.
type Note struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	AttachmentPath string    `json:"attachment_path"`
	FullText       string    `json:"full_text"`
	Summary        string    `json:"summary,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// UploadResult is the per-file outcome of an attachment upload.
type UploadResult struct {
	Success          bool      `json:"success"`
	OriginalFilename string    `json:"original_filename"`
	StoredFilename   string    `json:"stored_filename"`
	ContentType      string    `json:"content_type"`
	Size             int64     `json:"size"`
	UploadTime       time.Time `json:"upload_time"`
	Location         string    `json:"location"`
	NoteID           int64     `json:"note_id"`
	TextPreview      string    `json:"text_preview"`
}

// NoteSearchResult is one search hit rendered for the API.
type NoteSearchResult struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	MatchPreview string    `json:"match_preview"`
	CreatedAt    time.Time `json:"created_at"`
}
