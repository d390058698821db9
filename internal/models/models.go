package models

import (
	"io"
	"time"
)

// Document is one ingested file together with its extracted text and summary.
type Document struct {
	ID         int64     `db:"id" json:"id"`
	FileName   string    `db:"filename" json:"filename"`
	StorageKey string    `db:"storage_key" json:"-"` // blob name, never the user-supplied filename
	Content    string    `db:"content" json:"content"`
	Summary    string    `db:"summary" json:"summary"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// DocumentListItem is the listing view of a Document.
type DocumentListItem struct {
	ID         int64     `db:"id" json:"id"`
	FileName   string    `db:"filename" json:"filename"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// UploadedFile is the transient upload handed to the ingestion pipeline.
type UploadedFile struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// IngestResult is what a successful pipeline run reports back.
type IngestResult struct {
	ID          int64  `json:"upload_id"`
	PreviewText string `json:"preview_text"`
	Summary     string `json:"summary"`
}
