package core

import (
	"context"
	"io"

	"github.com/markdave123-py/docsum/internal/models"
)

// DbClient defines all persistence operations the services need.
// It abstracts Postgres so higher layers never depend on a specific DB.
type DbClient interface {
	InsertDocument(ctx context.Context, doc *models.Document) (int64, error)
	GetDocumentByID(ctx context.Context, id int64) (*models.Document, error)
	ListDocuments(ctx context.Context) ([]models.DocumentListItem, error)

	// DeleteDocument removes the row and returns its storage key, or ErrNotFound.
	DeleteDocument(ctx context.Context, id int64) (string, error)
	// DeleteAllDocuments removes every row and returns their storage keys.
	DeleteAllDocuments(ctx context.Context) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}

// ObjectClient stores the raw uploaded bytes under an opaque key.
// Implemented by the local upload directory and by S3.
type ObjectClient interface {
	Save(ctx context.Context, key string, data io.Reader, contentType string) (location string, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Remove deletes the object; a missing object is not an error.
	Remove(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
