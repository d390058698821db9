package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/markdave123-py/docsum/internal/config"
	"github.com/markdave123-py/docsum/internal/core"
	"github.com/markdave123-py/docsum/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

var _ core.DbClient = (*DatabaseClient)(nil)

// NewDatabaseClient opens the pool, pings it and applies migrations.
func NewDatabaseClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*DatabaseClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns / 2)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := Migrate(cfg.DatabaseURL, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// NewFromDB wraps an already opened handle; the schema must exist.
func NewFromDB(db *sql.DB) *DatabaseClient {
	return &DatabaseClient{db: db}
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *DatabaseClient) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *DatabaseClient) InsertDocument(ctx context.Context, doc *models.Document) (int64, error) {
	if doc == nil {
		return 0, errors.New("nil document")
	}
	const q = `
		INSERT INTO documents (filename, storage_key, content, summary)
		VALUES ($1, $2, $3, $4)
		RETURNING id, uploaded_at
	`
	if err := c.db.QueryRowContext(ctx, q,
		doc.FileName, doc.StorageKey, doc.Content, doc.Summary,
	).Scan(&doc.ID, &doc.UploadedAt); err != nil {
		return 0, fmt.Errorf("insert document: %w", err)
	}
	return doc.ID, nil
}

func (c *DatabaseClient) GetDocumentByID(ctx context.Context, id int64) (*models.Document, error) {
	const q = `
		SELECT id, filename, storage_key, content, summary, uploaded_at
		FROM documents
		WHERE id = $1
	`
	var d models.Document
	err := c.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.FileName, &d.StorageKey, &d.Content, &d.Summary, &d.UploadedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get document %d: %w", id, err)
	}
	return &d, nil
}

func (c *DatabaseClient) ListDocuments(ctx context.Context) ([]models.DocumentListItem, error) {
	const q = `
		SELECT id, filename, uploaded_at
		FROM documents
		ORDER BY uploaded_at DESC, id DESC
	`
	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := make([]models.DocumentListItem, 0)
	for rows.Next() {
		var d models.DocumentListItem
		if err := rows.Scan(&d.ID, &d.FileName, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}

func (c *DatabaseClient) DeleteDocument(ctx context.Context, id int64) (string, error) {
	const q = `DELETE FROM documents WHERE id = $1 RETURNING storage_key`

	var key string
	err := c.db.QueryRowContext(ctx, q, id).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("document %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("delete document %d: %w", id, err)
	}
	return key, nil
}

func (c *DatabaseClient) DeleteAllDocuments(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `DELETE FROM documents RETURNING storage_key`)
	if err != nil {
		return nil, fmt.Errorf("delete documents: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan storage key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted documents: %w", err)
	}
	return keys, nil
}
