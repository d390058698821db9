package ingestion_engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/markdave123-py/docsum/internal/core"
	"github.com/markdave123-py/docsum/internal/models"
)

var _ Ingestor = (*DocumentIngestor)(nil)

func NewDocumentIngestor(db core.DbClient, obj core.ObjectClient, extractor core.DocumentExtractor, summarizer *Summarizer, cfg *IngestConfig, logger *slog.Logger) *DocumentIngestor {
	return &DocumentIngestor{
		db: db, obj: obj, extractor: extractor, summarizer: summarizer, cfg: cfg, logger: logger,
	}
}

// Ingest validates, saves, extracts, truncates, summarizes and persists one
// upload, in that order. Any failing step aborts the rest; nothing is
// persisted unless every step before it succeeded.
func (i *DocumentIngestor) Ingest(ctx context.Context, file models.UploadedFile) (res *models.IngestResult, err error) {
	start := time.Now()
	defer func() { observeIngest(err, time.Since(start)) }()

	if file.Body == nil {
		return nil, core.BadRequest("No file part")
	}
	if file.FileName == "" {
		return nil, core.BadRequest("No file selected")
	}
	// Rejected here so an unsupported upload never reaches storage.
	if !i.extractor.Supports(file.FileName) {
		return nil, fmt.Errorf("%s: %w", file.FileName, core.ErrUnsupportedType)
	}

	key := storageKey(file.FileName)
	log := i.logger.With("filename", file.FileName, "storage_key", key)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := i.obj.Save(ctx, key, file.Body, contentType); err != nil {
		return nil, fmt.Errorf("%w: save upload: %w", core.ErrStorage, err)
	}

	res, err = i.process(ctx, file.FileName, key)
	if err != nil {
		if i.cfg.CleanupOnFailure {
			if rmErr := i.obj.Remove(context.WithoutCancel(ctx), key); rmErr != nil {
				log.Warn("cleanup of saved upload failed", "error", rmErr)
			}
		}
		log.Warn("ingestion failed", "error", err, "elapsed", time.Since(start))
		return nil, err
	}

	log.Info("document ingested", "document_id", res.ID, "elapsed", time.Since(start))
	return res, nil
}

func (i *DocumentIngestor) process(ctx context.Context, filename, key string) (*models.IngestResult, error) {
	data, err := i.readBack(ctx, key)
	if err != nil {
		return nil, err
	}

	text, err := i.extractor.Extract(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}

	summary, err := i.summarizer.Summarize(ctx, Truncate(text, i.cfg.SummaryChars))
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		FileName:   filename,
		StorageKey: key,
		Content:    text,
		Summary:    summary,
	}
	id, err := i.db.InsertDocument(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("persist document: %w", err)
	}

	// The preview is cut from the full text, not the summarizer's copy.
	return &models.IngestResult{
		ID:          id,
		PreviewText: Truncate(text, i.cfg.PreviewChars),
		Summary:     summary,
	}, nil
}

func (i *DocumentIngestor) readBack(ctx context.Context, key string) ([]byte, error) {
	rc, err := i.obj.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: open saved upload: %w", core.ErrStorage, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read saved upload: %w", core.ErrStorage, err)
	}
	return data, nil
}

// storageKey decouples the blob name from the user-supplied filename.
func storageKey(filename string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}
