package ingestion_engine

import (
	"log/slog"

	"github.com/markdave123-py/docsum/internal/config"
	"github.com/markdave123-py/docsum/internal/core"
)

// IngestConfig tunes the pipeline.
//
// SummaryChars:     characters of extracted text sent to the summarizer (e.g., 3000).
// PreviewChars:     characters of extracted text echoed back as preview (e.g., 500).
// CleanupOnFailure: remove the saved upload when a later step fails.
type IngestConfig struct {
	SummaryChars     int
	PreviewChars     int
	CleanupOnFailure bool
}

func IngestConfigFrom(cfg *config.Config) *IngestConfig {
	return &IngestConfig{
		SummaryChars:     cfg.SummaryChars,
		PreviewChars:     cfg.PreviewChars,
		CleanupOnFailure: cfg.CleanupOnFailure,
	}
}

// DocumentIngestor runs the synchronous ingestion pipeline:
//
// db:         persistence for documents.
// obj:        object storage for the raw upload.
// extractor:  file bytes -> plain text.
// summarizer: truncated text -> summary.
// cfg:        runtime tuning knobs for the pipeline.
type DocumentIngestor struct {
	db         core.DbClient
	obj        core.ObjectClient
	extractor  core.DocumentExtractor
	summarizer *Summarizer
	cfg        *IngestConfig
	logger     *slog.Logger
}

// FileExtractor implements core.DocumentExtractor for .pdf, .docx and .txt.
type FileExtractor struct {
	logger *slog.Logger
}
