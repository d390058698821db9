package ingestion_engine

import (
	"context"

	"github.com/markdave123-py/docsum/internal/models"
)

type Ingestor interface {
	Ingest(ctx context.Context, file models.UploadedFile) (*models.IngestResult, error)
}
