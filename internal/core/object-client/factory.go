package objectclient

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/markdave123-py/docsum/internal/config"
	"github.com/markdave123-py/docsum/internal/core"
)

// NewObjectClient picks the backend named by STORAGE_BACKEND.
func NewObjectClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (core.ObjectClient, error) {
	switch cfg.StorageBackend {
	case config.StorageS3:
		return NewS3Client(ctx, cfg, logger)
	case config.StorageLocal, "":
		logger.Info("local object storage configured", "dir", cfg.UploadDir)
		return NewLocalClient(cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
