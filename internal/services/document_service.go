package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/docsum/internal/core"
	"github.com/markdave123-py/docsum/internal/models"
)

// removeConcurrency bounds parallel blob removals in DeleteAll.
const removeConcurrency = 8

type DocumentService struct {
	db      core.DbClient
	storage core.ObjectClient
	logger  *slog.Logger
}

func NewDocumentService(db core.DbClient, storage core.ObjectClient, logger *slog.Logger) *DocumentService {
	return &DocumentService{db: db, storage: storage, logger: logger}
}

func (s *DocumentService) List(ctx context.Context) ([]models.DocumentListItem, error) {
	return s.db.ListDocuments(ctx)
}

func (s *DocumentService) Get(ctx context.Context, id int64) (*models.Document, error) {
	return s.db.GetDocumentByID(ctx, id)
}

// Delete removes the row first and the blob second. Once the row is gone the
// call succeeds even if the blob cannot be removed.
func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	key, err := s.db.DeleteDocument(ctx, id)
	if err != nil {
		return err
	}
	s.removeBlob(ctx, key)
	s.logger.Info("document deleted", "document_id", id)
	return nil
}

// DeleteAll removes every row, then the blobs those rows referenced. Files in
// storage that no row points at are left alone.
func (s *DocumentService) DeleteAll(ctx context.Context) (int, error) {
	keys, err := s.db.DeleteAllDocuments(ctx)
	if err != nil {
		return 0, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(removeConcurrency)
	for _, key := range keys {
		g.Go(func() error {
			s.removeBlob(gctx, key)
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info("all documents deleted", "count", len(keys))
	return len(keys), nil
}

func (s *DocumentService) removeBlob(ctx context.Context, key string) {
	if key == "" {
		return
	}
	log := s.logger.With("storage_key", key)

	ok, err := s.storage.Exists(ctx, key)
	if err != nil {
		log.Warn("blob lookup failed", "error", err)
		return
	}
	if !ok {
		log.Debug("blob already gone")
		return
	}
	if err := s.storage.Remove(ctx, key); err != nil {
		log.Warn("blob removal failed", "error", fmt.Errorf("%w: %w", core.ErrStorage, err))
	}
}
