// Package store persists the portfolio document as one unit. Every mutation
// elsewhere in the system is a read-mutate-write cycle against a Store; there
// are no partial writes, so the persisted document is always internally
// consistent. Nothing serializes concurrent writers - if two requests
// overlap, the later Write wins and the earlier one's change is dropped.
// That is accepted behavior for a single-admin tool.
package store

import (
	"context"
	"log/slog"

	"portfolio/internal/config"
	"portfolio/internal/domain"
)

// Key is the logical location of the document: the relative path for the
// file backing and the object pathname for the blob backing.
const Key = "data/portfolio.json"

// Store reads and writes the whole portfolio document.
type Store interface {
	Read(ctx context.Context) (*domain.PortfolioDocument, error)
	Write(ctx context.Context, doc *domain.PortfolioDocument) error
}

// New selects the backing from configuration: a present blob token selects
// the remote object store, otherwise the local file store is used. The
// selection happens once at startup, not per call site.
func New(cfg *config.Config, logger *slog.Logger) Store {
	if cfg.BlobToken != "" {
		logger.Info("using blob store backing", "api_url", cfg.BlobAPIURL, "key", Key)
		return NewBlobStore(cfg.BlobAPIURL, cfg.BlobToken, logger)
	}

	logger.Info("using file store backing", "path", cfg.DataFile)
	return NewFileStore(cfg.DataFile, logger)
}
