package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"portfolio/internal/config"
	"portfolio/internal/domain"
)

// FileStore keeps the document in a single JSON file on local disk.
//
// Read fallback order: the configured path, then the default path (when an
// override is configured), then the bundled default document. Whatever source
// wins is persisted back to the configured path, so the store self-seeds on
// first use.
type FileStore struct {
	path   string
	logger *slog.Logger
}

func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if path == "" {
		path = config.DefaultDataFile
	}
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Read(ctx context.Context) (*domain.PortfolioDocument, error) {
	doc, err := readDocumentFile(s.path)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	// Configured path holds nothing yet - seed it.
	doc, err = s.seedSource()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if err := s.Write(ctx, doc); err != nil {
		// Read-only disk: still serve the seed so the public site works.
		s.logger.Warn("could not persist seed document", "path", s.path, "error", err)
	}

	return doc, nil
}

// seedSource picks the content to seed the configured path with: the default
// path's file when the override path differs from it, otherwise the bundled
// default document.
func (s *FileStore) seedSource() (*domain.PortfolioDocument, error) {
	if s.path != config.DefaultDataFile {
		if doc, err := readDocumentFile(config.DefaultDataFile); err == nil {
			s.logger.Info("seeding configured path from default data file",
				"path", s.path,
				"default", config.DefaultDataFile,
			)
			return doc, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	doc, err := SeedDocument()
	if err != nil {
		return nil, err
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}

	s.logger.Info("seeding configured path from bundled default document", "path", s.path)
	return doc, nil
}

func (s *FileStore) Write(ctx context.Context, doc *domain.PortfolioDocument) error {
	if err := ValidateDocument(doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWriteFailed, err)
	}

	payload, err := marshalDocument(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWriteFailed, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return writeError(err)
		}
	}

	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return writeError(err)
	}

	return nil
}

// writeError distinguishes permission failures so the handler can tell the
// operator to switch persistence backends.
func writeError(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %v", domain.ErrStoreWriteDenied, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreWriteFailed, err)
}

func readDocumentFile(path string) (*domain.PortfolioDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc domain.PortfolioDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("corrupt portfolio data at %s: %w", path, err)
	}

	return &doc, nil
}
