package store

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"portfolio/internal/domain"
)

// The bundled default document. Both backings fall back to it when their
// location holds nothing yet, then persist it (self-seeding).
//
//go:embed default.json
var seedJSON []byte

// SeedDocument returns a fresh copy of the bundled default document.
func SeedDocument() (*domain.PortfolioDocument, error) {
	var doc domain.PortfolioDocument
	if err := json.Unmarshal(seedJSON, &doc); err != nil {
		return nil, fmt.Errorf("bundled default document is corrupt: %w", err)
	}
	return &doc, nil
}

// ValidateAndRender checks the document against the schema and returns its
// persisted form. Used by the seed command to inspect the bundled document.
func ValidateAndRender(doc *domain.PortfolioDocument) ([]byte, error) {
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}
	return marshalDocument(doc)
}

// marshalDocument renders the document the way the bundled data file is
// formatted: two-space indentation, trailing newline.
func marshalDocument(doc *domain.PortfolioDocument) ([]byte, error) {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode portfolio document: %w", err)
	}
	return append(payload, '\n'), nil
}
