package store

import (
	_ "embed"
	"fmt"
	"strings"

	"portfolio/internal/domain"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed portfolio.schema.json
var schemaJSON []byte

// ValidateDocument checks the document shape against the embedded schema.
// Both backings run it before persisting, so a broken in-memory mutation can
// never reach disk or the blob store, and after seeding, so a corrupt bundled
// document fails fast instead of serving garbage.
func ValidateDocument(doc *domain.PortfolioDocument) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("document failed schema validation: %s", strings.Join(msgs, "; "))
}
