package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"portfolio/internal/config"
	"portfolio/internal/store"

	"github.com/joho/godotenv"
)

// Seeds the configured backing (local file or blob store) with the bundled
// default portfolio document. Without -force, existing data is left alone:
// reading a store that holds nothing already self-seeds it.
func main() {
	force := flag.Bool("force", false, "Overwrite existing data with the bundled default document")
	printSeed := flag.Bool("print", false, "Print the bundled default document and exit")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	seed, err := store.SeedDocument()
	if err != nil {
		log.Fatalf("Failed to load bundled document: %v", err)
	}

	if *printSeed {
		payload, err := store.ValidateAndRender(seed)
		if err != nil {
			log.Fatalf("Bundled document is invalid: %v", err)
		}
		fmt.Print(string(payload))
		return
	}

	if cfg.Environment == "prod" && *force {
		log.Fatalf("Refusing to overwrite production data with -force")
	}

	st := store.New(cfg, logger)
	ctx := context.Background()

	if *force {
		if err := st.Write(ctx, seed); err != nil {
			log.Fatalf("Failed to seed store: %v", err)
		}
		logger.Info("store overwritten with bundled default document")
		return
	}

	// Read triggers self-seeding when the backing holds nothing yet.
	doc, err := st.Read(ctx)
	if err != nil {
		log.Fatalf("Failed to read store: %v", err)
	}

	logger.Info("store ready",
		"skills", len(doc.Skills),
		"projects", len(doc.Projects),
		"experiences", len(doc.Experiences),
		"education", len(doc.Education),
		"certifications", len(doc.Certifications),
	)
}
