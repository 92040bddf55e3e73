package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"portfoliochat/internal/adapters/portfolio"
	"portfoliochat/internal/app"
	"portfoliochat/internal/config"
	"portfoliochat/internal/domain/usecases"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, csvPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.StringVar(&csvPath, "csv", "", "Portfolio CSV path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[ERROR] failed to load config: %v", err)
	}
	if csvPath != "" {
		cfg.Data.CSV = csvPath
	}

	ctx := context.Background()

	records, err := portfolio.NewCSVSource(cfg.Data.CSV).Load(ctx)
	if err != nil {
		log.Fatalf("[ERROR] failed to load portfolio: %v", err)
	}
	log.Printf("[INFO] loaded %d portfolio records from %s", len(records), cfg.Data.CSV)

	embedder, err := app.BuildEmbedder(cfg)
	if err != nil {
		log.Fatalf("[ERROR] embedder init failed: %v", err)
	}

	store, err := app.BuildStore(cfg, false)
	if err != nil {
		log.Fatalf("[ERROR] vector store init failed: %v", err)
	}
	defer store.Close()

	// A fresh destination has nothing to clear, which some backends report
	// as an error.
	if err := store.Clear(ctx); err != nil {
		log.Printf("[INFO] nothing to clear: %v", err)
	}

	indexer := usecases.NewIndexUseCase(embedder, store)
	if err := indexer.BuildIndex(ctx, records); err != nil {
		log.Fatalf("[ERROR] indexing failed: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		log.Fatalf("[ERROR] failed to count documents: %v", err)
	}
	log.Printf("[INFO] index built: %d documents", count)
}
