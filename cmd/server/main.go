package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"portfoliochat/internal/adapters/portfolio"
	"portfoliochat/internal/adapters/watcher"
	"portfoliochat/internal/app"
	"portfoliochat/internal/config"
	"portfoliochat/internal/domain/entities"
	"portfoliochat/internal/domain/usecases"
	httpserver "portfoliochat/internal/infrastructure/http"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[ERROR] failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source := portfolio.NewCSVSource(cfg.Data.CSV)
	records, err := source.Load(ctx)
	if err != nil {
		log.Printf("[ERROR] failed to load portfolio: %v", err)
		records = nil
	}

	store, err := app.BuildStore(cfg, true)
	if err != nil {
		if !errors.Is(err, entities.ErrIndexUnavailable) {
			log.Fatalf("[ERROR] vector store init failed: %v", err)
		}
		log.Printf("[ERROR] index unavailable, serving degraded: %v", err)
		srv := httpserver.NewNotReadyServer(err, records, cfg.Server.Addr)
		if err := srv.Start(ctx); err != nil {
			log.Fatalf("[ERROR] server stopped: %v", err)
		}
		return
	}
	defer store.Close()

	embedder, err := app.BuildEmbedder(cfg)
	if err != nil {
		log.Fatalf("[ERROR] embedder init failed: %v", err)
	}
	chatProvider, err := app.BuildChat(ctx, cfg)
	if err != nil {
		log.Fatalf("[ERROR] chat provider init failed: %v", err)
	}

	chatUC := usecases.NewChatUseCase(embedder, store, chatProvider, cfg.Retrieval.TopK)
	srv := httpserver.NewServer(chatUC, records, cfg.Server.Addr)

	if cfg.Data.Watch {
		w, err := watcher.NewFSNotifyWatcher()
		if err != nil {
			log.Fatalf("[ERROR] file watcher init failed: %v", err)
		}
		defer w.Stop()

		events, err := w.Watch(ctx, cfg.Data.CSV)
		if err != nil {
			log.Fatalf("[ERROR] failed to watch %s: %v", cfg.Data.CSV, err)
		}

		indexer := usecases.NewIndexUseCase(embedder, store)
		go func() {
			for ev := range events {
				log.Printf("[INFO] portfolio changed: %s, reindexing", ev.Path)
				updated, err := source.Load(ctx)
				if err != nil {
					log.Printf("[ERROR] reload failed: %v", err)
					continue
				}
				if err := store.Clear(ctx); err != nil {
					log.Printf("[ERROR] failed to clear index: %v", err)
					continue
				}
				if err := indexer.BuildIndex(ctx, updated); err != nil {
					log.Printf("[ERROR] reindex failed: %v", err)
					continue
				}
				srv.SetRecords(updated)
				log.Printf("[INFO] reindexed %d records", len(updated))
			}
		}()
	}

	if err := srv.Start(ctx); err != nil {
		log.Fatalf("[ERROR] server stopped: %v", err)
	}
}
