package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"portfoliochat/internal/adapters/portfolio"
	"portfoliochat/internal/adapters/vectordb"
	"portfoliochat/internal/app"
	"portfoliochat/internal/config"
	"portfoliochat/internal/domain/usecases"
	"portfoliochat/internal/tui"
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

	promptForMissingKey(cfg)

	ctx := context.Background()

	records, err := portfolio.NewCSVSource(cfg.Data.CSV).Load(ctx)
	if err != nil {
		log.Fatalf("[ERROR] failed to load portfolio: %v", err)
	}

	embedder, err := app.BuildEmbedder(cfg)
	if err != nil {
		log.Fatalf("[ERROR] embedder init failed: %v", err)
	}
	chatProvider, err := app.BuildChat(ctx, cfg)
	if err != nil {
		log.Fatalf("[ERROR] chat provider init failed: %v", err)
	}

	// The terminal client indexes into memory at startup rather than
	// depending on a previously built store.
	store := vectordb.NewMemoryStore()
	fmt.Printf("Indexeren van %d panden...\n", len(records))
	if err := usecases.NewIndexUseCase(embedder, store).BuildIndex(ctx, records); err != nil {
		log.Fatalf("[ERROR] indexing failed: %v", err)
	}

	chatUC := usecases.NewChatUseCase(embedder, store, chatProvider, cfg.Retrieval.TopK)

	m := tui.New(chatUC, len(records))
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}

// promptForMissingKey asks the operator for a hosted provider's API key when
// it is not in the environment, instead of failing at assembly. The key is
// echoed into the process environment only, never printed or persisted.
func promptForMissingKey(cfg *config.AppConfig) {
	var envName string
	switch cfg.Chat.Type {
	case "groq":
		envName = "GROQ_API_KEY"
		if cfg.Chat.Groq != nil && cfg.Chat.Groq.APIKeyEnv != "" {
			envName = cfg.Chat.Groq.APIKeyEnv
		}
	case "gemini":
		if os.Getenv("GOOGLE_API_KEY") != "" {
			return
		}
		envName = "GEMINI_API_KEY"
	default:
		return
	}
	if os.Getenv(envName) != "" {
		return
	}

	fmt.Printf("%s is niet gezet. Voer de API-sleutel in: ", envName)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("[ERROR] failed to read API key: %v", err)
	}
	key := strings.TrimSpace(line)
	if key == "" {
		log.Fatalf("[ERROR] no API key provided")
	}
	os.Setenv(envName, key)
}
