package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tendermap/internal/assets"
	"tendermap/internal/core"
	"tendermap/internal/document"
	"tendermap/internal/embedding"
	"tendermap/internal/extract"
	"tendermap/internal/llm"
	"tendermap/internal/match"
	"tendermap/internal/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "tendermap: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := core.LoadConfig(configPath)
	if err != nil {
		return err
	}
	logger := core.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	llmClient, err := llm.NewClient(&llm.Config{
		APIKey:       cfg.LLM.APIKey,
		BaseURL:      cfg.LLM.BaseURL,
		DefaultModel: cfg.LLM.Model,
	})
	if err != nil {
		return fmt.Errorf("llm client: %w", err)
	}

	gateway, err := newEmbeddingGateway(ctx, cfg.Embedder)
	if err != nil {
		return fmt.Errorf("embedding gateway: %w", err)
	}

	var defaultSource assets.Source
	if cfg.Assets.SheetURL != "" {
		source, err := assets.NewSheetSource(ctx, cfg.Assets.SheetURL, cfg.Assets.SheetTab)
		if err != nil {
			return fmt.Errorf("asset sheet: %w", err)
		}
		defaultSource = source
		logger.Info("asset catalogue configured",
			"spreadsheet_id", source.SpreadsheetID, "tab", cfg.Assets.SheetTab)
	} else {
		logger.Warn("no asset catalogue configured; requests must supply sheet_url")
	}

	pipeline := core.NewPipeline(
		extract.NewExtractor(llmClient),
		orEmptySource(defaultSource),
		match.NewEngine(gateway),
		logger,
	)

	resolveSource := func(ctx context.Context, sheetURL, sheetTab string) (assets.Source, error) {
		return assets.NewSheetSource(ctx, sheetURL, sheetTab)
	}

	srv := server.New(pipeline, document.NewPDFExtractor(), defaultSource, resolveSource, logger)
	return srv.ListenAndServe(ctx, cfg.ListenAddr)
}

// newEmbeddingGateway builds the configured embedding backend.
func newEmbeddingGateway(ctx context.Context, cfg core.EmbedderConfig) (embedding.Gateway, error) {
	switch cfg.Provider {
	case "openai":
		return embedding.NewOpenAIClient(embedding.OpenAIConfig{
			BaseURL: cfg.OpenAI.BaseURL,
			APIKey:  os.Getenv(cfg.OpenAI.APIKeyEnv),
			Model:   cfg.OpenAI.Model,
		})
	case "vertex":
		if cfg.Vertex == nil {
			return nil, fmt.Errorf("vertex embedder selected but not configured")
		}
		return embedding.NewVertexGateway(ctx, embedding.VertexConfig{
			ProjectID: cfg.Vertex.ProjectID,
			Location:  cfg.Vertex.Location,
			Model:     cfg.Vertex.Model,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// orEmptySource substitutes an empty static catalogue when no sheet is
// configured; per-request sheet_url overrides still apply.
func orEmptySource(source assets.Source) assets.Source {
	if source != nil {
		return source
	}
	return assets.StaticSource{}
}
