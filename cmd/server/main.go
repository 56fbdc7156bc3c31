package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docanchor/docanchor/internal/api"
	"github.com/docanchor/docanchor/internal/chunker"
	"github.com/docanchor/docanchor/internal/config"
	"github.com/docanchor/docanchor/internal/embed"
	"github.com/docanchor/docanchor/internal/filestore"
	"github.com/docanchor/docanchor/internal/index"
	"github.com/docanchor/docanchor/internal/pipeline"
	"github.com/docanchor/docanchor/internal/rag"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	embedder, err := embed.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.EmbedModel, cfg.ChatModel)
	if err != nil {
		log.Error("embedding client init failed", "error", err)
		os.Exit(1)
	}

	var idx index.Index
	switch cfg.IndexBackend {
	case "memory":
		idx = index.NewMemoryIndex(embedder)
	default:
		widx, err := index.NewWeaviateIndex(ctx, cfg.WeaviateURL, cfg.WeaviateAPIKey, embedder)
		if err != nil {
			log.Error("weaviate init failed", "error", err)
			os.Exit(1)
		}
		idx = widx
	}

	files, err := filestore.New(cfg.UploadDir)
	if err != nil {
		log.Error("upload dir init failed", "error", err)
		os.Exit(1)
	}

	ch := chunker.New(chunker.Config{
		ChunkSize:    cfg.DefaultChunkSize,
		ChunkOverlap: cfg.DefaultChunkOverlap,
	}, log)

	svc := rag.NewService(idx, embedder, ch, log)

	var policy *rag.SingleDocumentPolicy
	if cfg.SingleDocument {
		policy = rag.NewSingleDocumentPolicy(idx, files, log)
	}

	orch := pipeline.NewOrchestrator(cfg, idx, files, ch, log)
	orch.Start(ctx)

	srv := api.NewServer(svc, orch, policy, files, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", "port", cfg.Port, "index_backend", cfg.IndexBackend)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
