package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"libris/internal/config"
	"libris/internal/handlers"
	"libris/internal/rag"
	"libris/internal/router"
	"libris/internal/services"
)

func main() {
	log.Println("🚀 Starting Libris Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Open Vector Index ────
	store, err := rag.Open(cfg.IndexPath, cfg.CollectionName, rag.OpenAIEmbedding(cfg.OpenAIAPIKey))
	if err != nil {
		log.Fatalf("✗ Vector index failed to open: %v", err)
	}
	if store.Count() == 0 {
		log.Printf("! Vector index is empty — run cmd/ingest against %s first", cfg.DataPath)
	} else {
		log.Printf("✓ Vector index opened (%d documents)", store.Count())
	}

	// ──── Step 3: Initialize LLM Client ────
	summaries := services.NewSummaryStore(filepath.Join(cfg.DataPath, "book_summaries.json"))

	var llm services.CompletionClient
	switch cfg.Provider {
	case "gemini":
		geminiClient, err := services.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Temperature, cfg.MaxTokens, summaries)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer geminiClient.Close()
		llm = geminiClient
		log.Printf("✓ Gemini client initialized (%s)", cfg.GeminiModel)
	default:
		llm = services.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.Temperature, cfg.MaxTokens, summaries)
		log.Printf("✓ OpenAI client initialized (%s)", cfg.OpenAIModel)
	}

	// ──── Initialize Services & Handlers ────
	recommendService := services.NewRecommendService(store, llm, cfg.RetrieveN, cfg.ContextK)
	queryHandler := handlers.NewQueryHandler(recommendService)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(queryHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Libris Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  Widget: http://localhost:%s/", cfg.Port)
	log.Printf("  API:    http://localhost:%s/api/openai/response", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
