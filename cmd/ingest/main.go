package main

import (
	"context"
	"flag"
	"log"

	"libris/internal/config"
	"libris/internal/rag"
)

func main() {
	dataPath := flag.String("data", "", "data directory (default: DATA_PATH)")
	flag.Parse()

	cfg := config.Load()
	if *dataPath != "" {
		cfg.DataPath = *dataPath
	}

	store, err := rag.Open(cfg.IndexPath, cfg.CollectionName, rag.OpenAIEmbedding(cfg.OpenAIAPIKey))
	if err != nil {
		log.Fatalf("✗ Vector index failed to open: %v", err)
	}

	n, err := rag.IngestDir(context.Background(), store, cfg.DataPath)
	if err != nil {
		log.Fatalf("✗ Ingestion failed after %d documents: %v", n, err)
	}

	log.Printf("✓ Upserted %d items into collection %q at %q", n, cfg.CollectionName, cfg.IndexPath)
}
