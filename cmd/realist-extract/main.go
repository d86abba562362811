package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/mira-realty/transaction-copilot/internal/extract"
	"github.com/mira-realty/transaction-copilot/internal/realist"
)

// realist-extract runs property-data extraction against a single listing PDF
// and prints the structured record, for checking parser behavior against a
// fresh Realist export without touching the database.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "realist-extract <listing.pdf>")
		os.Exit(2)
	}
	path := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	textExtractor := extract.NewPdftotextExtractor(extract.Config{}, logger)
	extractor := realist.NewExtractor(textExtractor, logger)

	start := time.Now()
	rec, extracted := extractor.ExtractFile(ctx, path)
	dur := time.Since(start)

	logger.Info("extraction finished",
		"extracted", extracted,
		"empty", rec.IsEmpty(),
		"duration_ms", dur.Milliseconds(),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		logger.Error("encode record", "error", err)
		os.Exit(1)
	}
	if !extracted {
		os.Exit(1)
	}
}
