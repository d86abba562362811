package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mira-realty/transaction-copilot/constants"
)

// DefaultMaxPages bounds the scan to the front of the document. Realist
// exports put the property summary on the first pages; later pages are
// boilerplate that produces false positives.
const DefaultMaxPages = 3

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 -> DefaultMaxPages; negative -> no limit
}

// PdftotextExtractor shells out to poppler's pdftotext for text-layer PDFs.
type PdftotextExtractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewPdftotextExtractor(cfg Config, logger *slog.Logger) *PdftotextExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.MaxPages == 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	return &PdftotextExtractor{cfg: cfg, runner: newExecRunner(logger), logger: logger}
}

// Extract runs pdftotext and returns the page-capped text.
func (e *PdftotextExtractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	if !constants.IsAllowedExt(ext) {
		return TextExtractionResult{}, fmt.Errorf("unsupported document type: %q", ext)
	}

	start := time.Now()
	// pdftotext -layout -enc UTF-8 -eol unix [-l N] <path> -
	args := []string{"-layout", "-enc", "UTF-8", "-eol", "unix"}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(e.cfg.MaxPages))
	}
	args = append(args, path, "-")

	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, args...)
	if err != nil {
		return TextExtractionResult{
			Duration: time.Since(start),
			Warnings: []string{string(errb)},
		}, fmt.Errorf("pdftotext: %w", err)
	}

	text := string(out)
	// A form-feed \f is used as page separator by default
	pages := 1 + strings.Count(text, "\f")
	return TextExtractionResult{
		Text:     text,
		Pages:    pages,
		Method:   "pdf-text",
		Duration: time.Since(start),
	}, nil
}

func splitPages(text string) []string {
	return strings.Split(text, "\f")
}
