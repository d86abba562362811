package extract

import (
	"context"
	"time"
)

// TextExtractor is Stage 1: listing document -> plain text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string   // concatenated page text, pages separated by \f
	Pages    int      // pages actually scanned (capped)
	Method   string   // "pdf-text"
	Duration time.Duration
	Warnings []string
}

// PageTexts splits the result into per-page chunks.
func (r TextExtractionResult) PageTexts() []string {
	return splitPages(r.Text)
}
