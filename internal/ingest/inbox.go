package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mira-realty/transaction-copilot/internal/pipeline"
)

// Inbox routes Realist documents dropped into a watched directory to their
// lead. File names carry the routing key: <lead-id>__anything.pdf.
type Inbox struct {
	Stage  *pipeline.RealistStage
	Logger *slog.Logger
	Remove bool // delete files after successful processing
}

func NewInbox(stage *pipeline.RealistStage, logger *slog.Logger) *Inbox {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inbox{Stage: stage, Logger: logger, Remove: true}
}

// ParseInboxFilename extracts the lead ID routing key from a file name.
func ParseInboxFilename(name string) (uuid.UUID, bool) {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	head, _, found := strings.Cut(base, "__")
	if !found {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(head)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Consume processes watcher events until the channel closes.
func (in *Inbox) Consume(ctx context.Context, events <-chan string) {
	for path := range events {
		in.handle(ctx, path)
	}
}

func (in *Inbox) handle(ctx context.Context, path string) {
	leadID, ok := ParseInboxFilename(path)
	if !ok {
		in.Logger.Warn("inbox file without lead routing key, skipping", "path", path)
		return
	}
	res, err := in.Stage.Run(ctx, leadID, path)
	if err != nil {
		in.Logger.Error("inbox processing failed", "path", path, "lead_id", leadID, "error", err)
		return
	}
	in.Logger.Info("inbox document processed",
		"path", path, "lead_id", leadID, "extracted", res.Extracted)
	if in.Remove {
		if err := os.Remove(path); err != nil {
			in.Logger.Warn("failed to remove processed inbox file", "path", path, "error", err)
		}
	}
}
