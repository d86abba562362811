package contract

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mira-realty/transaction-copilot/internal/common"
)

// FieldMap carries the values to stamp, keyed by slot name.
// Missing keys render as blanks; keys without a registered slot are ignored.
type FieldMap map[string]string

// Stamp is one piece of text placed at fixed coordinates on a page.
type Stamp struct {
	Page     int
	Text     string
	X, Y     float64
	Font     string
	FontSize int
}

// Stamper is the page-level document collaborator: it composes text over
// existing page content in place, leaving every other page untouched.
type Stamper interface {
	PageCount(path string) (int, error)
	StampText(path string, stamps []Stamp) error
}

// OverlayEngine fills a fixed-layout template by stamping a transparent
// annotation layer onto it. Template content is never removed; pages outside
// the stamped set are copied unchanged.
type OverlayEngine struct {
	reg     SlotRegistry
	stamper Stamper
	logger  *slog.Logger
}

func NewOverlayEngine(reg SlotRegistry, stamper Stamper, logger *slog.Logger) *OverlayEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &OverlayEngine{reg: reg, stamper: stamper, logger: logger}
}

// Overlay writes a filled copy of templatePath to outPath. Every registered
// slot is stamped unconditionally; a missing value is an empty string at the
// same coordinates, so absent data is visually blank rather than omitted.
func (e *OverlayEngine) Overlay(templatePath, outPath string, fields FieldMap) error {
	pages, err := e.stamper.PageCount(templatePath)
	if err != nil {
		return common.NewAppError("TEMPLATE_UNREADABLE", fmt.Sprintf("template %s", templatePath), err)
	}
	for _, s := range e.reg.Slots {
		if s.Page > pages {
			return common.NewAppError("TEMPLATE_PAGE_ABSENT",
				fmt.Sprintf("slot %q targets page %d of a %d-page template", s.Name, s.Page, pages),
				common.ErrDocumentGen)
		}
	}

	if err := copyFile(templatePath, outPath); err != nil {
		return common.NewAppError("TEMPLATE_COPY", fmt.Sprintf("copy template to %s", outPath), err)
	}

	stamps := make([]Stamp, 0, len(e.reg.Slots))
	for _, s := range e.reg.Slots {
		stamps = append(stamps, Stamp{
			Page:     s.Page,
			Text:     fields[s.Name],
			X:        s.X,
			Y:        s.Y,
			Font:     s.Font,
			FontSize: s.FontSize,
		})
	}
	if err := e.stamper.StampText(outPath, stamps); err != nil {
		// Leave no half-written document behind.
		_ = os.Remove(outPath)
		return common.NewAppError("OVERLAY_STAMP", "stamping annotation layer", err)
	}

	e.logger.Info("contract overlay ok", "template", templatePath, "out", outPath, "slots", len(stamps))
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
