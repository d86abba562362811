package contract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mira-realty/transaction-copilot/internal/entity"
	"github.com/mira-realty/transaction-copilot/internal/realist"
)

// BuildFieldMap derives the template slot values from intake and property data.
func BuildFieldMap(lead *entity.Lead, rec *realist.PropertyRecord) FieldMap {
	if rec == nil {
		rec = &realist.PropertyRecord{}
	}
	return FieldMap{
		SlotBuyerName:       lead.Name,
		SlotEmail:           lead.Email,
		SlotPropertyAddress: rec.Address,
		SlotPrice:           rec.ListingPrice,
		SlotMLS:             rec.MLSNumber,
	}
}

// Result describes one assembled contract document.
type Result struct {
	Path     string `json:"path"`
	Fallback bool   `json:"fallback"` // true when the DOCX degradation path was used
}

// Assembler decides which template and layout to apply, drives the overlay
// engine, and degrades to a generated DOCX when no template exists on disk.
type Assembler struct {
	templateDir  string
	templateFile string
	outputDir    string
	engine       *OverlayEngine
	fallback     FallbackGenerator
	logger       *slog.Logger
}

func NewAssembler(templateDir, templateFile, outputDir string, engine *OverlayEngine, fallback FallbackGenerator, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		templateDir:  templateDir,
		templateFile: templateFile,
		outputDir:    outputDir,
		engine:       engine,
		fallback:     fallback,
		logger:       logger,
	}
}

// TemplatePath returns the purchase agreement template location.
func (a *Assembler) TemplatePath() string {
	return filepath.Join(a.templateDir, a.templateFile)
}

// ContractPath returns where the filled PDF for a lead lives.
func (a *Assembler) ContractPath(lead *entity.Lead) string {
	return filepath.Join(a.outputDir, fmt.Sprintf("PA_filled_%s.pdf", lead.ID))
}

func (a *Assembler) fallbackPath(lead *entity.Lead) string {
	return filepath.Join(a.outputDir, fmt.Sprintf("demo_contract_%s.docx", lead.ID))
}

// Assemble produces the contract document for a lead. A missing template is
// recovered via the fallback generator; an overlay failure with a template
// present is a document-generation error for the caller to handle.
func (a *Assembler) Assemble(lead *entity.Lead, rec *realist.PropertyRecord) (Result, error) {
	if err := os.MkdirAll(a.outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}

	templatePath := a.TemplatePath()
	if _, err := os.Stat(templatePath); err != nil {
		a.logger.Warn("contract template missing, using fallback document",
			"template", templatePath, "lead_id", lead.ID)
		out := a.fallbackPath(lead)
		if ferr := a.fallback.Generate(lead, out); ferr != nil {
			return Result{}, fmt.Errorf("fallback document: %w", ferr)
		}
		return Result{Path: out, Fallback: true}, nil
	}

	out := a.ContractPath(lead)
	if err := a.engine.Overlay(templatePath, out, BuildFieldMap(lead, rec)); err != nil {
		return Result{}, err
	}
	return Result{Path: out, Fallback: false}, nil
}
