package contract

import (
	"fmt"
	"os"

	"github.com/fumiama/go-docx"

	"github.com/mira-realty/transaction-copilot/internal/entity"
)

// FallbackGenerator produces a minimal service agreement when no contract
// template is available. Explicit degradation path, not an error path.
type FallbackGenerator interface {
	Generate(lead *entity.Lead, outPath string) error
}

// DocxFallback writes a bare-bones DOCX service agreement from lead data only.
type DocxFallback struct{}

func NewDocxFallback() *DocxFallback {
	return &DocxFallback{}
}

func (DocxFallback) Generate(lead *entity.Lead, outPath string) error {
	w := docx.New().WithDefaultTheme()

	w.AddParagraph().AddText(fmt.Sprintf("Service Agreement - %s", lead.Name)).Size("32")
	w.AddParagraph().AddText(fmt.Sprintf("Client: %s", lead.Name))
	w.AddParagraph().AddText(fmt.Sprintf("Email: %s", lead.Email))
	w.AddParagraph().AddText(fmt.Sprintf("Service: %s", lead.Service))
	w.AddParagraph().AddText("This agreement was generated without a contract template and requires manual completion.")

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create fallback document: %w", err)
	}
	defer f.Close()
	if _, err := w.WriteTo(f); err != nil {
		return fmt.Errorf("write fallback document: %w", err)
	}
	return nil
}
