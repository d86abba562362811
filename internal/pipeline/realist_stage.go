package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mira-realty/transaction-copilot/constants"
	"github.com/mira-realty/transaction-copilot/internal/realist"
	"github.com/mira-realty/transaction-copilot/internal/repository"
)

// RealistStage turns an uploaded listing document into stored property data
// and advances the lead to realist_added. Extraction itself never fails; the
// Extracted flag tells callers whether manual data entry is still needed.
type RealistStage struct {
	Leads     repository.LeadRepository
	Extractor *realist.Extractor
	Logger    *slog.Logger
}

func NewRealistStage(leads repository.LeadRepository, extractor *realist.Extractor, logger *slog.Logger) *RealistStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &RealistStage{Leads: leads, Extractor: extractor, Logger: logger}
}

// RealistResult summarizes one extraction run.
type RealistResult struct {
	Record    *realist.PropertyRecord
	Extracted bool // false when the document was unreadable and the record is all-empty
}

// Run extracts property data from the document at path and persists it on the
// lead. Returns an error only for lead lookup or persistence failures.
func (s *RealistStage) Run(ctx context.Context, leadID uuid.UUID, path string) (RealistResult, error) {
	if _, err := s.Leads.GetByID(ctx, leadID); err != nil {
		return RealistResult{}, err
	}

	rec, extracted := s.Extractor.ExtractFile(ctx, path)

	data, err := realist.EncodeRecord(rec)
	if err != nil {
		return RealistResult{}, fmt.Errorf("encode property record: %w", err)
	}
	if err := s.Leads.SetRealistData(ctx, leadID, data, constants.StatusRealistAdded); err != nil {
		return RealistResult{}, err
	}

	s.Logger.Info("realist stage ok",
		"lead_id", leadID,
		"extracted", extracted,
		"empty", rec.IsEmpty(),
	)
	return RealistResult{Record: rec, Extracted: extracted}, nil
}
