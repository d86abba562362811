package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mira-realty/transaction-copilot/constants"
	"github.com/mira-realty/transaction-copilot/internal/contract"
	"github.com/mira-realty/transaction-copilot/internal/deadline"
	"github.com/mira-realty/transaction-copilot/internal/entity"
	"github.com/mira-realty/transaction-copilot/internal/realist"
	"github.com/mira-realty/transaction-copilot/internal/repository"
)

// DraftStage assembles the contract document for a lead, stamps the draft
// timestamp, advances the status, and reports the derived deadline set.
type DraftStage struct {
	Leads     repository.LeadRepository
	Assembler *contract.Assembler
	Logger    *slog.Logger

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewDraftStage(leads repository.LeadRepository, assembler *contract.Assembler, logger *slog.Logger) *DraftStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &DraftStage{Leads: leads, Assembler: assembler, Logger: logger, Now: time.Now}
}

// DraftResult summarizes one contract generation run.
type DraftResult struct {
	Lead      *entity.Lead
	Contract  contract.Result
	Deadlines deadline.DeadlineSet
	Record    *realist.PropertyRecord
}

// Run generates the contract for leadID. A stored record that fails schema
// validation is treated like a missing record: drafting proceeds with lead
// data only and an agent reviews the result.
func (s *DraftStage) Run(ctx context.Context, leadID uuid.UUID) (DraftResult, error) {
	lead, err := s.Leads.GetByID(ctx, leadID)
	if err != nil {
		return DraftResult{}, err
	}

	rec, derr := realist.DecodeRecord(lead.RealistData)
	if derr != nil {
		s.Logger.Warn("stored property record invalid, drafting without it",
			"lead_id", leadID, "error", derr)
		rec = &realist.PropertyRecord{}
	}

	res, err := s.Assembler.Assemble(lead, rec)
	if err != nil {
		return DraftResult{}, err
	}

	draftedAt := s.Now().UTC()
	if err := s.Leads.MarkDrafted(ctx, leadID, constants.StatusContractDrafted, draftedAt); err != nil {
		return DraftResult{}, err
	}
	lead.Status = constants.StatusContractDrafted
	lead.DraftedAt = &draftedAt

	set := deadline.Compute(draftedAt, deadline.Purchase)

	s.Logger.Info("draft stage ok",
		"lead_id", leadID,
		"path", res.Path,
		"fallback", res.Fallback,
	)
	return DraftResult{Lead: lead, Contract: res, Deadlines: set, Record: rec}, nil
}
