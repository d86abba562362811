package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mira-realty/transaction-copilot/internal/deadline"
	"github.com/mira-realty/transaction-copilot/internal/repository"
	"github.com/mira-realty/transaction-copilot/internal/status"
)

// Service is a tiny façade over the lead store that produces XLSX bytes for
// transaction reports.
type Service struct {
	leads  repository.LeadRepository
	logger *slog.Logger
}

func NewService(leads repository.LeadRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{leads: leads, logger: logger}
}

// ExportLeadsXLSX returns an XLSX workbook (as bytes) of all leads with their
// status bucket and, for drafted transactions, the derived deadline dates.
func (s *Service) ExportLeadsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	leads, err := s.leads.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Transactions"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Lead ID",
		"Name",
		"Email",
		"Service",
		"Status",
		"Created",
		"Drafted",
		"Inspection Period",
		"Title Commitment",
		"Financing Contingency",
		"Appraisal Contingency",
		"Settlement Date",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, lead := range leads {
		values := []any{
			lead.ID.String(),
			lead.Name,
			lead.Email,
			lead.Service,
			status.Classify(string(lead.Status)).Label,
			lead.CreatedAt.Format("2006-01-02"),
		}
		if lead.DraftedAt != nil {
			values = append(values, lead.DraftedAt.Format("2006-01-02"))
			set := deadline.Compute(*lead.DraftedAt, deadline.Purchase)
			for _, d := range set {
				values = append(values, d.Date.Format("2006-01-02"))
			}
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("leads export ok",
		"rows", len(leads),
		"bytes", buf.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
