package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/mira-realty/transaction-copilot/constants"
	"github.com/mira-realty/transaction-copilot/internal/entity"
)

// listOnlyRepo satisfies the repository interface for export tests; only
// List is reachable from the exporter.
type listOnlyRepo struct {
	leads []*entity.Lead
	err   error
}

func (r *listOnlyRepo) List(context.Context) ([]*entity.Lead, error) { return r.leads, r.err }

func (r *listOnlyRepo) Create(context.Context, *entity.Lead) error { panic("unused") }
func (r *listOnlyRepo) GetByID(context.Context, uuid.UUID) (*entity.Lead, error) {
	panic("unused")
}
func (r *listOnlyRepo) ListByStatus(context.Context, ...constants.TransactionStatus) ([]*entity.Lead, error) {
	panic("unused")
}
func (r *listOnlyRepo) SetRealistData(context.Context, uuid.UUID, []byte, constants.TransactionStatus) error {
	panic("unused")
}
func (r *listOnlyRepo) SetStatus(context.Context, uuid.UUID, constants.TransactionStatus) error {
	panic("unused")
}
func (r *listOnlyRepo) MarkDrafted(context.Context, uuid.UUID, constants.TransactionStatus, time.Time) error {
	panic("unused")
}
func (r *listOnlyRepo) SetReview(context.Context, uuid.UUID, constants.TransactionStatus, string, time.Time) error {
	panic("unused")
}

func TestExportLeadsXLSX(t *testing.T) {
	drafted := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	repo := &listOnlyRepo{leads: []*entity.Lead{
		{
			ID:        uuid.MustParse("11111111-2222-3333-4444-555555555555"),
			Name:      "Alice Johnson",
			Email:     "alice@example.com",
			Service:   "Buyer Representation",
			Status:    constants.StatusContractDrafted,
			CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			DraftedAt: &drafted,
		},
		{
			ID:        uuid.MustParse("99999999-8888-7777-6666-555555555555"),
			Name:      "Bob Smith",
			Email:     "bob@example.com",
			Service:   "Seller Listing",
			Status:    constants.StatusNew,
			CreatedAt: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		},
	}}

	data, err := NewService(repo, nil).ExportLeadsXLSX(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Transactions")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Lead ID" || rows[0][11] != "Settlement Date" {
		t.Errorf("header = %v", rows[0])
	}

	alice := rows[1]
	if alice[1] != "Alice Johnson" || alice[4] != "Contract Drafted" {
		t.Errorf("alice row = %v", alice)
	}
	if alice[7] != "2026-03-12" || alice[11] != "2026-04-01" {
		t.Errorf("alice deadlines = %v", alice[7:])
	}

	bob := rows[2]
	if bob[1] != "Bob Smith" || bob[4] != "New Leads" {
		t.Errorf("bob row = %v", bob)
	}
	// No drafted date means no deadline columns.
	if len(bob) > 6 {
		for _, cell := range bob[6:] {
			if cell != "" {
				t.Errorf("undrafted lead has deadline cells: %v", bob)
			}
		}
	}
}

func TestExportLeadsXLSXRepoError(t *testing.T) {
	if _, err := NewService(&listOnlyRepo{err: errors.New("db down")}, nil).ExportLeadsXLSX(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
