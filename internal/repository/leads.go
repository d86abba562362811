package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mira-realty/transaction-copilot/constants"
	"github.com/mira-realty/transaction-copilot/internal/common"
	"github.com/mira-realty/transaction-copilot/internal/entity"
)

// LeadRepository is the injected storage abstraction the core works against.
// Nothing in the pipeline or status machine reaches a connection directly.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	List(ctx context.Context) ([]*entity.Lead, error)
	ListByStatus(ctx context.Context, statuses ...constants.TransactionStatus) ([]*entity.Lead, error)
	SetRealistData(ctx context.Context, id uuid.UUID, record []byte, st constants.TransactionStatus) error
	SetStatus(ctx context.Context, id uuid.UUID, st constants.TransactionStatus) error
	MarkDrafted(ctx context.Context, id uuid.UUID, st constants.TransactionStatus, draftedAt time.Time) error
	SetReview(ctx context.Context, id uuid.UUID, st constants.TransactionStatus, notes string, reviewedAt time.Time) error
}

type leadRepo struct {
	db  *sql.DB
	log *slog.Logger
}

func NewLeadRepository(db *sql.DB, log *slog.Logger) LeadRepository {
	if log == nil {
		log = slog.Default()
	}
	return &leadRepo{db: db, log: log}
}

const leadColumns = `id, name, email, service, status, raw_data, realist_data, agent_notes, reviewed_at, drafted_at, created_at`

func (r *leadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}
	if lead.Status == "" {
		lead.Status = constants.StatusNew
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO leads (id, name, email, service, status, raw_data, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		lead.ID.String(), lead.Name, lead.Email, lead.Service, string(lead.Status),
		nullableText(lead.RawData), lead.CreatedAt,
	)
	if err != nil {
		r.log.Error("lead create failed", "error", err)
		return common.WrapError(err, "create lead")
	}
	r.log.Info("lead created", "lead_id", lead.ID, "status", lead.Status)
	return nil
}

func (r *leadRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1`, id.String())
	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewAppError("LEAD_NOT_FOUND", fmt.Sprintf("lead %s", id), common.ErrNotFound)
	}
	if err != nil {
		r.log.Error("lead get failed", "lead_id", id, "error", err)
		return nil, common.WrapError(err, "get lead")
	}
	return lead, nil
}

func (r *leadRepo) List(ctx context.Context) ([]*entity.Lead, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC`)
	if err != nil {
		r.log.Error("lead list failed", "error", err)
		return nil, common.WrapError(err, "list leads")
	}
	defer rows.Close()
	return collectLeads(rows)
}

func (r *leadRepo) ListByStatus(ctx context.Context, statuses ...constants.TransactionStatus) ([]*entity.Lead, error) {
	if len(statuses) == 0 {
		return r.List(ctx)
	}
	placeholders := make([]string, len(statuses))
	args := make([]any, len(statuses))
	for i, s := range statuses {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = string(s)
	}
	query := `SELECT ` + leadColumns + ` FROM leads WHERE status IN (` +
		strings.Join(placeholders, ", ") + `) ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error("lead list by status failed", "error", err)
		return nil, common.WrapError(err, "list leads by status")
	}
	defer rows.Close()
	return collectLeads(rows)
}

func (r *leadRepo) SetRealistData(ctx context.Context, id uuid.UUID, record []byte, st constants.TransactionStatus) error {
	return r.update(ctx, id, "set realist data",
		`UPDATE leads SET realist_data = $1, status = $2 WHERE id = $3`,
		nullableText(record), string(st), id.String())
}

func (r *leadRepo) SetStatus(ctx context.Context, id uuid.UUID, st constants.TransactionStatus) error {
	return r.update(ctx, id, "set status",
		`UPDATE leads SET status = $1 WHERE id = $2`,
		string(st), id.String())
}

func (r *leadRepo) MarkDrafted(ctx context.Context, id uuid.UUID, st constants.TransactionStatus, draftedAt time.Time) error {
	return r.update(ctx, id, "mark drafted",
		`UPDATE leads SET status = $1, drafted_at = $2 WHERE id = $3`,
		string(st), draftedAt.UTC(), id.String())
}

func (r *leadRepo) SetReview(ctx context.Context, id uuid.UUID, st constants.TransactionStatus, notes string, reviewedAt time.Time) error {
	return r.update(ctx, id, "set review",
		`UPDATE leads SET status = $1, agent_notes = $2, reviewed_at = $3 WHERE id = $4`,
		string(st), notes, reviewedAt.UTC(), id.String())
}

func (r *leadRepo) update(ctx context.Context, id uuid.UUID, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.Error("lead update failed", "op", op, "lead_id", id, "error", err)
		return common.WrapError(err, op)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.NewAppError("LEAD_NOT_FOUND", fmt.Sprintf("lead %s", id), common.ErrNotFound)
	}
	r.log.Info("lead updated", "op", op, "lead_id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		idStr, name, email, service, status sql.NullString
		rawData, realistData, agentNotes    sql.NullString
		reviewedAt, draftedAt               sql.NullTime
		createdAt                           time.Time
	)
	err := row.Scan(&idStr, &name, &email, &service, &status,
		&rawData, &realistData, &agentNotes, &reviewedAt, &draftedAt, &createdAt)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr.String)
	if err != nil {
		return nil, fmt.Errorf("lead id %q: %w", idStr.String, err)
	}
	lead := &entity.Lead{
		ID:         id,
		Name:       name.String,
		Email:      email.String,
		Service:    service.String,
		Status:     constants.TransactionStatus(status.String),
		AgentNotes: agentNotes.String,
		CreatedAt:  createdAt,
	}
	if rawData.Valid {
		lead.RawData = []byte(rawData.String)
	}
	if realistData.Valid {
		lead.RealistData = []byte(realistData.String)
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		lead.ReviewedAt = &t
	}
	if draftedAt.Valid {
		t := draftedAt.Time
		lead.DraftedAt = &t
	}
	return lead, nil
}

func collectLeads(rows *sql.Rows) ([]*entity.Lead, error) {
	var out []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, lead)
	}
	return out, rows.Err()
}

func nullableText(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
