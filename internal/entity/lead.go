package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/mira-realty/transaction-copilot/constants"
)

// Lead represents a client intake record for data transfer between layers.
// Status is stored as free text for legacy rows; classify at the edges.
type Lead struct {
	ID          uuid.UUID                   `json:"id"`
	Name        string                      `json:"name"`
	Email       string                      `json:"email"`
	Service     string                      `json:"service"`
	Status      constants.TransactionStatus `json:"status"`
	RawData     []byte                      `json:"-"`
	RealistData []byte                      `json:"-"`
	AgentNotes  string                      `json:"agent_notes,omitempty"`
	ReviewedAt  *time.Time                  `json:"reviewed_at,omitempty"`
	DraftedAt   *time.Time                  `json:"drafted_at,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
}

// ContractDate is the execution date deadlines are derived from:
// the draft timestamp when present, otherwise the intake timestamp.
func (l *Lead) ContractDate() time.Time {
	if l.DraftedAt != nil {
		return *l.DraftedAt
	}
	return l.CreatedAt
}
