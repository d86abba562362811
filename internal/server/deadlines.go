package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mira-realty/transaction-copilot/constants"
	"github.com/mira-realty/transaction-copilot/internal/deadline"
)

// upcomingDeadlines reports deadlines approaching within the configured
// window across all active transactions. Deadlines are recomputed from the
// stored contract date on every call, never read from storage.
func (s *Server) upcomingDeadlines(c *gin.Context) {
	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			// The one strict validation point: a malformed date has no
			// reasonable silent fallback.
			c.JSON(http.StatusBadRequest, gin.H{"error": "as_of must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	leads, err := s.leads.ListByStatus(c.Request.Context(), constants.ActiveStatuses...)
	if err != nil {
		s.respondError(c, err)
		return
	}

	type leadDeadlines struct {
		LeadID               string                      `json:"lead_id"`
		LeadName             string                      `json:"lead_name"`
		Status               constants.TransactionStatus `json:"status"`
		ApproachingDeadlines []deadline.Upcoming         `json:"approaching_deadlines"`
	}

	summary := []leadDeadlines{}
	for _, lead := range leads {
		set := deadline.Compute(lead.ContractDate(), deadline.Purchase)
		approaching := deadline.Approaching(set, asOf, s.cfg.Deadlines.WindowDays)
		if len(approaching) == 0 {
			continue
		}
		summary = append(summary, leadDeadlines{
			LeadID:               lead.ID.String(),
			LeadName:             lead.Name,
			Status:               lead.Status,
			ApproachingDeadlines: approaching,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"upcoming_deadlines":        summary,
		"total_active_transactions": len(leads),
	})
}

// triggerFollowups marks pending transactions for follow-up. The actual
// email/SMS sender is a separate integration; this records intent.
func (s *Server) triggerFollowups(c *gin.Context) {
	leads, err := s.leads.ListByStatus(c.Request.Context(),
		constants.StatusPendingSignatures, constants.StatusAwaitingReview)
	if err != nil {
		s.respondError(c, err)
		return
	}

	type followup struct {
		LeadID string                      `json:"lead_id"`
		Name   string                      `json:"name"`
		Email  string                      `json:"email"`
		Status constants.TransactionStatus `json:"status"`
		Action string                      `json:"action"`
	}
	results := []followup{}
	for _, lead := range leads {
		results = append(results, followup{
			LeadID: lead.ID.String(),
			Name:   lead.Name,
			Email:  lead.Email,
			Status: lead.Status,
			Action: "follow_up_scheduled",
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"follow_ups_triggered": len(results),
		"results":              results,
	})
}
