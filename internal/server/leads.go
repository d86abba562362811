package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mira-realty/transaction-copilot/constants"
	"github.com/mira-realty/transaction-copilot/internal/deadline"
	"github.com/mira-realty/transaction-copilot/internal/entity"
	"github.com/mira-realty/transaction-copilot/internal/realist"
	"github.com/mira-realty/transaction-copilot/internal/status"
)

// leadView is the API shape of a lead, with the stored record decoded and
// the deadline set recomputed for drafted transactions.
type leadView struct {
	*entity.Lead
	StatusLabel string                  `json:"status_label"`
	Record      *realist.PropertyRecord `json:"realist_data,omitempty"`
	RawData     json.RawMessage         `json:"raw_data,omitempty"`
	Deadlines   deadline.DeadlineSet    `json:"deadlines,omitempty"`
}

func (s *Server) leadToView(lead *entity.Lead) leadView {
	view := leadView{
		Lead:        lead,
		StatusLabel: status.Classify(string(lead.Status)).Label,
	}
	if rec, err := realist.DecodeRecord(lead.RealistData); err == nil && !rec.IsEmpty() {
		view.Record = rec
	}
	if json.Valid(lead.RawData) {
		view.RawData = json.RawMessage(lead.RawData)
	}
	if lead.DraftedAt != nil {
		view.Deadlines = deadline.Compute(*lead.DraftedAt, deadline.Purchase)
	}
	return view
}

func (s *Server) leadDetail(c *gin.Context) {
	id, ok := s.leadID(c)
	if !ok {
		return
	}
	lead, err := s.leads.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.leadToView(lead))
}

func (s *Server) dashboard(c *gin.Context) {
	leads, err := s.leads.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	grouped := map[constants.TransactionStatus][]leadView{}
	for _, lead := range leads {
		bucket := status.Classify(string(lead.Status))
		grouped[bucket.Status] = append(grouped[bucket.Status], s.leadToView(lead))
	}

	type bucketView struct {
		Status constants.TransactionStatus `json:"status"`
		Label  string                      `json:"label"`
		Leads  []leadView                  `json:"leads"`
	}
	out := make([]bucketView, 0, len(status.Buckets()))
	for _, b := range status.Buckets() {
		leads := grouped[b.Status]
		if leads == nil {
			leads = []leadView{}
		}
		out = append(out, bucketView{Status: b.Status, Label: b.Label, Leads: leads})
	}
	c.JSON(http.StatusOK, gin.H{"buckets": out})
}

func (s *Server) uploadRealist(c *gin.Context) {
	id, ok := s.leadID(c)
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	if !constants.IsAllowedExt(filepath.Ext(file.Filename)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF files are supported"})
		return
	}

	tmp := filepath.Join(os.TempDir(), "realist_"+uuid.NewString()+".pdf")
	if err := c.SaveUploadedFile(file, tmp); err != nil {
		s.respondError(c, err)
		return
	}
	defer removeQuiet(tmp, s.logger)

	res, err := s.realist.Run(c.Request.Context(), id, tmp)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"lead_id":        id,
		"extracted":      res.Extracted,
		"extracted_data": res.Record,
	})
}

type reviewRequest struct {
	Action string `json:"action" binding:"required"`
	Notes  string `json:"notes"`
}

func (s *Server) agentReview(c *gin.Context) {
	id, ok := s.leadID(c)
	if !ok {
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action is required"})
		return
	}
	action, err := status.ParseAction(req.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead, err := s.leads.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	next, err := status.ReviewAction(lead.Status, action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.leads.SetReview(c.Request.Context(), id, next, req.Notes, time.Now().UTC()); err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("agent review applied",
		zap.String("lead_id", id.String()),
		zap.String("action", string(action)),
		zap.String("new_status", string(next)),
	)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"lead_id":    id,
		"action":     action,
		"new_status": next,
		"notes":      req.Notes,
	})
}

type statusRequest struct {
	NewStatus string `json:"new_status" binding:"required"`
}

func (s *Server) updateStatus(c *gin.Context) {
	id, ok := s.leadID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_status is required"})
		return
	}

	// Strict vocabulary at the write boundary; Classify is only for reads
	// of legacy free-text rows.
	st := constants.TransactionStatus(strings.ToLower(strings.TrimSpace(req.NewStatus)))
	if !constants.IsValidStatus(st) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status outside canonical vocabulary"})
		return
	}
	if err := s.leads.SetStatus(c.Request.Context(), id, st); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated_id": id, "new_status": st})
}

func removeQuiet(path string, logger *zap.Logger) {
	if err := os.Remove(path); err != nil {
		logger.Warn("failed to remove temp file", zap.String("path", path), zap.Error(err))
	}
}
