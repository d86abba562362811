package server

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) generateContract(c *gin.Context) {
	id, ok := s.leadID(c)
	if !ok {
		return
	}
	res, err := s.draft.Run(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("contract generated",
		zap.String("lead_id", id.String()),
		zap.String("path", res.Contract.Path),
		zap.Bool("fallback", res.Contract.Fallback),
	)
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"contract_created": res.Contract.Path,
		"fallback":         res.Contract.Fallback,
		"lead":             s.leadToView(res.Lead),
		"realist_data":     res.Record,
		"deadlines":        res.Deadlines,
		"message":          "contract generated and ready for agent review",
	})
}

func (s *Server) downloadContract(c *gin.Context) {
	id, ok := s.leadID(c)
	if !ok {
		return
	}
	lead, err := s.leads.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	path := s.assembler.ContractPath(lead)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no contract found for lead %s", id)})
		return
	}
	serveContract(c, path, id.String())
}

func (s *Server) generateAndDownload(c *gin.Context) {
	id, ok := s.leadID(c)
	if !ok {
		return
	}
	res, err := s.draft.Run(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if res.Contract.Fallback {
		// The fallback document is DOCX, not the filled agreement.
		c.Header("Content-Disposition",
			fmt.Sprintf("attachment; filename=service_agreement_%s.docx", id))
		c.File(res.Contract.Path)
		return
	}
	serveContract(c, res.Contract.Path, id.String())
}

func serveContract(c *gin.Context, path, leadID string) {
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=purchase_agreement_%s.pdf", leadID))
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
