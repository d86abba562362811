package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) health(c *gin.Context) {
	health := gin.H{
		"database":          "unknown",
		"contract_template": "unknown",
		"output_dir":        "unknown",
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		health["database"] = "error"
	} else {
		health["database"] = "healthy"
	}

	if _, err := os.Stat(s.assembler.TemplatePath()); err == nil {
		health["contract_template"] = "available"
	} else {
		health["contract_template"] = "missing"
	}

	if _, err := os.Stat(s.cfg.Documents.OutputDir); err == nil {
		health["output_dir"] = "exists"
	} else {
		health["output_dir"] = "missing"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "transaction-copilot health check",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"health":    health,
	})
}

func (s *Server) exportLeads(c *gin.Context) {
	data, err := s.export.ExportLeadsXLSX(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=leads.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
