package server

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mira-realty/transaction-copilot/internal/common"
	"github.com/mira-realty/transaction-copilot/internal/contract"
	"github.com/mira-realty/transaction-copilot/internal/export"
	"github.com/mira-realty/transaction-copilot/internal/pipeline"
	"github.com/mira-realty/transaction-copilot/internal/repository"
)

// Server wires the HTTP surface to the core pipeline. All decision logic
// lives behind it; handlers marshal requests and map errors.
type Server struct {
	cfg       *common.Config
	db        *sql.DB
	leads     repository.LeadRepository
	realist   *pipeline.RealistStage
	draft     *pipeline.DraftStage
	assembler *contract.Assembler
	export    *export.Service
	logger    *zap.Logger
}

func New(
	cfg *common.Config,
	db *sql.DB,
	leads repository.LeadRepository,
	realist *pipeline.RealistStage,
	draft *pipeline.DraftStage,
	assembler *contract.Assembler,
	exporter *export.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		cfg:       cfg,
		db:        db,
		leads:     leads,
		realist:   realist,
		draft:     draft,
		assembler: assembler,
		export:    exporter,
		logger:    logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/", s.root)
	r.GET("/health", s.health)

	r.POST("/tally_webhook", s.tallyWebhook)

	r.GET("/dashboard", s.dashboard)
	r.GET("/leads/:id", s.leadDetail)
	r.POST("/leads/:id/realist", s.uploadRealist)
	r.POST("/leads/:id/contract", s.generateContract)
	r.GET("/leads/:id/contract", s.downloadContract)
	r.POST("/leads/:id/contract/download", s.generateAndDownload)
	r.POST("/leads/:id/review", s.agentReview)
	r.POST("/leads/:id/status", s.updateStatus)

	r.GET("/deadlines", s.upcomingDeadlines)
	r.POST("/followups", s.triggerFollowups)
	r.GET("/export/leads.xlsx", s.exportLeads)

	return r
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "transaction-copilot backend is alive"})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.NewString()
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), reqID))
		c.Header("X-Request-ID", reqID)
		c.Next()
		s.logger.Info("http request",
			zap.String("request_id", reqID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// leadID parses the :id path parameter; on failure it writes a 400 and
// returns false.
func (s *Server) leadID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lead id must be a UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps core error taxonomy onto HTTP status codes.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrDocumentGen):
		s.logger.Warn("document generation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		s.logger.Error("internal error",
			zap.String("request_id", common.RequestIDFromContext(c.Request.Context())),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
