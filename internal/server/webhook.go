package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mira-realty/transaction-copilot/constants"
	"github.com/mira-realty/transaction-copilot/internal/entity"
)

// Tally form payload shapes. Only the fields we route on are modeled; the
// full payload is stored raw on the lead for later inspection.
type tallyPayload struct {
	Data struct {
		Fields []tallyField `json:"fields"`
	} `json:"data"`
}

type tallyField struct {
	Label   string          `json:"label"`
	Value   json.RawMessage `json:"value"`
	Options []tallyOption   `json:"options"`
}

type tallyOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// intake defaults when the form omits a field.
const (
	defaultName    = "Unknown"
	defaultEmail   = "unknown@example.com"
	defaultService = "General Inquiry"
)

// parseTallyPayload maps form answers onto intake fields by label.
func parseTallyPayload(p tallyPayload) (name, email, service string) {
	name, email, service = defaultName, defaultEmail, defaultService

	for _, f := range p.Data.Fields {
		label := strings.ToLower(f.Label)
		switch {
		case strings.Contains(label, "full legal name"):
			if v := rawString(f.Value); v != "" {
				name = v
			}
		case label == "email":
			if v := rawString(f.Value); v != "" {
				email = v
			}
		case strings.Contains(label, "how can mira help you today?"):
			// Multiple-choice: value is a list of selected option IDs.
			var choiceIDs []string
			if err := json.Unmarshal(f.Value, &choiceIDs); err != nil || len(choiceIDs) == 0 {
				continue
			}
			for _, opt := range f.Options {
				if opt.ID == choiceIDs[0] {
					service = opt.Text
					break
				}
			}
		}
	}
	return name, email, service
}

func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func (s *Server) tallyWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable payload"})
		return
	}
	var payload tallyPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload must be JSON"})
		return
	}

	name, email, service := parseTallyPayload(payload)
	lead := &entity.Lead{
		Name:    name,
		Email:   email,
		Service: service,
		Status:  constants.StatusNew,
		RawData: body,
	}
	if err := s.leads.Create(c.Request.Context(), lead); err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("tally webhook ingested",
		zap.String("lead_id", lead.ID.String()),
		zap.String("service", service),
	)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"inserted": gin.H{
			"id":      lead.ID,
			"name":    name,
			"email":   email,
			"service": service,
		},
	})
}
