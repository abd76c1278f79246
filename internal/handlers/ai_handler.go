package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Asker answers a free-form admin question.
type Asker interface {
	Ask(ctx context.Context, message string) (string, error)
}

type AIHandler struct {
	agent  Asker
	logger *zap.Logger
}

// NewAIHandler accepts a nil agent when no API key is configured.
func NewAIHandler(agent Asker, logger *zap.Logger) *AIHandler {
	return &AIHandler{agent: agent, logger: logger.Named("ai")}
}

type AskRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *AIHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Message is required")
		return
	}

	if h.agent == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI assistant is not configured"})
		return
	}

	reply, err := h.agent.Ask(c.Request.Context(), req.Message)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
