package handlers

import (
	"errors"
	"net/http"

	"github.com/khushi-1907/virtual-study-group/internal/service"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	summarizer service.Summarizer
}

func NewSummaryHandler(summarizer service.Summarizer) *SummaryHandler {
	return &SummaryHandler{summarizer: summarizer}
}

type summarizeRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

func (h *SummaryHandler) Summarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = service.ContentTypeChat
	}

	summary, err := h.summarizer.Summarize(c.Request.Context(), req.Content, contentType)
	if err != nil {
		if errors.Is(err, service.ErrEmptyContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":  summary.Text,
		"fallback": summary.Fallback,
	})
}
