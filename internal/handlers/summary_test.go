package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/khushi-1907/virtual-study-group/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubSummarizer struct {
	gotContent     string
	gotContentType string
	result         *service.Summary
	err            error
}

func (s *stubSummarizer) Summarize(ctx context.Context, content, contentType string) (*service.Summary, error) {
	s.gotContent = content
	s.gotContentType = contentType
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func summarizeRouter(s service.Summarizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/summarize", NewSummaryHandler(s).Summarize)
	return r
}

func TestSummarizeReturnsSummary(t *testing.T) {
	stub := &stubSummarizer{result: &service.Summary{Text: "- derivatives reviewed"}}
	r := summarizeRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/summarize",
		strings.NewReader(`{"content":"we reviewed derivatives","contentType":"chat"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "- derivatives reviewed")
	assert.Contains(t, w.Body.String(), `"fallback":false`)
	assert.Equal(t, "we reviewed derivatives", stub.gotContent)
	assert.Equal(t, service.ContentTypeChat, stub.gotContentType)
}

func TestSummarizeDefaultsToChatContentType(t *testing.T) {
	stub := &stubSummarizer{result: &service.Summary{Text: "ok"}}
	r := summarizeRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/summarize",
		strings.NewReader(`{"content":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ContentTypeChat, stub.gotContentType)
}

func TestSummarizeRejectsEmptyContent(t *testing.T) {
	stub := &stubSummarizer{err: service.ErrEmptyContent}
	r := summarizeRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/summarize",
		strings.NewReader(`{"content":""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Content is required")
}

func TestSummarizeSurfacesFallback(t *testing.T) {
	stub := &stubSummarizer{result: &service.Summary{
		Text:     service.FallbackSummary,
		Fallback: true,
		Reason:   "API error (status 503)",
	}}
	r := summarizeRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/summarize",
		strings.NewReader(`{"content":"some chat"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fallback":true`)
	assert.Contains(t, w.Body.String(), "mock summary")
}
