package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/khushi-1907/virtual-study-group/internal/config"
)

const (
	ContentTypeChat     = "chat"
	ContentTypeDocument = "document"

	summarizeTimeout = 30 * time.Second
)

var ErrEmptyContent = errors.New("content is required")

// FallbackSummary is served when the upstream generation service cannot be
// reached; the caller decides whether to degrade rather than the client.
const FallbackSummary = "This is a mock summary because the AI service is not available. \n" +
	"- Key Point 1: Discussion about study schedules. \n" +
	"- Key Point 2: Shared resources for Mathematics. \n" +
	"- Key Point 3: Agreed to meet on Friday at 5 PM."

// Summary carries either the generated text or the reason the upstream call
// failed. Upstream failures are typed data rather than swallowed errors, so
// the HTTP layer can log the reason and still degrade gracefully.
type Summary struct {
	Text     string
	Fallback bool
	Reason   string
}

// Summarizer produces a prose summary of chat or document text.
type Summarizer interface {
	Summarize(ctx context.Context, content, contentType string) (*Summary, error)
}

// AnthropicSummarizer calls the Anthropic Messages API.
type AnthropicSummarizer struct {
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	client    *http.Client
}

func NewAnthropicSummarizer(cfg config.AnthropicConfig) *AnthropicSummarizer {
	return &AnthropicSummarizer{
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		baseURL:   cfg.BaseURL,
		maxTokens: cfg.MaxTokens,
		client:    &http.Client{Timeout: summarizeTimeout},
	}
}

// buildPrompt produces a type-specific instruction: chat summaries emphasize
// topics, decisions and action items; document summaries emphasize main
// concepts and takeaways.
func buildPrompt(content, contentType string) string {
	if contentType == ContentTypeChat {
		return "Review this chat history from a study group and provide a concise summary. " +
			"Highlight key topics discussed, decisions made, and any action items identified. " +
			"Use bullet points.\n\nChat History:\n" + content
	}
	return "Analyze this document content and provide a professional, high-level summary. " +
		"Focus on the main concepts, key arguments, and essential information. " +
		"Use bullet points for key takeaways.\n\nDocument Content:\n" + content
}

// Summarize submits the content to the generation service. An empty content
// is a validation error; any upstream failure is reported as a fallback
// Summary, never as an error.
func (s *AnthropicSummarizer) Summarize(ctx context.Context, content, contentType string) (*Summary, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	text, err := s.complete(ctx, buildPrompt(content, contentType))
	if err != nil {
		return &Summary{Text: FallbackSummary, Fallback: true, Reason: err.Error()}, nil
	}
	return &Summary{Text: text}, nil
}

func (s *AnthropicSummarizer) complete(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", errors.New("anthropic api key not configured")
	}

	reqBody := map[string]interface{}{
		"model":       s.model,
		"max_tokens":  s.maxTokens,
		"temperature": 0,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, summarizeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/v1/messages", bytes.NewBuffer(reqJSON))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Content) == 0 {
		return "", errors.New("empty response from API")
	}

	return result.Content[0].Text, nil
}
