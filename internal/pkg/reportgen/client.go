// Package reportgen calls a chat-completion model to draft event reports.
package reportgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultCompletionsURL = "https://api.openai.com/v1/chat/completions"

// Config configures the completions endpoint and HTTP behavior.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client invokes the chat-completions API over plain HTTP.
type Client struct {
	cfg Config
}

// NewClient builds a report generation client.
func NewClient(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultCompletionsURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{cfg: cfg}
}

// EventSummary carries the facts the prompt is built from.
type EventSummary struct {
	ClubName        string
	EventName       string
	Description     string
	Location        string
	DateTime        time.Time
	AttendanceCount int
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateReport produces a narrative report for a completed event.
// The call is bounded by the configured timeout and is never retried;
// callers decide whether a failed attempt should be repeated.
func (c *Client) GenerateReport(ctx context.Context, summary EventSummary) (string, error) {
	apiKey := strings.TrimSpace(c.cfg.APIKey)
	if apiKey == "" {
		return "", fmt.Errorf("api key is required")
	}
	model := strings.TrimSpace(c.cfg.Model)
	if model == "" {
		return "", fmt.Errorf("model is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	requestBody, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You write concise post-event reports for a university club management platform. Summarize the event factually in two or three paragraphs.",
			},
			{
				Role:    "user",
				Content: buildPrompt(summary),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal report request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("build report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// The API key travels only in the Authorization header and is never
	// echoed in errors or logs.
	req.Header.Set("Authorization", "Bearer "+apiKey)

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("report request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return "", fmt.Errorf("read report error body: %w", err)
		}
		return "", fmt.Errorf("report request status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload chatResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode report response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("report response has no choices")
	}
	content := strings.TrimSpace(payload.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("report response missing content")
	}
	return content, nil
}

func buildPrompt(summary EventSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Club: %s\n", summary.ClubName)
	fmt.Fprintf(&b, "Event: %s\n", summary.EventName)
	fmt.Fprintf(&b, "Date: %s\n", summary.DateTime.Format("2006-01-02 15:04"))
	if summary.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", summary.Location)
	}
	fmt.Fprintf(&b, "Registered attendees: %d\n", summary.AttendanceCount)
	if summary.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", summary.Description)
	}
	return b.String()
}
