package openai

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

// Client talks to the OpenAI REST API (chat completions and audio
// transcription). It returns errors; the degrade-to-string policy lives
// in Gateway.
type Client struct {
	baseURL         string
	apiKey          string
	chatModel       string
	summaryModel    string
	transcribeModel string
	summaryMaxTok   int
	httpClient      *http.Client
}

type Options struct {
	BaseURL          string
	APIKey           string
	ChatModel        string
	SummaryModel     string
	TranscribeModel  string
	SummaryMaxTokens int
}

func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if opts.ChatModel == "" {
		opts.ChatModel = "gpt-4o"
	}
	if opts.SummaryModel == "" {
		opts.SummaryModel = "gpt-4o-mini"
	}
	if opts.TranscribeModel == "" {
		opts.TranscribeModel = "whisper-1"
	}
	if opts.SummaryMaxTokens <= 0 {
		opts.SummaryMaxTokens = 150
	}
	return &Client{
		baseURL:         baseURL,
		apiKey:          opts.APIKey,
		chatModel:       opts.ChatModel,
		summaryModel:    opts.SummaryModel,
		transcribeModel: opts.TranscribeModel,
		summaryMaxTok:   opts.SummaryMaxTokens,
		httpClient:      &http.Client{Timeout: 120 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// SummarizeText asks the summary model for a one-sentence summary.
func (c *Client) SummarizeText(ctx context.Context, text string) (string, error) {
	return c.chatComplete(ctx, chatRequest{
		Model: c.summaryModel,
		Messages: []chatMessage{
			{Role: "system", Content: summarizeSystemPrompt},
			{Role: "user", Content: "Here is the text:\n\n" + text},
		},
		MaxTokens:   c.summaryMaxTok,
		Temperature: 0.5,
	})
}

// AnswerQuestion asks the chat model, preferring the supplied context block.
func (c *Client) AnswerQuestion(ctx context.Context, contextText, question string) (string, error) {
	return c.chatComplete(ctx, chatRequest{
		Model: c.chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: answerSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextText, question)},
		},
		Temperature: 0.7,
	})
}

func (c *Client) chatComplete(ctx context.Context, req chatRequest) (string, error) {
	var resp chatResponse
	if err := c.postJSON(ctx, "/chat/completions", req, &resp, "chat"); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("openai chat error: %s (%s)", resp.Error.Message, resp.Error.Type)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat response missing choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai chat response empty content")
	}
	return content, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any, operation string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("openai %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return formatHTTPError(operation, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

func formatHTTPError(operation string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("openai %s status: %s", operation, resp.Status)
	}
	return fmt.Errorf("openai %s status: %s: %s", operation, resp.Status, msg)
}
