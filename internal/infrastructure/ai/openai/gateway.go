package openai

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"notes-assistant/internal/core/domain"
)

// Gateway wraps Client with the degrade-to-a-friendly-string failure
// policy: one best-effort request, no retry, never an error to the caller.
type Gateway struct {
	client *Client
}

func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

// Summarize returns the one-sentence summary and whether the result is a
// degraded fallback. Empty input short-circuits without a network call.
func (g *Gateway) Summarize(ctx context.Context, text string) (string, bool) {
	if text == "" {
		return domain.MsgNoText, false
	}
	summary, err := g.client.SummarizeText(ctx, text)
	if err != nil {
		slog.Warn("ai_summarize_failed", "error", err)
		return domain.MsgSummaryUnavailable, true
	}
	return summary, false
}

// Answer returns the model's reply, or an error string embedding the
// failure message.
func (g *Gateway) Answer(ctx context.Context, contextText, question string) string {
	answer, err := g.client.AnswerQuestion(ctx, contextText, question)
	if err != nil {
		slog.Warn("ai_answer_failed", "error", err)
		return fmt.Sprintf("AI Error: %s", err)
	}
	return answer
}

// Transcribe returns the transcript of the audio file at path.
func (g *Gateway) Transcribe(ctx context.Context, path string) string {
	if _, err := os.Stat(path); err != nil {
		return domain.MsgVoiceFileNotFound
	}
	text, err := g.client.TranscribeFile(ctx, path)
	if err != nil {
		slog.Warn("ai_transcribe_failed", "error", err)
		return domain.MsgTranscribeError
	}
	return text
}
