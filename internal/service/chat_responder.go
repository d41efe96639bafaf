package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"medprep/internal/domain"
	"medprep/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// ChatResponder produces the counterpart side of the case-study chat.
// onUpdate is invoked with the full accumulated reply after every streamed
// chunk, so the caller can replace a transcript placeholder's content in
// full each time. The final reply is also returned.
type ChatResponder interface {
	Reply(ctx context.Context, vignette string, userMessage string, onUpdate func(full string)) (string, error)
}

type ollamaChatResponder struct {
	llm *ollama.LLM
}

// NewOllamaChatResponder creates a streaming chat responder backed by an
// Ollama server.
func NewOllamaChatResponder(serverURL, model string) (ChatResponder, error) {
	httpClient := &http.Client{Timeout: 60 * time.Second}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat LLM client: %w", err)
	}
	return &ollamaChatResponder{llm: llm}, nil
}

// Reply implements ChatResponder
func (r *ollamaChatResponder) Reply(ctx context.Context, vignette string, userMessage string, onUpdate func(full string)) (string, error) {
	l := logger.Get()
	l.Info("Generating case-study chat reply", zap.Int("message_len", len(userMessage)))

	prompt := fmt.Sprintf(`You are an attending physician guiding a medical student through a clinical case.
Answer the student's question about the case below. Be concise, factual, and do not reveal
which answer choice is correct unless the student has already submitted an answer.

Case:
%s

Student: %s`, vignette, userMessage)

	var full strings.Builder
	_, err := llms.GenerateFromSinglePrompt(ctx, r.llm, prompt,
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			full.Write(chunk)
			if onUpdate != nil {
				onUpdate(full.String())
			}
			return nil
		}),
	)
	if err != nil {
		l.Error("Chat backend call failed", zap.Error(err))
		return "", domain.NewInternalError("chat backend is unavailable", err)
	}

	return full.String(), nil
}
