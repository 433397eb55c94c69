package providers

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultChangeSummary is returned when no model is configured or the
// completion fails
var DefaultChangeSummary = []string{"Training context refreshed from your latest activity"}

// OpenAISummarizer produces context-refresh change summaries with a chat
// completion
type OpenAISummarizer struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAISummarizer returns a summarizer for apiKey. An empty key gives a
// summarizer that always returns DefaultChangeSummary.
func NewOpenAISummarizer(apiKey, model string, maxTokens int) *OpenAISummarizer {
	s := &OpenAISummarizer{model: model, maxTokens: maxTokens}
	if s.model == "" {
		s.model = openai.GPT4oMini
	}
	if s.maxTokens <= 0 {
		s.maxTokens = 300
	}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	return s
}

// NewOpenAISummarizerWithConfig builds a summarizer on a custom client
// config, e.g. a different base URL
func NewOpenAISummarizerWithConfig(cfg openai.ClientConfig, model string, maxTokens int) *OpenAISummarizer {
	s := NewOpenAISummarizer("", model, maxTokens)
	s.client = openai.NewClientWithConfig(cfg)
	return s
}

// Enabled reports whether a model client is configured
func (s *OpenAISummarizer) Enabled() bool {
	return s.client != nil
}

// Summarize asks the model for a short bullet list describing what changed
// in the athlete's training context. The error is set only when the model
// was called and failed; the returned summary is always usable.
func (s *OpenAISummarizer) Summarize(ctx context.Context, userID int64, payload string) ([]string, error) {
	if s.client == nil {
		return DefaultChangeSummary, nil
	}

	prompt := fmt.Sprintf(
		"Summarise in at most three short bullet points what changed in the training context of athlete %d. Context:\n%s",
		userID, payload,
	)
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		return DefaultChangeSummary, err
	}
	if len(resp.Choices) == 0 {
		return DefaultChangeSummary, nil
	}
	return splitBullets(resp.Choices[0].Message.Content), nil
}

// splitBullets turns a model reply into one entry per non-empty line
func splitBullets(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•"))
		if line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return DefaultChangeSummary
	}
	return out
}
