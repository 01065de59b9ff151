// Package llm adapts the hosted Anthropic Messages API to domain.LanguageModel.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/summit/internal/config"
	"github.com/comitanigiacomo/summit/internal/core/domain"
)

var _ domain.LanguageModel = (*AnthropicModel)(nil)

var errEmptyReply = errors.New("model returned no text")

type AnthropicModel struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	logger    *zap.Logger
}

func NewAnthropicModel(cfg config.LLMConfig, logger *zap.Logger, opts ...option.RequestOption) *AnthropicModel {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(2),
	}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		base = append(base, option.WithRequestTimeout(cfg.Timeout))
	}

	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	return &AnthropicModel{
		client:    anthropic.NewClient(append(base, opts...)...),
		model:     anthropic.Model(cfg.Model),
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Complete sends the system prompt and the conversation and returns the
// concatenated text blocks of the reply. Every failure wraps
// domain.ErrCoachUnavailable.
func (m *AnthropicModel) Complete(ctx context.Context, system string, history []*domain.ChatMessage) (string, error) {
	messages := toMessages(history)
	if len(messages) == 0 {
		return "", fmt.Errorf("%w: empty conversation", domain.ErrInvalidArgument)
	}

	params := anthropic.MessageNewParams{
		Model:     m.model,
		MaxTokens: m.maxTokens,
		Messages:  messages,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			m.logger.Error("anthropic request failed",
				zap.Int("status", apiErr.StatusCode),
				zap.String("model", string(m.model)),
			)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrCoachUnavailable, err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: %v", domain.ErrCoachUnavailable, errEmptyReply)
	}

	m.logger.Debug("anthropic reply",
		zap.String("stop_reason", string(resp.StopReason)),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
	)
	return text, nil
}

// toMessages maps chat history onto alternating user/assistant turns.
// Consecutive messages from the same role are merged, and a leading
// assistant turn is dropped because the API requires the user to speak first.
func toMessages(history []*domain.ChatMessage) []anthropic.MessageParam {
	type turn struct {
		role string
		text []string
	}

	var turns []turn
	for _, msg := range history {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		if len(turns) == 0 && msg.Role != domain.ChatRoleUser {
			continue
		}
		if n := len(turns); n > 0 && turns[n-1].role == msg.Role {
			turns[n-1].text = append(turns[n-1].text, content)
			continue
		}
		turns = append(turns, turn{role: msg.Role, text: []string{content}})
	}

	out := make([]anthropic.MessageParam, 0, len(turns))
	for _, t := range turns {
		block := anthropic.NewTextBlock(strings.Join(t.text, "\n\n"))
		if t.role == domain.ChatRoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
	}
	return out
}
