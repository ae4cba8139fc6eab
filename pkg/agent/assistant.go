// Package agent wraps the OpenAI-compatible SDK in a single named
// conversational assistant carrying a fixed system instruction.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	configpkg "github.com/botcampus-ai/gemini-chat-go/pkg/config"
	loggerpkg "github.com/botcampus-ai/gemini-chat-go/pkg/logger"
)

// Assistant holds the model client and the conversation history for one
// session. History always starts with the system instruction; cross-turn
// memory lives here, not in the callers.
type Assistant struct {
	name    string
	config  configpkg.Config
	client  openai.Client
	history []openai.ChatCompletionMessageParamUnion

	logger  loggerpkg.Logger
	verbose bool
}

// New builds an Assistant bound to the configured endpoint and model. The
// client is a lazy handle; no network call happens here.
func New(name string, cfg configpkg.Config, opts ...Option) (*Assistant, error) {
	cfg = configpkg.Normalize(cfg)
	deps := assistantDeps{logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}

	if strings.TrimSpace(name) == "" {
		return nil, errors.New("assistant name is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("APIKey is not set")
	}
	if cfg.Model == "" {
		return nil, errors.New("Model is not set")
	}

	loggerpkg.Debug(cfg.Verbose, deps.logger, "assistant init", map[string]any{
		"name":        name,
		"model":       cfg.Model,
		"base_url":    cfg.BaseURL,
		"temperature": cfg.Temperature,
		"max_tokens":  cfg.MaxTokens,
	})

	return &Assistant{
		name:    name,
		config:  cfg,
		client:  newOpenAIClient(cfg),
		history: []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(cfg.SystemPrompt)},

		logger:  deps.logger,
		verbose: cfg.Verbose,
	}, nil
}

func newOpenAIClient(cfg configpkg.Config) openai.Client {
	opts := []option.RequestOption{}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return openai.NewClient(opts...)
}

// Name returns the assistant's name.
func (a *Assistant) Name() string {
	return a.name
}

// Run submits one conversational turn and returns the reply. The user
// message is rolled back on failure so history stays consistent.
func (a *Assistant) Run(ctx context.Context, input string) (Reply, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	previousLen := len(a.history)
	a.history = append(a.history, openai.UserMessage(input))

	a.debugf("[verbose] turn: sending request with %d message(s)", len(a.history))
	completion, err := a.client.Chat.Completions.New(ctx, a.newChatParams())
	if err != nil {
		a.history = a.history[:previousLen]
		return Reply{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		a.history = a.history[:previousLen]
		return Reply{}, errors.New("empty completion choices")
	}

	message := completion.Choices[0].Message
	a.history = append(a.history, message.ToParam())

	reply := Reply{
		Content: message.Content,
		Raw:     message.RawJSON(),
		Usage: Usage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		},
	}
	a.debugf("[verbose] turn: reply received (%d tokens total)", reply.Usage.TotalTokens)
	return reply, nil
}

// Reset drops accumulated turns and keeps only the system instruction.
func (a *Assistant) Reset() {
	a.history = []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(a.config.SystemPrompt)}
}

func (a *Assistant) newChatParams() openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(a.config.Model),
		Messages:    a.history,
		Temperature: openai.Float(a.config.Temperature),
		MaxTokens:   openai.Int(int64(a.config.MaxTokens)),
	}
}

func (a *Assistant) debugf(format string, args ...any) {
	loggerpkg.Debugf(a.verbose, a.logger, format, args...)
}
