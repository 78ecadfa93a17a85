// Package llm talks to an OpenAI-compatible chat-completion backend.
package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrMissingAPIKey is returned before any request when no API key is configured.
var ErrMissingAPIKey = errors.New("API key not set, run `git-autocommit authenticate` first")

const defaultTimeout = 30 * time.Second

// Request is a single chat exchange: fixed instructions plus templated content.
type Request struct {
	System string
	User   string
	Model  string
}

// Response carries the reply text exactly as the backend sent it.
type Response struct {
	Content string
	Model   string
}

// Model describes an entry of the backend's model listing.
type Model struct {
	ID      string
	OwnedBy string
	Created time.Time
}

// API is the subset of the go-openai client the package needs.
type API interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

type Options struct {
	APIKey  string
	APIBase string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
	// API replaces the go-openai client, mainly for tests.
	API API
}

type Client struct {
	api     API
	apiKey  string
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	api := opts.API
	if api == nil {
		clientConfig := openai.DefaultConfig(opts.APIKey)
		if opts.APIBase != "" {
			clientConfig.BaseURL = opts.APIBase
		}
		api = openai.NewClientWithConfig(clientConfig)
	}

	return &Client{
		api:     api,
		apiKey:  opts.APIKey,
		model:   opts.Model,
		timeout: timeout,
		logger:  logger,
	}
}

// Complete sends req and returns the first choice unmodified. The call is bounded
// by the client timeout.
func (c *Client) Complete(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return Response{}, ErrMissingAPIKey
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	})
	c.logger.Debug("chat completion finished",
		zap.String("model", model),
		zap.Duration("latency", time.Since(start)),
		zap.Int("prompt_bytes", len(req.System)+len(req.User)),
		zap.Error(err))
	if err != nil {
		return Response{}, fmt.Errorf("failed to call LLM: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Response{}, errors.New("LLM returned empty response")
	}

	return Response{Content: resp.Choices[0].Message.Content, Model: resp.Model}, nil
}

// ListModels returns the backend's models sorted by ID.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	list, err := c.api.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	models := make([]Model, 0, len(list.Models))
	for _, m := range list.Models {
		models = append(models, Model{
			ID:      m.ID,
			OwnedBy: m.OwnedBy,
			Created: time.Unix(m.CreatedAt, 0).UTC(),
		})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
	return models, nil
}

// TestConnection verifies the credentials with a model listing and checks that
// model is served when the backend reports it.
func (c *Client) TestConnection(ctx context.Context, model string) error {
	models, err := c.ListModels(ctx)
	if err != nil {
		return err
	}
	if model == "" || len(models) == 0 {
		return nil
	}
	for _, m := range models {
		if m.ID == model {
			return nil
		}
	}
	return fmt.Errorf("model %q is not offered by the backend", model)
}
