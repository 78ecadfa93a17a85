package message

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/samzong/git-autocommit/internal/llm"
)

// ErrEmptyMessage is wrapped in a GenerationError when the backend replies with
// nothing usable.
var ErrEmptyMessage = errors.New("backend returned an empty commit message")

// GenerationError reports that no commit message could be obtained.
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("failed to generate commit message: %v", e.Err)
	}
	return fmt.Sprintf("failed to generate commit message with %s: %v", e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ChatBackend is the chat-completion capability the generator needs.
type ChatBackend interface {
	Complete(ctx context.Context, req llm.Request) (llm.Response, error)
}

type Generator struct {
	backend ChatBackend
	model   string
	opts    PromptOptions
	logger  *zap.Logger
}

func NewGenerator(backend ChatBackend, model string, opts PromptOptions, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{backend: backend, model: model, opts: opts, logger: logger}
}

// Generate builds a prompt from the status and staged diff and returns the reply
// unmodified. The reply is not validated against the conventional format.
func (g *Generator) Generate(ctx context.Context, status, stagedDiff string) (CommitMessage, error) {
	prompt, err := BuildPrompt(g.opts, status, stagedDiff)
	if err != nil {
		return CommitMessage{}, fmt.Errorf("failed to build prompt: %w", err)
	}

	resp, err := g.backend.Complete(ctx, llm.Request{
		System: prompt.System,
		User:   prompt.User,
		Model:  g.model,
	})
	if err != nil {
		return CommitMessage{}, &GenerationError{Model: g.model, Err: err}
	}
	if strings.TrimSpace(resp.Content) == "" {
		return CommitMessage{}, &GenerationError{Model: g.model, Err: ErrEmptyMessage}
	}

	msg := NewCommitMessage(resp.Content)
	g.logger.Debug("commit message generated",
		zap.String("model", g.model),
		zap.String("type", msg.Type()),
		zap.Int("subject_length", len(msg.Subject())))
	return msg, nil
}
