package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samzong/git-autocommit/internal/config"
	"github.com/samzong/git-autocommit/internal/llm"
)

func TestRenderModels(t *testing.T) {
	var out bytes.Buffer
	renderModels(&out, []llm.Model{
		{ID: "gpt-4.1-mini", OwnedBy: "system", Created: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "local-llama", OwnedBy: "me"},
	})

	text := out.String()
	assert.Contains(t, text, "Available Models")
	assert.Contains(t, text, "OWNED BY")
	assert.Contains(t, text, "gpt-4.1-mini")
	assert.Contains(t, text, "2025-04-10")
	assert.Contains(t, text, "local-llama")
	assert.Contains(t, text, "N/A")
}

func TestModelsCommand(t *testing.T) {
	orig := listModels
	t.Cleanup(func() { listModels = orig })

	var gotModel string
	listModels = func(_ context.Context, cfg *config.Config) ([]llm.Model, error) {
		gotModel = cfg.Model
		return []llm.Model{{ID: "gpt-4o", OwnedBy: "openai"}}, nil
	}

	out, _, err := execute(t, "--config", writeConfig(t, "model: gpt-4o\n"), "models")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", gotModel)
	assert.Contains(t, out, "gpt-4o")

	listModels = func(context.Context, *config.Config) ([]llm.Model, error) {
		return nil, errors.New("401 unauthorized")
	}
	_, _, err = execute(t, "--config", writeConfig(t, ""), "models")
	assert.ErrorContains(t, err, "401 unauthorized")
}
