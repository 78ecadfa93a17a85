// Package workflow runs one autocommit: stage, generate, confirm, commit.
package workflow

import (
	"context"

	"github.com/samzong/git-autocommit/internal/message"
	"github.com/samzong/git-autocommit/internal/staging"
)

// Repo is the working tree the flow reads and mutates.
type Repo interface {
	Capture(ctx context.Context) (staging.Snapshot, error)
	Apply(ctx context.Context, action staging.Action) error
	Commit(ctx context.Context, message string, args ...string) error
}

// Generator drafts a commit message for the staged changes.
type Generator interface {
	Generate(ctx context.Context, status, stagedDiff string) (message.CommitMessage, error)
}
