// Package git reads working-tree state and applies staging and commit operations
// by invoking the git executable.
package git

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/samzong/git-autocommit/internal/gitcmd"
	"github.com/samzong/git-autocommit/internal/gitutil"
	"github.com/samzong/git-autocommit/internal/staging"
	"github.com/samzong/git-autocommit/internal/stringsutil"
)

var (
	statusArgs    = []string{"status", "--porcelain"}
	stagedArgs    = []string{"diff", "--staged"}
	unstagedArgs  = []string{"diff"}
	untrackedArgs = []string{"ls-files", "--others", "--exclude-standard"}

	stageAllArgs     = []string{"add", "--all"}
	stageTrackedArgs = []string{"add", "--update"}
)

// ErrNotRepository is returned when the working directory is outside a git work tree.
var ErrNotRepository = errors.New("not a git repository (or any of the parent directories)")

type Options struct {
	Dir    string
	Logger *zap.Logger
}

// Client runs git in a single working tree.
type Client struct {
	runner gitcmd.Runner
}

func NewClient(opts Options) *Client {
	return &Client{runner: gitcmd.Runner{Dir: opts.Dir, Logger: opts.Logger}}
}

// IsGitRepository reports whether the client's directory is inside a work tree.
func (c *Client) IsGitRepository(ctx context.Context) bool {
	result, err := c.runner.Run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && result.StdoutString(true) == "true"
}

func (c *Client) CheckGitRepository(ctx context.Context) error {
	if !c.IsGitRepository(ctx) {
		return ErrNotRepository
	}
	return nil
}

// Capture queries status, staged diff, unstaged diff and untracked files. When the
// status is empty no diff is queried and an empty snapshot is returned.
func (c *Client) Capture(ctx context.Context) (staging.Snapshot, error) {
	status, err := c.query(ctx, statusArgs)
	if err != nil {
		return staging.Snapshot{}, err
	}

	lines := stringsutil.SplitNonEmpty(strings.TrimRight(status, "\n"), "\n")
	if len(lines) == 0 {
		return staging.Snapshot{}, nil
	}

	staged, err := c.query(ctx, stagedArgs)
	if err != nil {
		return staging.Snapshot{}, err
	}
	unstaged, err := c.query(ctx, unstagedArgs)
	if err != nil {
		return staging.Snapshot{}, err
	}
	untracked, err := c.query(ctx, untrackedArgs)
	if err != nil {
		return staging.Snapshot{}, err
	}

	return staging.Snapshot{
		StatusLines:    lines,
		StagedDiff:     strings.TrimSpace(staged),
		UnstagedDiff:   strings.TrimSpace(unstaged),
		UntrackedFiles: strings.TrimSpace(untracked),
	}, nil
}

// Apply executes a single staging action.
func (c *Client) Apply(ctx context.Context, action staging.Action) error {
	var args []string
	switch action {
	case staging.StageAll:
		args = stageAllArgs
	case staging.StageTrackedModifications:
		args = stageTrackedArgs
	default:
		return errors.New("unknown staging action: " + action.String())
	}
	return c.mutate(ctx, args, args)
}

// Commit records the index with message. Extra args are appended after the message.
func (c *Client) Commit(ctx context.Context, message string, args ...string) error {
	commitArgs := append([]string{"commit", "-m", message}, args...)
	display := append([]string{"commit", "-m", "<message>"}, args...)
	return c.mutate(ctx, commitArgs, display)
}

func (c *Client) query(ctx context.Context, args []string) (string, error) {
	result, err := c.runner.Run(ctx, args...)
	if err != nil {
		return "", gitutil.NewQueryError(args, result, err)
	}
	return result.StdoutString(false), nil
}

func (c *Client) mutate(ctx context.Context, args, display []string) error {
	result, err := c.runner.Run(ctx, args...)
	if err != nil {
		return gitutil.NewMutationError(display, result, err)
	}
	return nil
}
