package git

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samzong/git-autocommit/internal/gitutil"
	"github.com/samzong/git-autocommit/internal/staging"
)

func TestCapture_CleanTree(t *testing.T) {
	dir := newTempRepo(t)
	commitFile(t, dir, "README.md", "hello\n")

	snap, err := NewClient(Options{Dir: dir}).Capture(context.Background())
	require.NoError(t, err)

	assert.True(t, snap.Empty())
	assert.Empty(t, snap.StagedDiff)
	assert.Empty(t, snap.UnstagedDiff)
	assert.Empty(t, snap.UntrackedFiles)
}

func TestCapture_Partitions(t *testing.T) {
	dir := newTempRepo(t)
	commitFile(t, dir, "tracked.txt", "one\n")
	commitFile(t, dir, "staged.txt", "one\n")

	writeFile(t, dir, "tracked.txt", "two\n")
	writeFile(t, dir, "staged.txt", "two\n")
	runGit(t, dir, "add", "staged.txt")
	writeFile(t, dir, "new.txt", "fresh\n")

	snap, err := NewClient(Options{Dir: dir}).Capture(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{" M tracked.txt", "M  staged.txt", "?? new.txt"}, snap.StatusLines)
	assert.Contains(t, snap.StagedDiff, "staged.txt")
	assert.NotContains(t, snap.StagedDiff, "tracked.txt")
	assert.Contains(t, snap.UnstagedDiff, "tracked.txt")
	assert.Equal(t, "new.txt", snap.UntrackedFiles)

	c := snap.Classify()
	assert.True(t, c.HasStaged)
	assert.True(t, c.HasUnstagedTracked)
	assert.True(t, c.HasUntracked)
}

func TestCapture_NotARepository(t *testing.T) {
	newTempRepo(t)

	client := NewClient(Options{Dir: t.TempDir()})
	_, err := client.Capture(context.Background())
	if err == nil {
		t.Skip("temp directory is nested inside a git work tree")
	}

	var queryErr *gitutil.QueryError
	require.True(t, errors.As(err, &queryErr))
	assert.Equal(t, []string{"status", "--porcelain"}, queryErr.Args)
	assert.NotEmpty(t, queryErr.Stderr)
	assert.ErrorIs(t, client.CheckGitRepository(context.Background()), ErrNotRepository)
}

func TestApply_StageAllIsIdempotent(t *testing.T) {
	dir := newTempRepo(t)
	commitFile(t, dir, "README.md", "hello\n")
	writeFile(t, dir, "new.txt", "fresh\n")
	writeFile(t, dir, "README.md", "hello again\n")

	client := NewClient(Options{Dir: dir})
	ctx := context.Background()

	require.NoError(t, client.Apply(ctx, staging.StageAll))
	first, err := client.Capture(ctx)
	require.NoError(t, err)
	assert.Contains(t, first.StagedDiff, "new.txt")
	assert.Contains(t, first.StagedDiff, "README.md")
	assert.Empty(t, first.UntrackedFiles)

	require.NoError(t, client.Apply(ctx, staging.StageAll))
	second, err := client.Capture(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.StagedDiff, second.StagedDiff)
}

func TestApply_StageTrackedLeavesUntracked(t *testing.T) {
	dir := newTempRepo(t)
	commitFile(t, dir, "README.md", "hello\n")
	writeFile(t, dir, "README.md", "changed\n")
	writeFile(t, dir, "new.txt", "fresh\n")

	client := NewClient(Options{Dir: dir})
	ctx := context.Background()

	require.NoError(t, client.Apply(ctx, staging.StageTrackedModifications))
	snap, err := client.Capture(ctx)
	require.NoError(t, err)

	assert.Contains(t, snap.StagedDiff, "README.md")
	assert.Empty(t, snap.UnstagedDiff)
	assert.Equal(t, "new.txt", snap.UntrackedFiles)
}

func TestApply_UnknownAction(t *testing.T) {
	err := NewClient(Options{}).Apply(context.Background(), staging.Action(42))
	assert.Error(t, err)
}

func TestCommit_UsesMessageVerbatim(t *testing.T) {
	dir := newTempRepo(t)
	writeFile(t, dir, "main.go", "package main\n")
	runGit(t, dir, "add", "main.go")

	message := "feat(core): add entry point\n\nBody line with `ticks` and \"quotes\"."
	client := NewClient(Options{Dir: dir})
	require.NoError(t, client.Commit(context.Background(), message))

	logged := runGit(t, dir, "log", "-1", "--format=%B")
	assert.Equal(t, message, strings.TrimRight(logged, "\n"))
}

func TestCommit_NothingStaged(t *testing.T) {
	dir := newTempRepo(t)
	commitFile(t, dir, "README.md", "hello\n")

	err := NewClient(Options{Dir: dir}).Commit(context.Background(), "chore: nothing")

	var mutationErr *gitutil.MutationError
	require.True(t, errors.As(err, &mutationErr))
	assert.Equal(t, []string{"commit", "-m", "<message>"}, mutationErr.Args)
	assert.NotContains(t, err.Error(), "chore: nothing")
}

func TestIsGitRepository(t *testing.T) {
	dir := newTempRepo(t)
	client := NewClient(Options{Dir: dir})
	assert.True(t, client.IsGitRepository(context.Background()))
	assert.NoError(t, client.CheckGitRepository(context.Background()))
}
