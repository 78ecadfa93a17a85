package staging

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = "diff --git a/main.go b/main.go\n+func main() {}\n"

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		snapshot Snapshot
		kind     Kind
		action   Action
		required bool
	}{
		{
			name:     "clean tree",
			snapshot: Snapshot{},
			kind:     NoChanges,
		},
		{
			name: "only untracked file",
			snapshot: Snapshot{
				StatusLines:    []string{"?? new.txt"},
				UntrackedFiles: "new.txt",
			},
			kind:     NothingStagedHasUntracked,
			action:   StageAll,
			required: true,
		},
		{
			name: "untracked detected from status only",
			snapshot: Snapshot{
				StatusLines: []string{"?? new.txt"},
			},
			kind:     NothingStagedHasUntracked,
			action:   StageAll,
			required: true,
		},
		{
			name: "only unstaged modification",
			snapshot: Snapshot{
				StatusLines:  []string{" M main.go"},
				UnstagedDiff: sampleDiff,
			},
			kind:     NothingStagedNoUntracked,
			action:   StageTrackedModifications,
			required: true,
		},
		{
			name: "untracked wins over unstaged when nothing staged",
			snapshot: Snapshot{
				StatusLines:    []string{" M main.go", "?? new.txt"},
				UnstagedDiff:   sampleDiff,
				UntrackedFiles: "new.txt",
			},
			kind:     NothingStagedHasUntracked,
			action:   StageAll,
			required: true,
		},
		{
			name: "staged and untracked",
			snapshot: Snapshot{
				StatusLines:    []string{"M  main.go", "?? new.txt"},
				StagedDiff:     sampleDiff,
				UntrackedFiles: "new.txt",
			},
			kind:   HasStagedAndUntracked,
			action: StageAll,
		},
		{
			name: "staged and unstaged tracked",
			snapshot: Snapshot{
				StatusLines:  []string{"MM main.go"},
				StagedDiff:   sampleDiff,
				UnstagedDiff: sampleDiff,
			},
			kind:   HasStagedAndUnstagedTracked,
			action: StageTrackedModifications,
		},
		{
			name: "untracked wins over unstaged when something staged",
			snapshot: Snapshot{
				StatusLines:    []string{"MM main.go", "?? new.txt"},
				StagedDiff:     sampleDiff,
				UnstagedDiff:   sampleDiff,
				UntrackedFiles: "new.txt",
			},
			kind:   HasStagedAndUntracked,
			action: StageAll,
		},
		{
			name: "fully staged",
			snapshot: Snapshot{
				StatusLines: []string{"M  main.go"},
				StagedDiff:  sampleDiff,
			},
			kind: ReadyToGenerate,
		},
		{
			name: "whitespace-only staged diff counts as nothing staged",
			snapshot: Snapshot{
				StatusLines: []string{"A  empty.txt"},
				StagedDiff:  "\n",
			},
			kind:     NothingStagedNoUntracked,
			action:   StageTrackedModifications,
			required: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := Decide(tt.snapshot)

			assert.Equal(t, tt.kind, step.Kind)
			if tt.action == 0 {
				assert.Nil(t, step.Proposal)
				assert.True(t, step.Kind.Terminal())
				return
			}
			require.NotNil(t, step.Proposal)
			assert.Equal(t, tt.action, step.Proposal.Action)
			assert.Equal(t, tt.required, step.Proposal.Required)
			assert.False(t, step.Kind.Terminal())
		})
	}
}

// snapshots enumerates every combination of the four change partitions.
func snapshots() []Snapshot {
	var out []Snapshot
	for mask := 0; mask < 16; mask++ {
		var s Snapshot
		if mask&1 != 0 {
			s.StatusLines = []string{"M  main.go"}
		}
		if mask&2 != 0 {
			s.StagedDiff = sampleDiff
		}
		if mask&4 != 0 {
			s.UnstagedDiff = sampleDiff
		}
		if mask&8 != 0 {
			s.UntrackedFiles = "new.txt"
		}
		out = append(out, s)
	}
	return out
}

func TestDecide_EmptyStatusNeverProposes(t *testing.T) {
	for i, s := range snapshots() {
		if !s.Empty() {
			continue
		}
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			step := Decide(s)
			assert.Equal(t, NoChanges, step.Kind)
			assert.Nil(t, step.Proposal)
		})
	}
}

func TestDecide_StagedContentNeverRequiresStaging(t *testing.T) {
	for i, s := range snapshots() {
		if s.Empty() || s.StagedDiff == "" {
			continue
		}
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			step := Decide(s)
			if step.Proposal != nil {
				assert.False(t, step.Proposal.Required, "kind %s", step.Kind)
			}
		})
	}
}

func TestSnapshot_StatusText(t *testing.T) {
	s := Snapshot{StatusLines: []string{"M  a.go", "?? b.go"}}
	assert.Equal(t, "M  a.go\n?? b.go", s.StatusText())
	assert.Equal(t, "", Snapshot{}.StatusText())
}

func TestActionAndKindStrings(t *testing.T) {
	assert.Equal(t, "stage-all", StageAll.String())
	assert.Equal(t, "stage-tracked", StageTrackedModifications.String())
	assert.Equal(t, "unknown", Action(0).String())
	assert.Equal(t, "ready", ReadyToGenerate.String())
	assert.Equal(t, "still-nothing-staged", StillNothingStaged.String())
}
