// Package staging decides which staging actions to propose for a working tree.
//
// Everything in this package is pure: it reads a Snapshot captured elsewhere and
// never talks to git itself.
package staging

import "strings"

const untrackedPrefix = "??"

// Snapshot is the state of a working tree at one point in time. A new Snapshot is
// captured after every mutating action; existing values are never patched.
type Snapshot struct {
	StatusLines    []string
	StagedDiff     string
	UnstagedDiff   string
	UntrackedFiles string
}

// Empty reports whether the working tree has no changes at all.
func (s Snapshot) Empty() bool {
	return len(s.StatusLines) == 0
}

// StatusText joins the status lines the way `git status --porcelain` prints them.
func (s Snapshot) StatusText() string {
	return strings.Join(s.StatusLines, "\n")
}

// Classification summarizes which change partitions a Snapshot contains.
type Classification struct {
	HasStaged          bool
	HasUnstagedTracked bool
	HasUntracked       bool
}

// Classify derives the change partitions from s.
func (s Snapshot) Classify() Classification {
	return Classification{
		HasStaged:          strings.TrimSpace(s.StagedDiff) != "",
		HasUnstagedTracked: strings.TrimSpace(s.UnstagedDiff) != "",
		HasUntracked:       strings.TrimSpace(s.UntrackedFiles) != "" || s.hasUntrackedStatus(),
	}
}

func (s Snapshot) hasUntrackedStatus() bool {
	for _, line := range s.StatusLines {
		if strings.HasPrefix(line, untrackedPrefix) {
			return true
		}
	}
	return false
}
