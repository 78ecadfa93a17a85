package staging

// Action is a single mutating staging call.
type Action int

const (
	// StageAll adds every path in the working tree, untracked files included.
	StageAll Action = iota + 1
	// StageTrackedModifications adds only paths git already tracks.
	StageTrackedModifications
)

func (a Action) String() string {
	switch a {
	case StageAll:
		return "stage-all"
	case StageTrackedModifications:
		return "stage-tracked"
	default:
		return "unknown"
	}
}

// Kind names the state the engine found the working tree in.
type Kind int

const (
	NoChanges Kind = iota
	NothingStagedHasUntracked
	NothingStagedNoUntracked
	HasStagedAndUntracked
	HasStagedAndUnstagedTracked
	ReadyToGenerate
	StillNothingStaged
)

func (k Kind) String() string {
	switch k {
	case NoChanges:
		return "no-changes"
	case NothingStagedHasUntracked:
		return "nothing-staged-has-untracked"
	case NothingStagedNoUntracked:
		return "nothing-staged-no-untracked"
	case HasStagedAndUntracked:
		return "staged-and-untracked"
	case HasStagedAndUnstagedTracked:
		return "staged-and-unstaged-tracked"
	case ReadyToGenerate:
		return "ready"
	case StillNothingStaged:
		return "still-nothing-staged"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further staging decision follows k.
func (k Kind) Terminal() bool {
	return k == NoChanges || k == ReadyToGenerate || k == StillNothingStaged
}

// Proposal is a staging action offered to the operator. A required proposal is the
// only path to any staged content; declining it ends the run.
type Proposal struct {
	Action   Action
	Required bool
}

// Step is one decision of the engine. Proposal is nil for terminal kinds.
type Step struct {
	Kind     Kind
	Proposal *Proposal
}

// Decide maps a snapshot to the next staging step.
//
// Untracked files are always considered before unstaged tracked changes: when every
// change is untracked, staging them is what makes a later tracked-modification
// check meaningful.
func Decide(s Snapshot) Step {
	if s.Empty() {
		return Step{Kind: NoChanges}
	}

	c := s.Classify()
	if !c.HasStaged {
		if c.HasUntracked {
			return propose(NothingStagedHasUntracked, StageAll, true)
		}
		return propose(NothingStagedNoUntracked, StageTrackedModifications, true)
	}

	if c.HasUntracked {
		return propose(HasStagedAndUntracked, StageAll, false)
	}
	if c.HasUnstagedTracked {
		return propose(HasStagedAndUnstagedTracked, StageTrackedModifications, false)
	}
	return Step{Kind: ReadyToGenerate}
}

func propose(kind Kind, action Action, required bool) Step {
	return Step{Kind: kind, Proposal: &Proposal{Action: action, Required: required}}
}
