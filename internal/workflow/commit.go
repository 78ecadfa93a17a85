package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/samzong/git-autocommit/internal/interact"
	"github.com/samzong/git-autocommit/internal/message"
	"github.com/samzong/git-autocommit/internal/staging"
)

// Outcome is how a run ended when it did not fail.
type Outcome int

const (
	OutcomeCommitted Outcome = iota
	OutcomeNoChanges
	OutcomeCancelled
	OutcomeNothingStaged
	OutcomeDryRun
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeNoChanges:
		return "no-changes"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeNothingStaged:
		return "nothing-staged"
	case OutcomeDryRun:
		return "dry-run"
	default:
		return "unknown"
	}
}

const (
	MsgNoChanges          = "No changes to commit."
	MsgNoStagedChanges    = "No staged changes found."
	MsgStillNothingStaged = "Still no staged changes to commit."
	MsgGenerating         = "Generating commit message..."
	MsgPanelTitle         = "Generated Commit Message"
	MsgConfirmCommit      = "Do you want to commit with this message?"
	MsgCancelled          = "Autocommit cancelled."
)

type Deps struct {
	Repo      Repo
	Generator Generator
	Gateway   interact.Gateway
	Logger    *zap.Logger
}

type CommitOptions struct {
	// DryRun stops after the operator accepts the message.
	DryRun   bool
	NoVerify bool
	// MaxSubjectLength only triggers a warning; the message is never shortened.
	MaxSubjectLength int
}

type CommitFlow struct {
	deps Deps
	opts CommitOptions
}

func NewCommitFlow(deps Deps, opts CommitOptions) *CommitFlow {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &CommitFlow{deps: deps, opts: opts}
}

// Run performs one autocommit. When err is non-nil nothing was committed and the
// outcome carries no meaning.
func (f *CommitFlow) Run(ctx context.Context) (Outcome, error) {
	snap, ready, outcome, err := f.stage(ctx)
	if err != nil || !ready {
		return outcome, err
	}

	msg, err := f.generate(ctx, snap)
	if err != nil {
		return OutcomeCancelled, err
	}

	gw := f.deps.Gateway
	gw.ShowPanel(MsgPanelTitle, msg.String())
	if msg.SubjectTooLong(f.opts.MaxSubjectLength) {
		gw.ShowMessage(fmt.Sprintf("The subject line is longer than %d characters.", f.opts.MaxSubjectLength),
			interact.Warning)
	}

	ok, err := gw.AskYesNo(MsgConfirmCommit)
	if err != nil {
		return OutcomeCancelled, err
	}
	if !ok {
		gw.ShowMessage(MsgCancelled, interact.Info)
		return OutcomeCancelled, nil
	}

	if f.opts.DryRun {
		gw.ShowMessage("Dry run mode, no actual commit.", interact.Info)
		return OutcomeDryRun, nil
	}

	if err := f.deps.Repo.Commit(ctx, msg.String(), f.commitArgs()...); err != nil {
		gw.ShowMessage("Commit failed; the staged changes are untouched. Generated message:\n"+msg.String(),
			interact.Error)
		return OutcomeCancelled, fmt.Errorf("failed to commit changes: %w", err)
	}

	gw.ShowMessage("Successfully committed with message: "+msg.Subject(), interact.Success)
	return OutcomeCommitted, nil
}

// stage drives the staging engine until it is ready to generate or the run ends.
func (f *CommitFlow) stage(ctx context.Context) (staging.Snapshot, bool, Outcome, error) {
	gw := f.deps.Gateway
	log := f.deps.Logger

	snap, err := f.deps.Repo.Capture(ctx)
	if err != nil {
		return snap, false, OutcomeCancelled, err
	}

	var plan staging.Plan
	announced := false
	for {
		step := plan.Next(snap)
		log.Debug("staging step", zap.Stringer("kind", step.Kind))

		switch step.Kind {
		case staging.NoChanges:
			gw.ShowMessage(MsgNoChanges, interact.Warning)
			return snap, false, OutcomeNoChanges, nil
		case staging.StillNothingStaged:
			gw.ShowMessage(MsgStillNothingStaged, interact.Warning)
			return snap, false, OutcomeNothingStaged, nil
		case staging.ReadyToGenerate:
			return snap, true, OutcomeCommitted, nil
		}

		proposal := *step.Proposal
		if proposal.Required && !announced {
			gw.ShowMessage(MsgNoStagedChanges, interact.Warning)
			announced = true
		}

		ok, err := gw.AskYesNo(question(step.Kind))
		if err != nil {
			return snap, false, OutcomeCancelled, err
		}
		log.Debug("staging proposal answered",
			zap.Stringer("action", proposal.Action),
			zap.Bool("required", proposal.Required),
			zap.Bool("accepted", ok))

		if !ok {
			if proposal.Required {
				gw.ShowMessage(declined(proposal.Action), interact.Info)
				return snap, false, OutcomeCancelled, nil
			}
			plan.Declined(proposal)
			continue
		}

		if err := f.deps.Repo.Apply(ctx, proposal.Action); err != nil {
			if proposal.Required {
				return snap, false, OutcomeCancelled, fmt.Errorf("failed to stage files: %w", err)
			}
			gw.ShowMessage(fmt.Sprintf("Failed to stage files: %v", err), interact.Warning)
			gw.ShowMessage("Continuing with the changes that were already staged.", interact.Info)
			plan.Declined(proposal)
			continue
		}
		plan.Applied(proposal)
		gw.ShowMessage(applied(proposal), interact.Success)

		snap, err = f.deps.Repo.Capture(ctx)
		if err != nil {
			return snap, false, OutcomeCancelled, err
		}
	}
}

func (f *CommitFlow) generate(ctx context.Context, snap staging.Snapshot) (message.CommitMessage, error) {
	stop := f.deps.Gateway.Progress(MsgGenerating)
	msg, err := f.deps.Generator.Generate(ctx, snap.StatusText(), snap.StagedDiff)
	stop()
	return msg, err
}

func (f *CommitFlow) commitArgs() []string {
	var args []string
	if f.opts.NoVerify {
		args = append(args, "--no-verify")
	}
	return args
}

func question(kind staging.Kind) string {
	switch kind {
	case staging.NothingStagedHasUntracked:
		return "There are untracked files. Do you want to add all files (git add --all)?"
	case staging.NothingStagedNoUntracked:
		return "Do you want to stage modified files (git add --update)?"
	case staging.HasStagedAndUntracked:
		return "There are untracked files. Do you want to add them too (git add --all)?"
	case staging.HasStagedAndUnstagedTracked:
		return "There are unstaged modifications. Do you want to stage them too (git add --update)?"
	default:
		return fmt.Sprintf("Do you want to continue (%s)?", kind)
	}
}

func declined(action staging.Action) string {
	if action == staging.StageAll {
		return "No files added."
	}
	return "No files staged."
}

func applied(p staging.Proposal) string {
	switch {
	case p.Action == staging.StageAll && p.Required:
		return "Added all files."
	case p.Action == staging.StageAll:
		return "Added untracked files."
	default:
		return "Staged modified files."
	}
}
