package staging

// Plan tracks which proposals a run has already handled so that the loop of
// decide, stage and recapture always terminates. The zero value is ready to use.
type Plan struct {
	handled         map[Action]bool
	requiredApplied bool
}

// Next returns the step for s, taking earlier decisions of this run into account.
func (p *Plan) Next(s Snapshot) Step {
	step := Decide(s)
	if step.Kind == NoChanges {
		return step
	}

	if p.requiredApplied && !s.Classify().HasStaged {
		return Step{Kind: StillNothingStaged}
	}

	if step.Proposal != nil && p.handled[step.Proposal.Action] {
		if step.Proposal.Required {
			return Step{Kind: StillNothingStaged}
		}
		return Step{Kind: ReadyToGenerate}
	}
	return step
}

// Applied records that the operator accepted proposal and it was executed.
func (p *Plan) Applied(proposal Proposal) {
	p.mark(proposal.Action)
	if proposal.Required {
		p.requiredApplied = true
	}
}

// Declined records that the operator rejected proposal, or that applying it failed.
func (p *Plan) Declined(proposal Proposal) {
	p.mark(proposal.Action)
}

func (p *Plan) mark(action Action) {
	if p.handled == nil {
		p.handled = make(map[Action]bool)
	}
	p.handled[action] = true
}
