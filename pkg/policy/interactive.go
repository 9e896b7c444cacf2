package policy

import (
	"github.com/logsweep/logsweep/pkg/analyze"
	"github.com/logsweep/logsweep/pkg/core"
)

// Choice is the answer collected from the interactive collaborator
type Choice int

const (
	ChoiceDelete Choice = iota
	ChoiceKeep
	ChoiceConvertInfo
	ChoiceConvertError
	ChoiceSkip
	ChoiceQuit
	ChoiceInvalid
)

// Prompter presents one occurrence to the user and collects a choice.
// Implementations own the re-prompt loop for invalid input; Ask only
// returns ChoiceInvalid when input is exhausted (e.g. closed stdin).
type Prompter interface {
	// Ask presents the full prompt for one occurrence
	Ask(occ *core.Occurrence) Choice

	// ConfirmCommentRemoval is the lightweight yes/no used for
	// commented-out occurrences.
	ConfirmCommentRemoval(occ *core.Occurrence) bool
}

// InteractivePolicy delegates each decision to a prompter, with
// skip-pattern memory so near-duplicate occurrences in the same file
// are not asked about twice. Quit stops prompting for the remainder
// of the current file; decisions already made still apply.
type InteractivePolicy struct {
	prompter Prompter
	matcher  *analyze.Matcher
	skips    *SkipSet
	quit     bool
}

// NewInteractivePolicy creates an interactive policy
func NewInteractivePolicy(prompter Prompter, matcher *analyze.Matcher) *InteractivePolicy {
	return &InteractivePolicy{
		prompter: prompter,
		matcher:  matcher,
		skips:    NewSkipSet(),
	}
}

// Reset clears per-file state: the skip set and the quit latch
func (p *InteractivePolicy) Reset() {
	p.skips.Clear()
	p.quit = false
}

// Quit reports whether the user quit the current file
func (p *InteractivePolicy) Quit() bool {
	return p.quit
}

// Decide asks the prompter for an action, honoring skip patterns
func (p *InteractivePolicy) Decide(occ *core.Occurrence) core.Action {
	if p.quit {
		return core.ActionKeep
	}

	fp := Fingerprint(p.matcher, occ)
	if p.skips.Matches(fp) {
		return core.ActionKeep
	}

	if occ.Commented {
		if p.prompter.ConfirmCommentRemoval(occ) {
			return core.ActionRemoveComment
		}
		return core.ActionKeep
	}

	switch p.prompter.Ask(occ) {
	case ChoiceDelete:
		return core.ActionDelete
	case ChoiceConvertInfo:
		return core.ActionConvertInfo
	case ChoiceConvertError:
		return core.ActionConvertError
	case ChoiceSkip:
		p.skips.Add(fp)
		return core.ActionSkip
	case ChoiceQuit:
		p.quit = true
		return core.ActionKeep
	default:
		return core.ActionKeep
	}
}
