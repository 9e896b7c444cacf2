// Package policy maps classified occurrences to actions, either
// through the fixed automatic rule table or by delegating to an
// interactive prompter with per-file skip-pattern memory.
package policy

import (
	"github.com/logsweep/logsweep/pkg/core"
)

// Policy decides the action for one occurrence. Reset is called at
// the start of each file so no per-file state leaks across files.
type Policy interface {
	Decide(occ *core.Occurrence) core.Action
	Reset()
}

// Quitter is implemented by policies that can stop deciding partway
// through a file. Occurrences after the quit were never put to the
// user and must not be counted as decided.
type Quitter interface {
	Quit() bool
}

// AutoPolicy is the deterministic rule table. Precedence is fixed:
//
//	1. commented            -> remove-comment
//	2. functional           -> keep
//	3. in error handler     -> convert-error
//	4. risky arguments      -> keep (never auto-delete suspected secrets)
//	5. otherwise            -> delete
type AutoPolicy struct {
	minRiskKeep  core.Risk
	convertCatch bool
}

// NewAutoPolicy creates the automatic policy from configuration
func NewAutoPolicy(cfg *core.Config) *AutoPolicy {
	return &AutoPolicy{
		minRiskKeep:  cfg.GetMinRiskKeep(),
		convertCatch: cfg.ConvertCatchEnabled(),
	}
}

// Decide returns the action for an occurrence per the rule table
func (p *AutoPolicy) Decide(occ *core.Occurrence) core.Action {
	switch {
	case occ.Commented:
		return core.ActionRemoveComment
	case occ.Functional:
		return core.ActionKeep
	case occ.InErrorHandler:
		if p.convertCatch {
			return core.ActionConvertError
		}
		return core.ActionKeep
	case occ.Risk.IsAtLeast(p.minRiskKeep):
		return core.ActionKeep
	default:
		return core.ActionDelete
	}
}

// Reset is a no-op; the automatic policy is stateless
func (p *AutoPolicy) Reset() {}
