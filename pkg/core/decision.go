package core

import (
	"fmt"
	"strings"
)

// Action is the transformation chosen for one occurrence
type Action int

const (
	ActionKeep Action = iota
	ActionDelete
	ActionConvertError
	ActionConvertInfo
	ActionRemoveComment
	ActionSkip
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case ActionKeep:
		return "keep"
	case ActionDelete:
		return "delete"
	case ActionConvertError:
		return "convert-error"
	case ActionConvertInfo:
		return "convert-info"
	case ActionRemoveComment:
		return "remove-comment"
	case ActionSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParseAction converts a string to Action
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep", "k":
		return ActionKeep, nil
	case "delete", "d":
		return ActionDelete, nil
	case "convert-error", "e":
		return ActionConvertError, nil
	case "convert-info", "i":
		return ActionConvertInfo, nil
	case "remove-comment", "r":
		return ActionRemoveComment, nil
	case "skip", "s":
		return ActionSkip, nil
	default:
		return ActionKeep, fmt.Errorf("unknown action: %q", s)
	}
}

// Resolve maps policy-level actions onto applier-level actions.
// Skip means "keep this one, remember the shape"; the applier only
// ever sees keep.
func (a Action) Resolve() Action {
	if a == ActionSkip {
		return ActionKeep
	}
	return a
}

// Decision pairs an occurrence with the action chosen for it.
// Decisions for one file are owned by that file's processing pass.
type Decision struct {
	Occurrence *Occurrence
	Action     Action
}

// TransformResult is the output of applying an action to a line
type TransformResult struct {
	Text    string // New line text; meaningless when Removed is true
	Removed bool   // The caller must excise the line entirely
	Warning string // Non-fatal observation (e.g. trailing semicolon changed)
}
