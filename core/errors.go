package core

import (
	"errors"
)

// ErrLimited occurs when Repeat applied its rules too many times.
// That situation almost always means that some rule's Effect doesn't
// make progress.
var ErrLimited = errors.New("repeat limit reached")

// RuleFailure occurs when Do finds that nothing applied.
type RuleFailure struct {
	Rule string
}

func (e *RuleFailure) Error() string {
	return `rule "` + e.Rule + `" failed`
}

// EffectError wraps an error returned by a Rule's Effect.
type EffectError struct {
	Rule string
	Err  error
}

func (e *EffectError) Error() string {
	return `effect of rule "` + e.Rule + `": ` + e.Err.Error()
}

func (e *EffectError) Unwrap() error {
	return e.Err
}
