/* Copyright 2024 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package core

import (
	"context"
	"errors"
	"strings"
)

// Bindings is a map from variable names to their values.
//
// A Precondition produces Bindings, and an Effect consumes them.
type Bindings map[string]interface{}

func NewBindings() Bindings {
	return make(Bindings, 4)
}

// Extend adds the property; modifies and returns the Bindings.
func (bs Bindings) Extend(p string, v interface{}) Bindings {
	bs[p] = v
	return bs
}

// Extendm adds the properties given as alternating names and values;
// modifies and returns the Bindings.
func (bs Bindings) Extendm(pairs ...interface{}) (Bindings, error) {
	for i := 0; i < len(pairs); i += 2 {
		p, is := pairs[i].(string)
		if !is {
			return nil, errors.New("Bindings.Extendm given a non-string key")
		}
		if len(pairs) <= i+1 {
			return nil, errors.New("odd args to Bindings.Extendm")
		}
		bs[p] = pairs[i+1]
	}
	return bs, nil
}

// Copy makes a shallow copy of the Bindings.
func (bs Bindings) Copy() Bindings {
	acc := make(Bindings, len(bs))
	for k, v := range bs {
		acc[k] = v
	}
	return acc
}

// Precondition lazily produces candidate Bindings.
//
// A Precondition calls yield once per candidate and stops as soon as
// yield returns false.  A Precondition must not modify any state.
// Producing no candidates means the Precondition isn't satisfied.
type Precondition func(yield func(Bindings) bool)

// Always is a Precondition that produces exactly one empty Bindings.
func Always(yield func(Bindings) bool) {
	yield(NewBindings())
}

// Yield is a convenience for a Precondition that has already found
// its single candidate.
func Yield(yield func(Bindings) bool, pairs ...interface{}) bool {
	bs, err := NewBindings().Extendm(pairs...)
	if err != nil {
		panic(err)
	}
	return yield(bs)
}

// Effect applies a candidate's Bindings to the world.
type Effect func(ctx context.Context, bs Bindings) error

// Applier is a Rule or a Group.
type Applier interface {
	// Apply tries to apply this thing.  The first return value is
	// false if nothing applied.  That outcome is not an error.
	Apply(ctx context.Context, ts *Traces) (bool, error)

	Name() string
}

// Rule pairs a Precondition with an Effect.
type Rule struct {
	Label string

	// Precondition defaults to Always.
	Precondition Precondition

	// Effect defaults to doing nothing.
	Effect Effect
}

// NewRule makes a Rule.
func NewRule(name string, p Precondition, e Effect) *Rule {
	return &Rule{
		Label:        name,
		Precondition: p,
		Effect:       e,
	}
}

func (r *Rule) Name() string {
	return r.Label
}

// First returns the first candidate Bindings (if any) from the
// Rule's Precondition.
func (r *Rule) First() (Bindings, bool) {
	p := r.Precondition
	if p == nil {
		p = Always
	}
	var (
		found Bindings
		ok    bool
	)
	p(func(bs Bindings) bool {
		if bs == nil {
			bs = NewBindings()
		}
		found, ok = bs, true
		return false
	})
	return found, ok
}

// Apply pulls at most one candidate from the Precondition.  If there
// is one, the Effect is applied to it.
func (r *Rule) Apply(ctx context.Context, ts *Traces) (bool, error) {
	bs, ok := r.First()
	if !ok {
		return false, nil
	}
	ts.Add(map[string]interface{}{
		"rule": r.Label,
		"bs":   bs,
	})
	if r.Effect == nil {
		return true, nil
	}
	if err := r.Effect(ctx, bs); err != nil {
		ts.Add(map[string]interface{}{
			"rule":  r.Label,
			"error": err.Error(),
		})
		return true, &EffectError{Rule: r.Label, Err: err}
	}
	return true, nil
}

// Group is an ordered list of Appliers.  The first one that applies
// wins, and the remaining members aren't considered.
type Group struct {
	Label   string
	Members []Applier
}

// NewGroup makes a Group.
func NewGroup(name string, members ...Applier) *Group {
	return &Group{
		Label:   name,
		Members: members,
	}
}

// Add appends members; returns the receiver.
func (g *Group) Add(members ...Applier) *Group {
	g.Members = append(g.Members, members...)
	return g
}

func (g *Group) Name() string {
	if g.Label != "" {
		return g.Label
	}
	names := make([]string, len(g.Members))
	for i, m := range g.Members {
		names[i] = m.Name()
	}
	return strings.Join(names, " | ")
}

// Apply tries each member in order.
func (g *Group) Apply(ctx context.Context, ts *Traces) (bool, error) {
	for _, m := range g.Members {
		applied, err := m.Apply(ctx, ts)
		if err != nil {
			return applied, err
		}
		if applied {
			ts.Add(map[string]interface{}{
				"group":   g.Name(),
				"applied": m.Name(),
			})
			return true, nil
		}
	}
	return false, nil
}

// Control influences how Repeat operates.
type Control struct {
	// Limit is the maximum number of times Repeat will apply its
	// Applier.
	Limit int
}

// DefaultControl will be used by Repeat if the given Control is nil.
var DefaultControl = &Control{
	Limit: 1000,
}

// Do applies a and reports a RuleFailure if nothing applied.
func Do(ctx context.Context, a Applier, ts *Traces) error {
	applied, err := a.Apply(ctx, ts)
	if err != nil {
		return err
	}
	if !applied {
		return &RuleFailure{Rule: a.Name()}
	}
	return nil
}

// Maybe applies a.  Nothing applying is fine.
func Maybe(ctx context.Context, a Applier, ts *Traces) error {
	_, err := a.Apply(ctx, ts)
	return err
}

// Repeat applies a until it no longer applies.  Returns the number of
// successful applications.
//
// If a applies more than the Control's Limit times, Repeat gives up
// with ErrLimited.  A nil Control, or one without a positive Limit,
// means DefaultControl.
func Repeat(ctx context.Context, a Applier, c *Control, ts *Traces) (int, error) {
	if c == nil || c.Limit <= 0 {
		c = DefaultControl
	}
	n := 0
	for {
		applied, err := a.Apply(ctx, ts)
		if err != nil {
			return n, err
		}
		if !applied {
			return n, nil
		}
		if n++; c.Limit < n {
			return n, ErrLimited
		}
	}
}
