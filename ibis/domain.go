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

package ibis

import (
	"fmt"
	"sort"

	"github.com/Comcast/trindi/core"
)

// Domain answers questions about what the dialogue is about.
type Domain interface {
	// Relevant reports whether the answer addresses the question.
	Relevant(a Ans, q Question) bool

	// Resolves reports whether the answer settles the question.
	// An answer that resolves a question is also relevant to it.
	Resolves(a Ans, q Question) bool

	// Combine makes the proposition that the answer denotes in the
	// context of the question.  The answer must be relevant to the
	// question.
	Combine(q Question, a Ans) (Prop, error)

	// Plan returns a fresh copy of the plan (if any) for the
	// question.  The first construct is on top of the Stack.
	Plan(q Question) (*core.Stack[Move], bool)
}

// Checker is an optional Domain capability.  A DME uses it to reject
// ill-typed moves before they enter the InfoState.
type Checker interface {
	Check(x interface{}) error
}

// IntSort is a built-in Sort whose individuals are integer literals.
const IntSort Sort = "int"

// Plan is a sequence of plan constructs that addresses a question.
type Plan struct {
	Trigger    Question `json:"trigger"`
	Doc        string   `json:"doc,omitempty"`
	Constructs []Move   `json:"constructs"`
}

// StdDomain is a Domain built from registries of predicates, sorts,
// and individuals.
type StdDomain struct {
	// Name is just for humans.
	Name string

	// Doc is general documentation (Markdown) about the domain.
	Doc string

	Preds0 map[Pred0]bool
	Preds1 map[Pred1]Sort
	Sorts  map[Sort][]Ind

	members map[Sort]map[Ind]bool
	plans   map[string]*Plan
	order   []string
}

// NewDomain makes a StdDomain.
//
// preds1 maps each 1-place predicate to the sort of its argument, and
// sorts maps each sort to its individuals.  A predicate's sort must
// either be in sorts or be IntSort.
func NewDomain(preds0 []string, preds1 map[string]string, sorts map[string][]string) (*StdDomain, error) {
	d := &StdDomain{
		Preds0:  make(map[Pred0]bool, len(preds0)),
		Preds1:  make(map[Pred1]Sort, len(preds1)),
		Sorts:   make(map[Sort][]Ind, len(sorts)),
		members: make(map[Sort]map[Ind]bool, len(sorts)),
		plans:   make(map[string]*Plan),
	}

	for _, p := range preds0 {
		if err := CheckAtom(p); err != nil {
			return nil, err
		}
		d.Preds0[Pred0(p)] = true
	}

	for s, inds := range sorts {
		if err := CheckAtom(s); err != nil {
			return nil, err
		}
		m := make(map[Ind]bool, len(inds))
		acc := make([]Ind, 0, len(inds))
		for _, ind := range inds {
			if err := CheckAtom(ind); err != nil {
				return nil, err
			}
			m[Ind(ind)] = true
			acc = append(acc, Ind(ind))
		}
		d.members[Sort(s)] = m
		d.Sorts[Sort(s)] = acc
	}

	for p, s := range preds1 {
		if err := CheckAtom(p); err != nil {
			return nil, err
		}
		if _, have := d.members[Sort(s)]; !have && Sort(s) != IntSort {
			return nil, &TypeError{Kind: "sort", Name: s}
		}
		d.Preds1[Pred1(p)] = Sort(s)
	}

	return d, nil
}

// OfSort reports whether the individual belongs to the sort.
func (d *StdDomain) OfSort(ind Ind, s Sort) bool {
	if s == IntSort {
		return isInteger(string(ind))
	}
	return d.members[s][ind]
}

// IsInd reports whether the individual belongs to any sort.
func (d *StdDomain) IsInd(ind Ind) bool {
	if isInteger(string(ind)) {
		return true
	}
	for _, m := range d.members {
		if m[ind] {
			return true
		}
	}
	return false
}

// SortOf finds a sort of the individual.
func (d *StdDomain) SortOf(ind Ind) (Sort, bool) {
	sorts := make([]string, 0, len(d.members))
	for s := range d.members {
		sorts = append(sorts, string(s))
	}
	sort.Strings(sorts)
	for _, s := range sorts {
		if d.members[Sort(s)][ind] {
			return Sort(s), true
		}
	}
	if isInteger(string(ind)) {
		return IntSort, true
	}
	return "", false
}

// Relevant implements Domain.
func (d *StdDomain) Relevant(a Ans, q Question) bool {
	switch q := q.(type) {
	case WhQ:
		s, have := d.Preds1[q.Pred]
		if !have {
			return false
		}
		switch a := a.(type) {
		case ShortAns:
			return d.OfSort(a.Ind, s)
		case Prop:
			return a.Pred == string(q.Pred) && a.Ind != "" && d.OfSort(a.Ind, s)
		}
	case YNQ:
		switch a := a.(type) {
		case YesNo:
			return true
		case Prop:
			return a.Pred == q.Prop.Pred && a.Ind == q.Prop.Ind
		}
	case AltQ:
		for _, y := range q.YNQs {
			switch a := a.(type) {
			case Prop:
				if a.Pred == y.Prop.Pred && a.Ind == y.Prop.Ind {
					return true
				}
			case ShortAns:
				if a.Ind != "" && a.Ind == y.Prop.Ind {
					return true
				}
			}
		}
	}
	return false
}

// Resolves implements Domain.
//
// Any relevant answer resolves a yes/no question.  Otherwise, the
// answer must also be affirmative: "-paris" is relevant to
// "?x.dest_city(x)" but doesn't resolve it.
func (d *StdDomain) Resolves(a Ans, q Question) bool {
	if !d.Relevant(a, q) {
		return false
	}
	if _, is := q.(YNQ); is {
		return true
	}
	switch a := a.(type) {
	case Prop:
		return a.Yes
	case ShortAns:
		return a.Yes
	case YesNo:
		return a.Yes
	}
	return false
}

// Combine implements Domain.
func (d *StdDomain) Combine(q Question, a Ans) (Prop, error) {
	if !d.Relevant(a, q) {
		return Prop{}, &ContractViolation{
			Op:     "Combine",
			Detail: fmt.Sprintf("%s is not relevant to %s", a, q),
		}
	}
	if p, is := a.(Prop); is {
		return p, nil
	}
	switch q := q.(type) {
	case WhQ:
		if a, is := a.(ShortAns); is {
			return NewProp1(q.Pred, a.Ind, a.Yes), nil
		}
	case YNQ:
		if a, is := a.(YesNo); is {
			if a.Yes {
				return q.Prop, nil
			}
			return q.Prop.Negate(), nil
		}
	case AltQ:
		if a, is := a.(ShortAns); is {
			for _, y := range q.YNQs {
				if y.Prop.Ind == a.Ind {
					p := y.Prop
					if !a.Yes {
						p = p.Negate()
					}
					return p, nil
				}
			}
		}
	}
	return Prop{}, &ContractViolation{
		Op:     "Combine",
		Detail: fmt.Sprintf("can't combine %s with %s", q, a),
	}
}

// AddPlan registers a plan for the trigger question.  Everything is
// type-checked first.
func (d *StdDomain) AddPlan(trigger Question, constructs ...Move) error {
	return d.AddPlanDoc(trigger, "", constructs...)
}

// AddPlanDoc is AddPlan with documentation.
func (d *StdDomain) AddPlanDoc(trigger Question, doc string, constructs ...Move) error {
	if err := d.Check(trigger); err != nil {
		return err
	}
	for _, m := range constructs {
		if IsOvert(m) {
			return &TypeError{Kind: "plan construct", Name: m.String(), Detail: "overt moves can't appear in plans"}
		}
		if err := d.Check(m); err != nil {
			return err
		}
	}
	k := trigger.Key()
	if _, have := d.plans[k]; !have {
		d.order = append(d.order, k)
	}
	d.plans[k] = &Plan{
		Trigger:    trigger,
		Doc:        doc,
		Constructs: copyMoves(constructs),
	}
	return nil
}

// Plan implements Domain.
func (d *StdDomain) Plan(q Question) (*core.Stack[Move], bool) {
	p, have := d.plans[q.Key()]
	if !have {
		return nil, false
	}
	ms := copyMoves(p.Constructs)
	s := core.NewStack[Move]()
	for i := len(ms) - 1; 0 <= i; i-- {
		s.Push(ms[i])
	}
	return s, true
}

// Plans returns the registered plans in registration order.
func (d *StdDomain) Plans() []*Plan {
	acc := make([]*Plan, 0, len(d.order))
	for _, k := range d.order {
		acc = append(acc, d.plans[k])
	}
	return acc
}

// Check verifies that a semantic object or move only uses known
// predicates, sorts, and individuals, and that they fit together.
func (d *StdDomain) Check(x interface{}) error {
	switch vv := x.(type) {
	case Ind:
		if !d.IsInd(vv) {
			return &TypeError{Kind: "individual", Name: string(vv)}
		}
	case Pred0:
		if !d.Preds0[vv] {
			return &TypeError{Kind: "0-place predicate", Name: string(vv)}
		}
	case Pred1:
		if _, have := d.Preds1[vv]; !have {
			return &TypeError{Kind: "1-place predicate", Name: string(vv)}
		}
	case Sort:
		if _, have := d.members[vv]; !have && vv != IntSort {
			return &TypeError{Kind: "sort", Name: string(vv)}
		}
	case Prop:
		if vv.Ind == "" {
			return d.Check(Pred0(vv.Pred))
		}
		s, have := d.Preds1[Pred1(vv.Pred)]
		if !have {
			return &TypeError{Kind: "1-place predicate", Name: vv.Pred}
		}
		if !d.OfSort(vv.Ind, s) {
			return &TypeError{Kind: "individual", Name: string(vv.Ind), Detail: "not of sort " + string(s)}
		}
	case ShortAns:
		return d.Check(vv.Ind)
	case YesNo:
	case WhQ:
		return d.Check(vv.Pred)
	case YNQ:
		return d.Check(vv.Prop)
	case AltQ:
		if len(vv.YNQs) < 2 {
			return &TypeError{Kind: "alternative question", Name: vv.String(), Detail: "needs at least two alternatives"}
		}
		for _, y := range vv.YNQs {
			if err := d.Check(y); err != nil {
				return err
			}
		}
	case Greet, Quit:
	case Answer:
		return d.Check(vv.A)
	case If:
		if err := d.Check(vv.Cond); err != nil {
			return err
		}
		for _, m := range vv.Then {
			if err := d.Check(m); err != nil {
				return err
			}
		}
		for _, m := range vv.Else {
			if err := d.Check(m); err != nil {
				return err
			}
		}
	case Move:
		if q, have := QuestionOf(vv); have {
			return d.Check(q)
		}
		return &TypeError{Kind: "move", Name: vv.String(), Detail: "unsupported"}
	default:
		return &TypeError{Kind: "value", Name: fmt.Sprintf("%v", x), Detail: fmt.Sprintf("unsupported type %T", x)}
	}
	return nil
}

// Question parses and checks a question.
func (d *StdDomain) Question(s string) (Question, error) {
	q, err := ParseQuestion(s)
	if err != nil {
		return nil, err
	}
	if err = d.Check(q); err != nil {
		return nil, err
	}
	return q, nil
}

// Move parses and checks a move.
func (d *StdDomain) Move(s string) (Move, error) {
	m, err := ParseMove(s)
	if err != nil {
		return nil, err
	}
	if err = d.Check(m); err != nil {
		return nil, err
	}
	return m, nil
}
