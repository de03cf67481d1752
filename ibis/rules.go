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
	"context"
	"fmt"

	"github.com/Comcast/trindi/core"
)

// Rules is the catalog of update and selection rules, arranged into
// the Groups that the DME's algorithms use.
type Rules struct {
	// Update rules.
	Grounding   *core.Group
	Integrate   *core.Group
	DowndateQUD *core.Group
	LoadPlan    *core.Group
	ExecPlan    *core.Group

	// Selection rules.
	SelectAction *core.Group
	SelectMove   *core.Group

	byName map[string]*core.Rule
	names  []string
}

// Rule finds a rule by name.
func (rs *Rules) Rule(name string) (*core.Rule, bool) {
	r, have := rs.byName[name]
	return r, have
}

// Names returns the names of all rules in catalog order.
func (rs *Rules) Names() []string {
	acc := make([]string, len(rs.names))
	copy(acc, rs.names)
	return acc
}

func (rs *Rules) def(g *core.Group, name string, p core.Precondition, e core.Effect) {
	r := core.NewRule(name, p, e)
	rs.byName[name] = r
	rs.names = append(rs.names, name)
	g.Add(r)
}

// NewRules builds the rule catalog for the DME.
//
// Preconditions read the DME's state, and only effects modify it.
func NewRules(d *DME) *Rules {
	rs := &Rules{
		Grounding:    core.NewGroup("grounding"),
		Integrate:    core.NewGroup("integrate"),
		DowndateQUD:  core.NewGroup("downdate_qud"),
		LoadPlan:     core.NewGroup("load_plan"),
		ExecPlan:     core.NewGroup("exec_plan"),
		SelectAction: core.NewGroup("select_action"),
		SelectMove:   core.NewGroup("select_move"),
		byName:       make(map[string]*core.Rule, 32),
	}

	var (
		private = func() *Private { return &d.IS.Private }
		shared  = func() *Shared { return &d.IS.Shared }
	)

	// luMoves yields candidates for each latest move accepted by f.
	luMoves := func(yield func(core.Bindings) bool, f func(Move) (core.Bindings, bool)) {
		shared().LU.Moves.Do(func(m Move) bool {
			bs, ok := f(m)
			if !ok {
				return true
			}
			return yield(bs)
		})
	}

	// Grounding

	rs.def(rs.Grounding, "get_latest_moves",
		func(yield func(core.Bindings) bool) {
			core.Yield(yield,
				"moves", d.MIVS.LatestMoves.Copy(),
				"speaker", d.MIVS.LatestSpeaker)
		},
		func(ctx context.Context, bs core.Bindings) error {
			shared().LU.Moves = bs["moves"].(*core.Set[Move])
			shared().LU.Speaker = bs["speaker"].(Speaker)
			return nil
		})

	// Integrating utterances

	askBy := func(speaker Speaker) core.Precondition {
		return func(yield func(core.Bindings) bool) {
			if shared().LU.Speaker != speaker {
				return
			}
			luMoves(yield, func(m Move) (core.Bindings, bool) {
				if ask, is := m.(Ask); is {
					return core.NewBindings().Extend("que", ask.Q), true
				}
				return nil, false
			})
		}
	}

	rs.def(rs.Integrate, "integrate_sys_ask", askBy(SYS),
		func(ctx context.Context, bs core.Bindings) error {
			shared().QUD.Push(bs["que"].(Question))
			return nil
		})

	rs.def(rs.Integrate, "integrate_usr_ask", askBy(USR),
		func(ctx context.Context, bs core.Bindings) error {
			q := bs["que"].(Question)
			shared().QUD.Push(q)
			private().Agenda.Push(Respond{Q: q})
			return nil
		})

	rs.def(rs.Integrate, "integrate_answer",
		func(yield func(core.Bindings) bool) {
			q, ok := shared().QUD.Top()
			if !ok {
				return
			}
			luMoves(yield, func(m Move) (core.Bindings, bool) {
				if a, is := m.(Answer); is && d.Domain.Relevant(a.A, q) {
					return core.NewBindings().Extend("que", q).Extend("ans", a.A), true
				}
				return nil, false
			})
		},
		func(ctx context.Context, bs core.Bindings) error {
			p, err := d.Domain.Combine(bs["que"].(Question), bs["ans"].(Ans))
			if err != nil {
				return err
			}
			shared().Com.Add(p)
			return nil
		})

	rs.def(rs.Integrate, "integrate_greet",
		func(yield func(core.Bindings) bool) {
			luMoves(yield, func(m Move) (core.Bindings, bool) {
				_, is := m.(Greet)
				return core.NewBindings(), is
			})
		},
		nil)

	quitBy := func(speaker Speaker) core.Precondition {
		return func(yield func(core.Bindings) bool) {
			if shared().LU.Speaker != speaker {
				return
			}
			luMoves(yield, func(m Move) (core.Bindings, bool) {
				_, is := m.(Quit)
				return core.NewBindings(), is
			})
		}
	}

	rs.def(rs.Integrate, "integrate_sys_quit", quitBy(SYS),
		func(ctx context.Context, bs core.Bindings) error {
			d.MIVS.Quit()
			return nil
		})

	rs.def(rs.Integrate, "integrate_usr_quit", quitBy(USR),
		func(ctx context.Context, bs core.Bindings) error {
			private().Agenda.Push(Quit{})
			return nil
		})

	// Downdating the QUD

	rs.def(rs.DowndateQUD, "downdate_qud",
		func(yield func(core.Bindings) bool) {
			q, ok := shared().QUD.Top()
			if !ok {
				return
			}
			if p, ok := d.resolvedBy(shared().Com, q); ok {
				core.Yield(yield, "que", q, "prop", p)
			}
		},
		func(ctx context.Context, bs core.Bindings) error {
			shared().QUD.Pop()
			return nil
		})

	// Loading plans

	rs.def(rs.LoadPlan, "recover_plan",
		func(yield func(core.Bindings) bool) {
			if !private().Agenda.Empty() || !private().Plan.Empty() {
				return
			}
			q, ok := shared().QUD.Top()
			if !ok {
				return
			}
			// Nothing to recover if we already know something about q.
			known := false
			private().Bel.Do(func(p Prop) bool {
				known = d.Domain.Relevant(p, q)
				return !known
			})
			if known {
				return
			}
			if plan, have := d.Domain.Plan(q); have {
				core.Yield(yield, "que", q, "plan", plan)
			}
		},
		func(ctx context.Context, bs core.Bindings) error {
			private().Plan = bs["plan"].(*core.Stack[Move])
			return nil
		})

	rs.def(rs.LoadPlan, "find_plan",
		func(yield func(core.Bindings) bool) {
			top, ok := private().Agenda.Top()
			if !ok {
				return
			}
			r, is := top.(Respond)
			if !is {
				return
			}
			if _, resolved := d.resolvedBy(private().Bel, r.Q); resolved {
				return
			}
			if plan, have := d.Domain.Plan(r.Q); have {
				core.Yield(yield, "que", r.Q, "plan", plan)
			}
		},
		func(ctx context.Context, bs core.Bindings) error {
			private().Agenda.Pop()
			private().Plan = bs["plan"].(*core.Stack[Move])
			return nil
		})

	// Executing plans.  Every effect here pops the plan, so
	// repeating this group always terminates.

	rs.def(rs.ExecPlan, "exec_consultDB",
		func(yield func(core.Bindings) bool) {
			if top, ok := private().Plan.Top(); ok {
				if c, is := top.(ConsultDB); is {
					core.Yield(yield, "que", c.Q)
				}
			}
		},
		func(ctx context.Context, bs core.Bindings) error {
			q := bs["que"].(Question)
			p, err := d.Database.Consult(ctx, q, shared().Com.Copy())
			if err != nil {
				return fmt.Errorf("consult %s: %w", q, err)
			}
			if err = d.check(p); err != nil {
				return &ContractViolation{
					Op:     "Consult",
					Detail: fmt.Sprintf("answer %s to %s: %s", p, q, err),
				}
			}
			private().Bel.Add(p)
			private().Plan.Pop()
			return nil
		})

	removeResolved := func(f func(Move) (Question, bool)) core.Precondition {
		return func(yield func(core.Bindings) bool) {
			top, ok := private().Plan.Top()
			if !ok {
				return
			}
			q, is := f(top)
			if !is {
				return
			}
			if p, ok := d.resolvedBy(shared().Com, q); ok {
				core.Yield(yield, "que", q, "prop", p)
			}
		}
	}

	popPlan := func(ctx context.Context, bs core.Bindings) error {
		private().Plan.Pop()
		return nil
	}

	rs.def(rs.ExecPlan, "remove_findout",
		removeResolved(func(m Move) (Question, bool) {
			f, is := m.(Findout)
			return f.Q, is
		}),
		popPlan)

	rs.def(rs.ExecPlan, "remove_raise",
		removeResolved(func(m Move) (Question, bool) {
			r, is := m.(Raise)
			return r.Q, is
		}),
		popPlan)

	rs.def(rs.ExecPlan, "exec_if",
		func(yield func(core.Bindings) bool) {
			top, ok := private().Plan.Top()
			if !ok {
				return
			}
			c, is := top.(If)
			if !is {
				return
			}
			branch := c.Else
			if d.holds(c.Cond) {
				branch = c.Then
			}
			core.Yield(yield, "branch", copyMoves(branch))
		},
		func(ctx context.Context, bs core.Bindings) error {
			private().Plan.Pop()
			branch := bs["branch"].([]Move)
			for i := len(branch) - 1; 0 <= i; i-- {
				private().Plan.Push(branch[i])
			}
			return nil
		})

	// Selecting actions

	// privateRelevant yields a private belief that isn't common
	// ground yet and is relevant to q.
	privateRelevant := func(q Question, yield func(core.Bindings) bool, pairs ...interface{}) {
		private().Bel.Do(func(p Prop) bool {
			if shared().Com.Has(p) || !d.Domain.Relevant(p, q) {
				return true
			}
			bs, _ := core.NewBindings().Extendm(pairs...)
			return yield(bs.Extend("prop", p))
		})
	}

	rs.def(rs.SelectAction, "select_respond",
		func(yield func(core.Bindings) bool) {
			if !private().Agenda.Empty() || !private().Plan.Empty() {
				return
			}
			q, ok := shared().QUD.Top()
			if !ok {
				return
			}
			privateRelevant(q, yield, "que", q)
		},
		func(ctx context.Context, bs core.Bindings) error {
			private().Agenda.Push(Respond{Q: bs["que"].(Question)})
			return nil
		})

	rs.def(rs.SelectAction, "select_from_plan",
		func(yield func(core.Bindings) bool) {
			if !private().Agenda.Empty() {
				return
			}
			if m, ok := private().Plan.Top(); ok {
				core.Yield(yield, "action", m)
			}
		},
		func(ctx context.Context, bs core.Bindings) error {
			private().Agenda.Push(bs["action"].(Move))
			return nil
		})

	rs.def(rs.SelectAction, "reraise_issue",
		func(yield func(core.Bindings) bool) {
			q, ok := shared().QUD.Top()
			if !ok {
				return
			}
			if _, have := d.Domain.Plan(q); !have {
				core.Yield(yield, "que", q)
			}
		},
		func(ctx context.Context, bs core.Bindings) error {
			private().Agenda.Push(Raise{Q: bs["que"].(Question)})
			return nil
		})

	// Selecting moves

	rs.def(rs.SelectMove, "select_answer",
		func(yield func(core.Bindings) bool) {
			top, ok := private().Agenda.Top()
			if !ok {
				return
			}
			if r, is := top.(Respond); is {
				privateRelevant(r.Q, yield)
			}
		},
		func(ctx context.Context, bs core.Bindings) error {
			d.MIVS.NextMoves.Add(Answer{A: bs["prop"].(Prop)})
			return nil
		})

	rs.def(rs.SelectMove, "select_ask",
		func(yield func(core.Bindings) bool) {
			top, ok := private().Agenda.Top()
			if !ok {
				return
			}
			switch m := top.(type) {
			case Findout:
				core.Yield(yield, "que", m.Q)
			case Raise:
				core.Yield(yield, "que", m.Q)
			}
		},
		func(ctx context.Context, bs core.Bindings) error {
			q := bs["que"].(Question)
			d.MIVS.NextMoves.Add(Ask{Q: q})
			if top, ok := private().Plan.Top(); ok {
				if r, is := top.(Raise); is && r.Q.Key() == q.Key() {
					private().Plan.Pop()
				}
			}
			return nil
		})

	rs.def(rs.SelectMove, "select_other",
		func(yield func(core.Bindings) bool) {
			if top, ok := private().Agenda.Top(); ok && IsOvert(top) {
				core.Yield(yield, "move", top)
			}
		},
		func(ctx context.Context, bs core.Bindings) error {
			d.MIVS.NextMoves.Add(bs["move"].(Move))
			return nil
		})

	return rs
}

// resolvedBy finds a proposition in the set that resolves q.
func (d *DME) resolvedBy(ps *core.Set[Prop], q Question) (Prop, bool) {
	var (
		found Prop
		ok    bool
	)
	ps.Do(func(p Prop) bool {
		if d.Domain.Resolves(p, q) {
			found, ok = p, true
			return false
		}
		return true
	})
	return found, ok
}

// holds decides an If condition against private beliefs and the
// common ground.
//
// A yes/no question holds when its proposition is believed.  Any
// other question holds when some belief resolves it.
func (d *DME) holds(cond Question) bool {
	known := d.IS.Private.Bel.Union(d.IS.Shared.Com)
	if y, is := cond.(YNQ); is {
		return known.Has(y.Prop)
	}
	_, ok := d.resolvedBy(known, cond)
	return ok
}
