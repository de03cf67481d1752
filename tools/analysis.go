/* Copyright 2018 Comcast Cable Communications Management, LLC
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

package tools

import (
	"sort"

	"github.com/Comcast/trindi/ibis"
)

// DomainAnalysis summarizes a domain's plans and points out things
// that are probably mistakes.
type DomainAnalysis struct {
	Plans        int
	Constructs   int
	Conditionals int

	// Consulted are the questions that plans look up.
	Consulted []string

	// Subplans are questions that plans find out which also have
	// plans of their own.
	Subplans []string

	// UnusedPreds are predicates that no plan mentions.
	UnusedPreds []string

	// UnusedSorts are sorts that no predicate has.
	UnusedSorts []string

	// Unconsulted are plan triggers that the plan never looks up,
	// so the system will never answer them.
	Unconsulted []string
}

// Analyze examines the domain's plans.
func Analyze(d *ibis.StdDomain) (*DomainAnalysis, error) {
	a := DomainAnalysis{}

	var (
		consulted = make(map[string]bool)
		subplans  = make(map[string]bool)
		mentioned = make(map[string]bool)
		sorted    = make(map[string]bool)
		triggers  = make(map[string]bool)
	)

	mention := func(q ibis.Question) {
		switch vv := q.(type) {
		case ibis.WhQ:
			mentioned[string(vv.Pred)] = true
		case ibis.YNQ:
			mentioned[vv.Prop.Pred] = true
		case ibis.AltQ:
			for _, y := range vv.YNQs {
				mentioned[y.Prop.Pred] = true
			}
		}
	}

	var walk func(trigger string, ms []ibis.Move)
	walk = func(trigger string, ms []ibis.Move) {
		for _, m := range ms {
			a.Constructs++
			if c, is := m.(ibis.If); is {
				a.Conditionals++
				mention(c.Cond)
				walk(trigger, c.Then)
				walk(trigger, c.Else)
				continue
			}
			q, have := ibis.QuestionOf(m)
			if !have {
				continue
			}
			mention(q)
			switch m.(type) {
			case ibis.ConsultDB:
				consulted[q.Key()] = true
				if q.Key() == trigger {
					triggers[trigger] = true
				}
			case ibis.Findout, ibis.Raise:
				if _, has := d.Plan(q); has {
					subplans[q.Key()] = true
				}
			}
		}
	}

	plans := d.Plans()
	a.Plans = len(plans)
	for _, p := range plans {
		k := p.Trigger.Key()
		mention(p.Trigger)
		walk(k, p.Constructs)
		if !triggers[k] {
			a.Unconsulted = append(a.Unconsulted, k)
		}
	}

	unused := make(map[string]bool)
	for p := range d.Preds0 {
		if !mentioned[string(p)] {
			unused[string(p)] = true
		}
	}
	for p, s := range d.Preds1 {
		sorted[string(s)] = true
		if !mentioned[string(p)] {
			unused[string(p)] = true
		}
	}
	unusedSorts := make(map[string]bool)
	for s := range d.Sorts {
		if !sorted[string(s)] {
			unusedSorts[string(s)] = true
		}
	}

	a.Consulted = keysToStringSlice(consulted)
	a.Subplans = keysToStringSlice(subplans)
	a.UnusedPreds = keysToStringSlice(unused)
	a.UnusedSorts = keysToStringSlice(unusedSorts)
	sort.Strings(a.Unconsulted)

	return &a, nil
}

// keysToStringSlice returns the map's keys sorted.
func keysToStringSlice(m map[string]bool) []string {
	var list []string
	for key := range m {
		list = append(list, key)
	}
	sort.Strings(list)
	return list
}
