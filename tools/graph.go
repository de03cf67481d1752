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

package tools

import (
	"fmt"

	"github.com/Comcast/trindi/ibis"
)

// planGraph is a plan drawn as a flowchart: the trigger, then each
// construct in order, with If constructs forking into their
// branches and joining again at the next construct.
type planGraph struct {
	Trigger string
	Doc     string
	Nodes   []planNode
	Edges   []planEdge

	prefix string
}

type planNode struct {
	ID    string
	Label string

	// Kind is "trigger", "construct", "cond", or "end".
	Kind string
}

type planEdge struct {
	From, To, Label string
}

type pending struct {
	id, label string
}

func graphPlan(n int, p *ibis.Plan) *planGraph {
	g := &planGraph{
		Trigger: p.Trigger.String(),
		Doc:     p.Doc,
		prefix:  fmt.Sprintf("p%d", n),
	}
	root := g.node("trigger", p.Trigger.String())
	tails := g.seq([]pending{{id: root}}, p.Constructs)
	g.connect(tails, g.node("end", "done"))
	return g
}

func (g *planGraph) node(kind, label string) string {
	id := fmt.Sprintf("%sn%d", g.prefix, len(g.Nodes))
	g.Nodes = append(g.Nodes, planNode{
		ID:    id,
		Label: label,
		Kind:  kind,
	})
	return id
}

func (g *planGraph) connect(from []pending, to string) {
	for _, p := range from {
		g.Edges = append(g.Edges, planEdge{
			From:  p.id,
			To:    to,
			Label: p.label,
		})
	}
}

func (g *planGraph) seq(from []pending, ms []ibis.Move) []pending {
	for _, m := range ms {
		if c, is := m.(ibis.If); is {
			id := g.node("cond", c.Cond.String())
			g.connect(from, id)
			yes := g.seq([]pending{{id, "yes"}}, c.Then)
			no := g.seq([]pending{{id, "no"}}, c.Else)
			from = append(yes, no...)
			continue
		}
		id := g.node("construct", m.String())
		g.connect(from, id)
		from = []pending{{id: id}}
	}
	return from
}

func graphDomain(d *ibis.StdDomain) []*planGraph {
	plans := d.Plans()
	acc := make([]*planGraph, len(plans))
	for i, p := range plans {
		acc[i] = graphPlan(i, p)
	}
	return acc
}
