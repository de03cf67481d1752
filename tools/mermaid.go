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
	"fmt"
	"io"
	"strings"

	"github.com/Comcast/trindi/ibis"
)

type MermaidOpts struct {
	// Direction is the Mermaid graph direction ("TB", "LR").
	Direction string `json:"direction,omitempty"`

	// TriggerFill is the fill color of trigger nodes.  Does not
	// apply if TriggerClass is set.
	TriggerFill string `json:"triggerFill,omitempty"`

	// TriggerClass will be the CSS class for trigger nodes.
	TriggerClass string `json:"triggerClass,omitempty"`

	// Subgraphs puts each plan in its own subgraph.
	Subgraphs bool `json:"subgraphs,omitempty"`
}

// DefaultMermaidOpts are used when Mermaid gets nil options.
var DefaultMermaidOpts = MermaidOpts{
	Direction:   "TB",
	TriggerFill: "#bcf2db",
	Subgraphs:   true,
}

func mermaidLabel(s string) string {
	return strings.Replace(s, `"`, "#quot;", -1)
}

// Mermaid makes a Mermaid (https://mermaidjs.github.io/) input file
// with a flowchart for each of the domain's plans.
func Mermaid(d *ibis.StdDomain, w io.Writer, opts *MermaidOpts) error {
	if opts == nil {
		opts = &DefaultMermaidOpts
	}
	dir := opts.Direction
	if dir == "" {
		dir = "TB"
	}

	f := func(format string, args ...interface{}) {
		fmt.Fprintf(w, format+"\n", args...)
	}

	f("graph %s", dir)
	if opts.TriggerClass != "" {
		f("  classDef trigger %s", opts.TriggerClass)
	}

	for _, g := range graphDomain(d) {
		indent := "  "
		if opts.Subgraphs {
			f(`  subgraph %s ["%s"]`, g.prefix, mermaidLabel(g.Trigger))
			indent = "    "
		}
		for _, n := range g.Nodes {
			label := mermaidLabel(n.Label)
			switch n.Kind {
			case "trigger":
				f(`%s%s(["%s"])`, indent, n.ID, label)
				if opts.TriggerClass != "" {
					f("%sclass %s trigger", indent, n.ID)
				} else if opts.TriggerFill != "" {
					f("%sstyle %s fill:%s", indent, n.ID, opts.TriggerFill)
				}
			case "cond":
				f(`%s%s{"%s"}`, indent, n.ID, label)
			case "end":
				f(`%s%s(("%s"))`, indent, n.ID, label)
			default:
				f(`%s%s["%s"]`, indent, n.ID, label)
			}
		}
		for _, e := range g.Edges {
			if e.Label == "" {
				f("%s%s --> %s", indent, e.From, e.To)
			} else {
				f("%s%s -- %s --> %s", indent, e.From, e.Label, e.To)
			}
		}
		if opts.Subgraphs {
			f("  end")
		}
	}

	return nil
}
