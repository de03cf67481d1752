package tools

// dot -Tpng g.dot > g.png

import (
	"fmt"
	"io"
	"strings"

	"github.com/Comcast/trindi/ibis"
)

func dotLabel(s string) string {
	return strings.Replace(s, `"`, `\"`, -1)
}

// Dot makes a Graphviz dot file with a cluster for each of the
// domain's plans.
func Dot(d *ibis.StdDomain, w io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(w, format+"\n", args...)
	}

	f("digraph G {")
	f(`  graph [ordering=out,rankdir=TB,nodesep=0.3,ranksep=0.6]`)
	f(`  node [shape="record" style="rounded,filled" fillcolor="white"]`)
	f(`  edge [fontsize = "12"]`)

	for _, g := range graphDomain(d) {
		f("  subgraph cluster_%s {", g.prefix)
		f(`    label="%s"`, dotLabel(g.Trigger))
		for _, n := range g.Nodes {
			label := dotLabel(n.Label)
			switch n.Kind {
			case "trigger":
				f(`    %s [label="%s" fillcolor="#bcf2db"]`, n.ID, label)
			case "cond":
				f(`    %s [label="%s" shape="diamond" style="filled"]`, n.ID, label)
			case "end":
				f(`    %s [label="%s" shape="circle"]`, n.ID, label)
			default:
				f(`    %s [label="%s"]`, n.ID, label)
			}
		}
		for _, e := range g.Edges {
			if e.Label == "" {
				f("    %s -> %s", e.From, e.To)
			} else {
				f(`    %s -> %s [label="%s"]`, e.From, e.To, e.Label)
			}
		}
		f("  }")
	}

	f("}")
	return nil
}
