package tools

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/Comcast/trindi/ibis"

	md "github.com/russross/blackfriday/v2"
)

// RenderDomainHTML writes an HTML fragment that documents the
// domain: its Markdown doc, predicates, sorts, and plans.
func RenderDomainHTML(d *ibis.StdDomain, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}
	esc := html.EscapeString

	if d.Doc != "" {
		f(`<div class="domainDoc doc">%s</div>`, md.Run([]byte(d.Doc)))
	}

	{ // Predicates
		f(`<div class="preds"><table>`)
		f(`<tr><th>predicate</th><th>sort</th></tr>`)
		preds0 := make([]string, 0, len(d.Preds0))
		for p := range d.Preds0 {
			preds0 = append(preds0, string(p))
		}
		sort.Strings(preds0)
		for _, p := range preds0 {
			f(`<tr class="pred0"><td><code>%s</code></td><td></td></tr>`, esc(p))
		}
		preds1 := make([]string, 0, len(d.Preds1))
		for p := range d.Preds1 {
			preds1 = append(preds1, string(p))
		}
		sort.Strings(preds1)
		for _, p := range preds1 {
			s := string(d.Preds1[ibis.Pred1(p)])
			f(`<tr class="pred1"><td><code>%s</code></td><td><a href="#sort-%s">%s</a></td></tr>`, esc(p), esc(s), esc(s))
		}
		f(`</table></div>`)
	}

	{ // Sorts
		f(`<div class="sorts"><table>`)
		sorts := make([]string, 0, len(d.Sorts))
		for s := range d.Sorts {
			sorts = append(sorts, string(s))
		}
		sort.Strings(sorts)
		for _, s := range sorts {
			inds := d.Sorts[ibis.Sort(s)]
			names := make([]string, len(inds))
			for i, ind := range inds {
				names[i] = esc(string(ind))
			}
			f(`<tr class="sort"><td><span id="sort-%s" class="sortName">%s</span></td><td>%s</td></tr>`,
				esc(s), esc(s), strings.Join(names, ", "))
		}
		f(`</table></div>`)
	}

	{ // Plans
		f(`<div class="plans">`)
		for _, p := range d.Plans() {
			trigger := esc(p.Trigger.String())
			f(`<div class="plan"><h2 id="%s" class="trigger"><code>%s</code></h2>`, trigger, trigger)
			if p.Doc != "" {
				f(`<div class="planDoc doc">%s</div>`, md.Run([]byte(p.Doc)))
			}
			renderConstructs(f, p.Constructs)
			f(`</div>`)
		}
		f(`</div>`)
	}

	return nil
}

func renderConstructs(f func(string, ...interface{}), ms []ibis.Move) {
	f(`<ol class="constructs">`)
	for _, m := range ms {
		c, is := m.(ibis.If)
		if !is {
			f(`<li><code>%s</code></li>`, html.EscapeString(m.String()))
			continue
		}
		f(`<li>if <code>%s</code>`, html.EscapeString(c.Cond.String()))
		renderConstructs(f, c.Then)
		if 0 < len(c.Else) {
			f(`else`)
			renderConstructs(f, c.Else)
		}
		f(`</li>`)
	}
	f(`</ol>`)
}

// RenderDomainPage writes a complete HTML page for the domain.
func RenderDomainPage(d *ibis.StdDomain, out io.Writer, cssFiles []string) error {
	if cssFiles == nil {
		cssFiles = []string{"/static/domain-html.css"}
	}

	name := d.Name
	if name == "" {
		name = "domain"
	}

	fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head>
  <title>%s</title>
`, html.EscapeString(name))

	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", cssFile)
	}

	fmt.Fprintf(out, `
  </head>
  <body>
    <h1>%s</h1>
`, html.EscapeString(name))

	if err := RenderDomainHTML(d, out); err != nil {
		return err
	}

	fmt.Fprintf(out, `
  </body>
</html>
`)

	return nil
}

// ReadAndRenderDomainPage loads a domain file (with inlines) and
// renders it.
func ReadAndRenderDomainPage(filename string, cssFiles []string, out io.Writer) error {
	d, err := LoadDomain(filename)
	if err != nil {
		return err
	}
	return RenderDomainPage(d, out, cssFiles)
}
