package tools

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Comcast/trindi/ibis"
)

var testDomainSrc = `name: fares
preds0: [return]
preds1:
  price: int
  how: means
  dest_city: city
  dept_city: city
  month: month
sorts:
  means: [plane, train]
  city: [paris, london]
  month: [april, may]
  unused: [x]
plans:
- trigger: "?x.price(x)"
  doc: "What a *fare* costs."
  plan:
  - Findout('?x.how(x)')
  - Findout('?x.dest_city(x)')
  - if: "?how(plane)"
    then:
    - Findout('?x.dept_city(x)')
    else:
    - Raise('?return()')
  - ConsultDB('?x.price(x)')
- trigger: "?x.dest_city(x)"
  plan:
  - Findout('?x.how(x)')
`

func testDomain(t *testing.T) *ibis.StdDomain {
	d, err := ibis.ParseDomain([]byte(testDomainSrc))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestMermaid(t *testing.T) {
	var out bytes.Buffer
	if err := Mermaid(testDomain(t), &out, nil); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{
		"graph TB\n",
		`  subgraph p0 ["?x.price(x)"]`,
		`    p0n0(["?x.price(x)"])`,
		`    p0n3{"?how(plane)"}`,
		"    p0n3 -- yes --> p0n4",
		"    p0n3 -- no --> p0n5",
		"    p0n4 --> p0n6",
		"    p0n5 --> p0n6",
		`    p1n2(("done"))`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in\n%s", want, got)
		}
	}
}

func TestDot(t *testing.T) {
	var out bytes.Buffer
	if err := Dot(testDomain(t), &out); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "digraph G {") || !strings.HasSuffix(got, "}\n") {
		t.Fatal(got)
	}
	for _, want := range []string{
		"subgraph cluster_p0 {",
		`p0n3 [label="?how(plane)" shape="diamond" style="filled"]`,
		`p0n3 -> p0n4 [label="yes"]`,
		"p0n6 -> p0n7",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in\n%s", want, got)
		}
	}
}

func TestRenderDomainPage(t *testing.T) {
	var out bytes.Buffer
	if err := RenderDomainPage(testDomain(t), &out, []string{"domain.css"}); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{
		"<title>fares</title>",
		`<link href="domain.css" rel="stylesheet">`,
		"<em>fare</em>",
		`<li><code>Findout(&#39;?x.how(x)&#39;)</code></li>`,
		`<li>if <code>?how(plane)</code>`,
		`<span id="sort-city" class="sortName">city</span>`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in\n%s", want, got)
		}
	}
}

func TestAnalyze(t *testing.T) {
	a, err := Analyze(testDomain(t))
	if err != nil {
		t.Fatal(err)
	}
	if a.Plans != 2 || a.Conditionals != 1 || a.Constructs != 7 {
		t.Fatalf("%#v", a)
	}
	if strings.Join(a.Consulted, ",") != "?x.price(x)" {
		t.Fatal(a.Consulted)
	}
	if strings.Join(a.Subplans, ",") != "?x.dest_city(x)" {
		t.Fatal(a.Subplans)
	}
	if strings.Join(a.UnusedPreds, ",") != "month" {
		t.Fatal(a.UnusedPreds)
	}
	if strings.Join(a.UnusedSorts, ",") != "unused" {
		t.Fatal(a.UnusedSorts)
	}
	if strings.Join(a.Unconsulted, ",") != "?x.dest_city(x)" {
		t.Fatal(a.Unconsulted)
	}
}
