package grammar

import (
	"context"
	"testing"

	"github.com/Comcast/trindi/ibis"
)

var lexiconSrc = `
phrases:
  price: ["Ask('?x.price(x)')"]
  how much: ["Ask('?x.price(x)')"]
  plane: ["Answer('plane')"]
  train: ["Answer('train')"]
  paris: ["Answer('paris')"]
  from paris: ["Answer('dept_city(paris)')"]
  london: ["Answer('london')"]
  bye: [quit]
  hello: [greet]
outputs:
  Greet(): Hello.
  Quit(): Goodbye.
  Ask('?x.how(x)'): How do you want to travel?
answers:
  price: The price is {} crowns.
negative: It's not true that {}
`

func keys(ms []ibis.Move) []string {
	acc := make([]string, len(ms))
	for i, m := range ms {
		acc[i] = m.Key()
	}
	return acc
}

func same(xs, ys []string) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if xs[i] != ys[i] {
			return false
		}
	}
	return true
}

func TestCompact(t *testing.T) {
	ctx := context.Background()
	g := Compact{}

	ms, err := g.Interpret(ctx, "Answer('plane')\n\nAnswer('paris')")
	if err != nil {
		t.Fatal(err)
	}
	if got := keys(ms); !same(got, []string{"Answer('plane')", "Answer('paris')"}) {
		t.Fatal(got)
	}

	if ms, _ = g.Interpret(ctx, "Answer('plane')\nhello there"); ms != nil {
		t.Fatal(ms)
	}

	s, err := g.Generate(ctx, ms)
	if err != nil {
		t.Fatal(err)
	}
	if s != "" {
		t.Fatal(s)
	}

	s, _ = g.Generate(ctx, []ibis.Move{ibis.Greet{}, ibis.MustParseMove("Ask('?x.how(x)')")})
	if s != "Greet()\nAsk('?x.how(x)')" {
		t.Fatal(s)
	}
}

func TestLexiconInterpret(t *testing.T) {
	l, err := ParseLexicon([]byte(lexiconSrc))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	type test struct {
		text string
		want []string
	}
	for _, tst := range []test{
		{"How much is a trip?", []string{"Ask('?x.price(x)')"}},
		{"By PLANE to paris, please.", []string{"Answer('plane')", "Answer('paris')"}},
		{"from paris to london", []string{"Answer('dept_city(paris)')", "Answer('london')"}},
		{"plane plane", []string{"Answer('plane')"}},
		{"Answer('train')", []string{"Answer('train')"}},
		{"Ask('?x.how(x)')", []string{"Ask('?x.how(x)')"}},
		{"bye", []string{"Quit()"}},
		{"parisian cafes", nil},
	} {
		t.Run(tst.text, func(t *testing.T) {
			ms, err := l.Interpret(ctx, tst.text)
			if err != nil {
				t.Fatal(err)
			}
			if got := keys(ms); !same(got, tst.want) {
				t.Fatalf("%q != %q", got, tst.want)
			}
		})
	}
}

func TestLexiconGenerate(t *testing.T) {
	l, err := ParseLexicon([]byte(lexiconSrc))
	if err != nil {
		t.Fatal(err)
	}
	s, err := l.Generate(context.Background(), []ibis.Move{
		ibis.Greet{},
		ibis.MustParseMove("Ask('?x.how(x)')"),
		ibis.MustParseMove("Ask('?x.dest_city(x)')"),
		ibis.MustParseMove("Answer('price(1234)')"),
		ibis.MustParseMove("Answer('-price(99)')"),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "Hello.\nHow do you want to travel?\nAsk('?x.dest_city(x)')\nThe price is 1234 crowns.\nIt's not true that The price is 99 crowns."
	if s != want {
		t.Fatalf("%q", s)
	}
}

func TestLexiconBadMove(t *testing.T) {
	if _, err := ParseLexicon([]byte(`phrases: {x: ["Shout('?x.p(x)')"]}`)); err == nil {
		t.Fatal("should have failed")
	}
}
