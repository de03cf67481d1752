package expect

import (
	"context"
	"errors"
	"testing"

	"github.com/Comcast/trindi/db"
	"github.com/Comcast/trindi/grammar"
	"github.com/Comcast/trindi/ibis"
)

var domainSrc = `
preds1:
  price: int
  how: means
  dest_city: city
sorts:
  means: [plane, train]
  city: [paris, london]
plans:
- trigger: "?x.price(x)"
  plan:
  - Findout('?x.how(x)')
  - Findout('?x.dest_city(x)')
  - ConsultDB('?x.price(x)')
`

var sessionSrc = `
doc: Ask for a price.
turns:
- doc: The system speaks first.
  outputSet:
  - pattern: Greet()
- input: Ask('?x.price(x)')
  outputSet:
  - pattern: Ask('?x.how(x)')
  - pattern: Quit()
    inverted: true
- input: by boat
  outputSet:
  - pattern:
      type: notice
  - pattern:
      type: output
      text: "?q"
- input: Answer('train')
  outputSet:
  - pattern: Ask('?x.dest_city(x)')
- input: Answer('london')
  outputSet:
  - pattern: Answer('price(99)')
`

func newDME(t *testing.T) func(port ibis.IO) (*ibis.DME, error) {
	d, err := ibis.ParseDomain([]byte(domainSrc))
	if err != nil {
		t.Fatal(err)
	}
	fares, err := db.NewTable("fares",
		map[string]interface{}{"how": "train", "dest_city": "london", "price": 99},
		map[string]interface{}{"how": "plane", "dest_city": "paris", "price": 1234})
	if err != nil {
		t.Fatal(err)
	}
	return func(port ibis.IO) (*ibis.DME, error) {
		return ibis.NewDME(d, fares, grammar.Compact{}, port), nil
	}
}

func TestExpectBasic(t *testing.T) {
	s, err := ParseSession([]byte(sessionSrc))
	if err != nil {
		t.Fatal(err)
	}
	if err = s.Run(context.Background(), newDME(t)); err != nil {
		t.Fatal(err)
	}
	bss := s.Turns[2].OutputSet[1].Bindingss
	if len(bss) != 1 || bss[0]["?q"] != "Ask('?x.how(x)')" {
		t.Fatal(bss)
	}
}

func TestExpectFailure(t *testing.T) {
	s, err := ParseSession([]byte(sessionSrc))
	if err != nil {
		t.Fatal(err)
	}
	s.Turns[4].OutputSet[0].Pattern = "Answer('price(1234)')"

	err = s.Run(context.Background(), newDME(t))
	var f *Failure
	if !errors.As(err, &f) {
		t.Fatal(err)
	}
	if f.Turn != 4 || f.Input != "Answer('london')" {
		t.Fatal(f)
	}
}

func TestExpectInverted(t *testing.T) {
	s := &Session{
		Turns: []Turn{
			{
				OutputSet: []Output{{Pattern: "Greet()", Inverted: true}},
			},
		},
	}
	if err := s.Run(context.Background(), newDME(t)); err == nil {
		t.Fatal("should have failed")
	}
}

func TestParseSessionMissingInput(t *testing.T) {
	src := `
turns:
- input: hi
- outputSet:
  - pattern: Greet()
`
	if _, err := ParseSession([]byte(src)); err == nil {
		t.Fatal("should have complained")
	}
}
