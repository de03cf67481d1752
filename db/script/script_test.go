package script

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Comcast/trindi/core"
	"github.com/Comcast/trindi/ibis"
)

var pricesSrc = `
var prices = {
  plane: {paris: 1234, berlin: 320},
  train: {paris: 150}
};

function consult(question, context) {
  switch (question.kind) {
  case "wh":
    if (question.pred != "price") {
      return null;
    }
    var how = find(context, "how");
    var dest = find(context, "dest_city");
    var byHow = prices[how] || {};
    var price = byHow[dest];
    if (price === undefined) {
      return null;
    }
    return "price(" + price + ")";
  case "yn":
    var p = question.prop;
    return {pred: p.pred, ind: p.ind, yes: p.ind == "plane"};
  }
  return null;
}
`

func com(ps ...ibis.Prop) *core.Set[ibis.Prop] {
	return core.NewSet(ps...)
}

func TestConsult(t *testing.T) {
	d, err := NewDatabase("prices.js", pricesSrc)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	p, err := d.Consult(ctx, ibis.MustParseQuestion("?x.price(x)"),
		com(ibis.NewProp1("how", "plane", true), ibis.NewProp1("dest_city", "berlin", true)))
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "price(320)" {
		t.Fatal(p)
	}

	// Negative propositions aren't found.
	_, err = d.Consult(ctx, ibis.MustParseQuestion("?x.price(x)"),
		com(ibis.NewProp1("how", "train", false), ibis.NewProp1("dest_city", "paris", true)))
	if err == nil {
		t.Fatal("should have failed")
	}

	p, err = d.Consult(ctx, ibis.MustParseQuestion("?how(train)"), com())
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "-how(train)" {
		t.Fatal(p)
	}
}

func TestNoConsult(t *testing.T) {
	d, err := NewDatabase("empty.js", "var x = 1;")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = d.Consult(context.Background(), ibis.MustParseQuestion("?x.price(x)"), com()); err == nil {
		t.Fatal("should have failed")
	}

	if _, err = NewDatabase("bad.js", "function consult( {"); err == nil {
		t.Fatal("should have failed")
	}
}

func TestInterrupt(t *testing.T) {
	d, err := NewDatabase("loop.js", "function consult(q, c) { for (;;) {} }")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = d.Consult(ctx, ibis.MustParseQuestion("?x.price(x)"), com())
	if !errors.Is(err, Interrupted) {
		t.Fatal(err)
	}
}

func TestCronNext(t *testing.T) {
	src := `
function consult(q, c) {
  var t = cronNext("0 * * * *");
  return t.indexOf(":00:00") > 0 ? "open(hourly)" : "open(never)";
}
`
	d, err := NewDatabase("cron.js", src)
	if err != nil {
		t.Fatal(err)
	}
	p, err := d.Consult(context.Background(), ibis.MustParseQuestion("?x.open(x)"), com())
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "open(hourly)" {
		t.Fatal(p)
	}

	d, err = NewDatabase("badcron.js", `function consult(q, c) { return cronNext("nope"); }`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = d.Consult(context.Background(), ibis.MustParseQuestion("?x.open(x)"), com()); err == nil {
		t.Fatal("should have failed")
	}
}
