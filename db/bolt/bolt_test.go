package bolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Comcast/trindi/core"
	"github.com/Comcast/trindi/db"
	"github.com/Comcast/trindi/ibis"
)

func TestImpl(t *testing.T) {
	// Just confirm that this code compiles.
	var _ ibis.Database = &Database{}
}

func TestBasics(t *testing.T) {
	var (
		filename = filepath.Join(t.TempDir(), "facts.db")
		ctx      = context.Background()
	)

	s, err := NewStorage(filename)
	if err != nil {
		t.Fatal(err)
	}

	if _, err = s.Tables(ctx); !errors.Is(err, ErrNotOpen) {
		t.Fatal(err)
	}

	if err := s.Open(ctx); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := s.Close(ctx); err != nil {
			t.Fatal(err)
		}
	}()

	tab, err := db.NewTable("prices",
		map[string]interface{}{"how": "plane", "dest_city": "paris", "price": 1234},
		map[string]interface{}{"how": "train", "dest_city": "paris", "price": 150})
	if err != nil {
		t.Fatal(err)
	}
	if err = s.WriteTable(ctx, tab); err != nil {
		t.Fatal(err)
	}

	names, err := s.Tables(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "prices" {
		t.Fatal(names)
	}

	got, err := s.ReadTable(ctx, "prices")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Rows) != 2 || got.Rows[1]["price"] != "150" {
		t.Fatal(got.Rows)
	}

	d := &Database{Storage: s, Table: "prices"}
	com := core.NewSet(ibis.NewProp1("how", "train", true))
	p, err := d.Consult(ctx, ibis.MustParseQuestion("?x.price(x)"), com)
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "price(150)" {
		t.Fatal(p)
	}

	// Rewriting replaces the rows.
	tab.Rows = tab.Rows[:1]
	if err = s.WriteTable(ctx, tab); err != nil {
		t.Fatal(err)
	}
	if _, err = d.Consult(ctx, ibis.MustParseQuestion("?x.price(x)"), com); !errors.Is(err, db.ErrNoAnswer) {
		t.Fatal(err)
	}

	visas, err := db.NewTable("visas", map[string]interface{}{"dest_city": "paris", "visa": true})
	if err != nil {
		t.Fatal(err)
	}
	if err = s.WriteTable(ctx, visas); err != nil {
		t.Fatal(err)
	}
	all := &Database{Storage: s}
	com.Add(ibis.NewProp1("dest_city", "paris", true))
	if p, err = all.Consult(ctx, ibis.MustParseQuestion("?visa()"), com); err != nil {
		t.Fatal(err)
	}
	if p.String() != "visa()" {
		t.Fatal(p)
	}

	if err = s.RemTable(ctx, "prices"); err != nil {
		t.Fatal(err)
	}
	if _, err = s.ReadTable(ctx, "prices"); err == nil {
		t.Fatal("should have failed")
	}
}
