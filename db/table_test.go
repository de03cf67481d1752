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

package db

import (
	"context"
	"errors"
	"testing"

	"github.com/Comcast/trindi/core"
	"github.com/Comcast/trindi/ibis"
)

var pricesSrc = `
name: prices
rows:
  - {how: plane, dest_city: paris, dept_city: london, price: 1234}
  - {how: train, dest_city: paris, dept_city: london, price: 150}
  - {how: plane, dest_city: berlin, dept_city: london, price: 320, return: true}
`

func com(props ...string) *core.Set[ibis.Prop] {
	acc := core.NewSet[ibis.Prop]()
	for _, s := range props {
		p, err := ibis.ParseProp(s)
		if err != nil {
			panic(err)
		}
		acc.Add(p)
	}
	return acc
}

func TestParseRows(t *testing.T) {
	tab, err := ParseRows([]byte(pricesSrc))
	if err != nil {
		t.Fatal(err)
	}
	if tab.Name != "prices" || len(tab.Rows) != 3 {
		t.Fatal(tab)
	}
	if tab.Rows[0]["price"] != "1234" {
		t.Fatal(tab.Rows[0])
	}
	if tab.Rows[2]["return"] != Yes {
		t.Fatal(tab.Rows[2])
	}
	cols := tab.Columns()
	if len(cols) != 5 || cols[0] != "dept_city" {
		t.Fatal(cols)
	}

	if _, err = ParseRows([]byte(`rows: [{how: [plane]}]`)); err == nil {
		t.Fatal("should have failed")
	}
}

func TestConsult(t *testing.T) {
	tab, err := ParseRows([]byte(pricesSrc))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	type test struct {
		name string
		q    string
		com  []string
		want string
	}
	for _, tst := range []test{
		{"plane", "?x.price(x)", []string{"how(plane)", "dest_city(paris)"}, "price(1234)"},
		{"train", "?x.price(x)", []string{"dest_city(paris)", "how(train)"}, "price(150)"},
		{"ignore negatives", "?x.price(x)", []string{"how(train)", "-dest_city(berlin)"}, "price(150)"},
		{"ignore other preds", "?x.price(x)", []string{"how(plane)", "dest_city(berlin)", "month(may)"}, "price(320)"},
		{"first row", "?x.dest_city(x)", nil, "dest_city(paris)"},
		{"ynq yes", "?how(train)", []string{"dest_city(paris)"}, "how(train)"},
		{"ynq no", "?how(train)", []string{"dest_city(berlin)"}, "-how(train)"},
		{"ynq 0-place", "?return()", []string{"dest_city(berlin)"}, "return()"},
		{"altq", "{?how(bus) | ?how(train)}", []string{"price(150)"}, "how(train)"},
	} {
		t.Run(tst.name, func(t *testing.T) {
			q, err := ibis.ParseQuestion(tst.q)
			if err != nil {
				t.Fatal(err)
			}
			p, err := tab.Consult(ctx, q, com(tst.com...))
			if err != nil {
				t.Fatal(err)
			}
			if p.String() != tst.want {
				t.Fatalf("%s != %s", p, tst.want)
			}
		})
	}

	_, err = tab.Consult(ctx, ibis.MustParseQuestion("?x.price(x)"), com("how(bus)"))
	if !errors.Is(err, ErrNoAnswer) {
		t.Fatal(err)
	}
}

func TestTables(t *testing.T) {
	ts, err := ParseTables([]byte(`
- name: fares
  rows:
  - {how: train, dest_city: paris, price: 150}
- name: visas
  rows:
  - {dest_city: london, visa: true}
`))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	got, err := ts.Consult(ctx, ibis.MustParseQuestion("?visa()"), com("how(train)", "dest_city(london)"))
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "visa()" {
		t.Fatal(got)
	}

	got, err = ts.Consult(ctx, ibis.MustParseQuestion("?x.price(x)"), com("how(train)", "dest_city(paris)"))
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "price(150)" {
		t.Fatal(got)
	}

	if _, err = ts.Consult(ctx, ibis.MustParseQuestion("?x.month(x)"), com()); !errors.Is(err, ErrNoAnswer) {
		t.Fatal(err)
	}
}
