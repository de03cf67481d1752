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

// Package db provides fact databases for the DME.
//
// A Table is a list of rows.  Each row maps predicate names to
// individuals, so the row
//
//	{how: plane, dest_city: paris, dept_city: london, price: 1234}
//
// says that the price of a plane trip from london to paris is 1234.
// To answer "?x.price(x)", a Table finds the first row that agrees
// with every relevant proposition in the common ground.
package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"

	"github.com/Comcast/trindi/core"
	"github.com/Comcast/trindi/ibis"
	"github.com/Comcast/trindi/match"
)

// ErrNoAnswer is returned when no row answers a question.
var ErrNoAnswer = errors.New("no answer")

// Yes is the value a row uses for a 0-place predicate that holds.
const Yes = "yes"

// Row maps predicates to individuals.
type Row map[string]string

// Table is an in-memory fact table that implements ibis.Database.
type Table struct {
	Name string `json:"name" yaml:"name"`
	Rows []Row  `json:"rows" yaml:"rows"`

	// Verbose turns on logging.
	Verbose bool `json:"-" yaml:"-"`
}

// NewTable makes a Table with the given rows.
func NewTable(name string, rows ...map[string]interface{}) (*Table, error) {
	t := &Table{
		Name: name,
		Rows: make([]Row, 0, len(rows)),
	}
	for _, r := range rows {
		if err := t.Add(r); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add appends a row.  Values are rendered as individuals: numbers as
// integer (or decimal) literals, and booleans as "yes" or "no".
func (t *Table) Add(row map[string]interface{}) error {
	acc := make(Row, len(row))
	for k, v := range row {
		s, err := atom(v)
		if err != nil {
			return fmt.Errorf("table %s column %s: %w", t.Name, k, err)
		}
		acc[k] = s
	}
	t.Rows = append(t.Rows, acc)
	return nil
}

func atom(x interface{}) (string, error) {
	switch vv := x.(type) {
	case string:
		return vv, nil
	case int:
		return strconv.Itoa(vv), nil
	case int64:
		return strconv.FormatInt(vv, 10), nil
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64), nil
	case bool:
		if vv {
			return Yes, nil
		}
		return "no", nil
	default:
		return "", fmt.Errorf("bad value %#v (%T)", x, x)
	}
}

func (t *Table) logf(format string, args ...interface{}) {
	if t.Verbose {
		log.Printf("Table %s "+format, append([]interface{}{t.Name}, args...)...)
	}
}

// Columns returns the sorted names of every column that appears in
// some row.
func (t *Table) Columns() []string {
	cols := t.columns()
	acc := make([]string, 0, len(cols))
	for c := range cols {
		acc = append(acc, c)
	}
	sort.Strings(acc)
	return acc
}

func (t *Table) columns() map[string]bool {
	acc := make(map[string]bool)
	for _, r := range t.Rows {
		for k := range r {
			acc[k] = true
		}
	}
	return acc
}

// Find returns the bindings from the first row that matches the
// pattern.
func (t *Table) Find(pattern map[string]interface{}) (match.Bindings, bool, error) {
	for _, r := range t.Rows {
		fact := make(map[string]interface{}, len(r))
		for k, v := range r {
			fact[k] = v
		}
		bss, err := match.Matches(pattern, fact)
		if err != nil {
			return nil, false, err
		}
		if 0 < len(bss) {
			return bss[0], true, nil
		}
	}
	return nil, false, nil
}

// given builds a pattern from the affirmative propositions in the
// common ground that mention this table's columns.
func (t *Table) given(com *core.Set[ibis.Prop]) map[string]interface{} {
	cols := t.columns()
	pattern := make(map[string]interface{})
	com.Do(func(p ibis.Prop) bool {
		if p.Yes && cols[p.Pred] {
			if p.Ind == "" {
				pattern[p.Pred] = Yes
			} else {
				pattern[p.Pred] = string(p.Ind)
			}
		}
		return true
	})
	return pattern
}

// Consult implements ibis.Database.
func (t *Table) Consult(ctx context.Context, q ibis.Question, com *core.Set[ibis.Prop]) (ibis.Prop, error) {
	pattern := t.given(com)
	t.logf("Consult %s given %v", q, pattern)

	switch vv := q.(type) {
	case ibis.WhQ:
		pred := string(vv.Pred)
		pattern[pred] = "?x"
		bs, found, err := t.Find(pattern)
		if err != nil {
			return ibis.Prop{}, err
		}
		if !found {
			return ibis.Prop{}, fmt.Errorf("%w for %s in %s", ErrNoAnswer, q, t.Name)
		}
		return vv.Pred.Apply(ibis.Ind(bs["?x"].(string))), nil

	case ibis.YNQ:
		return t.decide(pattern, vv.Prop)

	case ibis.AltQ:
		for _, y := range vv.YNQs {
			p, err := t.decide(pattern, y.Prop)
			if err != nil {
				return ibis.Prop{}, err
			}
			if p.Yes == y.Prop.Yes {
				return y.Prop, nil
			}
		}
		return ibis.Prop{}, fmt.Errorf("%w for %s in %s", ErrNoAnswer, q, t.Name)

	default:
		return ibis.Prop{}, fmt.Errorf("can't consult %s (%T)", q, q)
	}
}

// decide determines whether some row supports the proposition.
// Returns the proposition if so and its negation otherwise.
func (t *Table) decide(pattern map[string]interface{}, p ibis.Prop) (ibis.Prop, error) {
	pos := p.Positive()
	acc := make(map[string]interface{}, len(pattern)+1)
	for k, v := range pattern {
		acc[k] = v
	}
	if pos.Ind == "" {
		acc[pos.Pred] = Yes
	} else {
		acc[pos.Pred] = string(pos.Ind)
	}
	_, found, err := t.Find(acc)
	if err != nil {
		return ibis.Prop{}, err
	}
	if found {
		return pos, nil
	}
	return pos.Negate(), nil
}
