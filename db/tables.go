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
	"fmt"
	"io/ioutil"

	"github.com/Comcast/trindi/core"
	"github.com/Comcast/trindi/ibis"

	"gopkg.in/yaml.v2"
)

// Tables is a Database made of several Tables.  A question goes to
// the first Table that has a column for the question's predicate.
type Tables []*Table

// preds returns the predicates that a question asks about.
func preds(q ibis.Question) []string {
	switch vv := q.(type) {
	case ibis.WhQ:
		return []string{string(vv.Pred)}
	case ibis.YNQ:
		return []string{vv.Prop.Pred}
	case ibis.AltQ:
		acc := make([]string, len(vv.YNQs))
		for i, y := range vv.YNQs {
			acc[i] = y.Prop.Pred
		}
		return acc
	}
	return nil
}

// For finds the Table for the question.
func (ts Tables) For(q ibis.Question) (*Table, bool) {
	ps := preds(q)
	for _, t := range ts {
		cols := t.columns()
		for _, p := range ps {
			if cols[p] {
				return t, true
			}
		}
	}
	return nil, false
}

// Consult implements ibis.Database.
func (ts Tables) Consult(ctx context.Context, q ibis.Question, com *core.Set[ibis.Prop]) (ibis.Prop, error) {
	t, have := ts.For(q)
	if !have {
		return ibis.Prop{}, fmt.Errorf("%w for %s: no table", ErrNoAnswer, q)
	}
	return t.Consult(ctx, q, com)
}

// ParseTables parses a YAML list of TableSpecs.
func ParseTables(src []byte) (Tables, error) {
	var specs []TableSpec
	if err := yaml.Unmarshal(src, &specs); err != nil {
		return nil, err
	}
	acc := make(Tables, 0, len(specs))
	for i, spec := range specs {
		t, err := NewTable(spec.Name, spec.Rows...)
		if err != nil {
			return nil, err
		}
		if t.Name == "" {
			t.Name = fmt.Sprintf("table%d", i)
		}
		acc = append(acc, t)
	}
	return acc, nil
}

// LoadTables reads Tables from a YAML file.
func LoadTables(filename string) (Tables, error) {
	src, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	ts, err := ParseTables(src)
	if err != nil {
		return nil, fmt.Errorf("facts %s: %w", filename, err)
	}
	return ts, nil
}
