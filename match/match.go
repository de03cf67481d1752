/* Copyright 2018 Comcast Cable Communications Management, LLC
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

// Package match implements a small structural pattern matcher.
//
// A pattern is a value built from maps, arrays, strings, numbers,
// booleans, and nil.  A string that starts with "?" is a variable.
// Matching a pattern against a fact (a value without variables)
// produces the Bindings that make the pattern equal to the fact.
//
// The fact database uses this package to find rows that agree with
// the common ground.
package match

import (
	"errors"
	"reflect"
	"strings"

	"github.com/Comcast/trindi/core"
)

// Bindings maps variables (with their leading "?") to values.
type Bindings = core.Bindings

// Matcher holds matching options.
type Matcher struct {
	// AllowOptionalVariables enables "??x" variables.  When a map
	// pattern's property has an optional variable as its value,
	// the fact may lack that property.
	AllowOptionalVariables bool
}

// DefaultMatcher is used by Match.
var DefaultMatcher = &Matcher{
	AllowOptionalVariables: true,
}

// ErrPropertyVariable is returned for a pattern with a variable as a
// map key, which this matcher doesn't support.
var ErrPropertyVariable = errors.New("can't have a variable as a key")

// NewBindings makes empty Bindings.
func NewBindings() Bindings {
	return core.NewBindings()
}

// Match uses DefaultMatcher.
func Match(pattern interface{}, fact interface{}, bs Bindings) ([]Bindings, error) {
	return DefaultMatcher.Match(pattern, fact, bs)
}

// Matches is Match with empty initial Bindings.
func Matches(pattern interface{}, fact interface{}) ([]Bindings, error) {
	return DefaultMatcher.Match(pattern, fact, core.NewBindings())
}

func (m *Matcher) IsVariable(s string) bool {
	return strings.HasPrefix(s, "?")
}

func (m *Matcher) IsAnonymousVariable(s string) bool {
	return s == "?"
}

func (m *Matcher) IsOptionalVariable(x interface{}) bool {
	if !m.AllowOptionalVariables {
		return false
	}
	s, is := x.(string)
	return is && strings.HasPrefix(s, "??")
}

// Match attempts to match the pattern against the fact given the
// initial Bindings, which are not modified.
//
// A nil result means no match.  Otherwise there is exactly one set
// of Bindings, which extends the given Bindings.
func (m *Matcher) Match(pattern interface{}, fact interface{}, bs Bindings) ([]Bindings, error) {
	if bs == nil {
		bs = core.NewBindings()
	}
	acc, ok, err := m.match(pattern, fact, bs.Copy())
	if err != nil || !ok {
		return nil, err
	}
	return []Bindings{acc}, nil
}

// fudge makes all numbers float64s.
func fudge(x interface{}) interface{} {
	switch vv := x.(type) {
	case float32:
		return float64(vv)
	case int:
		return float64(vv)
	case int32:
		return float64(vv)
	case int64:
		return float64(vv)
	case uint64:
		return float64(vv)
	case map[interface{}]interface{}:
		// YAML gives us these.
		acc := make(map[string]interface{}, len(vv))
		for k, v := range vv {
			s, is := k.(string)
			if !is {
				return x
			}
			acc[s] = v
		}
		return acc
	default:
		return x
	}
}

func (m *Matcher) match(p interface{}, f interface{}, bs Bindings) (Bindings, bool, error) {
	p, f = fudge(p), fudge(f)

	switch vv := p.(type) {
	case string:
		if !m.IsVariable(vv) {
			s, is := f.(string)
			return bs, is && s == vv, nil
		}
		if m.IsAnonymousVariable(vv) {
			return bs, true, nil
		}
		if bound, have := bs[vv]; have {
			return m.match(bound, f, bs)
		}
		bs[vv] = f
		return bs, true, nil

	case map[string]interface{}:
		fm, is := f.(map[string]interface{})
		if !is {
			return bs, false, nil
		}
		for k := range vv {
			if m.IsVariable(k) {
				return nil, false, ErrPropertyVariable
			}
		}
		for k, v := range vv {
			fv, have := fm[k]
			if !have {
				if m.IsOptionalVariable(v) {
					continue
				}
				return bs, false, nil
			}
			var (
				ok  bool
				err error
			)
			if bs, ok, err = m.match(v, fv, bs); err != nil || !ok {
				return bs, ok, err
			}
		}
		return bs, true, nil

	case []interface{}:
		fa, is := f.([]interface{})
		if !is || len(fa) != len(vv) {
			return bs, false, nil
		}
		for i, x := range vv {
			var (
				ok  bool
				err error
			)
			if bs, ok, err = m.match(x, fa[i], bs); err != nil || !ok {
				return bs, ok, err
			}
		}
		return bs, true, nil

	case nil, bool, float64:
		return bs, p == f, nil

	default:
		return bs, reflect.DeepEqual(p, f), nil
	}
}
