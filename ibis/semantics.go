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

package ibis

import (
	"strings"
	"unicode"
)

// Ind is an individual, such as "paris".
type Ind string

// Pred0 is a 0-place predicate, such as "return".
type Pred0 string

// Pred1 is a 1-place predicate, such as "dest_city".
type Pred1 string

// Sort is a class of individuals, such as "city".  A Sort can be used
// wherever a 1-place predicate can.
type Sort string

// Apply makes the proposition that the predicate holds of the
// individual.
func (p Pred1) Apply(ind Ind) Prop {
	return Prop{Pred: string(p), Ind: ind, Yes: true}
}

// Pred1 returns the sort as a 1-place predicate.
func (s Sort) Pred1() Pred1 {
	return Pred1(s)
}

// CheckAtom verifies the syntax of an atom (an individual, predicate,
// or sort name).
//
// An atom is either an integer literal or a letter followed by
// letters, digits, and any of "_-+:".  The words "yes" and "no" are
// reserved.
func CheckAtom(s string) error {
	if s == "" || s == "yes" || s == "no" {
		return &SyntaxError{"atom", s}
	}
	if isInteger(s) {
		return nil
	}
	for i, c := range s {
		switch {
		case unicode.IsLetter(c):
		case i == 0:
			return &SyntaxError{"atom", s}
		case unicode.IsDigit(c) || strings.ContainsRune("_-+:", c):
		default:
			return &SyntaxError{"atom", s}
		}
	}
	return nil
}

func isInteger(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || '9' < c {
			return false
		}
	}
	return true
}

// Ans is an answer: a Prop, a ShortAns, or a YesNo.
type Ans interface {
	Key() string
	String() string
	ans()
}

// Prop is a proposition.
//
// When Ind is empty, Pred is a 0-place predicate.  Otherwise Pred is
// a 1-place predicate applied to Ind.
type Prop struct {
	Pred string
	Ind  Ind
	Yes  bool
}

// NewProp0 makes a proposition from a 0-place predicate.
func NewProp0(p Pred0, yes bool) Prop {
	return Prop{Pred: string(p), Yes: yes}
}

// NewProp1 makes a proposition from a 1-place predicate.
func NewProp1(p Pred1, ind Ind, yes bool) Prop {
	return Prop{Pred: string(p), Ind: ind, Yes: yes}
}

func (Prop) ans() {}

// Arity is 0 or 1.
func (p Prop) Arity() int {
	if p.Ind == "" {
		return 0
	}
	return 1
}

// Negate flips the polarity.
func (p Prop) Negate() Prop {
	p.Yes = !p.Yes
	return p
}

// Positive returns the proposition with affirmative polarity.
func (p Prop) Positive() Prop {
	p.Yes = true
	return p
}

func (p Prop) String() string {
	s := p.Pred + "(" + string(p.Ind) + ")"
	if !p.Yes {
		s = "-" + s
	}
	return s
}

func (p Prop) Key() string {
	return p.String()
}

// ShortAns is an answer that's just an individual, like "paris" or
// "-paris".
type ShortAns struct {
	Ind Ind
	Yes bool
}

func (ShortAns) ans() {}

func (a ShortAns) Negate() ShortAns {
	a.Yes = !a.Yes
	return a
}

func (a ShortAns) String() string {
	if a.Yes {
		return string(a.Ind)
	}
	return "-" + string(a.Ind)
}

func (a ShortAns) Key() string {
	return a.String()
}

// YesNo is "yes" or "no".
type YesNo struct {
	Yes bool
}

func (YesNo) ans() {}

func (a YesNo) Negate() YesNo {
	return YesNo{!a.Yes}
}

func (a YesNo) String() string {
	if a.Yes {
		return "yes"
	}
	return "no"
}

func (a YesNo) Key() string {
	return a.String()
}

// Question is a WhQ, YNQ, or AltQ.
type Question interface {
	Key() string
	String() string
	question()
}

// WhQ asks which individual the predicate holds of: "?x.pred(x)".
type WhQ struct {
	Pred Pred1
}

func (WhQ) question() {}

func (q WhQ) String() string {
	return "?x." + string(q.Pred) + "(x)"
}

func (q WhQ) Key() string {
	return q.String()
}

// YNQ asks whether a proposition holds: "?prop".
type YNQ struct {
	Prop Prop
}

func (YNQ) question() {}

func (q YNQ) String() string {
	return "?" + q.Prop.String()
}

func (q YNQ) Key() string {
	return q.String()
}

// AltQ asks which of several yes/no questions holds: "{?a | ?b}".
type AltQ struct {
	YNQs []YNQ
}

func (AltQ) question() {}

func (q AltQ) String() string {
	parts := make([]string, len(q.YNQs))
	for i, y := range q.YNQs {
		parts[i] = y.String()
	}
	return "{" + strings.Join(parts, " | ") + "}"
}

func (q AltQ) Key() string {
	return q.String()
}
