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
)

// ParseQuestion parses the compact form of a question.
//
//	"?x.pred(x)"     WhQ
//	"?prop"          YNQ
//	"{?p1 | ?p2}"    AltQ
func ParseQuestion(s string) (Question, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		parts := strings.Split(s[1:len(s)-1], "|")
		ynqs := make([]YNQ, 0, len(parts))
		for _, part := range parts {
			q, err := ParseQuestion(part)
			if err != nil {
				return nil, err
			}
			ynq, is := q.(YNQ)
			if !is {
				return nil, &SyntaxError{"alternative question", s}
			}
			ynqs = append(ynqs, ynq)
		}
		return AltQ{YNQs: ynqs}, nil
	case strings.HasPrefix(s, "?x.") && strings.HasSuffix(s, "(x)"):
		pred := s[3 : len(s)-3]
		if err := CheckAtom(pred); err != nil {
			return nil, &SyntaxError{"question", s}
		}
		return WhQ{Pred: Pred1(pred)}, nil
	case strings.HasPrefix(s, "?"):
		p, err := ParseProp(s[1:])
		if err != nil {
			return nil, &SyntaxError{"question", s}
		}
		return YNQ{Prop: p}, nil
	default:
		return nil, &SyntaxError{"question", s}
	}
}

// ParseProp parses "pred(ind)", "pred()", or either of those with a
// leading "-" for negative polarity.
func ParseProp(s string) (Prop, error) {
	s = strings.TrimSpace(s)
	yes := true
	if strings.HasPrefix(s, "-") {
		yes = false
		s = s[1:]
	}
	open := strings.Index(s, "(")
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return Prop{}, &SyntaxError{"proposition", s}
	}
	pred, ind := s[:open], s[open+1:len(s)-1]
	if err := CheckAtom(pred); err != nil {
		return Prop{}, &SyntaxError{"proposition", s}
	}
	if ind != "" {
		if err := CheckAtom(ind); err != nil {
			return Prop{}, &SyntaxError{"proposition", s}
		}
	}
	return Prop{Pred: pred, Ind: Ind(ind), Yes: yes}, nil
}

// ParseAns parses the compact form of an answer.
//
//	"yes", "no"          YesNo
//	"paris", "-paris"    ShortAns
//	"city(paris)"        Prop
func ParseAns(s string) (Ans, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "yes":
		return YesNo{true}, nil
	case s == "no":
		return YesNo{false}, nil
	case !strings.ContainsAny(s, "()"):
		a := ShortAns{Yes: true}
		if strings.HasPrefix(s, "-") {
			a.Yes = false
			s = s[1:]
		}
		if err := CheckAtom(s); err != nil {
			return nil, &SyntaxError{"answer", s}
		}
		a.Ind = Ind(s)
		return a, nil
	default:
		p, err := ParseProp(s)
		if err != nil {
			return nil, &SyntaxError{"answer", s}
		}
		return p, nil
	}
}

// ParseMove parses the compact form of a move, such as "greet",
// "Quit()", "Ask('?x.price(x)')", or "Answer('paris')".
//
// If constructs don't have a compact form that this function parses.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "greet", "Greet", "Greet()":
		return Greet{}, nil
	case "quit", "Quit", "Quit()":
		return Quit{}, nil
	}

	open := strings.Index(s, "(")
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return nil, &SyntaxError{"move", s}
	}
	name, arg := s[:open], unquote(s[open+1:len(s)-1])

	if name == "Answer" {
		a, err := ParseAns(arg)
		if err != nil {
			return nil, err
		}
		return Answer{A: a}, nil
	}

	q, err := ParseQuestion(arg)
	if err != nil {
		return nil, err
	}
	switch name {
	case "Ask":
		return Ask{Q: q}, nil
	case "Respond":
		return Respond{Q: q}, nil
	case "Findout":
		return Findout{Q: q}, nil
	case "Raise":
		return Raise{Q: q}, nil
	case "ConsultDB":
		return ConsultDB{Q: q}, nil
	default:
		return nil, &SyntaxError{"move", s}
	}
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if 2 <= len(s) {
		if (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// MustParseQuestion is ParseQuestion that panics.  Handy in tests
// and static plans.
func MustParseQuestion(s string) Question {
	q, err := ParseQuestion(s)
	if err != nil {
		panic(err)
	}
	return q
}

// MustParseMove is ParseMove that panics.
func MustParseMove(s string) Move {
	m, err := ParseMove(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MustParseAns is ParseAns that panics.
func MustParseAns(s string) Ans {
	a, err := ParseAns(s)
	if err != nil {
		panic(err)
	}
	return a
}
