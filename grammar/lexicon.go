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

package grammar

import (
	"context"
	"fmt"
	"io/ioutil"
	"sort"
	"strings"
	"unicode"

	"github.com/Comcast/trindi/ibis"

	"gopkg.in/yaml.v2"
)

// Lexicon is a keyword grammar.
//
// Interpretation looks for known phrases in the input.  When the
// input contains no known phrase, the input is parsed as a compact
// move.
//
// Generation uses Outputs (keyed by compact move), then Answers (for
// answers to 1-place predicates), and finally the compact form.
type Lexicon struct {
	// Phrases maps lowercase phrases to compact moves.
	Phrases map[string][]string `json:"phrases" yaml:"phrases"`

	// Outputs maps compact moves to text.
	Outputs map[string]string `json:"outputs" yaml:"outputs"`

	// Answers maps a 1-place predicate to a template for answers
	// that use it.  "{}" in the template is replaced by the
	// individual.
	Answers map[string]string `json:"answers,omitempty" yaml:"answers,omitempty"`

	// Negative is the template for negative answers.  "{}" is
	// replaced by the text for the positive answer.  Defaults to
	// "Not {}".
	Negative string `json:"negative,omitempty" yaml:"negative,omitempty"`

	phrases map[string][]ibis.Move
	order   []string
}

// ParseLexicon parses YAML into a Lexicon.
func ParseLexicon(src []byte) (*Lexicon, error) {
	var l Lexicon
	if err := yaml.Unmarshal(src, &l); err != nil {
		return nil, err
	}
	if err := l.Compile(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadLexicon reads a Lexicon from a YAML file.
func LoadLexicon(filename string) (*Lexicon, error) {
	src, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	l, err := ParseLexicon(src)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", filename, err)
	}
	return l, nil
}

// Compile parses the moves in Phrases.  Call after modifying
// Phrases.
func (l *Lexicon) Compile() error {
	l.phrases = make(map[string][]ibis.Move, len(l.Phrases))
	l.order = make([]string, 0, len(l.Phrases))
	for phrase, srcs := range l.Phrases {
		key := normalize(phrase)
		ms := make([]ibis.Move, 0, len(srcs))
		for _, src := range srcs {
			m, err := ibis.ParseMove(src)
			if err != nil {
				return fmt.Errorf("phrase %q: %w", phrase, err)
			}
			ms = append(ms, m)
		}
		l.phrases[key] = ms
		l.order = append(l.order, key)
	}
	// Longer phrases first, so "to paris" wins over "paris".
	sort.Slice(l.order, func(i, j int) bool {
		a, b := l.order[i], l.order[j]
		if len(a) != len(b) {
			return len(b) < len(a)
		}
		return a < b
	})
	return nil
}

// normalize lowercases, drops punctuation, and collapses whitespace.
func normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			return unicode.ToLower(r)
		default:
			return ' '
		}
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

type found struct {
	at int
	ms []ibis.Move
}

// Interpret implements ibis.Grammar.
func (l *Lexicon) Interpret(ctx context.Context, text string) ([]ibis.Move, error) {
	if l.phrases == nil {
		if err := l.Compile(); err != nil {
			return nil, err
		}
	}

	// Pad with spaces so that phrases only match whole words.
	s := " " + normalize(text) + " "
	var fs []found
	for _, phrase := range l.order {
		pat := " " + phrase + " "
		i := strings.Index(s, pat)
		if i < 0 {
			continue
		}
		fs = append(fs, found{at: i, ms: l.phrases[phrase]})
		// Blank it out so shorter phrases inside it don't match.
		s = s[:i] + strings.Repeat(" ", len(pat)-1) + s[i+len(pat)-1:]
	}
	sort.SliceStable(fs, func(i, j int) bool { return fs[i].at < fs[j].at })

	var (
		acc  []ibis.Move
		seen = make(map[string]bool)
	)
	for _, f := range fs {
		for _, m := range f.ms {
			if !seen[m.Key()] {
				seen[m.Key()] = true
				acc = append(acc, m)
			}
		}
	}
	if 0 < len(acc) {
		return acc, nil
	}

	return Compact{}.Interpret(ctx, text)
}

// Generate implements ibis.Grammar.
func (l *Lexicon) Generate(ctx context.Context, ms []ibis.Move) (string, error) {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = l.generate(m)
	}
	return strings.Join(parts, "\n"), nil
}

func (l *Lexicon) generate(m ibis.Move) string {
	if s, have := l.Outputs[m.Key()]; have {
		return s
	}
	a, is := m.(ibis.Answer)
	if !is {
		return m.String()
	}
	p, is := a.A.(ibis.Prop)
	if !is || p.Ind == "" {
		return m.String()
	}
	tmpl, have := l.Answers[p.Pred]
	if !have {
		return m.String()
	}
	s := strings.Replace(tmpl, "{}", string(p.Ind), -1)
	if !p.Yes {
		neg := l.Negative
		if neg == "" {
			neg = "Not {}"
		}
		s = strings.Replace(neg, "{}", s, -1)
	}
	return s
}
