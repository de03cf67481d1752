/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
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

// Package expect is a tool for testing dialogue domains.
//
// You construct a Session, which has user inputs and expected system
// outputs.  Then run the session against a DME to see if the expected
// outputs actually appeared.
//
// An expected output is a pattern that is matched against an
// utterance represented as
//
//	{"type":"output","text":"What city?"}
//
// (or "notice" for out-of-band notices).  A plain string pattern is
// shorthand for {"text":STRING}.  Pattern variables bound in one turn
// must agree with later turns.
package expect

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"sync"
	"time"

	"github.com/Comcast/trindi/ibis"
	"github.com/Comcast/trindi/match"
	. "github.com/Comcast/trindi/util/testutil"

	"github.com/jsccast/yaml"
)

// Output is a specification for an utterance that's expected.
type Output struct {
	// Doc is an opaque documentation string.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Pattern must be matched by an utterance in the turn.
	Pattern interface{} `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Bindingss, which is the result of a match, is written
	// during processing.  Just for diagnostics.
	Bindingss []match.Bindings `json:"bs,omitempty" yaml:"bs,omitempty"`

	// Inverted means that matching output isn't desired!
	Inverted bool `json:"inverted,omitempty" yaml:"inverted,omitempty"`
}

// Turn is one user input and the set of system utterances that
// should follow it.
type Turn struct {
	// Doc is an opaque documentation string.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Input is what the user says.  Only the first Turn can have
	// an empty Input, and then its OutputSet applies to what the
	// system says before the user says anything.
	Input string `json:"input,omitempty" yaml:"input,omitempty"`

	// OutputSet is the set (not a list) of outputs to verify.
	OutputSet []Output `json:"outputSet,omitempty" yaml:"outputSet,omitempty"`
}

// Session is mostly a sequence of Turns.
type Session struct {
	// Doc is an opaque documentation string.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	Turns []Turn `json:"turns" yaml:"turns"`

	// Timeout is the optional timeout for the whole session.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// ParseSession parses a YAML (or JSON) Session.
func ParseSession(src []byte) (*Session, error) {
	var s Session
	if err := yaml.Unmarshal(src, &s); err != nil {
		return nil, err
	}
	for i, t := range s.Turns {
		if 0 < i && t.Input == "" {
			return nil, fmt.Errorf("turn %d has no input", i)
		}
	}
	return &s, nil
}

// LoadSession reads a Session file.
func LoadSession(filename string) (*Session, error) {
	src, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	s, err := ParseSession(src)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", filename, err)
	}
	return s, nil
}

// Failure reports an Output that wasn't satisfied.
type Failure struct {
	Turn   int
	Input  string
	Output Output
	Heard  []map[string]interface{}
}

func (f *Failure) Error() string {
	how := "expected"
	if f.Output.Inverted {
		how = "unwanted"
	}
	return fmt.Sprintf("turn %d (%q): %s %s; heard %s", f.Turn, f.Input, how, JS(f.Output.Pattern), JS(f.Heard))
}

// player is an ibis.IO that says each input in turn and files what
// it hears by the number of inputs given so far.
type player struct {
	sync.Mutex

	verbose bool
	inputs  []string
	given   int
	heard   [][]map[string]interface{}
}

func (p *player) hear(typ, text string) {
	p.Lock()
	defer p.Unlock()
	if p.verbose {
		log.Printf("expect heard %s %q", typ, text)
	}
	for len(p.heard) <= p.given {
		p.heard = append(p.heard, nil)
	}
	p.heard[p.given] = append(p.heard[p.given], map[string]interface{}{
		"type": typ,
		"text": text,
	})
}

func (p *player) Input(ctx context.Context) (string, error) {
	p.Lock()
	defer p.Unlock()
	if len(p.inputs) <= p.given {
		return "", io.EOF
	}
	text := p.inputs[p.given]
	p.given++
	if p.verbose {
		log.Printf("expect said %q", text)
	}
	return text, nil
}

func (p *player) Output(ctx context.Context, text string) error {
	p.hear("output", text)
	return nil
}

func (p *player) Notice(ctx context.Context, text string) error {
	p.hear("notice", text)
	return nil
}

func (p *player) bucket(i int) []map[string]interface{} {
	if i < len(p.heard) {
		return p.heard[i]
	}
	return nil
}

// Run plays the Session with a DME made by the given function and
// checks every Turn's OutputSet.  The user goes away (io.EOF) after
// the last Turn.
func (s *Session) Run(ctx context.Context, newDME func(port ibis.IO) (*ibis.DME, error)) error {
	p := &player{
		verbose: s.Verbose,
	}
	offset := 1
	for i, t := range s.Turns {
		if i == 0 && t.Input == "" {
			offset = 0
			continue
		}
		p.inputs = append(p.inputs, t.Input)
	}

	d, err := newDME(p)
	if err != nil {
		return err
	}

	if 0 < s.Timeout {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	if err = d.Run(ctx); err != nil {
		return err
	}

	bs := match.NewBindings()
	for i := range s.Turns {
		t := &s.Turns[i]
		heard := p.bucket(i + offset)
		for j := range t.OutputSet {
			o := &t.OutputSet[j]
			if bs, err = o.check(heard, bs); err != nil {
				if f, is := err.(*Failure); is {
					f.Turn = i
					f.Input = t.Input
				}
				return err
			}
		}
	}

	return nil
}

// check tries to match the Output against what was heard.
func (o *Output) check(heard []map[string]interface{}, bs match.Bindings) (match.Bindings, error) {
	pattern := o.Pattern
	if s, is := pattern.(string); is {
		pattern = map[string]interface{}{
			"text": s,
		}
	}

	o.Bindingss = nil
	for _, u := range heard {
		bss, err := match.Match(pattern, u, bs)
		if err != nil {
			return nil, err
		}
		if 0 < len(bss) {
			o.Bindingss = bss
			break
		}
	}

	switch {
	case o.Inverted && o.Bindingss != nil:
	case !o.Inverted && o.Bindingss == nil:
	case o.Inverted:
		return bs, nil
	default:
		return o.Bindingss[0], nil
	}

	return nil, &Failure{
		Output: *o,
		Heard:  heard,
	}
}
