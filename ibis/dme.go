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
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Comcast/trindi/core"
	"github.com/Comcast/trindi/util/testutil"
)

// NotUnderstood is the notice given when the Grammar can't interpret
// the user's input.
var NotUnderstood = "Sorry, I didn't understand that."

// DME is a dialogue move engine: an InfoState, the MIVS, the rule
// catalog, and the collaborators that the turn loop consults.
//
// A DME isn't safe for concurrent use.
type DME struct {
	Domain   Domain
	Database Database
	Grammar  Grammar
	IO       IO

	// Control bounds Repeat.  Nil means core.DefaultControl.
	Control *core.Control

	// Verbose turns on logging.
	Verbose bool

	// Trace logs which rules fired after each Select and Update.
	Trace bool

	// PrintState writes the InfoState and MIVS to StateOut after
	// every update.
	PrintState bool

	// StateOut defaults to os.Stderr.
	StateOut io.Writer

	IS     *InfoState
	MIVS   *MIVS
	Traces *core.Traces

	rules *Rules

	// gone is set when IO.Input reports io.EOF.
	gone bool
}

// NewDME makes a DME with a fresh InfoState and MIVS.
func NewDME(d Domain, db Database, g Grammar, port IO) *DME {
	dme := &DME{
		Domain:   d,
		Database: db,
		Grammar:  g,
		IO:       port,
	}
	dme.rules = NewRules(dme)
	dme.Reset()
	return dme
}

// Rules returns the DME's rule catalog.
func (d *DME) Rules() *Rules {
	return d.rules
}

// Logf logs if d.Verbose.
func (d *DME) Logf(format string, args ...interface{}) {
	if !d.Verbose {
		return
	}
	log.Printf(format, args...)
}

// Reset makes a new InfoState and MIVS.
func (d *DME) Reset() {
	d.IS = NewInfoState()
	d.MIVS = NewMIVS()
	d.gone = false
	d.Traces = core.NewTraces()
}

// flushTraces logs the Traces if d.Trace and then resets them.
func (d *DME) flushTraces(phase string) {
	if d.Traces == nil {
		return
	}
	if d.Trace {
		for _, m := range d.Traces.Messages {
			log.Printf("DME %s %s", phase, testutil.JS(m))
		}
	}
	d.Traces.Reset()
}

func (d *DME) control() *core.Control {
	if d.Control == nil {
		return core.DefaultControl
	}
	return d.Control
}

// Run resets the DME and then takes turns until the program state is
// QUIT.
//
// An error from a collaborator (other than io.EOF from IO.Input) or
// from a rule effect ends the run.
func (d *DME) Run(ctx context.Context) error {
	d.Reset()
	d.IS.Private.Agenda.Push(Greet{})
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.Select(ctx); err != nil {
			return err
		}
		if !d.MIVS.NextMoves.Empty() {
			if err := d.Generate(ctx); err != nil {
				return err
			}
			if err := d.Output(ctx); err != nil {
				return err
			}
			if err := d.Update(ctx); err != nil {
				return err
			}
		}
		if d.MIVS.ProgramState() == QUIT {
			d.Logf("DME quitting")
			return nil
		}
		if err := d.Input(ctx); err != nil {
			return err
		}
		if err := d.Interpret(ctx); err != nil {
			return err
		}
		if err := d.Update(ctx); err != nil {
			return err
		}
	}
}

// Select decides what the system should say next.
func (d *DME) Select(ctx context.Context) error {
	defer d.flushTraces("select")
	if d.IS.Private.Agenda.Empty() {
		if err := core.Maybe(ctx, d.rules.SelectAction, d.Traces); err != nil {
			return err
		}
	}
	return core.Maybe(ctx, d.rules.SelectMove, d.Traces)
}

// Update integrates the latest moves into the InfoState.  Does nothing
// when there are no latest moves.
func (d *DME) Update(ctx context.Context) error {
	if d.MIVS.LatestMoves.Empty() {
		return nil
	}
	defer d.flushTraces("update")
	d.IS.Private.Agenda.Clear()

	if err := core.Do(ctx, d.rules.Grounding, d.Traces); err != nil {
		return err
	}
	for _, g := range []*core.Group{d.rules.Integrate, d.rules.DowndateQUD, d.rules.LoadPlan} {
		if err := core.Maybe(ctx, g, d.Traces); err != nil {
			return err
		}
	}
	n, err := core.Repeat(ctx, d.rules.ExecPlan, d.control(), d.Traces)
	if err != nil {
		return err
	}
	d.Logf("DME executed %d plan constructs", n)

	if d.PrintState {
		d.printState()
	}
	return nil
}

// Generate renders the next moves as text.
func (d *DME) Generate(ctx context.Context) error {
	text, err := d.Grammar.Generate(ctx, d.MIVS.NextMoves.Elems())
	if err != nil {
		return fmt.Errorf("generate %s: %w", d.MIVS.NextMoves, err)
	}
	d.MIVS.Output = text
	return nil
}

// Output delivers the generated text and makes the next moves the
// latest moves.
func (d *DME) Output(ctx context.Context) error {
	if err := d.IO.Output(ctx, d.MIVS.Output); err != nil {
		return err
	}
	d.MIVS.LatestSpeaker = SYS
	d.MIVS.LatestMoves = d.MIVS.NextMoves
	d.MIVS.NextMoves = core.NewSet[Move]()
	return nil
}

// Input gets the user's next utterance.  When the user has gone away,
// the utterance is a Quit.
func (d *DME) Input(ctx context.Context) error {
	d.MIVS.LatestSpeaker = USR
	d.MIVS.LatestMoves = core.NewSet[Move]()
	text, err := d.IO.Input(ctx)
	if errors.Is(err, io.EOF) {
		d.Logf("DME input EOF")
		d.MIVS.Input = ""
		d.gone = true
		return nil
	}
	if err != nil {
		return err
	}
	d.MIVS.Input = text
	return nil
}

// Interpret parses the input into the latest moves.
//
// Moves that the Domain rejects are dropped.  Input with no usable
// moves is reported as not understood.
func (d *DME) Interpret(ctx context.Context) error {
	if d.gone {
		d.MIVS.LatestMoves = core.NewSet[Move](Quit{})
		return nil
	}
	ms, err := d.Grammar.Interpret(ctx, d.MIVS.Input)
	if err != nil {
		return fmt.Errorf("interpret %q: %w", d.MIVS.Input, err)
	}
	acc := core.NewSet[Move]()
	for _, m := range ms {
		if err := d.check(m); err != nil {
			d.Logf("DME ignoring %s: %s", m, err)
			continue
		}
		acc.Add(m)
	}
	d.MIVS.LatestMoves = acc
	if acc.Empty() {
		d.Logf("DME didn't understand %q", d.MIVS.Input)
		if n, is := d.IO.(Noticer); is {
			return n.Notice(ctx, NotUnderstood)
		}
	}
	return nil
}

// check asks the Domain, if it's a Checker, whether x is well-typed.
func (d *DME) check(x interface{}) error {
	if c, is := d.Domain.(Checker); is {
		return c.Check(x)
	}
	return nil
}

func (d *DME) printState() {
	w := d.StateOut
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "+------------------------ - -  -\n%s\n%s\n+------------------------ - -  -\n",
		d.IS.Record().Pprint("| ", "  "),
		d.MIVS.Record().Pprint("| ", "  "))
}
