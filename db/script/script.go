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

// Package script provides an ibis.Database whose consultation is
// written in ECMAScript and run by Goja.
//
// The source must define a function
//
//	function consult(question, context) { ... }
//
// where question is an object like
//
//	{kind: "wh", string: "?x.price(x)", pred: "price"}
//	{kind: "yn", string: "?return()", prop: {pred: "return", ind: "", yes: true}}
//	{kind: "alt", string: "{?a() | ?b()}", props: [...]}
//
// and context is an array of propositions (objects with pred, ind,
// and yes properties) from the common ground.  The function returns
// either a proposition in compact form ("price(1234)") or a
// proposition object.
//
// The runtime also provides log(x), which logs x as JSON, and
// find(context, pred), which returns the individual of the first
// affirmative proposition in context with the given predicate (or
// undefined).  cronNext(expr) returns the next time (RFC3339, UTC)
// that the cron expression matches, which is handy for questions
// about schedules.
package script

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"time"

	"github.com/Comcast/trindi/core"
	"github.com/Comcast/trindi/ibis"

	"github.com/dop251/goja"
	"github.com/gorhill/cronexpr"
)

var (
	// InterruptedMessage is the string value of Interrupted.
	InterruptedMessage = "RuntimeError: timeout"

	// Interrupted is returned by Consult if the execution is
	// interrupted.
	Interrupted = errors.New(InterruptedMessage)
)

// Database implements ibis.Database with a Goja program.
type Database struct {
	// Verbose turns on logging.
	Verbose bool

	program *goja.Program
}

// NewDatabase compiles the given source.
func NewDatabase(name, src string) (*Database, error) {
	p, err := goja.Compile(name, src, true)
	if err != nil {
		return nil, err
	}
	return &Database{
		program: p,
	}, nil
}

// LoadDatabase compiles the source in the given file.
func LoadDatabase(filename string) (*Database, error) {
	src, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewDatabase(filename, string(src))
}

func (d *Database) logf(format string, args ...interface{}) {
	if d.Verbose {
		log.Printf("script.Database "+format, args...)
	}
}

func propObj(p ibis.Prop) map[string]interface{} {
	return map[string]interface{}{
		"pred": p.Pred,
		"ind":  string(p.Ind),
		"yes":  p.Yes,
	}
}

func questionObj(q ibis.Question) (map[string]interface{}, error) {
	m := map[string]interface{}{
		"string": q.String(),
	}
	switch vv := q.(type) {
	case ibis.WhQ:
		m["kind"] = "wh"
		m["pred"] = string(vv.Pred)
	case ibis.YNQ:
		m["kind"] = "yn"
		m["prop"] = propObj(vv.Prop)
	case ibis.AltQ:
		m["kind"] = "alt"
		props := make([]interface{}, len(vv.YNQs))
		for i, y := range vv.YNQs {
			props[i] = propObj(y.Prop)
		}
		m["props"] = props
	default:
		return nil, fmt.Errorf("bad question %s (%T)", q, q)
	}
	return m, nil
}

func asProp(x interface{}) (ibis.Prop, error) {
	switch vv := x.(type) {
	case string:
		return ibis.ParseProp(vv)
	case map[string]interface{}:
		pred, _ := vv["pred"].(string)
		ind, _ := vv["ind"].(string)
		yes := true
		if b, is := vv["yes"].(bool); is {
			yes = b
		}
		if err := ibis.CheckAtom(pred); err != nil {
			return ibis.Prop{}, err
		}
		return ibis.Prop{Pred: pred, Ind: ibis.Ind(ind), Yes: yes}, nil
	case nil:
		return ibis.Prop{}, errors.New("no answer")
	default:
		return ibis.Prop{}, fmt.Errorf("%#v (%T) isn't a proposition", x, x)
	}
}

// Consult implements ibis.Database.
func (d *Database) Consult(ctx context.Context, q ibis.Question, com *core.Set[ibis.Prop]) (ibis.Prop, error) {
	qo, err := questionObj(q)
	if err != nil {
		return ibis.Prop{}, err
	}
	cxt := make([]interface{}, 0, com.Len())
	com.Do(func(p ibis.Prop) bool {
		cxt = append(cxt, propObj(p))
		return true
	})

	o := goja.New()

	o.Set("log", func(x interface{}) interface{} {
		if v, is := x.(goja.Value); is {
			x = v.Export()
		}
		js, err := json.Marshal(&x)
		if err != nil {
			log.Println("script.log (can't marshal: " + err.Error() + ")")
		} else {
			log.Println(string(js))
		}
		return x
	})

	o.Set("find", func(cxt []interface{}, pred string) interface{} {
		for _, x := range cxt {
			m, is := x.(map[string]interface{})
			if !is {
				continue
			}
			if m["pred"] == pred && m["yes"] == true {
				return m["ind"]
			}
		}
		return goja.Undefined()
	})

	o.Set("cronNext", func(expr string) interface{} {
		c, err := cronexpr.Parse(expr)
		if err != nil {
			panic(o.NewGoError(err))
		}
		return c.Next(time.Now()).UTC().Format(time.RFC3339Nano)
	})

	// Make sure that the following goroutine is terminated as soon
	// as possible.
	ictx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ictx.Done()
		o.Interrupt(InterruptedMessage)
	}()

	if _, err = o.RunProgram(d.program); err != nil {
		return ibis.Prop{}, d.fail(err)
	}
	consult, ok := goja.AssertFunction(o.Get("consult"))
	if !ok {
		return ibis.Prop{}, errors.New("script doesn't define a consult function")
	}
	v, err := consult(goja.Undefined(), o.ToValue(qo), o.ToValue(cxt))
	if err != nil {
		return ibis.Prop{}, d.fail(err)
	}

	x := v.Export()
	d.logf("Consult %s returned %#v", q, x)
	p, err := asProp(x)
	if err != nil {
		return ibis.Prop{}, fmt.Errorf("consult %s: %w", q, err)
	}
	return p, nil
}

func (d *Database) fail(err error) error {
	if _, is := err.(*goja.InterruptedError); is {
		return Interrupted
	}
	return err
}
