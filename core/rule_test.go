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

package core

import (
	"context"
	"errors"
	"testing"
)

// counter makes a rule that applies while *n is positive and
// decrements it.
func counter(name string, n *int) *Rule {
	return NewRule(name,
		func(yield func(Bindings) bool) {
			if 0 < *n {
				Yield(yield, "n", *n)
			}
		},
		func(ctx context.Context, bs Bindings) error {
			*n--
			return nil
		})
}

func TestRuleFirstCandidateOnly(t *testing.T) {
	var (
		pulled int
		got    interface{}
	)
	r := NewRule("first",
		func(yield func(Bindings) bool) {
			for i := 0; i < 10; i++ {
				pulled++
				if !Yield(yield, "i", i) {
					return
				}
			}
		},
		func(ctx context.Context, bs Bindings) error {
			got = bs["i"]
			return nil
		})

	applied, err := r.Apply(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !applied {
		t.Fatal("didn't apply")
	}
	if pulled != 1 {
		t.Fatalf("pulled %d candidates", pulled)
	}
	if got != 0 {
		t.Fatal(got)
	}
}

func TestRuleDefaults(t *testing.T) {
	r := &Rule{Label: "nothing"}
	applied, err := r.Apply(context.Background(), nil)
	if err != nil || !applied {
		t.Fatal(applied, err)
	}
}

func TestGroupFirstMatch(t *testing.T) {
	var fired []string
	mk := func(name string, ok bool) *Rule {
		return NewRule(name,
			func(yield func(Bindings) bool) {
				if ok {
					yield(nil)
				}
			},
			func(ctx context.Context, bs Bindings) error {
				fired = append(fired, name)
				return nil
			})
	}

	g := NewGroup("g", mk("a", false), mk("b", true), mk("c", true))
	ts := NewTraces()
	applied, err := g.Apply(context.Background(), ts)
	if err != nil || !applied {
		t.Fatal(applied, err)
	}
	if len(fired) != 1 || fired[0] != "b" {
		t.Fatal(fired)
	}
	if len(ts.Messages) == 0 {
		t.Fatal("no traces")
	}

	empty := NewGroup("", mk("x", false), mk("y", false))
	if empty.Name() != "x | y" {
		t.Fatal(empty.Name())
	}
	if applied, _ := empty.Apply(context.Background(), nil); applied {
		t.Fatal("empty group applied")
	}
}

func TestOperators(t *testing.T) {
	ctx := context.Background()

	n := 0
	r := counter("count", &n)

	err := Do(ctx, r, nil)
	var rf *RuleFailure
	if !errors.As(err, &rf) || rf.Rule != "count" {
		t.Fatal(err)
	}

	if err := Maybe(ctx, r, nil); err != nil {
		t.Fatal(err)
	}

	n = 5
	applied, err := Repeat(ctx, r, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if applied != 5 || n != 0 {
		t.Fatal(applied, n)
	}
}

func TestRepeatLimited(t *testing.T) {
	ctx := context.Background()

	forever := NewRule("forever", Always, nil)
	n, err := Repeat(ctx, forever, &Control{Limit: 7}, nil)
	if err != ErrLimited {
		t.Fatal(err)
	}
	if n != 8 {
		t.Fatal(n)
	}

	// Reaching the fixpoint after exactly Limit applications is fine.
	left := 2
	if n, err = Repeat(ctx, counter("twice", &left), &Control{Limit: 2}, nil); err != nil {
		t.Fatal(err)
	}
	if n != 2 || left != 0 {
		t.Fatal(n, left)
	}

	// A Control without a Limit falls back to DefaultControl.
	if n, err = Repeat(ctx, counter("never", &left), &Control{}, nil); err != nil || n != 0 {
		t.Fatal(n, err)
	}
	if n, err = Repeat(ctx, forever, &Control{}, nil); err != ErrLimited || n != DefaultControl.Limit+1 {
		t.Fatal(n, err)
	}
}

func TestEffectError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRule("bad", Always, func(ctx context.Context, bs Bindings) error {
		return boom
	})
	err := Maybe(context.Background(), NewGroup("g", r), nil)
	if !errors.Is(err, boom) {
		t.Fatal(err)
	}
}
