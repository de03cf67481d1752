package core

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"testing"
)

type tok string

func (t tok) Key() string { return string(t) }

func TestStackLIFO(t *testing.T) {
	s := NewStack[tok]()

	if _, ok := s.Top(); ok {
		t.Fatal("top of empty stack")
	}
	if _, ok := s.Pop(); ok {
		t.Fatal("pop of empty stack")
	}

	s.Push("a")
	s.Push("b")
	s.Push("c")

	if x, _ := s.Top(); x != "c" {
		t.Fatalf("top is %s", x)
	}
	for _, want := range []tok{"c", "b", "a"} {
		x, ok := s.Pop()
		if !ok || x != want {
			t.Fatalf("popped %s (%v), wanted %s", x, ok, want)
		}
	}
	if !s.Empty() {
		t.Fatal(s)
	}
}

func TestStackCopyIsIndependent(t *testing.T) {
	s := NewStack[tok]("a", "b")
	c := s.Copy()
	c.Pop()
	c.Push("z")
	if s.String() != "<b, a>" {
		t.Fatal(s)
	}
	if c.String() != "<z, a>" {
		t.Fatal(c)
	}
}

func TestStackSetMovesToTop(t *testing.T) {
	s := NewStackSet[tok]("q1", "q2", "q3")
	s.Push("q1")
	if got := s.String(); got != "<q1, q3, q2>" {
		t.Fatal(got)
	}
	if s.Len() != 3 {
		t.Fatal(s.Len())
	}
}

func TestStackSetNeverDuplicates(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 100; trial++ {
		s := NewStackSet[tok]()
		var last tok
		for i := 0; i < 50; i++ {
			last = tok("q" + strconv.Itoa(r.Intn(8)))
			s.Push(last)
		}
		seen := make(map[tok]bool)
		for _, x := range s.Elems() {
			if seen[x] {
				t.Fatalf("duplicate %s in %s", x, s)
			}
			seen[x] = true
		}
		if top, _ := s.Top(); top != last {
			t.Fatalf("top %s, last pushed %s", top, last)
		}
	}
}

func TestSet(t *testing.T) {
	s := NewSet[tok]("a", "b", "a")
	if s.Len() != 2 {
		t.Fatal(s)
	}
	if s.Add("b") {
		t.Fatal("added a duplicate")
	}
	if !s.Has("a") || s.Has("c") {
		t.Fatal(s)
	}
	if !s.Delete("a") || s.Delete("a") {
		t.Fatal(s)
	}
	s.Update("c", "d")
	if got := s.String(); got != "{b, c, d}" {
		t.Fatal(got)
	}

	u := s.Union(NewSet[tok]("d", "e"))
	if u.Len() != 4 || s.Len() != 3 {
		t.Fatal(u, s)
	}

	var first tok
	s.Do(func(x tok) bool {
		first = x
		return false
	})
	if first != "b" {
		t.Fatal(first)
	}
}

func TestRecordPprint(t *testing.T) {
	r := NewRecord(
		"private", NewRecord("agenda", "<>", "plan", "<>"),
		"speaker", nil)
	want := "private: \n  agenda: <>\n  plan: <>\nspeaker: None"
	if got := r.Pprint("", "  "); got != want {
		t.Fatalf("%q", got)
	}
	if x, ok := r.Path("private", "plan"); !ok || x != "<>" {
		t.Fatal(x)
	}
	if _, ok := r.Path("private", "nope"); ok {
		t.Fatal("found a missing field")
	}
}

func TestRecordOddArgs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("should have panicked")
		}
	}()
	NewRecord("speaker", "SYS", "moves")
}

func TestMarshalJSON(t *testing.T) {
	s := NewStackSet[tok]("a", "b", "a")
	js, err := json.Marshal(map[string]interface{}{
		"qud": s,
		"com": NewSet[tok]("x", "y"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(js) != `{"com":["x","y"],"qud":["a","b"]}` {
		t.Fatal(string(js))
	}
}
