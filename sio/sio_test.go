package sio

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestStdio(t *testing.T) {
	var out bytes.Buffer
	s := &Stdio{
		In:         strings.NewReader("hello\n\n# comment\n  paris  \n"),
		Out:        &out,
		UserPrompt: "U> ",
		SysPrompt:  "S> ",
	}
	ctx := context.Background()

	for _, want := range []string{"hello", "paris"} {
		got, err := s.Input(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("%q != %q", got, want)
		}
	}
	if _, err := s.Input(ctx); err != io.EOF {
		t.Fatal(err)
	}

	out.Reset()
	if err := s.Output(ctx, "Hello.\nWhat?"); err != nil {
		t.Fatal(err)
	}
	if err := s.Notice(ctx, "Huh"); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "S> Hello.\nS> What?\nS> (Huh)\n" {
		t.Fatalf("%q", got)
	}
}

func TestStdioCanceled(t *testing.T) {
	s := NewStdio()
	s.In = strings.NewReader("hello\n")
	s.Out = io.Discard
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Input(ctx); err != context.Canceled {
		t.Fatal(err)
	}
}

func TestScript(t *testing.T) {
	s := NewScript("a", "b")
	ctx := context.Background()

	s.Output(ctx, "Hi")
	if x, _ := s.Input(ctx); x != "a" {
		t.Fatal(x)
	}
	s.Notice(ctx, "what")
	if x, _ := s.Input(ctx); x != "b" {
		t.Fatal(x)
	}
	if _, err := s.Input(ctx); err != io.EOF {
		t.Fatal(err)
	}
	if s.Reads != 3 {
		t.Fatal(s.Reads)
	}
	want := "S> Hi\nU> a\nS> (what)\nU> b"
	if got := s.Transcript(); got != want {
		t.Fatalf("%q", got)
	}
}

func TestParseUtterance(t *testing.T) {
	tests := []struct {
		in   string
		want Utterance
	}{
		{`paris`, Utterance{"input", "paris"}},
		{` to paris  `, Utterance{"input", "to paris"}},
		{`{"type":"input","text":"paris"}`, Utterance{"input", "paris"}},
		{`{"type":"output","text":"Hi"}`, Utterance{"output", "Hi"}},
		{`{"text":"paris"}`, Utterance{"input", `{"text":"paris"}`}},
		{`"paris"`, Utterance{"input", `"paris"`}},
	}
	for _, test := range tests {
		if got := ParseUtterance([]byte(test.in)); got != test.want {
			t.Fatalf("%s: %#v", test.in, got)
		}
	}
}
