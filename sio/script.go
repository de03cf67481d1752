package sio

import (
	"context"
	"io"
	"strings"
	"sync"
)

// Script is an IO that plays canned user input and records
// everything the system says.
type Script struct {
	sync.Mutex

	Inputs  []string
	Outputs []string
	Notices []string

	// Reads counts calls to Input, including the one that got
	// io.EOF.
	Reads int

	transcript []string
}

// NewScript makes a Script that will say the given inputs in order.
func NewScript(inputs ...string) *Script {
	return &Script{
		Inputs: inputs,
	}
}

// Input implements ibis.IO.
func (s *Script) Input(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.Lock()
	defer s.Unlock()
	s.Reads++
	if len(s.Inputs) == 0 {
		return "", io.EOF
	}
	text := s.Inputs[0]
	s.Inputs = s.Inputs[1:]
	s.transcript = append(s.transcript, "U> "+text)
	return text, nil
}

// Output implements ibis.IO.
func (s *Script) Output(ctx context.Context, text string) error {
	s.Lock()
	s.Outputs = append(s.Outputs, text)
	for _, line := range strings.Split(text, "\n") {
		s.transcript = append(s.transcript, "S> "+line)
	}
	s.Unlock()
	return nil
}

// Notice implements ibis.Noticer.
func (s *Script) Notice(ctx context.Context, text string) error {
	s.Lock()
	s.Notices = append(s.Notices, text)
	s.transcript = append(s.transcript, "S> ("+text+")")
	s.Unlock()
	return nil
}

// Transcript renders the dialogue so far with Stdio's default
// prompts.
func (s *Script) Transcript() string {
	s.Lock()
	defer s.Unlock()
	return strings.Join(s.transcript, "\n")
}
