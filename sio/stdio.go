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

package sio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Stdio is a terminal IO: it reads lines from In and writes
// utterances to Out.
type Stdio struct {
	// In is where user input comes from.
	In io.Reader

	// Out gets system output and prompts.
	Out io.Writer

	// UserPrompt is written before reading each line of input.
	UserPrompt string

	// SysPrompt prefixes each line of system output.
	SysPrompt string

	// Timestamps prepends a timestamp to each output line.
	Timestamps bool

	// EchoInput writes each input line to Out.  Useful when In
	// isn't a terminal.
	EchoInput bool

	lines *bufio.Scanner
}

// NewStdio creates a new Stdio on os.Stdin and os.Stdout with the
// usual "U> " and "S> " prompts.
func NewStdio() *Stdio {
	return &Stdio{
		In:         os.Stdin,
		Out:        os.Stdout,
		UserPrompt: "U> ",
		SysPrompt:  "S> ",
	}
}

func (s *Stdio) printf(format string, args ...interface{}) {
	if s.Timestamps {
		ts := fmt.Sprintf("%-31s", time.Now().UTC().Format(time.RFC3339Nano))
		format = ts + " " + format
	}
	fmt.Fprintf(s.Out, format, args...)
}

// Input implements ibis.IO.
//
// Blank lines and lines starting with '#' are skipped.  The end of In
// is io.EOF.
func (s *Stdio) Input(ctx context.Context) (string, error) {
	if s.lines == nil {
		s.lines = bufio.NewScanner(s.In)
	}
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(s.Out, s.UserPrompt)
		if !s.lines.Scan() {
			if err := s.lines.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		line := strings.TrimSpace(s.lines.Text())
		if s.EchoInput {
			fmt.Fprintln(s.Out, line)
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, nil
	}
}

// Output implements ibis.IO.
func (s *Stdio) Output(ctx context.Context, text string) error {
	for _, line := range strings.Split(text, "\n") {
		s.printf("%s%s\n", s.SysPrompt, line)
	}
	return nil
}

// Notice implements ibis.Noticer.
func (s *Stdio) Notice(ctx context.Context, text string) error {
	s.printf("%s(%s)\n", s.SysPrompt, text)
	return nil
}
