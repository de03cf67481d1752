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

// Package grammar provides ibis.Grammar implementations.
//
// Compact speaks moves in their compact string forms, which is handy
// for testing and for talking to other programs.  Lexicon maps
// phrases to moves and moves to text, falling back to compact forms.
package grammar

import (
	"context"
	"strings"

	"github.com/Comcast/trindi/ibis"
)

// Compact is an ibis.Grammar that reads and writes compact moves,
// one per line.
type Compact struct{}

// Interpret parses each non-blank line as a move.  If any line isn't
// a move, nothing is understood.
func (Compact) Interpret(ctx context.Context, text string) ([]ibis.Move, error) {
	var acc []ibis.Move
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		m, err := ibis.ParseMove(line)
		if err != nil {
			return nil, nil
		}
		acc = append(acc, m)
	}
	return acc, nil
}

// Generate renders the moves one per line.
func (Compact) Generate(ctx context.Context, ms []ibis.Move) (string, error) {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.String()
	}
	return strings.Join(parts, "\n"), nil
}
