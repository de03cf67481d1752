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
	"github.com/Comcast/trindi/core"
)

// Speaker is USR or SYS.
type Speaker string

const (
	USR Speaker = "USR"
	SYS Speaker = "SYS"
)

// ProgramState is RUN or QUIT.
type ProgramState string

const (
	RUN  ProgramState = "RUN"
	QUIT ProgramState = "QUIT"
)

// InfoState is the information state of a dialogue.
type InfoState struct {
	Private Private
	Shared  Shared
}

// Private is what only the system knows.
type Private struct {
	// Agenda holds the actions the system intends to perform
	// next.
	Agenda *core.Stack[Move]

	// Plan is the active plan.
	Plan *core.Stack[Move]

	// Bel holds private beliefs.
	Bel *core.Set[Prop]
}

// Shared is what both participants know.
type Shared struct {
	// Com is the common ground.
	Com *core.Set[Prop]

	// QUD holds the questions under discussion.  The most salient
	// question is on top.
	QUD *core.StackSet[Question]

	// LU is the latest utterance.
	LU LU
}

// LU is the latest utterance: who said it and what moves it made.
type LU struct {
	Speaker Speaker
	Moves   *core.Set[Move]
}

// NewInfoState makes an empty InfoState.
func NewInfoState() *InfoState {
	return &InfoState{
		Private: Private{
			Agenda: core.NewStack[Move](),
			Plan:   core.NewStack[Move](),
			Bel:    core.NewSet[Prop](),
		},
		Shared: Shared{
			Com: core.NewSet[Prop](),
			QUD: core.NewStackSet[Question](),
			LU: LU{
				Moves: core.NewSet[Move](),
			},
		},
	}
}

// Record renders the InfoState as a core.Record, mostly for printing.
func (is *InfoState) Record() *core.Record {
	var speaker interface{}
	if is.Shared.LU.Speaker != "" {
		speaker = is.Shared.LU.Speaker
	}
	return core.NewRecord(
		"private", core.NewRecord(
			"agenda", is.Private.Agenda,
			"plan", is.Private.Plan,
			"bel", is.Private.Bel),
		"shared", core.NewRecord(
			"com", is.Shared.Com,
			"qud", is.Shared.QUD,
			"lu", core.NewRecord(
				"speaker", speaker,
				"moves", is.Shared.LU.Moves)))
}

// MIVS holds the module interface variables: what the turn loop's
// phases pass to each other.
type MIVS struct {
	Input         string
	Output        string
	LatestSpeaker Speaker
	LatestMoves   *core.Set[Move]
	NextMoves     *core.Set[Move]
	programState  ProgramState
}

// NewMIVS makes MIVS in the RUN state.
func NewMIVS() *MIVS {
	return &MIVS{
		LatestMoves:  core.NewSet[Move](),
		NextMoves:    core.NewSet[Move](),
		programState: RUN,
	}
}

// ProgramState returns RUN or QUIT.
func (v *MIVS) ProgramState() ProgramState {
	return v.programState
}

// Quit moves the program to QUIT.  There is no way back.
func (v *MIVS) Quit() {
	v.programState = QUIT
}

// Record renders the MIVS as a core.Record.
func (v *MIVS) Record() *core.Record {
	var speaker interface{}
	if v.LatestSpeaker != "" {
		speaker = v.LatestSpeaker
	}
	return core.NewRecord(
		"input", v.Input,
		"output", v.Output,
		"latest_speaker", speaker,
		"latest_moves", v.LatestMoves,
		"next_moves", v.NextMoves,
		"program_state", v.programState)
}
