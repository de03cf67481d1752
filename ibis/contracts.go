package ibis

import (
	"context"

	"github.com/Comcast/trindi/core"
)

// Database looks up answers.
type Database interface {
	// Consult finds the proposition that answers the question
	// given the context (typically the common ground).  A failed
	// lookup is an error, and the DME will stop.
	Consult(ctx context.Context, q Question, com *core.Set[Prop]) (Prop, error)
}

// Grammar converts text to moves and back again.
type Grammar interface {
	// Interpret parses text into moves.  No moves (and no error)
	// means the text wasn't understood.
	Interpret(ctx context.Context, text string) ([]Move, error)

	// Generate renders moves as text.
	Generate(ctx context.Context, moves []Move) (string, error)
}

// IO delivers text to the user and gets text from the user.
type IO interface {
	// Input blocks until the user says something.  io.EOF means
	// the user has gone away.
	Input(ctx context.Context) (string, error)

	Output(ctx context.Context, text string) error
}

// Noticer is an optional IO capability for out-of-band notices such
// as "not understood".
type Noticer interface {
	Notice(ctx context.Context, text string) error
}
