package ibis

import (
	"strings"
)

// Move is a dialogue move or a plan construct.
//
// Overt moves (Greet, Quit, Ask, Answer) are things participants say.
// Tacit moves (Respond, Findout, Raise, ConsultDB) and If only appear
// on the agenda and in plans.
type Move interface {
	Key() string
	String() string
	move()
}

type Greet struct{}

type Quit struct{}

// Ask is asking a question.
type Ask struct {
	Q Question
}

// Answer is giving an answer.
type Answer struct {
	A Ans
}

// Respond is the intention to answer a question.
type Respond struct {
	Q Question
}

// Findout is the intention to get an answer to a question.
type Findout struct {
	Q Question
}

// Raise is like Findout, but the question is asked at most once.
type Raise struct {
	Q Question
}

// ConsultDB is the intention to look up the answer to a question.
type ConsultDB struct {
	Q Question
}

// If is a conditional plan construct.
//
// When the plan reaches an If, the construct is replaced by Then (if
// Cond holds) or Else.
type If struct {
	Cond Question
	Then []Move
	Else []Move
}

func (Greet) move()     {}
func (Quit) move()      {}
func (Ask) move()       {}
func (Answer) move()    {}
func (Respond) move()   {}
func (Findout) move()   {}
func (Raise) move()     {}
func (ConsultDB) move() {}
func (If) move()        {}

func (Greet) String() string       { return "Greet()" }
func (Quit) String() string        { return "Quit()" }
func (m Ask) String() string       { return "Ask('" + m.Q.String() + "')" }
func (m Answer) String() string    { return "Answer('" + m.A.String() + "')" }
func (m Respond) String() string   { return "Respond('" + m.Q.String() + "')" }
func (m Findout) String() string   { return "Findout('" + m.Q.String() + "')" }
func (m Raise) String() string     { return "Raise('" + m.Q.String() + "')" }
func (m ConsultDB) String() string { return "ConsultDB('" + m.Q.String() + "')" }

func (m If) String() string {
	return "If('" + m.Cond.String() + "', " + moveList(m.Then) + ", " + moveList(m.Else) + ")"
}

func moveList(ms []Move) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (m Greet) Key() string     { return m.String() }
func (m Quit) Key() string      { return m.String() }
func (m Ask) Key() string       { return m.String() }
func (m Answer) Key() string    { return m.String() }
func (m Respond) Key() string   { return m.String() }
func (m Findout) Key() string   { return m.String() }
func (m Raise) Key() string     { return m.String() }
func (m ConsultDB) Key() string { return m.String() }
func (m If) Key() string        { return m.String() }

// IsOvert reports whether the move is something a participant can
// say.
func IsOvert(m Move) bool {
	switch m.(type) {
	case Greet, Quit, Ask, Answer:
		return true
	default:
		return false
	}
}

// QuestionOf returns the question that a move carries, if any.
func QuestionOf(m Move) (Question, bool) {
	switch vv := m.(type) {
	case Ask:
		return vv.Q, true
	case Respond:
		return vv.Q, true
	case Findout:
		return vv.Q, true
	case Raise:
		return vv.Q, true
	case ConsultDB:
		return vv.Q, true
	default:
		return nil, false
	}
}

// copyMoves makes a new slice, descending into If constructs, so that
// the result shares no mutable state with the given moves.
func copyMoves(ms []Move) []Move {
	if ms == nil {
		return nil
	}
	acc := make([]Move, len(ms))
	for i, m := range ms {
		if c, is := m.(If); is {
			m = If{
				Cond: c.Cond,
				Then: copyMoves(c.Then),
				Else: copyMoves(c.Else),
			}
		}
		acc[i] = m
	}
	return acc
}
