package travel

import (
	"context"
	"strings"
	"testing"

	"github.com/Comcast/trindi/sio"
)

func talk(t *testing.T, inputs ...string) *sio.Script {
	tr, err := New()
	if err != nil {
		t.Fatal(err)
	}
	s := sio.NewScript(inputs...)
	if err = tr.DME(s).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	return s
}

func check(t *testing.T, s *sio.Script, want ...string) {
	t.Helper()
	if got, expected := strings.Join(s.Outputs, "|"), strings.Join(want, "|"); got != expected {
		t.Fatalf("\n%s\n!=\n%s\n\n%s", got, expected, s.Transcript())
	}
}

func TestTrainFare(t *testing.T) {
	s := talk(t,
		"How much is a ticket?",
		"By train",
		"paris",
		"from london",
		"bye")
	check(t, s,
		"Hello, this is the travel agency.",
		"How do you want to travel?",
		"Where do you want to go?",
		"Where are you leaving from?",
		"The price is 150 crowns.",
		"Goodbye.")
}

func TestFlightFare(t *testing.T) {
	s := talk(t,
		"hello",
		"what does it cost",
		"I want to fly",
		"to berlin",
		"london",
		"business")
	check(t, s,
		"Hello, this is the travel agency.",
		"How do you want to travel?",
		"Where do you want to go?",
		"Where are you leaving from?",
		"Economy or business class?",
		"The price is 740 crowns.",
		"Goodbye.")
}

func TestVisa(t *testing.T) {
	s := talk(t, "Do I need a visa?", "london")
	check(t, s,
		"Hello, this is the travel agency.",
		"Where do you want to go?",
		"Yes, you need a visa.",
		"Goodbye.")
}

func TestNotUnderstood(t *testing.T) {
	s := talk(t, "price", "by bicycle", "rail", "to paris", "from berlin")
	check(t, s,
		"Hello, this is the travel agency.",
		"How do you want to travel?",
		"How do you want to travel?",
		"Where do you want to go?",
		"Where are you leaving from?",
		"The price is 210 crowns.",
		"Goodbye.")
	if len(s.Notices) != 1 {
		t.Fatal(s.Notices)
	}
}
