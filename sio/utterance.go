package sio

import (
	"encoding/json"
	"strings"
)

// Utterance is what the network couplings exchange.
//
// Type is "input" for user text, and "output" or "notice" for system
// text.
type Utterance struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ParseUtterance accepts either a JSON Utterance or plain text.
func ParseUtterance(bs []byte) Utterance {
	var u Utterance
	if err := json.Unmarshal(bs, &u); err == nil && u.Type != "" {
		return u
	}
	return Utterance{
		Type: "input",
		Text: strings.TrimSpace(string(bs)),
	}
}

func (u Utterance) bytes() []byte {
	js, err := json.Marshal(&u)
	if err != nil {
		// Two strings always marshal.
		panic(err)
	}
	return js
}
