// Package travel is a small travel agency domain: fares by plane or
// train between a few cities, and visa requirements.
package travel

import (
	_ "embed"

	"github.com/Comcast/trindi/db"
	"github.com/Comcast/trindi/grammar"
	"github.com/Comcast/trindi/ibis"
)

var (
	//go:embed travel.yaml
	DomainSrc []byte

	//go:embed lexicon.yaml
	LexiconSrc []byte

	//go:embed facts.yaml
	FactsSrc []byte
)

// Travel bundles the travel domain with its lexicon and facts.
type Travel struct {
	Domain  *ibis.StdDomain
	Lexicon *grammar.Lexicon
	Facts   db.Tables
}

// New parses the embedded domain, lexicon, and facts.
func New() (*Travel, error) {
	d, err := ibis.ParseDomain(DomainSrc)
	if err != nil {
		return nil, err
	}
	l, err := grammar.ParseLexicon(LexiconSrc)
	if err != nil {
		return nil, err
	}
	facts, err := db.ParseTables(FactsSrc)
	if err != nil {
		return nil, err
	}
	return &Travel{
		Domain:  d,
		Lexicon: l,
		Facts:   facts,
	}, nil
}

// DME makes a DME for a dialogue on the given IO.
func (t *Travel) DME(port ibis.IO) *ibis.DME {
	return ibis.NewDME(t.Domain, t.Facts, t.Lexicon, port)
}
