package match

import (
	"math/rand"
	"testing"

	. "github.com/Comcast/trindi/util/testutil"
)

// fuzz generates random patterns and facts that look like fact table
// rows: maps of small strings and numbers.
type fuzz struct {
	width    int
	alphabet string
	vars     string
	maxNum   int

	// varP is the probability that a value is a variable.
	varP float64
}

func (f *fuzz) atom(r *rand.Rand) interface{} {
	if r.Float64() < f.varP {
		return "?" + string(f.vars[r.Intn(len(f.vars))])
	}
	switch r.Intn(4) {
	case 0:
		return float64(r.Intn(f.maxNum))
	case 1:
		return nil
	default:
		return string(f.alphabet[r.Intn(len(f.alphabet))])
	}
}

func (f *fuzz) row(r *rand.Rand, depth int) map[string]interface{} {
	n := r.Intn(f.width) + 1
	m := make(map[string]interface{}, n)
	for i := 0; i < n; i++ {
		k := string(f.alphabet[r.Intn(len(f.alphabet))])
		if 0 < depth && r.Intn(4) == 0 {
			m[k] = f.row(r, depth-1)
			continue
		}
		m[k] = f.atom(r)
	}
	return m
}

// TestMatchFuzz checks that the bindings from every successful match
// are stable: matching again with them gives them back unchanged.
func TestMatchFuzz(t *testing.T) {
	var (
		r       = rand.New(rand.NewSource(42))
		pats    = &fuzz{width: 3, alphabet: "abcd", vars: "xyz", maxNum: 3, varP: 0.4}
		facts   = &fuzz{width: 4, alphabet: "abcd", maxNum: 3}
		matched = 0
	)

	for i := 0; i < 500; i++ {
		pat := pats.row(r, 2)
		for j := 0; j < 200; j++ {
			fact := facts.row(r, 2)
			bss, err := Matches(pat, fact)
			if err != nil {
				t.Fatal(err)
			}
			if len(bss) == 0 {
				continue
			}
			matched++
			again, err := Match(pat, fact, bss[0])
			if err != nil {
				t.Fatal(err)
			}
			if len(again) != 1 || JS(again[0]) != JS(bss[0]) {
				t.Fatalf("%s vs %s: %s then %s", JS(pat), JS(fact), JS(bss), JS(again))
			}
		}
	}
	if matched == 0 {
		t.Fatal("nothing matched")
	}
}
