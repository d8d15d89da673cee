// Package similarity scores how close two titles are on surface text alone.
package similarity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Strategy computes a symmetric, case-insensitive closeness in [0,1].
// Implementations must return 1 for identical inputs.
type Strategy interface {
	Name() string
	Similarity(a, b string) float64
}

const (
	// RatioName is the canonical character-level strategy.
	RatioName = "ratio"
	// JaccardName is the whitespace-token strategy.
	JaccardName = "jaccard"
)

// Ratio is the Ratcliff/Obershelp matching-block ratio over runes.
type Ratio struct{}

func (Ratio) Name() string { return RatioName }

// Similarity returns 2*M/T where M is the number of runes in matching blocks
// and T the combined rune count of both titles.
func (Ratio) Similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}
	// The longest-block search breaks ties by position, so argument order
	// can change the result. Fix the order to keep the score symmetric.
	if a > b {
		a, b = b, a
	}
	m := difflib.NewMatcherWithJunk(runes(a), runes(b), false, nil)
	return m.Ratio()
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Jaccard is the Jaccard index of lowercase whitespace-separated tokens.
// Thresholds tuned for Ratio do not carry over to it.
type Jaccard struct{}

func (Jaccard) Name() string { return JaccardName }

func (Jaccard) Similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}

	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}

	unionSize := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(unionSize)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Fields(s) {
		set[t] = true
	}
	return set
}

var strategies = map[string]Strategy{
	RatioName:   Ratio{},
	JaccardName: Jaccard{},
}

// Default returns the canonical strategy.
func Default() Strategy { return Ratio{} }

// ByName resolves a configured strategy name. An empty name selects Default.
func ByName(name string) (Strategy, error) {
	if name == "" {
		return Default(), nil
	}
	s, ok := strategies[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown similarity strategy %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names lists the registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(strategies))
	for n := range strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
