package story

import (
	"fmt"
	"math"
)

// DefaultThreshold is the title similarity a candidate must exceed to join a
// seed's cluster.
const DefaultThreshold = 0.6

// Weights are the TraceScore coefficients and cut-offs.
type Weights struct {
	Temporal           float64 `yaml:"temporal" json:"temporal"`
	CrossVerification  float64 `yaml:"cross_verification" json:"cross_verification"`
	Backlink           float64 `yaml:"backlink" json:"backlink"`
	SyndicationPenalty float64 `yaml:"syndication_penalty" json:"syndication_penalty"`
	CommunityBonus     float64 `yaml:"community_bonus" json:"community_bonus"`

	// CrossVerifySimilarity is the title similarity above which another
	// member's domain counts as corroboration.
	CrossVerifySimilarity float64 `yaml:"cross_verify_similarity" json:"cross_verify_similarity"`
	// BacklinkSimilarity is the title similarity above which another member
	// counts as a citation.
	BacklinkSimilarity float64 `yaml:"backlink_similarity" json:"backlink_similarity"`
	// DomainCap is the number of corroborating domains that saturates the
	// cross-verification factor.
	DomainCap float64 `yaml:"domain_cap" json:"domain_cap"`
	// CitationCap is the number of citations that saturates the backlink factor.
	CitationCap float64 `yaml:"citation_cap" json:"citation_cap"`
}

// DefaultWeights returns the stock TraceScore parameters.
func DefaultWeights() Weights {
	return Weights{
		Temporal:              0.5,
		CrossVerification:     0.2,
		Backlink:              0.2,
		SyndicationPenalty:    0.3,
		CommunityBonus:        0.1,
		CrossVerifySimilarity: 0.5,
		BacklinkSimilarity:    0.7,
		DomainCap:             5,
		CitationCap:           10,
	}
}

// ConfigError reports an analysis parameter that cannot be used.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Validate rejects non-finite or negative coefficients, similarity cut-offs
// outside (0,1) and caps that are not positive.
func (w Weights) Validate() error {
	coefficients := []struct {
		field string
		value float64
	}{
		{"temporal weight", w.Temporal},
		{"cross_verification weight", w.CrossVerification},
		{"backlink weight", w.Backlink},
		{"syndication_penalty", w.SyndicationPenalty},
		{"community_bonus", w.CommunityBonus},
	}
	for _, c := range coefficients {
		if !finite(c.value) {
			return &ConfigError{Field: c.field, Value: c.value, Reason: "must be finite"}
		}
		if c.value < 0 {
			return &ConfigError{Field: c.field, Value: c.value, Reason: "must not be negative"}
		}
	}

	if err := ValidateThreshold("cross_verify_similarity", w.CrossVerifySimilarity); err != nil {
		return err
	}
	if err := ValidateThreshold("backlink_similarity", w.BacklinkSimilarity); err != nil {
		return err
	}

	for _, c := range []struct {
		field string
		value float64
	}{
		{"domain_cap", w.DomainCap},
		{"citation_cap", w.CitationCap},
	} {
		if !finite(c.value) || c.value <= 0 {
			return &ConfigError{Field: c.field, Value: c.value, Reason: "must be a positive number"}
		}
	}
	return nil
}

// ValidateThreshold checks that a similarity threshold lies strictly inside (0,1).
func ValidateThreshold(field string, v float64) error {
	if !finite(v) || v <= 0 || v >= 1 {
		return &ConfigError{Field: field, Value: v, Reason: "must be within (0, 1)"}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
