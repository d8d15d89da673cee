package story

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeights_Valid(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Weights)
		wantField string
	}{
		{"negative temporal", func(w *Weights) { w.Temporal = -0.1 }, "temporal weight"},
		{"nan cross verification", func(w *Weights) { w.CrossVerification = math.NaN() }, "cross_verification weight"},
		{"infinite penalty", func(w *Weights) { w.SyndicationPenalty = math.Inf(1) }, "syndication_penalty"},
		{"negative bonus", func(w *Weights) { w.CommunityBonus = -1 }, "community_bonus"},
		{"zero cross verify cut-off", func(w *Weights) { w.CrossVerifySimilarity = 0 }, "cross_verify_similarity"},
		{"backlink cut-off of one", func(w *Weights) { w.BacklinkSimilarity = 1 }, "backlink_similarity"},
		{"zero domain cap", func(w *Weights) { w.DomainCap = 0 }, "domain_cap"},
		{"infinite citation cap", func(w *Weights) { w.CitationCap = math.Inf(1) }, "citation_cap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			tt.mutate(&w)

			err := w.Validate()
			require.Error(t, err)

			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.wantField, cerr.Field)
		})
	}
}

func TestWeights_ZeroCoefficientsAllowed(t *testing.T) {
	w := DefaultWeights()
	w.SyndicationPenalty = 0
	w.CommunityBonus = 0
	assert.NoError(t, w.Validate())
}

func TestValidateThreshold(t *testing.T) {
	for _, v := range []float64{0.01, 0.5, 0.6, 0.99} {
		assert.NoError(t, ValidateThreshold("threshold", v), v)
	}
	for _, v := range []float64{0, 1, -0.5, 1.5, math.NaN(), math.Inf(-1)} {
		err := ValidateThreshold("threshold", v)
		require.Error(t, err, v)
		assert.Contains(t, err.Error(), "must be within (0, 1)")
	}
}
