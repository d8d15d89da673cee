// Package story groups reports of the same story and ranks the groups by
// TraceScore, a provenance score that favours early, corroborated and
// non-syndicated reporting.
package story

import (
	"fmt"
	"sort"
	"time"

	"github.com/elonfeng/tracefirst/pkg/similarity"
	"github.com/elonfeng/tracefirst/pkg/source"
)

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	// Threshold is the similarity a candidate must exceed to join a seed.
	// Zero means DefaultThreshold; any other value outside (0, 1), NaN
	// included, is a ConfigError.
	Threshold float64
	// Strategy compares titles. Nil means similarity.Default().
	Strategy similarity.Strategy
	// Weights are the TraceScore parameters. The zero Weights means
	// DefaultWeights(); a partially set value is validated as given.
	Weights Weights
}

// Engine clusters article batches and scores the clusters. It holds no
// mutable state and may be shared between goroutines.
type Engine struct {
	threshold float64
	strategy  similarity.Strategy
	scorer    *Scorer
}

// New validates opts and creates an engine.
func New(opts Options) (*Engine, error) {
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	if err := ValidateThreshold("threshold", opts.Threshold); err != nil {
		return nil, err
	}
	if opts.Strategy == nil {
		opts.Strategy = similarity.Default()
	}
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights()
	}

	scorer, err := NewScorer(opts.Weights, opts.Strategy)
	if err != nil {
		return nil, err
	}

	return &Engine{
		threshold: opts.Threshold,
		strategy:  opts.Strategy,
		scorer:    scorer,
	}, nil
}

// Threshold returns the clustering threshold.
func (e *Engine) Threshold() float64 { return e.threshold }

// Strategy returns the similarity strategy.
func (e *Engine) Strategy() similarity.Strategy { return e.strategy }

// Scorer returns the engine's TraceScore calculator.
func (e *Engine) Scorer() *Scorer { return e.scorer }

// Analyze validates articles, partitions them and labels and scores every
// cluster. Relative timestamps are resolved against now. Clusters come back in
// creation order.
func (e *Engine) Analyze(articles []source.Article, now time.Time) ([]Cluster, error) {
	if err := source.Validate(articles); err != nil {
		return nil, fmt.Errorf("validate batch: %w", err)
	}

	groups := Partition(articles, e.strategy, e.threshold)
	clusters := make([]Cluster, 0, len(groups))
	for i, members := range groups {
		clusters = append(clusters, Cluster{
			ID:      ClusterID(i),
			Label:   Label(members),
			Size:    len(members),
			Members: members,
			Score:   e.scorer.Score(members, now),
		})
	}
	return clusters, nil
}

// SortByScore returns a copy of clusters ordered by descending score. Equal
// scores keep creation order.
func SortByScore(clusters []Cluster) []Cluster {
	sorted := make([]Cluster, len(clusters))
	copy(sorted, clusters)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}
