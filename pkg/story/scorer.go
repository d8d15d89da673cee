package story

import (
	"sort"
	"strings"
	"time"

	"github.com/elonfeng/tracefirst/pkg/similarity"
	"github.com/elonfeng/tracefirst/pkg/source"
	"github.com/elonfeng/tracefirst/pkg/timeparse"
)

// ArticleScore is one member's contribution to a cluster's TraceScore.
type ArticleScore struct {
	ArticleID          string    `json:"article_id"`
	Rank               int       `json:"rank"`
	PublishedAt        time.Time `json:"published_at"`
	Temporal           float64   `json:"temporal"`
	CrossVerification  float64   `json:"cross_verification"`
	Backlink           float64   `json:"backlink"`
	SyndicationPenalty float64   `json:"syndication_penalty"`
	CommunityBonus     float64   `json:"community_bonus"`
	Score              float64   `json:"score"`
}

// Scorer computes TraceScores.
type Scorer struct {
	weights  Weights
	strategy similarity.Strategy
}

// NewScorer validates w and returns a scorer comparing titles with strategy.
func NewScorer(w Weights, strategy similarity.Strategy) (*Scorer, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if strategy == nil {
		strategy = similarity.Default()
	}
	return &Scorer{weights: w, strategy: strategy}, nil
}

// Score returns the mean per-article score of members, or 0 for no members.
func (s *Scorer) Score(members []source.Article, now time.Time) float64 {
	breakdown := s.Explain(members, now)
	if len(breakdown) == 0 {
		return 0
	}

	total := 0.0
	for _, b := range breakdown {
		total += b.Score
	}
	return total / float64(len(breakdown))
}

// Explain scores every member, earliest publication first. members itself is
// not reordered.
//
// For the member at rank i of n:
//
//	temporal           = 1 - i/n
//	cross_verification = min(domains/DomainCap, 1), counting the distinct domains
//	                     of other members whose titles are more similar than
//	                     CrossVerifySimilarity
//	backlink           = min(citations/CitationCap, 1), counting other members
//	                     whose content mentions this member's domain or whose
//	                     titles are more similar than BacklinkSimilarity
//
// The weighted sum, less the aggregator penalty and plus the community bonus,
// is clamped to [0, 1].
func (s *Scorer) Explain(members []source.Article, now time.Time) []ArticleScore {
	n := len(members)
	if n == 0 {
		return nil
	}

	type dated struct {
		article source.Article
		at      time.Time
	}
	sorted := make([]dated, n)
	for i, m := range members {
		sorted[i] = dated{article: m, at: timeparse.Normalize(m.Timestamp, now)}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].at.Before(sorted[j].at)
	})

	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := s.strategy.Similarity(sorted[i].article.Title, sorted[j].article.Title)
			sim[i][j], sim[j][i] = v, v
		}
	}

	w := s.weights
	out := make([]ArticleScore, n)
	for i, d := range sorted {
		a := d.article

		domains := make(map[string]bool)
		citations := 0
		for j, other := range sorted {
			if j == i {
				continue
			}
			if sim[i][j] > w.CrossVerifySimilarity {
				domains[other.article.Domain] = true
			}
			if (a.Domain != "" && strings.Contains(other.article.Content, a.Domain)) || sim[i][j] > w.BacklinkSimilarity {
				citations++
			}
		}

		score := ArticleScore{
			ArticleID:         a.ID,
			Rank:              i,
			PublishedAt:       d.at,
			Temporal:          1 - float64(i)/float64(n),
			CrossVerification: capped(float64(len(domains)), w.DomainCap),
			Backlink:          capped(float64(citations), w.CitationCap),
		}
		switch a.SourceType {
		case source.SourceAggregator:
			score.SyndicationPenalty = w.SyndicationPenalty
		case source.SourceCommunity:
			score.CommunityBonus = w.CommunityBonus
		}

		raw := w.Temporal*score.Temporal +
			w.CrossVerification*score.CrossVerification +
			w.Backlink*score.Backlink -
			score.SyndicationPenalty +
			score.CommunityBonus
		score.Score = clamp01(raw)

		out[i] = score
	}
	return out
}

func capped(count, limit float64) float64 {
	if v := count / limit; v < 1 {
		return v
	}
	return 1
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
