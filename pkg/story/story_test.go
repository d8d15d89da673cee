package story

import "github.com/elonfeng/tracefirst/pkg/source"

// fixedSimilarity returns canned scores for title pairs, 1 for identical
// titles and 0 for anything else.
type fixedSimilarity map[[2]string]float64

func (fixedSimilarity) Name() string { return "fixed" }

func (f fixedSimilarity) Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if v, ok := f[[2]string{a, b}]; ok {
		return v
	}
	return f[[2]string{b, a}]
}

func article(id, title string) source.Article {
	return source.Article{ID: id, Title: title, Domain: id + ".example", SourceType: source.SourcePress}
}

func memberIDs(members []source.Article) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.ID
	}
	return out
}

func groupIDs(groups [][]source.Article) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = memberIDs(g)
	}
	return out
}
