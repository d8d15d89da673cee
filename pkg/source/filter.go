package source

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultStopwords are query words that never count as keywords.
var DefaultStopwords = []string{
	"의", "가", "이", "을", "를", "에", "에서", "으로",
	"the", "a", "an", "and", "or",
}

var (
	markupTag  = regexp.MustCompile(`<[^>]*>`)
	nonWordRun = regexp.MustCompile(`[^\p{L}\p{N}\s_]+`)
)

// QueryFilter orders articles by how many query keywords their titles contain.
type QueryFilter struct {
	keywords   []string
	minMatches int
}

// NewQueryFilter extracts keywords from query. Articles matching fewer than
// minMatches keywords are dropped by Apply; zero keeps everything.
func NewQueryFilter(query string, minMatches int, extraStopwords []string) *QueryFilter {
	stop := make(map[string]bool)
	for _, w := range append(append([]string{}, DefaultStopwords...), extraStopwords...) {
		stop[strings.ToLower(w)] = true
	}

	var keywords []string
	seen := make(map[string]bool)
	for _, w := range strings.Fields(normalizeText(query)) {
		if stop[w] || seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
	}

	if minMatches < 0 {
		minMatches = 0
	}
	return &QueryFilter{keywords: keywords, minMatches: minMatches}
}

// Keywords returns the extracted query keywords.
func (f *QueryFilter) Keywords() []string {
	return f.keywords
}

// Matches counts the keywords contained in title.
func (f *QueryFilter) Matches(title string) int {
	normalized := normalizeText(title)
	n := 0
	for _, kw := range f.keywords {
		if strings.Contains(normalized, kw) {
			n++
		}
	}
	return n
}

// Apply returns a new slice ordered by match count, most matches first.
// Equal counts keep their input order. A query without keywords returns the
// input unchanged.
func (f *QueryFilter) Apply(articles []Article) []Article {
	if len(f.keywords) == 0 {
		return articles
	}

	type ranked struct {
		article Article
		matches int
	}
	var kept []ranked
	for _, a := range articles {
		m := f.Matches(a.Title)
		if m < f.minMatches {
			continue
		}
		kept = append(kept, ranked{article: a, matches: m})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].matches > kept[j].matches
	})

	out := make([]Article, len(kept))
	for i, r := range kept {
		out[i] = r.article
	}
	return out
}

func normalizeText(text string) string {
	text = strings.ToLower(text)
	text = markupTag.ReplaceAllString(text, "")
	text = nonWordRun.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}
