package story

import (
	"fmt"

	"github.com/elonfeng/tracefirst/pkg/similarity"
	"github.com/elonfeng/tracefirst/pkg/source"
)

// Cluster groups reports of the same story.
type Cluster struct {
	ID      string           `json:"id"`
	Label   string           `json:"label"`
	Size    int              `json:"size"`
	Members []source.Article `json:"articles"`
	Score   float64          `json:"trace_score"`
}

// ClusterID formats the identifier of the n-th cluster created.
func ClusterID(n int) string {
	return fmt.Sprintf("cluster_%d", n)
}

// Partition splits articles into groups around seeds. Each unconsumed article
// in input order becomes a seed, and every later unconsumed article whose title
// similarity to the seed's title is strictly greater than threshold joins it.
//
// Candidates are compared with the seed only, never with members added before
// them, so groups are stars around their seed rather than chains, and the
// result depends on input order.
func Partition(articles []source.Article, strategy similarity.Strategy, threshold float64) [][]source.Article {
	if len(articles) == 0 {
		return nil
	}

	used := make([]bool, len(articles))
	var groups [][]source.Article

	for i := range articles {
		if used[i] {
			continue
		}
		used[i] = true
		seed := articles[i]
		group := []source.Article{seed}

		for j := i + 1; j < len(articles); j++ {
			if used[j] {
				continue
			}
			if strategy.Similarity(seed.Title, articles[j].Title) > threshold {
				group = append(group, articles[j])
				used[j] = true
			}
		}

		groups = append(groups, group)
	}

	return groups
}

// MaxLabelLength is the longest label, in characters, Label returns.
const MaxLabelLength = 50

const ellipsis = "..."

// Label names a cluster after its longest title, counted in characters, with
// the earliest member winning ties. Titles over MaxLabelLength are cut and
// suffixed with "...". members must not be empty.
func Label(members []source.Article) string {
	if len(members) == 0 {
		panic("story: Label called with no members")
	}

	longest := []rune(members[0].Title)
	for _, m := range members[1:] {
		if r := []rune(m.Title); len(r) > len(longest) {
			longest = r
		}
	}

	if len(longest) > MaxLabelLength {
		keep := MaxLabelLength - len(ellipsis)
		return string(longest[:keep]) + ellipsis
	}
	return string(longest)
}
