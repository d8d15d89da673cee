package story

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elonfeng/tracefirst/pkg/similarity"
	"github.com/elonfeng/tracefirst/pkg/source"
)

func TestPartition_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, Partition(nil, similarity.Ratio{}, DefaultThreshold))
	assert.Empty(t, Partition([]source.Article{}, similarity.Ratio{}, DefaultThreshold))

	groups := Partition([]source.Article{article("a", "Only one")}, similarity.Ratio{}, DefaultThreshold)
	assert.Equal(t, [][]string{{"a"}}, groupIDs(groups))
}

func TestPartition_StarAroundSeed(t *testing.T) {
	sim := fixedSimilarity{
		{"A", "B"}: 0.7,
		{"B", "C"}: 0.7,
		{"A", "C"}: 0.1,
	}
	a, b, c := article("a", "A"), article("b", "B"), article("c", "C")

	// C is close to B but not to the seed A, so it starts its own group.
	groups := Partition([]source.Article{a, b, c}, sim, 0.6)
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, groupIDs(groups))

	// With B as the seed both neighbours join.
	groups = Partition([]source.Article{b, a, c}, sim, 0.6)
	assert.Equal(t, [][]string{{"b", "a", "c"}}, groupIDs(groups))
}

func TestPartition_ThresholdIsStrict(t *testing.T) {
	sim := fixedSimilarity{{"A", "B"}: 0.6}
	batch := []source.Article{article("a", "A"), article("b", "B")}

	assert.Equal(t, [][]string{{"a"}, {"b"}}, groupIDs(Partition(batch, sim, 0.6)))
	assert.Equal(t, [][]string{{"a", "b"}}, groupIDs(Partition(batch, sim, 0.5999)))

	// "abcd" and "bcde" share "bcd": 2*3/8 = 0.75.
	batch = []source.Article{article("x", "abcd"), article("y", "bcde")}
	assert.Len(t, Partition(batch, similarity.Ratio{}, 0.75), 2)
	assert.Len(t, Partition(batch, similarity.Ratio{}, 0.74), 1)
}

func TestPartition_ConsumedArticlesAreSkipped(t *testing.T) {
	sim := fixedSimilarity{
		{"A", "C"}: 0.9,
		{"B", "C"}: 0.9,
	}
	batch := []source.Article{article("a", "A"), article("b", "B"), article("c", "C")}

	groups := Partition(batch, sim, 0.6)
	assert.Equal(t, [][]string{{"a", "c"}, {"b"}}, groupIDs(groups))
}

func TestPartition_CoversEveryArticleOnce(t *testing.T) {
	batch := koreanBatch()
	for _, strategy := range []similarity.Strategy{similarity.Ratio{}, similarity.Jaccard{}} {
		for _, threshold := range []float64{0.1, 0.3, 0.6, 0.9} {
			groups := Partition(batch, strategy, threshold)

			seen := make(map[string]int)
			for _, g := range groups {
				require.NotEmpty(t, g)
				for _, m := range g {
					seen[m.ID]++
				}
			}
			require.Len(t, seen, len(batch), "%s@%v", strategy.Name(), threshold)
			for id, n := range seen {
				assert.Equal(t, 1, n, "%s appears %d times", id, n)
			}
		}
	}
}

func TestPartition_Deterministic(t *testing.T) {
	batch := koreanBatch()
	first := Partition(batch, similarity.Ratio{}, DefaultThreshold)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Partition(batch, similarity.Ratio{}, DefaultThreshold))
	}
}

func TestLabel(t *testing.T) {
	sixty := strings.Repeat("abcdefghij", 6)
	fifty := strings.Repeat("abcdefghij", 5)

	tests := []struct {
		name    string
		titles  []string
		want    string
		wantLen int
	}{
		{name: "short title unchanged", titles: []string{"Short"}, want: "Short", wantLen: 5},
		{name: "exactly fifty unchanged", titles: []string{fifty}, want: fifty, wantLen: 50},
		{name: "sixty truncated", titles: []string{sixty}, want: sixty[:47] + "...", wantLen: 50},
		{name: "fifty one truncated", titles: []string{fifty + "k"}, want: fifty[:47] + "...", wantLen: 50},
		{name: "longest wins", titles: []string{"abc", "abcdef", "ab"}, want: "abcdef", wantLen: 6},
		{name: "first of equal length wins", titles: []string{"one", "two", "six"}, want: "one", wantLen: 3},
		{
			name:    "counts characters not bytes",
			titles:  []string{strings.Repeat("가나다라마바사아자차", 6)},
			want:    strings.Repeat("가나다라마바사아자차", 4) + "가나다라마바사" + "...",
			wantLen: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := make([]source.Article, len(tt.titles))
			for i, title := range tt.titles {
				members[i] = article(title, title)
			}
			got := Label(members)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantLen, len([]rune(got)))
		})
	}
}

func TestLabel_PanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { Label(nil) })
}

func TestClusterID(t *testing.T) {
	assert.Equal(t, "cluster_0", ClusterID(0))
	assert.Equal(t, "cluster_12", ClusterID(12))
}
