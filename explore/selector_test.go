package explore

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appscout/appscout/core"
)

func rankedList(n int) []core.RankedResult {
	out := make([]core.RankedResult, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, core.RankedResult{
			ItemId: core.ID(i + 1),
			Score:  1.0 - float64(i)*0.01,
		})
	}
	return out
}

func TestBucketCountsSumToLimit(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	for limit := 1; limit <= 100; limit++ {
		exploit, explore, serendipity := selector.bucketCounts(limit)
		assert.Equal(t, limit, exploit+explore+serendipity, "limit %d", limit)
		assert.GreaterOrEqual(t, exploit, explore)
	}
}

func TestBucketCountsDefaultSplit(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	exploit, explore, serendipity := selector.bucketCounts(10)
	assert.Equal(t, 7, exploit)
	assert.Equal(t, 2, explore)
	assert.Equal(t, 1, serendipity)
}

func TestSelectRespectsLimitAndRanks(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	final := selector.Select("q", nil, rankedList(50), nil, nil, 10)
	require.Len(t, final, 10)
	for i, result := range final {
		assert.Equal(t, i+1, result.Rank)
		assert.NotEmpty(t, result.Strategy)
	}

	// No duplicates
	seen := map[core.ID]bool{}
	for _, result := range final {
		assert.False(t, seen[result.ItemId])
		seen[result.ItemId] = true
	}
}

func TestSelectFewerCandidatesThanLimit(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	final := selector.Select("q", nil, rankedList(4), nil, nil, 10)
	assert.Len(t, final, 4)
}

func TestSelectDeterministicForSameInputs(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	arms := map[core.ID]*core.BanditArm{}
	for i := 1; i <= 50; i++ {
		arms[core.ID(i)] = &core.BanditArm{ItemId: core.ID(i), Alpha: float64(i%5 + 1), Beta: float64(i%3 + 1)}
	}

	a := selector.Select("budget app", nil, rankedList(50), arms, nil, 10)
	b := selector.Select("budget app", nil, rankedList(50), arms, nil, 10)
	assert.Equal(t, a, b)
}

func TestSelectInterleavePattern(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	final := selector.Select("q", nil, rankedList(50), nil, nil, 12)
	require.Len(t, final, 12)

	// While all buckets still hold items the pattern is fixed
	assert.Equal(t, core.StrategyExploitation, final[0].Strategy)
	assert.Equal(t, core.StrategyExploration, final[1].Strategy)
	assert.Equal(t, core.StrategyExploitation, final[2].Strategy)
	assert.Equal(t, core.StrategySerendipity, final[3].Strategy)
}

func TestSelectDiversityDiscountReordersCategories(t *testing.T) {
	// All-exploitation split keeps the test free of sampling
	selector, err := NewSelector(WithShares(1, 0, 0), WithCategoryCap(1))
	require.NoError(t, err)

	// Three finance items ranked above one health item
	ranked := rankedList(4)
	items := map[core.ID]*core.Item{}
	for i := 1; i <= 3; i++ {
		items[core.ID(i)] = &core.Item{
			Id:         core.ID(i),
			Name:       fmt.Sprintf("Finance%d", i),
			Rating:     4.5,
			Categories: []string{"Finance"},
		}
	}
	items[4] = &core.Item{Id: 4, Name: "Health", Rating: 4.5, Categories: []string{"Health"}}

	final := selector.Select("q", nil, ranked, nil, items, 4)
	require.Len(t, final, 4)

	// Once one finance item is shown the cap discounts the rest, so the
	// lower-scored health item jumps to second place. The discount reorders
	// but never excludes: all finance items still appear.
	assert.Equal(t, core.ID(1), final[0].ItemId)
	assert.Equal(t, core.ID(4), final[1].ItemId)
	assert.Equal(t, core.ID(2), final[2].ItemId)
	assert.Equal(t, core.ID(3), final[3].ItemId)
}

func TestSelectCategoryCapHoldsWithHomogeneousTop(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	// The eight highest-ranked candidates all share one category; twelve
	// distinct-category alternatives trail them
	ranked := rankedList(20)
	items := map[core.ID]*core.Item{}
	for i := 1; i <= 20; i++ {
		category := fmt.Sprintf("Niche%d", i)
		if i <= 8 {
			category = "Finance"
		}
		items[core.ID(i)] = &core.Item{
			Id:         core.ID(i),
			Name:       fmt.Sprintf("App%d", i),
			Rating:     4.5,
			Categories: []string{category},
		}
	}

	final := selector.Select("q", nil, ranked, nil, items, 10)
	require.Len(t, final, 10)

	finance := 0
	seen := map[core.ID]bool{}
	for _, result := range final {
		assert.False(t, seen[result.ItemId])
		seen[result.ItemId] = true
		if items[result.ItemId].Categories[0] == "Finance" {
			finance++
		}
	}
	// With uncapped alternatives available the capped category never
	// exceeds its quota
	assert.Equal(t, selector.categoryCap, finance)
}

func TestSelectExplorationFavorsStrongArms(t *testing.T) {
	selector, err := NewSelector()
	require.NoError(t, err)

	// Candidates 8..20 are the exploration pool (top 7 go to exploitation).
	// Give item 20 an overwhelming success record.
	arms := map[core.ID]*core.BanditArm{}
	for i := 8; i <= 20; i++ {
		arms[core.ID(i)] = &core.BanditArm{ItemId: core.ID(i), Alpha: 1, Beta: 100}
	}
	arms[20] = &core.BanditArm{ItemId: 20, Alpha: 100, Beta: 1}

	picked := 0
	const trials = 200
	for trial := 0; trial < trials; trial++ {
		final := selector.Select(fmt.Sprintf("query %d", trial), nil, rankedList(20), arms, nil, 10)
		for _, result := range final {
			if result.ItemId == 20 && result.Strategy == core.StrategyExploration {
				picked++
			}
		}
	}
	assert.Greater(t, picked, trials*8/10)
}
