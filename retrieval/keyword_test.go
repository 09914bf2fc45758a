package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/storage/badger"
)

func newTestStores(t *testing.T) *badger.Stores {
	t.Helper()
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })
	return stores
}

func catalogItem(name string, rating float64, keywords map[string]float64, vector []float32) *core.Item {
	return &core.Item{
		Id:         core.IDFromContent(name),
		Name:       name,
		OneLiner:   name + " helps you out",
		Rating:     rating,
		Keywords:   keywords,
		Vector:     vector,
		Categories: []string{"Productivity"},
	}
}

func TestKeywordRetrieverScoresByWeightProduct(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	strong := catalogItem("BudgetBuddy", 4.5, map[string]float64{"budget": 0.9, "track": 0.8}, nil)
	weak := catalogItem("Notely", 3.0, map[string]float64{"budget": 0.2}, nil)
	unrelated := catalogItem("Gardener", 4.0, map[string]float64{"plants": 1.0}, nil)
	require.NoError(t, stores.Catalog.AddItems(ctx, strong, weak, unrelated))

	retriever, err := NewKeywordRetriever(stores.Catalog)
	require.NoError(t, err)

	query := &core.Query{
		RawText: "budget tracking",
		Keywords: []core.QueryKeyword{
			{Term: "budget", Weight: 1.0},
			{Term: "track", Weight: 0.5},
		},
	}

	candidates, err := retriever.Retrieve(ctx, query, 10, nil)
	require.NoError(t, err)
	require.Len(t, candidates, 1, "weak match falls below the score floor")
	assert.Equal(t, strong.Id, candidates[0].ItemId)
	assert.InDelta(t, 1.0*0.9+0.5*0.8, candidates[0].Score, 1e-9)
	assert.Equal(t, []string{"budget", "track"}, candidates[0].MatchedKeywords)
	assert.Equal(t, 1, candidates[0].Rank)
}

func TestKeywordRetrieverHonorsExcludeAndLimit(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	a := catalogItem("AppA", 4.0, map[string]float64{"budget": 0.9}, nil)
	b := catalogItem("AppB", 4.0, map[string]float64{"budget": 0.8}, nil)
	c := catalogItem("AppC", 4.0, map[string]float64{"budget": 0.7}, nil)
	require.NoError(t, stores.Catalog.AddItems(ctx, a, b, c))

	retriever, err := NewKeywordRetriever(stores.Catalog)
	require.NoError(t, err)

	query := &core.Query{
		Keywords: []core.QueryKeyword{{Term: "budget", Weight: 1.0}},
	}

	candidates, err := retriever.Retrieve(ctx, query, 1, map[core.ID]bool{a.Id: true})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, b.Id, candidates[0].ItemId)
}

func TestKeywordRetrieverEmptyQuery(t *testing.T) {
	stores := newTestStores(t)

	retriever, err := NewKeywordRetriever(stores.Catalog)
	require.NoError(t, err)

	candidates, err := retriever.Retrieve(context.Background(), &core.Query{}, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
