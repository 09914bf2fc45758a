package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appscout/appscout/core"
)

func TestTrendingRetrieverRanksByRating(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	top := catalogItem("Top", 5.0, nil, nil)
	mid := catalogItem("Mid", 4.0, nil, nil)
	low := catalogItem("Low", 2.0, nil, nil)
	require.NoError(t, stores.Catalog.AddItems(ctx, top, mid, low))

	retriever, err := NewTrendingRetriever(stores.Catalog)
	require.NoError(t, err)

	candidates, err := retriever.Retrieve(ctx, &core.Query{}, 2, map[core.ID]bool{top.Id: true})
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, mid.Id, candidates[0].ItemId)
	assert.InDelta(t, 0.8, candidates[0].Score, 1e-9)
	assert.Equal(t, low.Id, candidates[1].ItemId)
	assert.InDelta(t, 0.4, candidates[1].Score, 1e-9)
}
