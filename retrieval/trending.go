package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/storage"
)

// maxItemRating is the rating scale ceiling used to normalize scores.
const maxItemRating = 5.0

// TrendingRetriever surfaces the highest-rated catalog items. It needs no
// profile or query understanding, which makes it the cold-start signal for
// first-contact users.
type TrendingRetriever struct {
	catalog storage.CatalogRepository
	logger  *slog.Logger
}

var _ Retriever = (*TrendingRetriever)(nil)

// NewTrendingRetriever creates a trending retriever.
func NewTrendingRetriever(catalog storage.CatalogRepository) (*TrendingRetriever, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	return &TrendingRetriever{
		catalog: catalog,
		logger:  slog.Default().With("component", "retrieval.trending"),
	}, nil
}

// Method implements Retriever.
func (r *TrendingRetriever) Method() core.Method {
	return core.MethodTrending
}

// Retrieve returns the top-rated items not in exclude, scores normalized to
// [0,1] by the rating ceiling.
func (r *TrendingRetriever) Retrieve(ctx context.Context, query *core.Query, limit int, exclude map[core.ID]bool) ([]core.RetrievalCandidate, error) {
	items, err := r.catalog.TopRated(ctx, limit, exclude)
	if err != nil {
		return nil, fmt.Errorf("top rated lookup: %w", err)
	}

	candidates := make([]core.RetrievalCandidate, 0, len(items))
	for i, item := range items {
		candidates = append(candidates, core.RetrievalCandidate{
			ItemId: item.Id,
			Method: core.MethodTrending,
			Score:  item.Rating / maxItemRating,
			Rank:   i + 1,
		})
	}
	return candidates, nil
}
