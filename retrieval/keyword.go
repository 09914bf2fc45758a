package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/storage"
)

// DefaultMinKeywordScore is the accumulated-score floor for keyword matches.
const DefaultMinKeywordScore = 0.3

// KeywordRetriever matches extracted query keywords against item keyword
// weights via the catalog's keyword index.
type KeywordRetriever struct {
	catalog  storage.CatalogRepository
	minScore float64
	logger   *slog.Logger
}

var _ Retriever = (*KeywordRetriever)(nil)

// KeywordOption configures a KeywordRetriever.
type KeywordOption func(*KeywordRetriever) error

// WithMinKeywordScore overrides the minimum accumulated score.
func WithMinKeywordScore(min float64) KeywordOption {
	return func(r *KeywordRetriever) error {
		if min < 0 {
			return fmt.Errorf("min keyword score must be >= 0, got %f", min)
		}
		r.minScore = min
		return nil
	}
}

// NewKeywordRetriever creates a keyword retriever.
func NewKeywordRetriever(catalog storage.CatalogRepository, opts ...KeywordOption) (*KeywordRetriever, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}

	r := &KeywordRetriever{
		catalog:  catalog,
		minScore: DefaultMinKeywordScore,
		logger:   slog.Default().With("component", "retrieval.keyword"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Method implements Retriever.
func (r *KeywordRetriever) Method() core.Method {
	return core.MethodKeyword
}

// Retrieve scores items by the sum of query weight times item keyword weight
// over intersecting keywords. Matched terms are retained so explanations can
// cite them.
func (r *KeywordRetriever) Retrieve(ctx context.Context, query *core.Query, limit int, exclude map[core.ID]bool) ([]core.RetrievalCandidate, error) {
	type accumulator struct {
		score   float64
		matched []string
	}
	scores := make(map[core.ID]*accumulator)

	for _, kw := range query.Keywords {
		items, err := r.catalog.FindByKeyword(ctx, kw.Term)
		if err != nil {
			return nil, fmt.Errorf("keyword lookup %q: %w", kw.Term, err)
		}
		for _, item := range items {
			if exclude[item.Id] {
				continue
			}
			itemWeight, ok := item.Keywords[kw.Term]
			if !ok {
				continue
			}
			acc := scores[item.Id]
			if acc == nil {
				acc = &accumulator{}
				scores[item.Id] = acc
			}
			acc.score += kw.Weight * itemWeight
			acc.matched = append(acc.matched, kw.Term)
		}
	}

	candidates := make([]core.RetrievalCandidate, 0, len(scores))
	for id, acc := range scores {
		if acc.score < r.minScore {
			continue
		}
		sort.Strings(acc.matched)
		candidates = append(candidates, core.RetrievalCandidate{
			ItemId:          id,
			Method:          core.MethodKeyword,
			Score:           acc.score,
			MatchedKeywords: acc.matched,
		})
	}

	candidates = finalize(candidates, limit)
	r.logger.Debug("keyword retrieval complete",
		"query_terms", len(query.Keywords),
		"candidates", len(candidates))
	return candidates, nil
}
