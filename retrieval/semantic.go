package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/appscout/appscout/ai"
	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/storage"
)

// DefaultMinSimilarity is the cosine similarity floor for semantic matches.
const DefaultMinSimilarity = 0.5

// SemanticRetriever finds items by embedding similarity to the query text.
type SemanticRetriever struct {
	catalog       storage.CatalogRepository
	embedder      ai.Embedder
	minSimilarity float32
	logger        *slog.Logger
}

var _ Retriever = (*SemanticRetriever)(nil)

// SemanticOption configures a SemanticRetriever.
type SemanticOption func(*SemanticRetriever) error

// WithMinSimilarity overrides the similarity threshold.
func WithMinSimilarity(min float32) SemanticOption {
	return func(r *SemanticRetriever) error {
		if min < 0 || min > 1 {
			return fmt.Errorf("min similarity must be in [0,1], got %f", min)
		}
		r.minSimilarity = min
		return nil
	}
}

// NewSemanticRetriever creates a semantic retriever.
func NewSemanticRetriever(catalog storage.CatalogRepository, embedder ai.Embedder, opts ...SemanticOption) (*SemanticRetriever, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &SemanticRetriever{
		catalog:       catalog,
		embedder:      embedder,
		minSimilarity: DefaultMinSimilarity,
		logger:        slog.Default().With("component", "retrieval.semantic"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Method implements Retriever.
func (r *SemanticRetriever) Method() core.Method {
	return core.MethodSemantic
}

// Retrieve embeds the query text, composited with profile lifestyle tags
// when present, and returns the nearest catalog items above the similarity
// threshold.
func (r *SemanticRetriever) Retrieve(ctx context.Context, query *core.Query, limit int, exclude map[core.ID]bool) ([]core.RetrievalCandidate, error) {
	vector, err := r.embedder.EmbedText(ctx, embeddingText(query))
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	matches, err := r.catalog.FindSimilar(ctx, vector, r.minSimilarity, limit, exclude)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	candidates := make([]core.RetrievalCandidate, 0, len(matches))
	for i, match := range matches {
		candidates = append(candidates, core.RetrievalCandidate{
			ItemId: match.Item.Id,
			Method: core.MethodSemantic,
			Score:  float64(match.Similarity),
			Rank:   i + 1,
		})
	}

	r.logger.Debug("semantic retrieval complete",
		"candidates", len(candidates),
		"threshold", r.minSimilarity)
	return candidates, nil
}

// embeddingText composes the text to embed. Lifestyle tags sharpen the query
// vector for sparse queries like "something fun".
func embeddingText(query *core.Query) string {
	if query.Profile == nil || len(query.Profile.LifestyleTags) == 0 {
		return query.RawText
	}
	return query.RawText + " " + strings.Join(query.Profile.LifestyleTags, " ")
}
