package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// IntentExtractor turns raw query text into weighted keywords and intent
// categories. Implementations must be thread-safe for concurrent use.
type IntentExtractor interface {
	// ExtractIntent analyzes query text and returns weighted keywords and
	// classified intent categories. The extraction context may include
	// profile tags appended to the text by the caller.
	// Returns an empty Intent if nothing could be extracted.
	// Returns an error if the extraction service fails.
	ExtractIntent(ctx context.Context, text string) (*Intent, error)
}

// RelevanceJudge scores a batch of candidate items against a query.
// Implementations must be thread-safe for concurrent use.
type RelevanceJudge interface {
	// JudgeRelevance returns one judgment per candidate, in input order.
	// Each judgment carries a relevance score on a 0-10 scale, a confidence
	// in [0,1], and a short natural-language explanation of the match.
	// Returns ErrMalformedResponse (possibly wrapped) when the service reply
	// cannot be parsed; callers are expected to fall back rather than abort.
	JudgeRelevance(ctx context.Context, query string, candidates []JudgeCandidate) ([]Judgment, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder, IntentExtractor and RelevanceJudge
// instances, ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// IntentExtractor returns the query understanding service.
	// The returned IntentExtractor is safe for concurrent use.
	IntentExtractor() IntentExtractor

	// RelevanceJudge returns the contextual relevance scoring service.
	// The returned RelevanceJudge is safe for concurrent use.
	RelevanceJudge() RelevanceJudge

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
