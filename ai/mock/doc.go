// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder,
// ai.IntentExtractor, ai.RelevanceJudge and ai.AIProvider for use in unit
// tests. The mocks allow tests to run without external AI service
// dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	embeddings, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockJudge := mock.NewMockRelevanceJudge()
//	mockJudge.JudgeRelevanceFunc = func(ctx context.Context, query string, cs []ai.JudgeCandidate) ([]ai.Judgment, error) {
//	    return nil, ai.ErrRateLimited
//	}
//
//	// Check call counts
//	count := mockJudge.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic unit vectors based on text hash
//   - MockIntentExtractor: Extracts keywords from words in text, weighted by position
//   - MockRelevanceJudge: Scores candidates by query word overlap
//   - MockProvider: Aggregates the three mock services
package mock
