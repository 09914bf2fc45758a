package mock

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/appscout/appscout/ai"
)

// MockRelevanceJudge is a test double for ai.RelevanceJudge.
// It allows custom behavior injection via function fields.
// The reranker judges batches concurrently, so the call count is atomic.
type MockRelevanceJudge struct {
	// JudgeRelevanceFunc is called by JudgeRelevance if set.
	// If nil, uses default word-overlap scoring.
	JudgeRelevanceFunc func(ctx context.Context, query string, candidates []ai.JudgeCandidate) ([]ai.Judgment, error)

	callCount atomic.Int32
}

// NewMockRelevanceJudge creates a mock judge with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockJudge().
func NewMockRelevanceJudge() *MockRelevanceJudge {
	return &MockRelevanceJudge{}
}

// JudgeRelevance scores candidates by word overlap between the query and the
// candidate name/one-liner. Deterministic, so ordering tests stay stable.
func (m *MockRelevanceJudge) JudgeRelevance(ctx context.Context, query string, candidates []ai.JudgeCandidate) ([]ai.Judgment, error) {
	m.callCount.Add(1)

	if m.JudgeRelevanceFunc != nil {
		return m.JudgeRelevanceFunc(ctx, query, candidates)
	}

	queryWords := strings.Fields(strings.ToLower(query))
	judgments := make([]ai.Judgment, len(candidates))
	for i, c := range candidates {
		text := strings.ToLower(c.Name + " " + c.OneLiner)
		var hits int
		for _, w := range queryWords {
			if strings.Contains(text, w) {
				hits++
			}
		}
		relevance := 10.0 * float64(hits) / float64(max(len(queryWords), 1))
		judgments[i] = ai.Judgment{
			Id:          c.Id,
			Relevance:   relevance,
			Confidence:  0.8,
			Explanation: fmt.Sprintf("%s matches %d of %d query terms", c.Name, hits, len(queryWords)),
		}
	}
	return judgments, nil
}

// CallCount returns the number of times JudgeRelevance was called.
func (m *MockRelevanceJudge) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockRelevanceJudge) Reset() {
	m.callCount.Store(0)
	m.JudgeRelevanceFunc = nil
}
