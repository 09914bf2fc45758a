package retrieval

import (
	"context"
	"slices"

	"github.com/appscout/appscout/core"
)

// Retriever produces ranked candidates for one retrieval signal.
//
// Implementations must be safe for concurrent use; the fan-out group calls
// them from separate goroutines. An empty result is an ordinary outcome, not
// an error.
type Retriever interface {
	// Method identifies the signal this retriever produces.
	Method() core.Method

	// Retrieve returns up to limit candidates for the query, ranked best
	// first with 1-based ranks assigned. Items in exclude are never returned.
	Retrieve(ctx context.Context, query *core.Query, limit int, exclude map[core.ID]bool) ([]core.RetrievalCandidate, error)
}

// sortCandidates orders candidates by score descending, ties by ascending
// item id so reruns over identical state produce identical lists.
func sortCandidates(candidates []core.RetrievalCandidate) {
	slices.SortFunc(candidates, func(a, b core.RetrievalCandidate) int {
		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}
			return 1
		}
		if a.ItemId < b.ItemId {
			return -1
		}
		if a.ItemId > b.ItemId {
			return 1
		}
		return 0
	})
}

// finalize sorts, truncates and rank-stamps a candidate list.
func finalize(candidates []core.RetrievalCandidate, limit int) []core.RetrievalCandidate {
	sortCandidates(candidates)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	for i := range candidates {
		candidates[i].Rank = i + 1
	}
	return candidates
}
