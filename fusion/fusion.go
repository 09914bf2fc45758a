package fusion

import (
	"fmt"
	"slices"

	"github.com/appscout/appscout/core"
)

// Defaults for reciprocal rank fusion.
const (
	DefaultK    = 60
	DefaultTopN = 50

	DefaultSemanticWeight      = 0.4
	DefaultKeywordWeight       = 0.3
	DefaultCollaborativeWeight = 0.2
	DefaultTrendingWeight      = 0.1
)

// methodOrder fixes the order in which contributing methods are listed on a
// fused candidate.
var methodOrder = []core.Method{
	core.MethodSemantic,
	core.MethodKeyword,
	core.MethodCollaborative,
	core.MethodTrending,
}

// Fuser combines per-method candidate lists with reciprocal rank fusion.
// Stateless once constructed; safe for concurrent use.
type Fuser struct {
	k       int
	topN    int
	weights map[core.Method]float64
}

// Option configures a Fuser.
type Option func(*Fuser) error

// WithK overrides the rank-smoothing constant.
func WithK(k int) Option {
	return func(f *Fuser) error {
		if k < 1 {
			return fmt.Errorf("k must be >= 1, got %d", k)
		}
		f.k = k
		return nil
	}
}

// WithTopN overrides how many fused candidates are retained.
func WithTopN(n int) Option {
	return func(f *Fuser) error {
		if n < 1 {
			return fmt.Errorf("topN must be >= 1, got %d", n)
		}
		f.topN = n
		return nil
	}
}

// WithWeight overrides one method's fusion weight.
func WithWeight(method core.Method, weight float64) Option {
	return func(f *Fuser) error {
		if weight < 0 {
			return fmt.Errorf("weight must be >= 0, got %f", weight)
		}
		f.weights[method] = weight
		return nil
	}
}

// NewFuser creates a Fuser with the default weight table.
func NewFuser(opts ...Option) (*Fuser, error) {
	f := &Fuser{
		k:    DefaultK,
		topN: DefaultTopN,
		weights: map[core.Method]float64{
			core.MethodSemantic:      DefaultSemanticWeight,
			core.MethodKeyword:       DefaultKeywordWeight,
			core.MethodCollaborative: DefaultCollaborativeWeight,
			core.MethodTrending:      DefaultTrendingWeight,
		},
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// MaxScore returns the highest fused score any candidate can reach: first
// rank in every method simultaneously.
func (f *Fuser) MaxScore() float64 {
	var sum float64
	for _, weight := range f.weights {
		sum += weight / float64(f.k+1)
	}
	return sum
}

// Fuse merges per-method candidate lists into a single deduplicated list.
//
// Each appearance contributes weight(method) / (k + rank). A candidate found
// by several methods accumulates all contributions, so agreement between
// signals outranks a single strong signal. Output is sorted by fused score
// descending, ties by ascending item id, and truncated to topN.
func (f *Fuser) Fuse(byMethod map[core.Method][]core.RetrievalCandidate) []core.FusedCandidate {
	fused := make(map[core.ID]*core.FusedCandidate)

	for _, method := range methodOrder {
		weight := f.weights[method]
		if weight == 0 {
			continue
		}
		for _, candidate := range byMethod[method] {
			entry := fused[candidate.ItemId]
			if entry == nil {
				entry = &core.FusedCandidate{ItemId: candidate.ItemId}
				fused[candidate.ItemId] = entry
			}
			entry.Score += weight / float64(f.k+candidate.Rank)
			entry.Methods = append(entry.Methods, method)
			for _, term := range candidate.MatchedKeywords {
				if !slices.Contains(entry.MatchedKeywords, term) {
					entry.MatchedKeywords = append(entry.MatchedKeywords, term)
				}
			}
		}
	}

	results := make([]core.FusedCandidate, 0, len(fused))
	for _, entry := range fused {
		results = append(results, *entry)
	}

	slices.SortFunc(results, func(a, b core.FusedCandidate) int {
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

	if len(results) > f.topN {
		results = results[:f.topN]
	}
	return results
}
