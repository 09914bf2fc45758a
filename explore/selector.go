package explore

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/appscout/appscout/core"
)

// Defaults for the exploration stage.
const (
	DefaultExploitShare     = 0.7
	DefaultExploreShare     = 0.2
	DefaultSerendipityShare = 0.1

	DefaultCategoryCap          = 3
	DefaultDiversityDiscount    = 0.7
	DefaultSerendipityMinRating = 4.0
)

// interleavePattern fixes the delivery order of strategy buckets.
var interleavePattern = []core.Strategy{
	core.StrategyExploitation,
	core.StrategyExploration,
	core.StrategyExploitation,
	core.StrategySerendipity,
}

// Selector splits the reranked list into exploitation, exploration and
// serendipity buckets and interleaves them with category diversity applied.
type Selector struct {
	exploitShare      float64
	exploreShare      float64
	serendipityShare  float64
	categoryCap       int
	diversityDiscount float64
	minSerendipity    float64
	logger            *slog.Logger
}

// Option configures a Selector.
type Option func(*Selector) error

// WithShares overrides the bucket shares. They must sum to 1.
func WithShares(exploit, explore, serendipity float64) Option {
	return func(s *Selector) error {
		if exploit < 0 || explore < 0 || serendipity < 0 {
			return ErrInvalidShares
		}
		if math.Abs(exploit+explore+serendipity-1) > 1e-9 {
			return ErrInvalidShares
		}
		s.exploitShare = exploit
		s.exploreShare = explore
		s.serendipityShare = serendipity
		return nil
	}
}

// WithCategoryCap overrides how many items of one category appear before
// diversity discounting kicks in.
func WithCategoryCap(cap int) Option {
	return func(s *Selector) error {
		if cap < 1 {
			return fmt.Errorf("category cap must be >= 1, got %d", cap)
		}
		s.categoryCap = cap
		return nil
	}
}

// WithSerendipityMinRating overrides the quality floor for serendipity picks.
func WithSerendipityMinRating(min float64) Option {
	return func(s *Selector) error {
		if min < 0 || min > 5 {
			return fmt.Errorf("serendipity min rating must be in [0,5], got %f", min)
		}
		s.minSerendipity = min
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSelector creates a selector with the 70/20/10 default split.
func NewSelector(opts ...Option) (*Selector, error) {
	s := &Selector{
		exploitShare:      DefaultExploitShare,
		exploreShare:      DefaultExploreShare,
		serendipityShare:  DefaultSerendipityShare,
		categoryCap:       DefaultCategoryCap,
		diversityDiscount: DefaultDiversityDiscount,
		minSerendipity:    DefaultSerendipityMinRating,
		logger:            slog.Default().With("component", "explore"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// bucketCounts splits limit across the three buckets with the largest
// remainder method so the counts always sum to limit.
func (s *Selector) bucketCounts(limit int) (exploit, explore, serendipity int) {
	type share struct {
		value     float64
		count     *int
		remainder float64
	}
	shares := []share{
		{value: s.exploitShare, count: &exploit},
		{value: s.exploreShare, count: &explore},
		{value: s.serendipityShare, count: &serendipity},
	}

	assigned := 0
	for i := range shares {
		exact := shares[i].value * float64(limit)
		*shares[i].count = int(math.Floor(exact))
		shares[i].remainder = exact - math.Floor(exact)
		assigned += *shares[i].count
	}
	// Hand leftover slots to the largest remainders; ties keep the
	// exploit > explore > serendipity declaration order
	for assigned < limit {
		best := 0
		for i := 1; i < len(shares); i++ {
			if shares[i].remainder > shares[best].remainder {
				best = i
			}
		}
		*shares[best].count++
		shares[best].remainder = -1
		assigned++
	}
	return exploit, explore, serendipity
}

// Select builds the final result list.
//
// ranked must be sorted by rerank score descending. arms and items supply
// bandit state and catalog metadata; both may be missing entries, which fall
// back to the uniform prior and no category. Output length is
// min(limit, len(ranked)) with 1-based ranks and strategies assigned.
func (s *Selector) Select(queryText string, profile *core.UserProfile, ranked []core.RankedResult, arms map[core.ID]*core.BanditArm, items map[core.ID]*core.Item, limit int) []core.RankedResult {
	if len(ranked) == 0 || limit <= 0 {
		return nil
	}
	if limit > len(ranked) {
		limit = len(ranked)
	}
	sampler := NewSampler(queryText, profile, arms)

	nExploit, nExplore, nSerendipity := s.bucketCounts(limit)

	remaining := slices.Clone(ranked)

	// Exploitation: top reranked
	exploit := slices.Clone(remaining[:nExploit])
	for i := range exploit {
		exploit[i].Strategy = core.StrategyExploitation
	}
	remaining = remaining[nExploit:]

	// Exploration: Thompson sample over what's left
	explore := s.sampleExploration(sampler, &remaining, arms, nExplore)

	// Serendipity: uniform among remaining high-quality items, backfilled
	// from the rest when too few qualify
	serendipity := s.pickSerendipity(sampler, &remaining, items, nSerendipity)

	buckets := map[core.Strategy]*[]core.RankedResult{
		core.StrategyExploitation: &exploit,
		core.StrategyExploration:  &explore,
		core.StrategySerendipity:  &serendipity,
	}

	// Candidates that missed every bucket stay available as diversity
	// replacements during the interleave
	final := s.interleave(buckets, remaining, items, limit)
	for i := range final {
		final[i].Rank = i + 1
	}

	s.logger.Debug("selection complete",
		"limit", limit,
		"exploit", nExploit,
		"explore", nExplore,
		"serendipity", nSerendipity)
	return final
}

// sampleExploration draws a Beta sample per remaining candidate and takes
// the n highest draws.
func (s *Selector) sampleExploration(sampler *Sampler, remaining *[]core.RankedResult, arms map[core.ID]*core.BanditArm, n int) []core.RankedResult {
	if n <= 0 || len(*remaining) == 0 {
		return nil
	}

	type draw struct {
		result core.RankedResult
		value  float64
	}
	// Sample in slice order so the draw sequence is reproducible
	draws := make([]draw, 0, len(*remaining))
	for _, result := range *remaining {
		alpha, beta := 1.0, 1.0
		if arm := arms[result.ItemId]; arm != nil {
			alpha, beta = arm.Alpha, arm.Beta
		}
		draws = append(draws, draw{result: result, value: sampler.SampleBeta(alpha, beta)})
	}
	slices.SortStableFunc(draws, func(a, b draw) int {
		if a.value > b.value {
			return -1
		}
		if a.value < b.value {
			return 1
		}
		return 0
	})

	if n > len(draws) {
		n = len(draws)
	}
	picked := make([]core.RankedResult, 0, n)
	pickedIds := make(map[core.ID]bool, n)
	for i := 0; i < n; i++ {
		result := draws[i].result
		result.Strategy = core.StrategyExploration
		picked = append(picked, result)
		pickedIds[result.ItemId] = true
	}

	rest := (*remaining)[:0]
	for _, result := range *remaining {
		if !pickedIds[result.ItemId] {
			rest = append(rest, result)
		}
	}
	*remaining = rest
	return picked
}

// pickSerendipity uniformly samples n candidates rated at or above the
// quality floor, backfilling from the rest when too few qualify.
func (s *Selector) pickSerendipity(sampler *Sampler, remaining *[]core.RankedResult, items map[core.ID]*core.Item, n int) []core.RankedResult {
	if n <= 0 || len(*remaining) == 0 {
		return nil
	}

	var qualified, rest []core.RankedResult
	for _, result := range *remaining {
		item := items[result.ItemId]
		if item != nil && item.Rating >= s.minSerendipity {
			qualified = append(qualified, result)
		} else {
			rest = append(rest, result)
		}
	}

	picked := make([]core.RankedResult, 0, n)
	for len(picked) < n && len(qualified) > 0 {
		idx := sampler.Intn(len(qualified))
		result := qualified[idx]
		result.Strategy = core.StrategySerendipity
		picked = append(picked, result)
		qualified = append(qualified[:idx], qualified[idx+1:]...)
	}
	// Backfill in rank order when quality picks run out
	for len(picked) < n && len(rest) > 0 {
		result := rest[0]
		result.Strategy = core.StrategySerendipity
		picked = append(picked, result)
		rest = rest[1:]
	}

	*remaining = append(qualified, rest...)
	return picked
}

// interleave merges the buckets following the fixed pattern. Category
// diversity is enforced across buckets: when a slot's bucket offers only
// capped-category candidates, the pick is deferred in favor of the best
// uncapped candidate from any bucket, then from the unbucketed reserve.
// Capped candidates are never dropped; they surface once nothing uncapped
// is left.
func (s *Selector) interleave(buckets map[core.Strategy]*[]core.RankedResult, reserve []core.RankedResult, items map[core.ID]*core.Item, limit int) []core.RankedResult {
	final := make([]core.RankedResult, 0, limit)
	categoryCounts := make(map[string]int)
	patternIdx := 0

	record := func(result core.RankedResult) {
		final = append(final, result)
		if item := items[result.ItemId]; item != nil {
			for _, category := range item.Categories {
				categoryCounts[category]++
			}
		}
	}

	takeFrom := func(strategy core.Strategy) bool {
		bucket := buckets[strategy]
		if len(*bucket) == 0 {
			return false
		}
		idx := s.chooseDiverse(*bucket, items, categoryCounts)
		if s.atCap((*bucket)[idx], items, categoryCounts) {
			if alt, ok := s.takeUncapped(buckets, &reserve, strategy, items, categoryCounts); ok {
				record(alt)
				return true
			}
		}
		result := (*bucket)[idx]
		*bucket = append((*bucket)[:idx], (*bucket)[idx+1:]...)
		record(result)
		return true
	}

	for len(final) < limit {
		strategy := interleavePattern[patternIdx%len(interleavePattern)]
		patternIdx++

		if takeFrom(strategy) {
			continue
		}
		// Bucket exhausted; fall back in exploit > explore > serendipity order
		took := false
		for _, fallback := range []core.Strategy{core.StrategyExploitation, core.StrategyExploration, core.StrategySerendipity} {
			if takeFrom(fallback) {
				took = true
				break
			}
		}
		if !took {
			break
		}
	}
	return final
}

// takeUncapped removes and returns the best candidate whose categories have
// not all hit the cap, searching the buckets first and then the unbucketed
// reserve. Reserve picks adopt the requesting slot's strategy.
func (s *Selector) takeUncapped(buckets map[core.Strategy]*[]core.RankedResult, reserve *[]core.RankedResult, strategy core.Strategy, items map[core.ID]*core.Item, categoryCounts map[string]int) (core.RankedResult, bool) {
	var bestBucket *[]core.RankedResult
	bestIdx := -1
	bestScore := 0.0
	for _, source := range []core.Strategy{core.StrategyExploitation, core.StrategyExploration, core.StrategySerendipity} {
		bucket := buckets[source]
		for i, result := range *bucket {
			if s.atCap(result, items, categoryCounts) {
				continue
			}
			if bestIdx < 0 || result.Score > bestScore {
				bestBucket, bestIdx, bestScore = bucket, i, result.Score
			}
		}
	}
	if bestIdx >= 0 {
		result := (*bestBucket)[bestIdx]
		*bestBucket = append((*bestBucket)[:bestIdx], (*bestBucket)[bestIdx+1:]...)
		return result, true
	}

	for i, result := range *reserve {
		if s.atCap(result, items, categoryCounts) {
			continue
		}
		if bestIdx < 0 || result.Score > bestScore {
			bestIdx, bestScore = i, result.Score
		}
	}
	if bestIdx >= 0 {
		result := (*reserve)[bestIdx]
		*reserve = append((*reserve)[:bestIdx], (*reserve)[bestIdx+1:]...)
		result.Strategy = strategy
		return result, true
	}
	return core.RankedResult{}, false
}

// chooseDiverse picks the bucket entry with the highest effective score,
// where candidates whose every category already hit the cap are discounted.
func (s *Selector) chooseDiverse(bucket []core.RankedResult, items map[core.ID]*core.Item, categoryCounts map[string]int) int {
	best := 0
	bestScore := s.effectiveScore(bucket[0], items, categoryCounts)
	for i := 1; i < len(bucket); i++ {
		score := s.effectiveScore(bucket[i], items, categoryCounts)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}

// atCap reports whether every category of the candidate's item already hit
// the cap. Items without catalog metadata never cap.
func (s *Selector) atCap(result core.RankedResult, items map[core.ID]*core.Item, categoryCounts map[string]int) bool {
	item := items[result.ItemId]
	if item == nil || len(item.Categories) == 0 {
		return false
	}
	for _, category := range item.Categories {
		if categoryCounts[category] < s.categoryCap {
			return false
		}
	}
	return true
}

func (s *Selector) effectiveScore(result core.RankedResult, items map[core.ID]*core.Item, categoryCounts map[string]int) float64 {
	if s.atCap(result, items, categoryCounts) {
		return result.Score * s.diversityDiscount
	}
	return result.Score
}
