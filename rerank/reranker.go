package rerank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/appscout/appscout/ai"
	"github.com/appscout/appscout/core"
)

// Defaults for the reranking stage.
const (
	DefaultMaxCandidates = 30
	DefaultBatchSize     = 8
	DefaultRRFWeight     = 0.3
	DefaultLLMWeight     = 0.7
	DefaultMaxAttempts   = 3
	DefaultBaseDelay     = 200 * time.Millisecond
	DefaultPoolSize      = 4

	minBatchSize = 6
	maxBatchSize = 10

	relevanceScale = 10.0
)

// Reranker re-scores fused candidates with an LLM relevance judge.
//
// Judging runs in fixed-size batches through a bounded worker pool. A batch
// that fails after retries falls back to its normalized fusion scores with
// zero confidence; reranking degrades, it never fails the request.
type Reranker struct {
	judge         ai.RelevanceJudge
	pool          *ants.Pool
	maxCandidates int
	batchSize     int
	rrfWeight     float64
	llmWeight     float64
	maxAttempts   int
	baseDelay     time.Duration
	logger        *slog.Logger
}

// Option configures a Reranker.
type Option func(*Reranker) error

// WithBatchSize sets how many candidates each judge call carries.
// Must be between 6 and 10.
func WithBatchSize(size int) Option {
	return func(r *Reranker) error {
		if size < minBatchSize || size > maxBatchSize {
			return fmt.Errorf("%w: got %d", ErrInvalidBatchSize, size)
		}
		r.batchSize = size
		return nil
	}
}

// WithMaxCandidates caps how many fused candidates are judged.
func WithMaxCandidates(max int) Option {
	return func(r *Reranker) error {
		if max < 1 {
			return fmt.Errorf("max candidates must be >= 1, got %d", max)
		}
		r.maxCandidates = max
		return nil
	}
}

// WithScoreWeights sets the fusion/LLM blend weights.
func WithScoreWeights(rrfWeight, llmWeight float64) Option {
	return func(r *Reranker) error {
		if rrfWeight < 0 || llmWeight < 0 {
			return fmt.Errorf("score weights must be >= 0, got %f/%f", rrfWeight, llmWeight)
		}
		r.rrfWeight = rrfWeight
		r.llmWeight = llmWeight
		return nil
	}
}

// WithPoolSize sets the in-flight judge call cap.
func WithPoolSize(size int) Option {
	return func(r *Reranker) error {
		if size < 1 {
			size = 1
		}
		if r.pool != nil {
			r.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithRetry sets the retry policy for rate-limited judge calls.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(r *Reranker) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		r.maxAttempts = maxAttempts
		r.baseDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewReranker creates a reranker around the given judge.
func NewReranker(judge ai.RelevanceJudge, opts ...Option) (*Reranker, error) {
	if judge == nil {
		return nil, ErrJudgeRequired
	}

	pool, err := ants.NewPool(DefaultPoolSize)
	if err != nil {
		return nil, err
	}

	r := &Reranker{
		judge:         judge,
		pool:          pool,
		maxCandidates: DefaultMaxCandidates,
		batchSize:     DefaultBatchSize,
		rrfWeight:     DefaultRRFWeight,
		llmWeight:     DefaultLLMWeight,
		maxAttempts:   DefaultMaxAttempts,
		baseDelay:     DefaultBaseDelay,
		logger:        slog.Default().With("component", "rerank"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.pool.Release()
			return nil, err
		}
	}
	return r, nil
}

// Release frees the worker pool.
func (r *Reranker) Release() {
	r.pool.Release()
}

// Rerank blends normalized fusion scores with LLM relevance judgments.
//
// final = rrfWeight×normalized(fused) + llmWeight×(relevance/10)
//
// items supplies the catalog metadata shown to the judge; candidates whose
// item is missing from the map keep their fallback score. Results come back
// sorted by blended score descending, ties by ascending item id. The returned
// flag is true when any batch fell back to fusion-only scoring.
func (r *Reranker) Rerank(ctx context.Context, queryText string, fused []core.FusedCandidate, items map[core.ID]*core.Item) ([]core.RankedResult, bool) {
	if len(fused) > r.maxCandidates {
		fused = fused[:r.maxCandidates]
	}
	if len(fused) == 0 {
		return nil, false
	}

	// Normalize fusion scores to [0,1] by the batch maximum. Input is sorted
	// by fused score, so the first candidate carries the max.
	maxFused := fused[0].Score
	normalized := make([]float64, len(fused))
	for i, candidate := range fused {
		if maxFused > 0 {
			normalized[i] = candidate.Score / maxFused
		}
	}

	results := make([]core.RankedResult, len(fused))
	for i, candidate := range fused {
		// Fallback scoring, overwritten when judging succeeds
		results[i] = core.RankedResult{
			ItemId:     candidate.ItemId,
			Score:      r.rrfWeight * normalized[i],
			Confidence: 0,
		}
	}

	degraded := false
	var mu sync.Mutex
	var wg sync.WaitGroup

	for start := 0; start < len(fused); start += r.batchSize {
		end := start + r.batchSize
		if end > len(fused) {
			end = len(fused)
		}

		start, end := start, end
		wg.Add(1)
		submitErr := r.pool.Submit(func() {
			defer wg.Done()
			judgments, err := r.judgeBatch(ctx, queryText, fused[start:end], items)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				r.logger.Warn("judge batch failed, keeping fusion scores",
					"batch_start", start,
					"batch_size", end-start,
					"error", err)
				degraded = true
				return
			}
			for i, judgment := range judgments {
				idx := start + i
				results[idx].Score = r.rrfWeight*normalized[idx] + r.llmWeight*(judgment.Relevance/relevanceScale)
				results[idx].Confidence = judgment.Confidence
				results[idx].Explanation = judgment.Explanation
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			degraded = true
			mu.Unlock()
			r.logger.Warn("judge batch submission rejected", "error", submitErr)
		}
	}
	wg.Wait()

	// A high judgment can move a candidate past items that out-fused it
	slices.SortFunc(results, func(a, b core.RankedResult) int {
		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}
			return 1
		}
		if a.ItemId != b.ItemId {
			if a.ItemId < b.ItemId {
				return -1
			}
			return 1
		}
		return 0
	})

	return results, degraded
}

// judgeBatch runs one judge call with retry on rate limiting.
func (r *Reranker) judgeBatch(ctx context.Context, queryText string, batch []core.FusedCandidate, items map[core.ID]*core.Item) ([]ai.Judgment, error) {
	candidates := make([]ai.JudgeCandidate, 0, len(batch))
	for _, candidate := range batch {
		item := items[candidate.ItemId]
		if item == nil {
			candidates = append(candidates, ai.JudgeCandidate{Id: uint64(candidate.ItemId)})
			continue
		}
		candidates = append(candidates, ai.JudgeCandidate{
			Id:         uint64(item.Id),
			Name:       item.Name,
			OneLiner:   item.OneLiner,
			Categories: item.Categories,
		})
	}

	var judgments []ai.Judgment
	var callErr error
	retryErr := RetryWithBackoff(ctx, func() error {
		judgments, callErr = r.judge.JudgeRelevance(ctx, queryText, candidates)
		if callErr != nil && !errors.Is(callErr, ai.ErrRateLimited) {
			// Only rate limiting is retryable; other failures go straight
			// to fallback
			return nil
		}
		return callErr
	}, r.maxAttempts, r.baseDelay)
	if retryErr != nil {
		return nil, retryErr
	}
	if callErr != nil {
		return nil, callErr
	}
	if len(judgments) != len(candidates) {
		return nil, fmt.Errorf("%w: judge returned %d judgments for %d candidates",
			ai.ErrMalformedResponse, len(judgments), len(candidates))
	}
	return judgments, nil
}
