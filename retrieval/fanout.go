package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/appscout/appscout/core"
)

// DefaultRetrieverTimeout bounds each retriever within the fan-out.
const DefaultRetrieverTimeout = 300 * time.Millisecond

// Group fans a query out to several retrievers concurrently and collects
// their candidate lists by method.
//
// A retriever that errors or exceeds its timeout contributes an empty list;
// one slow or broken signal degrades recall but never fails the request.
type Group struct {
	retrievers []Retriever
	timeout    time.Duration
	logger     *slog.Logger
}

// GroupOption configures a Group.
type GroupOption func(*Group) error

// WithRetrieverTimeout overrides the per-retriever timeout.
func WithRetrieverTimeout(timeout time.Duration) GroupOption {
	return func(g *Group) error {
		if timeout <= 0 {
			return fmt.Errorf("retriever timeout must be positive, got %v", timeout)
		}
		g.timeout = timeout
		return nil
	}
}

// WithGroupLogger sets a custom logger.
func WithGroupLogger(logger *slog.Logger) GroupOption {
	return func(g *Group) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
		return nil
	}
}

// NewGroup creates a fan-out group over the given retrievers.
func NewGroup(retrievers []Retriever, opts ...GroupOption) (*Group, error) {
	if len(retrievers) == 0 {
		return nil, ErrNoRetrievers
	}

	g := &Group{
		retrievers: retrievers,
		timeout:    DefaultRetrieverTimeout,
		logger:     slog.Default().With("component", "retrieval"),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// RetrieveAll runs every retriever concurrently and returns candidates
// keyed by method. Every configured method is present in the result, with
// an empty list for retrievers that failed or timed out. The returned
// degraded flag is set when any retriever fell back to empty.
func (g *Group) RetrieveAll(ctx context.Context, query *core.Query, limit int, exclude map[core.ID]bool) (map[core.Method][]core.RetrievalCandidate, bool) {
	results := make(map[core.Method][]core.RetrievalCandidate, len(g.retrievers))
	var mu sync.Mutex
	var wg sync.WaitGroup
	degraded := false

	for _, retriever := range g.retrievers {
		wg.Add(1)
		go func(retriever Retriever) {
			defer wg.Done()

			branchCtx, cancel := context.WithTimeout(ctx, g.timeout)
			defer cancel()

			start := time.Now()
			candidates, err := retriever.Retrieve(branchCtx, query, limit, exclude)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				g.logger.Warn("retriever failed, contributing no candidates",
					"method", retriever.Method(),
					"elapsed", time.Since(start),
					"error", err)
				results[retriever.Method()] = nil
				degraded = true
				return
			}
			results[retriever.Method()] = candidates
		}(retriever)
	}
	wg.Wait()

	return results, degraded
}
