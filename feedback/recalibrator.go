package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/storage"
)

// DefaultLearningRate controls how far recalibration moves keyword weights
// toward observed success rates.
const DefaultLearningRate = 0.3

// KeywordStats aggregates outcomes for one keyword across interactions.
type KeywordStats struct {
	Term        string
	Impressions int64
	Clicks      int64
}

// SuccessRate returns clicks over impressions, 0 when unseen.
func (s KeywordStats) SuccessRate() float64 {
	if s.Impressions == 0 {
		return 0
	}
	return float64(s.Clicks) / float64(s.Impressions)
}

// Recalibrator recomputes item keyword weights from interaction history.
// It runs as a batch job, never on the serving path.
type Recalibrator struct {
	catalog      storage.CatalogRepository
	interactions storage.InteractionRepository
	learningRate float64
	logger       *slog.Logger
}

// RecalibratorOption configures a Recalibrator.
type RecalibratorOption func(*Recalibrator) error

// WithLearningRate overrides how aggressively weights move.
func WithLearningRate(rate float64) RecalibratorOption {
	return func(r *Recalibrator) error {
		if rate <= 0 || rate > 1 {
			return fmt.Errorf("learning rate must be in (0,1], got %f", rate)
		}
		r.learningRate = rate
		return nil
	}
}

// NewRecalibrator creates a keyword weight recalibrator.
func NewRecalibrator(catalog storage.CatalogRepository, interactions storage.InteractionRepository, opts ...RecalibratorOption) (*Recalibrator, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if interactions == nil {
		return nil, ErrInteractionsRequired
	}

	r := &Recalibrator{
		catalog:      catalog,
		interactions: interactions,
		learningRate: DefaultLearningRate,
		logger:       slog.Default().With("component", "feedback.recalibrator"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// CollectStats replays the interaction log from since and aggregates
// per-keyword impressions and clicks. A shown item contributes an impression
// to every keyword it carries; a click credits the same keywords.
func (r *Recalibrator) CollectStats(ctx context.Context, since time.Time) (map[string]*KeywordStats, error) {
	events, err := r.interactions.EventsSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("replaying interactions: %w", err)
	}

	stats := make(map[string]*KeywordStats)
	itemKeywords := make(map[core.ID][]string)

	for _, event := range events {
		clicked := idSet(event.Clicked)
		for _, shown := range event.Shown {
			terms, ok := itemKeywords[shown.ItemId]
			if !ok {
				item, err := r.catalog.GetItem(ctx, shown.ItemId)
				if err != nil {
					// Item may have left the catalog since the impression
					itemKeywords[shown.ItemId] = nil
					continue
				}
				for term := range item.Keywords {
					terms = append(terms, term)
				}
				itemKeywords[shown.ItemId] = terms
			}
			for _, term := range terms {
				entry := stats[term]
				if entry == nil {
					entry = &KeywordStats{Term: term}
					stats[term] = entry
				}
				entry.Impressions++
				if clicked[shown.ItemId] {
					entry.Clicks++
				}
			}
		}
	}

	r.logger.Info("keyword stats collected",
		"events", len(events),
		"keywords", len(stats))
	return stats, nil
}

// Recalibrate collects stats and moves every observed item keyword weight
// toward its success rate by the learning rate:
//
//	new = (1-lr)×old + lr×successRate
//
// Items whose keywords never appeared in an interaction are untouched.
func (r *Recalibrator) Recalibrate(ctx context.Context, since time.Time) (int, error) {
	stats, err := r.CollectStats(ctx, since)
	if err != nil {
		return 0, err
	}
	if len(stats) == 0 {
		return 0, nil
	}

	updated := 0
	for term, stat := range stats {
		items, err := r.catalog.FindByKeyword(ctx, term)
		if err != nil {
			return updated, fmt.Errorf("loading items for %q: %w", term, err)
		}
		rate := stat.SuccessRate()
		for _, item := range items {
			old, ok := item.Keywords[term]
			if !ok {
				continue
			}
			item.Keywords[term] = (1-r.learningRate)*old + r.learningRate*rate
			if err := r.catalog.AddItems(ctx, item); err != nil {
				return updated, fmt.Errorf("storing recalibrated item %d: %w", item.Id, err)
			}
			updated++
		}
	}

	r.logger.Info("keyword weights recalibrated", "updates", updated)
	return updated, nil
}
