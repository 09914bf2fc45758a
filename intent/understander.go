package intent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/appscout/appscout/ai"
	"github.com/appscout/appscout/core"
)

// Fallback keyword weight when the extractor is unavailable. The naive
// tokenizer has no basis for ranking terms, so all get the same weight.
const fallbackWeight = 0.5

// Understander turns raw query text into a structured Query.
type Understander struct {
	extractor ai.IntentExtractor
	logger    *slog.Logger
}

// Option configures an Understander.
type Option func(*Understander) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(u *Understander) error {
		if logger == nil {
			logger = slog.Default()
		}
		u.logger = logger
		return nil
	}
}

// NewUnderstander creates a new query understander.
func NewUnderstander(extractor ai.IntentExtractor, opts ...Option) (*Understander, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	u := &Understander{
		extractor: extractor,
		logger:    slog.Default().With("component", "intent"),
	}

	for _, opt := range opts {
		if err := opt(u); err != nil {
			return nil, err
		}
	}

	return u, nil
}

// Understand extracts weighted keywords and intent categories from the query
// text. Profile lifestyle tags, when present, are appended to the extraction
// context so the model can bias toward the user's interests. On extractor
// failure the query falls back to naive tokenization and the returned
// degraded flag is set; understanding never fails the request outright.
func (u *Understander) Understand(ctx context.Context, queryText string, profile *core.UserProfile) (*core.Query, bool, error) {
	trimmed := strings.TrimSpace(queryText)
	if trimmed == "" {
		return nil, false, ErrEmptyQuery
	}

	query := &core.Query{
		RawText: trimmed,
		Profile: profile,
	}

	extracted, err := u.extractor.ExtractIntent(ctx, extractionContext(trimmed, profile))
	if err != nil {
		u.logger.Warn("intent extraction failed, using naive tokenization",
			"error", err)
		query.Keywords = fallbackKeywords(trimmed)
		return query, true, nil
	}

	query.Keywords = make([]core.QueryKeyword, 0, len(extracted.Keywords))
	for _, kw := range extracted.Keywords {
		query.Keywords = append(query.Keywords, core.QueryKeyword{
			Term:   strings.ToLower(kw.Term),
			Weight: clamp01(kw.Weight),
		})
	}
	query.Categories = make([]core.QueryCategory, 0, len(extracted.Categories))
	for _, cat := range extracted.Categories {
		query.Categories = append(query.Categories, core.QueryCategory{
			Name:       cat.Name,
			Confidence: clamp01(cat.Confidence),
		})
	}

	// Extractor returned nothing usable; treat like a failure
	if len(query.Keywords) == 0 {
		u.logger.Warn("intent extraction returned no keywords, using naive tokenization")
		query.Keywords = fallbackKeywords(trimmed)
		return query, true, nil
	}

	return query, false, nil
}

// extractionContext builds the extractor input from query text and profile.
func extractionContext(queryText string, profile *core.UserProfile) string {
	if profile == nil || len(profile.LifestyleTags) == 0 {
		return queryText
	}
	return queryText + "\nUser interests: " + strings.Join(profile.LifestyleTags, ", ")
}

// fallbackKeywords tokenizes the query and assigns every term the uniform
// fallback weight.
func fallbackKeywords(queryText string) []core.QueryKeyword {
	terms := tokenizeAndFilter(queryText)
	keywords := make([]core.QueryKeyword, 0, len(terms))
	for _, term := range terms {
		keywords = append(keywords, core.QueryKeyword{Term: term, Weight: fallbackWeight})
	}
	return keywords
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
