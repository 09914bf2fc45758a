package intent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appscout/appscout/ai"
	"github.com/appscout/appscout/ai/mock"
	"github.com/appscout/appscout/core"
)

func TestUnderstandExtractsKeywords(t *testing.T) {
	extractor := &mock.MockIntentExtractor{
		ExtractIntentFunc: func(ctx context.Context, text string) (*ai.Intent, error) {
			return &ai.Intent{
				Keywords: []ai.ExtractedKeyword{
					{Term: "Budget", Weight: 0.9},
					{Term: "tracking", Weight: 1.4},
				},
				Categories: []ai.ExtractedCategory{
					{Name: "Finance", Confidence: 0.95},
				},
			}, nil
		},
	}

	u, err := NewUnderstander(extractor)
	require.NoError(t, err)

	query, degraded, err := u.Understand(context.Background(), "I need a budget tracking app", nil)
	require.NoError(t, err)
	assert.False(t, degraded)
	require.Len(t, query.Keywords, 2)
	assert.Equal(t, "budget", query.Keywords[0].Term)
	assert.Equal(t, 0.9, query.Keywords[0].Weight)
	assert.Equal(t, 1.0, query.Keywords[1].Weight, "weights are clamped to [0,1]")
	require.Len(t, query.Categories, 1)
	assert.Equal(t, "Finance", query.Categories[0].Name)
}

func TestUnderstandFallsBackOnExtractorFailure(t *testing.T) {
	extractor := &mock.MockIntentExtractor{
		ExtractIntentFunc: func(ctx context.Context, text string) (*ai.Intent, error) {
			return nil, ai.ErrServiceUnavailable
		},
	}

	u, err := NewUnderstander(extractor)
	require.NoError(t, err)

	query, degraded, err := u.Understand(context.Background(), "I want a budget tracker!", nil)
	require.NoError(t, err)
	assert.True(t, degraded)
	require.NotEmpty(t, query.Keywords)
	for _, kw := range query.Keywords {
		assert.Equal(t, fallbackWeight, kw.Weight)
	}
	terms := make([]string, 0, len(query.Keywords))
	for _, kw := range query.Keywords {
		terms = append(terms, kw.Term)
	}
	assert.Contains(t, terms, "budget")
	assert.Contains(t, terms, "tracker")
	assert.NotContains(t, terms, "i", "stop words are filtered")
}

func TestUnderstandFallsBackOnEmptyExtraction(t *testing.T) {
	extractor := &mock.MockIntentExtractor{
		ExtractIntentFunc: func(ctx context.Context, text string) (*ai.Intent, error) {
			return &ai.Intent{}, nil
		},
	}

	u, err := NewUnderstander(extractor)
	require.NoError(t, err)

	query, degraded, err := u.Understand(context.Background(), "meditation timer", nil)
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.NotEmpty(t, query.Keywords)
}

func TestUnderstandIncludesLifestyleTags(t *testing.T) {
	var received string
	extractor := &mock.MockIntentExtractor{
		ExtractIntentFunc: func(ctx context.Context, text string) (*ai.Intent, error) {
			received = text
			return &ai.Intent{
				Keywords: []ai.ExtractedKeyword{{Term: "hiking", Weight: 0.8}},
			}, nil
		},
	}

	u, err := NewUnderstander(extractor)
	require.NoError(t, err)

	profile := &core.UserProfile{
		Id:            1,
		SessionKey:    "s",
		LifestyleTags: []string{"outdoors", "fitness"},
	}
	_, _, err = u.Understand(context.Background(), "trail maps", profile)
	require.NoError(t, err)
	assert.Contains(t, received, "trail maps")
	assert.Contains(t, received, "outdoors, fitness")
}

func TestUnderstandRejectsEmptyQuery(t *testing.T) {
	u, err := NewUnderstander(&mock.MockIntentExtractor{})
	require.NoError(t, err)

	_, _, err = u.Understand(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestNewUnderstanderRequiresExtractor(t *testing.T) {
	_, err := NewUnderstander(nil)
	assert.ErrorIs(t, err, ErrExtractorRequired)
}

func TestTokenizeAndFilter(t *testing.T) {
	terms := tokenizeAndFilter("The quick, quick brown fox!")
	assert.Equal(t, []string{"quick", "brown", "fox"}, terms)
}
