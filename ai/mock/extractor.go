package mock

import (
	"context"
	"strings"

	"github.com/appscout/appscout/ai"
)

// MockIntentExtractor is a test double for ai.IntentExtractor.
// It allows custom behavior injection via function fields.
type MockIntentExtractor struct {
	// ExtractIntentFunc is called by ExtractIntent if set.
	// If nil, uses default simple word extraction.
	ExtractIntentFunc func(ctx context.Context, text string) (*ai.Intent, error)

	callCount int
}

// NewMockIntentExtractor creates a mock intent extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockIntentExtractor() *MockIntentExtractor {
	return &MockIntentExtractor{}
}

// ExtractIntent extracts simple mock keywords from text.
// Default behavior: splits text by spaces and weights earlier words higher.
func (m *MockIntentExtractor) ExtractIntent(ctx context.Context, text string) (*ai.Intent, error) {
	m.callCount++

	if m.ExtractIntentFunc != nil {
		return m.ExtractIntentFunc(ctx, text)
	}

	words := strings.Fields(strings.ToLower(text))
	intent := &ai.Intent{}
	weight := 1.0
	for i, word := range words {
		if i >= 8 {
			break
		}

		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word == "" {
			continue
		}

		intent.Keywords = append(intent.Keywords, ai.ExtractedKeyword{
			Term:   word,
			Weight: weight,
		})

		// Decrease weight for each subsequent keyword
		if weight > 0.2 {
			weight -= 0.1
		}
	}

	return intent, nil
}

// CallCount returns the number of times ExtractIntent was called.
func (m *MockIntentExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockIntentExtractor) Reset() {
	m.callCount = 0
	m.ExtractIntentFunc = nil
}
