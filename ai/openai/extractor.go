// Copyright 2025 Appscout Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/appscout/appscout/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// IntentExtractor implements ai.IntentExtractor using OpenAI-compatible chat APIs.
type IntentExtractor struct {
	client           llms.Model
	minKeywordWeight float64
	logger           *slog.Logger
}

// keyword and category are internal types used for JSON unmarshaling.
// They match the structure expected from the LLM.
type keyword struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

type category struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// intentResponse is the wrapper structure for the LLM's JSON response.
type intentResponse struct {
	Keywords   []keyword  `json:"keywords"`
	Categories []category `json:"categories"`
}

// newIntentExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newIntentExtractor(config *ai.Config) (*IntentExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for classification
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ClassifierHost),
		openai.WithToken("none"),
		openai.WithModel(config.ClassifierModel),
	)
	if err != nil {
		return nil, err
	}

	return &IntentExtractor{
		client:           client,
		minKeywordWeight: config.MinKeywordWeight,
		logger:           slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewIntentExtractor creates a new intent extractor using the provided configuration.
//
// Returns ai.IntentExtractor interface to enforce abstraction.
func NewIntentExtractor(config *ai.Config) (ai.IntentExtractor, error) {
	return newIntentExtractor(config)
}

// ExtractIntent extracts weighted keywords and intent categories from query
// text using an LLM. Keywords below the minimum weight are filtered out.
func (e *IntentExtractor) ExtractIntent(ctx context.Context, text string) (*ai.Intent, error) {
	text = scrubString(text)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildIntentPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result intentResponse
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, fmt.Errorf("%w: %w", ai.ErrServiceUnavailable, err)
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return &ai.Intent{}, nil
		}

		responseText := repairJSON(stripFences(response.Choices[0].Content))

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing classifier response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse classifier response after retries", "err", lastErr)
		return nil, fmt.Errorf("%w: %w", ai.ErrMalformedResponse, lastErr)
	}

	// Filter and clamp
	intent := &ai.Intent{}
	for _, k := range result.Keywords {
		if k.Term == "" || k.Weight < e.minKeywordWeight {
			continue
		}
		intent.Keywords = append(intent.Keywords, ai.ExtractedKeyword{
			Term:   k.Term,
			Weight: clamp01(k.Weight),
		})
	}
	for _, c := range result.Categories {
		if c.Name == "" {
			continue
		}
		intent.Categories = append(intent.Categories, ai.ExtractedCategory{
			Name:       c.Name,
			Confidence: clamp01(c.Confidence),
		})
	}

	e.logger.Debug("extracted intent",
		"keywords", len(intent.Keywords),
		"categories", len(intent.Categories))
	return intent, nil
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
