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
	"net/http"
	"strings"

	"github.com/appscout/appscout/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// RelevanceJudge implements ai.RelevanceJudge using OpenAI-compatible chat APIs.
type RelevanceJudge struct {
	client llms.Model
	logger *slog.Logger
}

// judgment is an internal type used for JSON unmarshaling.
type judgment struct {
	Id          uint64  `json:"id"`
	Relevance   float64 `json:"relevance"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// judgeResponse is the wrapper structure for the LLM's JSON response.
type judgeResponse struct {
	Judgments []judgment `json:"judgments"`
}

// newRelevanceJudge is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newRelevanceJudge(config *ai.Config) (*RelevanceJudge, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.JudgeHost),
		openai.WithToken("none"),
		openai.WithModel(config.JudgeModel),
	)
	if err != nil {
		return nil, err
	}

	return &RelevanceJudge{
		client: client,
		logger: slog.Default().With("component", "openai-judge"),
	}, nil
}

// NewRelevanceJudge creates a new relevance judge using the provided configuration.
//
// Returns ai.RelevanceJudge interface to enforce abstraction.
func NewRelevanceJudge(config *ai.Config) (ai.RelevanceJudge, error) {
	return newRelevanceJudge(config)
}

// JudgeRelevance scores a batch of candidates against the query using an LLM.
// Judgments are returned in candidate order; candidates the model skipped get
// a zero-confidence judgment so callers can fall back per item.
func (j *RelevanceJudge) JudgeRelevance(ctx context.Context, query string, candidates []ai.JudgeCandidate) ([]ai.Judgment, error) {
	if len(candidates) == 0 {
		return []ai.Judgment{}, nil
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildJudgePrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildJudgeInput(query, candidates)),
			},
		},
	}

	response, err := j.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		j.logger.Error("failed to generate judgments", "candidates", len(candidates), "err", err)
		return nil, classifyTransportError(err)
	}

	if len(response.Choices) < 1 {
		return nil, fmt.Errorf("%w: model returned no choices", ai.ErrMalformedResponse)
	}

	responseText := repairJSON(stripFences(response.Choices[0].Content))

	var result judgeResponse
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		j.logger.Warn("error parsing judge response", "response", responseText, "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrMalformedResponse, err)
	}

	// Re-align to candidate order; missing ids get zero-confidence judgments.
	byId := make(map[uint64]judgment, len(result.Judgments))
	for _, jm := range result.Judgments {
		byId[jm.Id] = jm
	}

	judgments := make([]ai.Judgment, len(candidates))
	for i, c := range candidates {
		jm, ok := byId[c.Id]
		if !ok {
			j.logger.Debug("judge skipped candidate", "id", c.Id)
			judgments[i] = ai.Judgment{Id: c.Id}
			continue
		}
		judgments[i] = ai.Judgment{
			Id:          c.Id,
			Relevance:   clampRelevance(jm.Relevance),
			Confidence:  clamp01(jm.Confidence),
			Explanation: jm.Explanation,
		}
	}
	return judgments, nil
}

func clampRelevance(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// classifyTransportError maps upstream HTTP failures onto the ai sentinel
// errors so callers can distinguish rate limiting from outages.
func classifyTransportError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, fmt.Sprintf("%d", http.StatusTooManyRequests)) ||
		strings.Contains(strings.ToLower(msg), "rate limit") {
		return fmt.Errorf("%w: %w", ai.ErrRateLimited, err)
	}
	return fmt.Errorf("%w: %w", ai.ErrServiceUnavailable, err)
}
