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

package appscout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/appscout/appscout/ai"
	"github.com/appscout/appscout/ai/openai"
	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/explore"
	"github.com/appscout/appscout/feedback"
	"github.com/appscout/appscout/fusion"
	"github.com/appscout/appscout/intent"
	"github.com/appscout/appscout/rerank"
	"github.com/appscout/appscout/retrieval"
	"github.com/appscout/appscout/storage"
	"github.com/appscout/appscout/storage/badger"
)

// Stage labels one step of the recommendation pipeline.
type Stage string

const (
	StageReceived   Stage = "received"
	StageUnderstood Stage = "understood"
	StageRetrieved  Stage = "retrieved"
	StageFused      Stage = "fused"
	StageReranked   Stage = "reranked"
	StageSelected   Stage = "selected"
	StageDelivered  Stage = "delivered"
)

// Defaults for the engine.
const (
	DefaultLimit           = 10
	DefaultRequestDeadline = 2 * time.Second
	DefaultRetrievalLimit  = 50
)

// Request is one recommendation query.
type Request struct {
	QueryText     string
	ProfileId     core.ID
	LifestyleTags []string // Used when the profile has none stored
	Limit         int      // Defaults to DefaultLimit, must be in [1,100]
}

// Recommendation is one delivered result with its catalog item attached.
// Method is the primary retrieval signal that surfaced the item.
type Recommendation struct {
	Item        *core.Item
	Score       float64
	Explanation string
	Confidence  float64
	Strategy    core.Strategy
	Method      core.Method
	Rank        int
}

// Response carries the delivered list plus request diagnostics.
type Response struct {
	Results  []Recommendation
	Degraded bool
	Timings  map[Stage]time.Duration
}

// ShownItems converts the response into impression records for an
// InteractionEvent.
func (r *Response) ShownItems() []core.ShownItem {
	shown := make([]core.ShownItem, 0, len(r.Results))
	for _, result := range r.Results {
		shown = append(shown, core.ShownItem{
			ItemId: result.Item.Id,
			Rank:   result.Rank,
			Method: result.Method,
			Score:  result.Score,
		})
	}
	return shown
}

// Engine wires the full pipeline: understanding, retrieval fan-out, fusion,
// reranking, exploration and feedback.
type Engine struct {
	stores       *badger.Stores
	provider     ai.AIProvider
	understander *intent.Understander
	group        *retrieval.Group
	fuser        *fusion.Fuser
	reranker     *rerank.Reranker
	selector     *explore.Selector
	recorder     *feedback.Recorder

	deadline       time.Duration
	retrievalLimit int
	owned          bool // Close also closes stores and provider
	logger         *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig       *ai.Config
	deadline       time.Duration
	retrievalLimit int
	fuserOpts      []fusion.Option
	rerankerOpts   []rerank.Option
	selectorOpts   []explore.Option
	groupOpts      []retrieval.GroupOption
	logger         *slog.Logger
}

// WithAIConfig sets the AI provider configuration used by Open.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) { o.aiConfig = config }
}

// WithRequestDeadline overrides the per-request time budget.
func WithRequestDeadline(d time.Duration) EngineOption {
	return func(o *engineOptions) { o.deadline = d }
}

// WithRetrievalLimit overrides how many candidates each retriever may return.
func WithRetrievalLimit(n int) EngineOption {
	return func(o *engineOptions) { o.retrievalLimit = n }
}

// WithFusionOptions forwards options to the fuser.
func WithFusionOptions(opts ...fusion.Option) EngineOption {
	return func(o *engineOptions) { o.fuserOpts = append(o.fuserOpts, opts...) }
}

// WithRerankOptions forwards options to the reranker.
func WithRerankOptions(opts ...rerank.Option) EngineOption {
	return func(o *engineOptions) { o.rerankerOpts = append(o.rerankerOpts, opts...) }
}

// WithExploreOptions forwards options to the selector.
func WithExploreOptions(opts ...explore.Option) EngineOption {
	return func(o *engineOptions) { o.selectorOpts = append(o.selectorOpts, opts...) }
}

// WithRetrievalOptions forwards options to the fan-out group.
func WithRetrievalOptions(opts ...retrieval.GroupOption) EngineOption {
	return func(o *engineOptions) { o.groupOpts = append(o.groupOpts, opts...) }
}

// WithEngineLogger sets a custom logger.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) { o.logger = logger }
}

// Open opens the storage at filePath and builds an engine with the
// OpenAI-compatible provider.
func Open(filePath string, opts ...EngineOption) (*Engine, error) {
	options := applyOptions(opts)

	stores, err := badger.OpenStores(filePath, false)
	if err != nil {
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		stores.Close()
		return nil, err
	}

	engine, err := newEngine(stores, provider, options)
	if err != nil {
		provider.Close()
		stores.Close()
		return nil, err
	}
	engine.owned = true
	return engine, nil
}

// NewEngine builds an engine on existing stores and provider. The caller
// keeps ownership of both; Close releases only engine-internal resources.
func NewEngine(stores *badger.Stores, provider ai.AIProvider, opts ...EngineOption) (*Engine, error) {
	if stores == nil {
		return nil, ErrStoresRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}
	return newEngine(stores, provider, applyOptions(opts))
}

func applyOptions(opts []EngineOption) *engineOptions {
	options := &engineOptions{
		aiConfig:       ai.DefaultConfig(),
		deadline:       DefaultRequestDeadline,
		retrievalLimit: DefaultRetrievalLimit,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func newEngine(stores *badger.Stores, provider ai.AIProvider, options *engineOptions) (*Engine, error) {
	understander, err := intent.NewUnderstander(provider.IntentExtractor())
	if err != nil {
		return nil, err
	}

	semantic, err := retrieval.NewSemanticRetriever(stores.Catalog, provider.Embedder())
	if err != nil {
		return nil, err
	}
	keyword, err := retrieval.NewKeywordRetriever(stores.Catalog)
	if err != nil {
		return nil, err
	}
	collaborative, err := retrieval.NewCollaborativeRetriever(stores.Profiles)
	if err != nil {
		return nil, err
	}
	trending, err := retrieval.NewTrendingRetriever(stores.Catalog)
	if err != nil {
		return nil, err
	}
	group, err := retrieval.NewGroup(
		[]retrieval.Retriever{semantic, keyword, collaborative, trending},
		options.groupOpts...)
	if err != nil {
		return nil, err
	}

	fuser, err := fusion.NewFuser(options.fuserOpts...)
	if err != nil {
		return nil, err
	}

	reranker, err := rerank.NewReranker(provider.RelevanceJudge(), options.rerankerOpts...)
	if err != nil {
		return nil, err
	}

	selector, err := explore.NewSelector(options.selectorOpts...)
	if err != nil {
		reranker.Release()
		return nil, err
	}

	recorder, err := feedback.NewRecorder(stores.Catalog, stores.Profiles, stores.Bandit, stores.Interactions)
	if err != nil {
		reranker.Release()
		return nil, err
	}

	return &Engine{
		stores:         stores,
		provider:       provider,
		understander:   understander,
		group:          group,
		fuser:          fuser,
		reranker:       reranker,
		selector:       selector,
		recorder:       recorder,
		deadline:       options.deadline,
		retrievalLimit: options.retrievalLimit,
		logger:         options.logger.With("component", "engine"),
	}, nil
}

// Close releases the engine's worker pools. Stores and provider passed to
// NewEngine stay open; engines built by Open close them too.
func (e *Engine) Close() error {
	e.recorder.Release()
	e.reranker.Release()
	if !e.owned {
		return nil
	}
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	return e.stores.Close()
}

// Recommend runs the full pipeline for one request.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, e.deadline)
	defer cancel()

	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if err := core.ValidateLimit(limit); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	timings := make(map[Stage]time.Duration)
	start := time.Now()
	mark := func(stage Stage) {
		timings[stage] = time.Since(start)
		e.logger.Debug("stage complete", "stage", stage, "elapsed", timings[stage])
	}
	mark(StageReceived)

	profile := e.loadProfile(ctx, req)

	queryText := strings.TrimSpace(req.QueryText)
	if queryText == "" {
		// A profile with lifestyle tags can stand in for a missing query
		if profile == nil || len(profile.LifestyleTags) == 0 {
			return nil, ErrInvalidInput
		}
		queryText = strings.Join(profile.LifestyleTags, " ")
	}

	degraded := false

	query, intentDegraded, err := e.understander.Understand(ctx, queryText, profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	degraded = degraded || intentDegraded
	mark(StageUnderstood)

	exclude := e.excludedIds(profile)
	byMethod, retrievalDegraded := e.group.RetrieveAll(ctx, query, e.retrievalLimit, exclude)
	degraded = degraded || retrievalDegraded
	mark(StageRetrieved)

	fused := e.fuser.Fuse(byMethod)
	if len(fused) == 0 {
		return nil, ErrNoCandidates
	}
	mark(StageFused)

	items, err := e.loadItems(ctx, fused)
	if err != nil {
		return nil, err
	}

	ranked, rerankDegraded := e.reranker.Rerank(ctx, query.RawText, fused, items)
	degraded = degraded || rerankDegraded
	mark(StageReranked)

	arms := e.loadArms(ctx, ranked)
	final := e.selector.Select(query.RawText, profile, ranked, arms, items, limit)
	mark(StageSelected)

	fusedById := make(map[core.ID]*core.FusedCandidate, len(fused))
	for i := range fused {
		fusedById[fused[i].ItemId] = &fused[i]
	}

	results := make([]Recommendation, 0, len(final))
	for _, result := range final {
		item := items[result.ItemId]
		if item == nil {
			continue
		}
		fusedCandidate := fusedById[result.ItemId]
		explanation := result.Explanation
		if explanation == "" {
			explanation = composeExplanation(fusedCandidate)
		}
		var method core.Method
		if fusedCandidate != nil && len(fusedCandidate.Methods) > 0 {
			method = fusedCandidate.Methods[0]
		}
		results = append(results, Recommendation{
			Item:        item,
			Score:       result.Score,
			Explanation: explanation,
			Confidence:  result.Confidence,
			Strategy:    result.Strategy,
			Method:      method,
			Rank:        result.Rank,
		})
	}
	mark(StageDelivered)

	e.logger.Info("request delivered",
		"results", len(results),
		"degraded", degraded,
		"elapsed", time.Since(start))

	return &Response{
		Results:  results,
		Degraded: degraded,
		Timings:  timings,
	}, nil
}

// RecordFeedback hands an interaction event to the async recorder.
func (e *Engine) RecordFeedback(event *core.InteractionEvent) error {
	return e.recorder.Record(event)
}

// Recorder exposes the feedback recorder, mainly so callers can Wait in
// tests and batch jobs.
func (e *Engine) Recorder() *feedback.Recorder {
	return e.recorder
}

// loadProfile fetches the stored profile, falling back to an ephemeral one
// built from the request's lifestyle tags.
func (e *Engine) loadProfile(ctx context.Context, req Request) *core.UserProfile {
	if req.ProfileId != 0 {
		profile, err := e.stores.Profiles.GetProfile(ctx, req.ProfileId)
		if err == nil {
			if len(profile.LifestyleTags) == 0 {
				profile.LifestyleTags = req.LifestyleTags
			}
			return profile
		}
		if !errors.Is(err, storage.ErrNotFound) {
			e.logger.Warn("profile load failed", "profile_id", req.ProfileId, "error", err)
		}
	}
	if len(req.LifestyleTags) > 0 {
		return &core.UserProfile{Id: req.ProfileId, LifestyleTags: req.LifestyleTags}
	}
	return nil
}

// excludedIds builds the global exclusion set: items the user rejected.
func (e *Engine) excludedIds(profile *core.UserProfile) map[core.ID]bool {
	if profile == nil || len(profile.Rejected) == 0 {
		return nil
	}
	exclude := make(map[core.ID]bool, len(profile.Rejected))
	for _, id := range profile.Rejected {
		exclude[id] = true
	}
	return exclude
}

// loadItems fetches catalog items for the fused candidates.
func (e *Engine) loadItems(ctx context.Context, fused []core.FusedCandidate) (map[core.ID]*core.Item, error) {
	ids := make([]core.ID, 0, len(fused))
	for _, candidate := range fused {
		ids = append(ids, candidate.ItemId)
	}
	items, err := e.stores.Catalog.GetItems(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("loading candidate items: %w", err)
	}
	byId := make(map[core.ID]*core.Item, len(items))
	for _, item := range items {
		byId[item.Id] = item
	}
	return byId, nil
}

// loadArms fetches bandit state for the reranked candidates. Failures fall
// back to uniform priors; exploration quality degrades, the request does not.
func (e *Engine) loadArms(ctx context.Context, ranked []core.RankedResult) map[core.ID]*core.BanditArm {
	ids := make([]core.ID, 0, len(ranked))
	for _, result := range ranked {
		ids = append(ids, result.ItemId)
	}
	arms, err := e.stores.Bandit.GetArms(ctx, ids...)
	if err != nil {
		e.logger.Warn("bandit arms load failed, using priors", "error", err)
		return nil
	}
	byId := make(map[core.ID]*core.BanditArm, len(arms))
	for _, arm := range arms {
		byId[arm.ItemId] = arm
	}
	return byId
}

// composeExplanation builds a fallback explanation from retrieval evidence
// when the judge supplied none.
func composeExplanation(fused *core.FusedCandidate) string {
	if fused == nil {
		return "Suggested for variety"
	}

	var parts []string
	if len(fused.MatchedKeywords) > 0 {
		parts = append(parts, "matches "+strings.Join(fused.MatchedKeywords, ", "))
	}
	if len(fused.Methods) > 0 {
		names := make([]string, 0, len(fused.Methods))
		for _, method := range fused.Methods {
			names = append(names, string(method))
		}
		parts = append(parts, "found by "+strings.Join(names, " and ")+" search")
	}
	if len(parts) == 0 {
		return "Suggested for variety"
	}
	explanation := strings.Join(parts, "; ")
	return strings.ToUpper(explanation[:1]) + explanation[1:]
}
