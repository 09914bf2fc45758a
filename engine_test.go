package appscout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appscout/appscout/ai"
	"github.com/appscout/appscout/ai/mock"
	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/storage/badger"
)

type testEngine struct {
	engine    *Engine
	stores    *badger.Stores
	extractor *mock.MockIntentExtractor
	judge     *mock.MockRelevanceJudge
}

func newTestEngine(t *testing.T, opts ...EngineOption) *testEngine {
	t.Helper()

	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })

	embedder := mock.NewMockEmbedder()
	extractor := mock.NewMockIntentExtractor()
	judge := mock.NewMockRelevanceJudge()
	provider := mock.NewMockProviderWithServices(embedder, extractor, judge)

	engine, err := NewEngine(stores, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })

	return &testEngine{
		engine:    engine,
		stores:    stores,
		extractor: extractor,
		judge:     judge,
	}
}

func catalogItem(id core.ID, name, oneLiner string, rating float64, keywords map[string]float64) *core.Item {
	return &core.Item{
		Id:         id,
		Name:       name,
		OneLiner:   oneLiner,
		Categories: []string{"Utilities"},
		Rating:     rating,
		Keywords:   keywords,
	}
}

// seedBudgetCatalog stores one budgeting app plus filler apps whose names and
// one-liners avoid the query terms, so relevance scoring stays predictable.
func seedBudgetCatalog(t *testing.T, te *testEngine) {
	t.Helper()
	require.NoError(t, te.stores.Catalog.AddItems(context.Background(),
		catalogItem(1, "BudgetBuddy", "Track spending and stick to a budget", 4.6,
			map[string]float64{"budget": 0.9, "track": 0.8}),
		catalogItem(2, "PixelDraw", "Sketch on a pocket canvas", 4.4,
			map[string]float64{"drawing": 0.9}),
		catalogItem(3, "NapTime", "White noise for light sleepers", 4.1,
			map[string]float64{"sleep": 0.9}),
		catalogItem(4, "WordWisp", "Daily crossword puzzles", 3.8,
			map[string]float64{"puzzle": 0.9}),
	))
}

func TestRecommend(t *testing.T) {
	te := newTestEngine(t)
	seedBudgetCatalog(t, te)

	response, err := te.engine.Recommend(context.Background(), Request{
		QueryText: "track my budget",
	})
	require.NoError(t, err)
	require.NotEmpty(t, response.Results)

	assert.False(t, response.Degraded)
	assert.Equal(t, "BudgetBuddy", response.Results[0].Item.Name,
		"keyword and relevance evidence should put the budgeting app first")
	assert.Equal(t, core.MethodKeyword, response.Results[0].Method)

	for i, result := range response.Results {
		assert.Equal(t, i+1, result.Rank)
		assert.NotNil(t, result.Item)
		assert.NotEmpty(t, result.Explanation)
		assert.NotEmpty(t, result.Strategy)
		assert.NotEmpty(t, result.Method)
	}

	shown := response.ShownItems()
	require.Len(t, shown, len(response.Results))
	for i, record := range shown {
		assert.Equal(t, response.Results[i].Item.Id, record.ItemId)
		assert.Equal(t, response.Results[i].Method, record.Method)
	}

	for _, stage := range []Stage{
		StageReceived, StageUnderstood, StageRetrieved,
		StageFused, StageReranked, StageSelected, StageDelivered,
	} {
		assert.Contains(t, response.Timings, stage)
	}
}

func TestRecommendInvalidInput(t *testing.T) {
	te := newTestEngine(t)
	seedBudgetCatalog(t, te)

	t.Run("empty query without profile", func(t *testing.T) {
		_, err := te.engine.Recommend(context.Background(), Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("limit out of range", func(t *testing.T) {
		_, err := te.engine.Recommend(context.Background(), Request{
			QueryText: "budget",
			Limit:     101,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRecommendNoCandidates(t *testing.T) {
	te := newTestEngine(t)

	// Empty catalog: every retrieval signal comes back empty.
	_, err := te.engine.Recommend(context.Background(), Request{
		QueryText: "anything at all",
	})
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestRecommendLifestyleTagsStandInForQuery(t *testing.T) {
	te := newTestEngine(t)
	seedBudgetCatalog(t, te)

	response, err := te.engine.Recommend(context.Background(), Request{
		LifestyleTags: []string{"budget", "track"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, response.Results)
	assert.Equal(t, "BudgetBuddy", response.Results[0].Item.Name)
}

func TestRecommendDegradedOnExtractorFailure(t *testing.T) {
	te := newTestEngine(t)
	seedBudgetCatalog(t, te)

	te.extractor.ExtractIntentFunc = func(ctx context.Context, text string) (*ai.Intent, error) {
		return nil, ai.ErrServiceUnavailable
	}

	response, err := te.engine.Recommend(context.Background(), Request{
		QueryText: "track my budget",
	})
	require.NoError(t, err)

	assert.True(t, response.Degraded)
	require.NotEmpty(t, response.Results,
		"tokenized fallback keywords should still retrieve")
	assert.Equal(t, "BudgetBuddy", response.Results[0].Item.Name)
}

func TestRecommendDegradedOnJudgeFailure(t *testing.T) {
	te := newTestEngine(t)
	seedBudgetCatalog(t, te)

	te.judge.JudgeRelevanceFunc = func(ctx context.Context, query string, candidates []ai.JudgeCandidate) ([]ai.Judgment, error) {
		return nil, ai.ErrServiceUnavailable
	}

	response, err := te.engine.Recommend(context.Background(), Request{
		QueryText: "track my budget",
	})
	require.NoError(t, err)

	assert.True(t, response.Degraded)
	require.NotEmpty(t, response.Results)
	assert.Equal(t, "BudgetBuddy", response.Results[0].Item.Name,
		"fused ordering should carry the fallback ranking")

	// Without judge explanations the engine composes one from retrieval
	// evidence: matched keywords and contributing methods.
	explanation := response.Results[0].Explanation
	assert.Contains(t, explanation, "budget")
	assert.Contains(t, explanation, "track")
}

func TestRecommendExcludesRejectedItems(t *testing.T) {
	te := newTestEngine(t)
	seedBudgetCatalog(t, te)

	ctx := context.Background()
	require.NoError(t, te.stores.Profiles.PutProfile(ctx, &core.UserProfile{
		Id:         7,
		SessionKey: "session-7",
		Rejected:   []core.ID{1},
	}))

	response, err := te.engine.Recommend(ctx, Request{
		QueryText: "track my budget",
		ProfileId: 7,
	})
	require.NoError(t, err)

	for _, result := range response.Results {
		assert.NotEqual(t, core.ID(1), result.Item.Id,
			"rejected items must never be recommended")
	}
}

func TestRecommendDeterministic(t *testing.T) {
	te := newTestEngine(t)

	// Enough items that the exploration buckets actually sample.
	ctx := context.Background()
	for i := 1; i <= 30; i++ {
		require.NoError(t, te.stores.Catalog.AddItems(ctx,
			catalogItem(core.ID(i), fmt.Sprintf("App%02d", i), "A handy utility", 3.0+float64(i%5)*0.4,
				map[string]float64{"utility": 0.5})))
	}

	request := Request{QueryText: "handy utility", Limit: 10}

	first, err := te.engine.Recommend(ctx, request)
	require.NoError(t, err)
	second, err := te.engine.Recommend(ctx, request)
	require.NoError(t, err)

	require.Len(t, second.Results, len(first.Results))
	for i := range first.Results {
		assert.Equal(t, first.Results[i].Item.Id, second.Results[i].Item.Id)
		assert.Equal(t, first.Results[i].Strategy, second.Results[i].Strategy)
		assert.Equal(t, first.Results[i].Score, second.Results[i].Score)
	}
}

func TestRecordFeedbackRoundTrip(t *testing.T) {
	te := newTestEngine(t)
	seedBudgetCatalog(t, te)

	ctx := context.Background()
	response, err := te.engine.Recommend(ctx, Request{
		QueryText: "track my budget",
		ProfileId: 42,
	})
	require.NoError(t, err)
	require.NotEmpty(t, response.Results)

	top := response.Results[0].Item.Id
	err = te.engine.RecordFeedback(&core.InteractionEvent{
		EventId:   uuid.NewString(),
		ProfileId: 42,
		QueryText: "track my budget",
		Shown:     response.ShownItems(),
		Clicked:   []core.ID{top},
		Liked:     []core.ID{top},
	})
	require.NoError(t, err)
	te.engine.Recorder().Wait()

	arm, err := te.stores.Bandit.GetArm(ctx, top)
	require.NoError(t, err)
	assert.Equal(t, int64(1), arm.Impressions)
	assert.Equal(t, 2.0, arm.Alpha, "a click counts as a success")

	profile, err := te.stores.Profiles.GetProfile(ctx, 42)
	require.NoError(t, err)
	assert.Contains(t, profile.Liked, top)
	assert.Contains(t, profile.Viewed, top)
}

func TestRecordFeedbackInvalidEvent(t *testing.T) {
	te := newTestEngine(t)

	err := te.engine.RecordFeedback(&core.InteractionEvent{})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidEvent))
}

func TestNewEngineValidation(t *testing.T) {
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer stores.Close()

	t.Run("nil stores", func(t *testing.T) {
		_, err := NewEngine(nil, mock.NewMockProvider())
		assert.ErrorIs(t, err, ErrStoresRequired)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewEngine(stores, nil)
		assert.ErrorIs(t, err, ErrProviderRequired)
	})
}
