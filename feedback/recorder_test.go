package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/storage/badger"
)

func newTestRecorder(t *testing.T) (*Recorder, *badger.Stores) {
	t.Helper()
	stores, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })

	recorder, err := NewRecorder(stores.Catalog, stores.Profiles, stores.Bandit, stores.Interactions)
	require.NoError(t, err)
	t.Cleanup(recorder.Release)
	return recorder, stores
}

func seedItem(t *testing.T, stores *badger.Stores, name string, vector []float32) *core.Item {
	t.Helper()
	item := &core.Item{
		Id:       core.IDFromContent(name),
		Name:     name,
		Rating:   4.0,
		Vector:   vector,
		Keywords: map[string]float64{"budget": 0.8},
	}
	require.NoError(t, stores.Catalog.AddItems(context.Background(), item))
	return item
}

func TestRecordUpdatesBanditArms(t *testing.T) {
	recorder, stores := newTestRecorder(t)
	ctx := context.Background()

	clicked := seedItem(t, stores, "Clicked", nil)
	ignored := seedItem(t, stores, "Ignored", nil)

	event := &core.InteractionEvent{
		EventId:   "ev-1",
		ProfileId: 1,
		QueryText: "budget",
		Shown: []core.ShownItem{
			{ItemId: clicked.Id, Rank: 1, Method: core.MethodSemantic, Score: 0.9},
			{ItemId: ignored.Id, Rank: 2, Method: core.MethodKeyword, Score: 0.5},
		},
		Clicked: []core.ID{clicked.Id},
	}
	require.NoError(t, recorder.Record(event))
	recorder.Wait()

	clickedArm, err := stores.Bandit.GetArm(ctx, clicked.Id)
	require.NoError(t, err)
	assert.Equal(t, 2.0, clickedArm.Alpha)
	assert.Equal(t, 1.0, clickedArm.Beta)
	assert.Equal(t, int64(1), clickedArm.Impressions)

	ignoredArm, err := stores.Bandit.GetArm(ctx, ignored.Id)
	require.NoError(t, err)
	assert.Equal(t, 1.0, ignoredArm.Alpha)
	assert.Equal(t, 2.0, ignoredArm.Beta)
}

func TestRecordUpdatesProfile(t *testing.T) {
	recorder, stores := newTestRecorder(t)
	ctx := context.Background()

	liked := seedItem(t, stores, "Liked", []float32{1, 0})
	rejected := seedItem(t, stores, "Rejected", nil)

	event := &core.InteractionEvent{
		EventId:   "ev-2",
		ProfileId: 42,
		QueryText: "budget",
		Shown: []core.ShownItem{
			{ItemId: liked.Id, Rank: 1, Method: core.MethodSemantic, Score: 0.9},
			{ItemId: rejected.Id, Rank: 2, Method: core.MethodTrending, Score: 0.4},
		},
		Clicked:  []core.ID{liked.Id},
		Liked:    []core.ID{liked.Id},
		Rejected: []core.ID{rejected.Id},
	}
	require.NoError(t, recorder.Record(event))
	recorder.Wait()

	profile, err := stores.Profiles.GetProfile(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, []core.ID{liked.Id}, profile.Liked)
	assert.Equal(t, []core.ID{liked.Id}, profile.Viewed)
	assert.Equal(t, []core.ID{rejected.Id}, profile.Rejected)
	assert.Equal(t, 1, profile.LikedCount)
	assert.Equal(t, []float32{1, 0}, profile.PreferenceVector)
}

func TestRecordPreferenceVectorRunningAverage(t *testing.T) {
	recorder, stores := newTestRecorder(t)
	ctx := context.Background()

	first := seedItem(t, stores, "First", []float32{1, 0})
	second := seedItem(t, stores, "Second", []float32{0, 1})

	for i, item := range []*core.Item{first, second} {
		event := &core.InteractionEvent{
			EventId:   "ev-avg-" + string(rune('a'+i)),
			ProfileId: 7,
			QueryText: "budget",
			Shown: []core.ShownItem{
				{ItemId: item.Id, Rank: 1, Method: core.MethodSemantic, Score: 0.9},
			},
			Liked: []core.ID{item.Id},
		}
		require.NoError(t, recorder.Record(event))
		recorder.Wait()
	}

	profile, err := stores.Profiles.GetProfile(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.LikedCount)
	assert.InDelta(t, 0.5, float64(profile.PreferenceVector[0]), 1e-6)
	assert.InDelta(t, 0.5, float64(profile.PreferenceVector[1]), 1e-6)
}

func TestRecordAppendsInteractionLog(t *testing.T) {
	recorder, stores := newTestRecorder(t)
	ctx := context.Background()

	item := seedItem(t, stores, "Logged", nil)
	event := &core.InteractionEvent{
		EventId:   "ev-3",
		ProfileId: 1,
		QueryText: "budget",
		Shown: []core.ShownItem{
			{ItemId: item.Id, Rank: 1, Method: core.MethodSemantic, Score: 0.9},
		},
	}
	require.NoError(t, recorder.Record(event))
	recorder.Wait()

	events, err := stores.Interactions.EventsSince(ctx, event.Timestamp)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ev-3", events[0].EventId)
}

func TestRecordRejectsInvalidEvent(t *testing.T) {
	recorder, _ := newTestRecorder(t)

	err := recorder.Record(&core.InteractionEvent{EventId: ""})
	assert.ErrorIs(t, err, core.ErrInvalidEvent)
}

func TestRecordLikeWithoutDuplicating(t *testing.T) {
	recorder, stores := newTestRecorder(t)
	ctx := context.Background()

	item := seedItem(t, stores, "Repeat", []float32{1, 0})
	for i := 0; i < 2; i++ {
		event := &core.InteractionEvent{
			EventId:   "ev-rep-" + string(rune('a'+i)),
			ProfileId: 9,
			QueryText: "budget",
			Shown: []core.ShownItem{
				{ItemId: item.Id, Rank: 1, Method: core.MethodSemantic, Score: 0.9},
			},
			Liked: []core.ID{item.Id},
		}
		require.NoError(t, recorder.Record(event))
		recorder.Wait()
	}

	profile, err := stores.Profiles.GetProfile(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, []core.ID{item.Id}, profile.Liked)
	assert.Equal(t, 1, profile.LikedCount)
}
