package badger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/storage"
)

func TestProfilePutAndGet(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	profile := &core.UserProfile{
		Id:            core.IDFromContent("session-1"),
		SessionKey:    "session-1",
		LifestyleTags: []string{"frugal"},
	}
	require.NoError(t, stores.Profiles.PutProfile(ctx, profile))
	assert.False(t, profile.UpdatedAt.IsZero())

	got, err := stores.Profiles.GetProfile(ctx, profile.Id)
	require.NoError(t, err)
	assert.Equal(t, "session-1", got.SessionKey)
	assert.Equal(t, []string{"frugal"}, got.LifestyleTags)

	_, err = stores.Profiles.GetProfile(ctx, core.ID(999))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProfileUpdateMaterializesMissing(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	id := core.IDFromContent("fresh-session")
	updated, err := stores.Profiles.UpdateProfile(ctx, id, func(p *core.UserProfile) error {
		p.SessionKey = "fresh-session"
		p.Liked = core.AppendUniqueID(p.Liked, core.ID(7))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, id, updated.Id)
	assert.Equal(t, []core.ID{7}, updated.Liked)

	got, err := stores.Profiles.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []core.ID{7}, got.Liked)
}

func TestProfileConcurrentUpdatesAreSerialized(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	id := core.IDFromContent("busy-session")
	const workers = 20

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := stores.Profiles.UpdateProfile(ctx, id, func(p *core.UserProfile) error {
				p.SessionKey = "busy-session"
				p.LikedCount++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := stores.Profiles.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, workers, got.LikedCount)
}

func TestAllProfiles(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	for _, key := range []string{"alpha", "beta", "gamma"} {
		require.NoError(t, stores.Profiles.PutProfile(ctx, &core.UserProfile{
			Id:         core.IDFromContent(key),
			SessionKey: key,
		}))
	}

	all, err := stores.Profiles.AllProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
