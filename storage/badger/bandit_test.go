package badger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appscout/appscout/core"
)

func TestBanditDefaultPrior(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	arm, err := stores.Bandit.GetArm(ctx, core.ID(42))
	require.NoError(t, err)
	assert.Equal(t, core.ID(42), arm.ItemId)
	assert.Equal(t, 1.0, arm.Alpha)
	assert.Equal(t, 1.0, arm.Beta)
	assert.Equal(t, int64(0), arm.Impressions)
}

func TestBanditRecordOutcome(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	arm, err := stores.Bandit.RecordOutcome(ctx, core.ID(1), true)
	require.NoError(t, err)
	assert.Equal(t, 2.0, arm.Alpha)
	assert.Equal(t, 1.0, arm.Beta)
	assert.Equal(t, int64(1), arm.Impressions)
	assert.Equal(t, int64(1), arm.Successes)

	arm, err = stores.Bandit.RecordOutcome(ctx, core.ID(1), false)
	require.NoError(t, err)
	assert.Equal(t, 2.0, arm.Alpha)
	assert.Equal(t, 2.0, arm.Beta)
	assert.Equal(t, int64(2), arm.Impressions)
	assert.Equal(t, int64(1), arm.Successes)
}

func TestBanditConcurrentOutcomesLoseNothing(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	const workers = 30
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(success bool) {
			defer wg.Done()
			_, err := stores.Bandit.RecordOutcome(ctx, core.ID(9), success)
			assert.NoError(t, err)
		}(i%3 == 0)
	}
	wg.Wait()

	arm, err := stores.Bandit.GetArm(ctx, core.ID(9))
	require.NoError(t, err)
	assert.Equal(t, int64(workers), arm.Impressions)
	assert.Equal(t, float64(workers)+2, arm.Alpha+arm.Beta)
}

func TestBanditGetArmsPreservesOrder(t *testing.T) {
	stores := newTestStores(t)
	ctx := context.Background()

	_, err := stores.Bandit.RecordOutcome(ctx, core.ID(2), true)
	require.NoError(t, err)

	arms, err := stores.Bandit.GetArms(ctx, core.ID(3), core.ID(2))
	require.NoError(t, err)
	require.Len(t, arms, 2)
	assert.Equal(t, core.ID(3), arms[0].ItemId)
	assert.Equal(t, 1.0, arms[0].Alpha)
	assert.Equal(t, core.ID(2), arms[1].ItemId)
	assert.Equal(t, 2.0, arms[1].Alpha)
}
