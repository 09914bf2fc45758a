package explore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/appscout/appscout/core"
)

func TestSampleBetaStaysInUnitInterval(t *testing.T) {
	sampler := NewSampler("q", nil, nil)
	for i := 0; i < 1000; i++ {
		v := sampler.SampleBeta(1, 1)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestSampleBetaFavorsStrongArm(t *testing.T) {
	sampler := NewSampler("q", nil, nil)

	// An arm with 100 successes against one with 100 failures should win
	// nearly every draw
	wins := 0
	const trials = 10000
	for i := 0; i < trials; i++ {
		strong := sampler.SampleBeta(100, 1)
		weak := sampler.SampleBeta(1, 100)
		if strong > weak {
			wins++
		}
	}
	assert.Greater(t, wins, trials*99/100)
}

func TestSampleBetaFractionalShape(t *testing.T) {
	sampler := NewSampler("q", nil, nil)
	for i := 0; i < 100; i++ {
		v := sampler.SampleBeta(0.5, 0.5)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestSamplerSeedDeterminism(t *testing.T) {
	profile := &core.UserProfile{Id: 1, UpdatedAt: time.Unix(100, 0)}
	arms := map[core.ID]*core.BanditArm{
		1: {ItemId: 1, Alpha: 3, Beta: 2},
		2: {ItemId: 2, Alpha: 1, Beta: 5},
	}

	a := NewSampler("budget app", profile, arms)
	b := NewSampler("budget app", profile, arms)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.SampleBeta(2, 3), b.SampleBeta(2, 3))
	}
}

func TestSamplerSeedChangesWithInputs(t *testing.T) {
	profile := &core.UserProfile{Id: 1, UpdatedAt: time.Unix(100, 0)}

	base := deriveSeed("budget app", profile, nil)

	assert.NotEqual(t, base, deriveSeed("other query", profile, nil))

	bumped := &core.UserProfile{Id: 1, UpdatedAt: time.Unix(200, 0)}
	assert.NotEqual(t, base, deriveSeed("budget app", bumped, nil))

	arms := map[core.ID]*core.BanditArm{1: {ItemId: 1, Alpha: 2, Beta: 1}}
	assert.NotEqual(t, base, deriveSeed("budget app", profile, arms))
}

func TestSamplerSeedIgnoresMapOrder(t *testing.T) {
	// Two maps with the same contents must hash identically regardless of
	// iteration order; build them in different insertion orders
	armsA := map[core.ID]*core.BanditArm{}
	armsB := map[core.ID]*core.BanditArm{}
	for i := 0; i < 20; i++ {
		armsA[core.ID(i)] = &core.BanditArm{ItemId: core.ID(i), Alpha: float64(i + 1), Beta: 2}
	}
	for i := 19; i >= 0; i-- {
		armsB[core.ID(i)] = &core.BanditArm{ItemId: core.ID(i), Alpha: float64(i + 1), Beta: 2}
	}

	assert.Equal(t, deriveSeed("q", nil, armsA), deriveSeed("q", nil, armsB))
}
