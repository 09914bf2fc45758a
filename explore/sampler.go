package explore

import (
	"hash/fnv"
	"math"
	"math/rand"
	"strconv"

	"github.com/appscout/appscout/core"
)

// Sampler draws Thompson samples from per-arm Beta distributions.
//
// The generator is seeded from the request itself, so two requests with the
// same query text, profile revision and bandit state draw identical samples.
// Randomness across requests comes from the inputs changing, not from a
// global RNG.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler seeded from the request inputs.
func NewSampler(queryText string, profile *core.UserProfile, arms map[core.ID]*core.BanditArm) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(deriveSeed(queryText, profile, arms)))}
}

// deriveSeed hashes query text, profile revision and bandit state into an
// RNG seed.
func deriveSeed(queryText string, profile *core.UserProfile, arms map[core.ID]*core.BanditArm) int64 {
	h := fnv.New64a()
	h.Write([]byte(queryText))
	if profile != nil {
		h.Write([]byte(strconv.FormatUint(uint64(profile.Id), 10)))
		h.Write([]byte(strconv.FormatInt(profile.UpdatedAt.UnixNano(), 10)))
	}
	// Fold in the bandit state order-independently; map iteration order
	// must not affect the seed
	var armState uint64
	for id, arm := range arms {
		ah := fnv.New64a()
		ah.Write([]byte(strconv.FormatUint(uint64(id), 10)))
		ah.Write([]byte(strconv.FormatFloat(arm.Alpha, 'g', -1, 64)))
		ah.Write([]byte(strconv.FormatFloat(arm.Beta, 'g', -1, 64)))
		armState ^= ah.Sum64()
	}
	h.Write([]byte(strconv.FormatUint(armState, 10)))
	return int64(h.Sum64())
}

// SampleBeta draws one sample from Beta(alpha, beta).
func (s *Sampler) SampleBeta(alpha, beta float64) float64 {
	x := s.sampleGamma(alpha)
	y := s.sampleGamma(beta)
	if x+y == 0 {
		return 0.5
	}
	return x / (x + y)
}

// Float64 exposes the underlying uniform generator for serendipity draws.
func (s *Sampler) Float64() float64 {
	return s.rng.Float64()
}

// Intn exposes the underlying integer generator.
func (s *Sampler) Intn(n int) int {
	return s.rng.Intn(n)
}

// sampleGamma draws from Gamma(shape, 1) using the Marsaglia-Tsang method.
// Shapes below 1 use the boost transform.
func (s *Sampler) sampleGamma(shape float64) float64 {
	if shape < 1 {
		u := s.rng.Float64()
		return s.sampleGamma(shape+1) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		var x, v float64
		for {
			x = s.rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := s.rng.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v
		}
	}
}
