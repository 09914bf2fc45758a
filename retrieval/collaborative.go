package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/storage"
)

const (
	// DefaultMinLikedItems is how many liked items a profile needs before
	// collaborative signals apply.
	DefaultMinLikedItems = 3

	// DefaultMinJaccard is the overlap floor for neighbor profiles.
	DefaultMinJaccard = 0.3
)

// CollaborativeRetriever recommends items liked by profiles whose taste
// overlaps the current user's.
type CollaborativeRetriever struct {
	profiles      storage.ProfileRepository
	minLikedItems int
	minJaccard    float64
	logger        *slog.Logger
}

var _ Retriever = (*CollaborativeRetriever)(nil)

// CollaborativeOption configures a CollaborativeRetriever.
type CollaborativeOption func(*CollaborativeRetriever) error

// WithMinJaccard overrides the neighbor overlap threshold.
func WithMinJaccard(min float64) CollaborativeOption {
	return func(r *CollaborativeRetriever) error {
		if min <= 0 || min > 1 {
			return fmt.Errorf("min jaccard must be in (0,1], got %f", min)
		}
		r.minJaccard = min
		return nil
	}
}

// NewCollaborativeRetriever creates a collaborative retriever.
func NewCollaborativeRetriever(profiles storage.ProfileRepository, opts ...CollaborativeOption) (*CollaborativeRetriever, error) {
	if profiles == nil {
		return nil, ErrProfilesRequired
	}

	r := &CollaborativeRetriever{
		profiles:      profiles,
		minLikedItems: DefaultMinLikedItems,
		minJaccard:    DefaultMinJaccard,
		logger:        slog.Default().With("component", "retrieval.collaborative"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Method implements Retriever.
func (r *CollaborativeRetriever) Method() core.Method {
	return core.MethodCollaborative
}

// Retrieve aggregates liked items from neighbor profiles whose liked sets
// have Jaccard similarity at or above the threshold. Profiles with fewer
// than minLikedItems liked items produce no signal at all.
func (r *CollaborativeRetriever) Retrieve(ctx context.Context, query *core.Query, limit int, exclude map[core.ID]bool) ([]core.RetrievalCandidate, error) {
	profile := query.Profile
	if profile == nil || len(profile.Liked) < r.minLikedItems {
		return nil, nil
	}

	liked := idSet(profile.Liked)
	seen := idSet(profile.Liked)
	for _, id := range profile.Viewed {
		seen[id] = true
	}
	for _, id := range profile.Rejected {
		seen[id] = true
	}

	all, err := r.profiles.AllProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading profiles: %w", err)
	}

	endorsements := make(map[core.ID]float64)
	neighbors := 0
	for _, other := range all {
		if other.Id == profile.Id || len(other.Liked) == 0 {
			continue
		}
		similarity := jaccard(liked, other.Liked)
		if similarity < r.minJaccard {
			continue
		}
		neighbors++
		for _, itemId := range other.Liked {
			if seen[itemId] || exclude[itemId] {
				continue
			}
			endorsements[itemId] += similarity
		}
	}
	if len(endorsements) == 0 {
		r.logger.Debug("collaborative retrieval found no endorsements",
			"neighbors", neighbors)
		return nil, nil
	}

	var max float64
	for _, score := range endorsements {
		if score > max {
			max = score
		}
	}

	candidates := make([]core.RetrievalCandidate, 0, len(endorsements))
	for itemId, score := range endorsements {
		candidates = append(candidates, core.RetrievalCandidate{
			ItemId: itemId,
			Method: core.MethodCollaborative,
			Score:  score / max,
		})
	}

	candidates = finalize(candidates, limit)
	r.logger.Debug("collaborative retrieval complete",
		"neighbors", neighbors,
		"candidates", len(candidates))
	return candidates, nil
}

// jaccard computes |A∩B| / |A∪B| between a prebuilt set and a slice.
func jaccard(a map[core.ID]bool, b []core.ID) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	bSet := idSet(b)
	for id := range bSet {
		if a[id] {
			intersection++
		}
	}
	union := len(a) + len(bSet) - intersection
	return float64(intersection) / float64(union)
}

func idSet(ids []core.ID) map[core.ID]bool {
	set := make(map[core.ID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
