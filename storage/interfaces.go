package storage

import (
	"context"
	"time"

	"github.com/appscout/appscout/core"
)

// CatalogRepository provides read access to the item catalog plus the write
// path used by the external ingestion boundary (seeder). The engine itself
// only reads.
type CatalogRepository interface {
	// AddItems adds catalog items. IDs are content-derived by the caller;
	// items failing validation are rejected with core.ErrInvalidItem.
	// Sets InsertedAt if not already set.
	AddItems(ctx context.Context, items ...*core.Item) error

	// GetItem retrieves a single item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	GetItem(ctx context.Context, id core.ID) (*core.Item, error)

	// GetItems retrieves multiple items by their IDs.
	// Returns only the items that exist (no error for missing items).
	GetItems(ctx context.Context, ids ...core.ID) ([]*core.Item, error)

	// FindSimilar finds items whose embedding similarity to vector is
	// >= minSimilarity, up to limit results, skipping excluded IDs.
	// Results are ordered by similarity descending, ties by ascending id.
	// Items without an embedding are skipped.
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int, exclude map[core.ID]bool) ([]*core.ItemMatch, error)

	// FindByKeyword retrieves items whose keyword map contains term.
	FindByKeyword(ctx context.Context, term string) ([]*core.Item, error)

	// FindByCategory retrieves up to limit items carrying the category,
	// ordered by rating descending, ties by ascending id.
	FindByCategory(ctx context.Context, category string, limit int) ([]*core.Item, error)

	// TopRated retrieves the limit highest-rated items not in exclude,
	// ordered by rating descending, ties by ascending id.
	TopRated(ctx context.Context, limit int, exclude map[core.ID]bool) ([]*core.Item, error)

	// Close closes the repository and releases resources.
	Close() error
}

// ProfileRepository provides keyed CRUD for user profiles.
type ProfileRepository interface {
	// PutProfile stores a profile, overwriting any existing state.
	// Sets UpdatedAt.
	PutProfile(ctx context.Context, profile *core.UserProfile) error

	// GetProfile retrieves a profile by ID.
	// Returns ErrNotFound if the profile doesn't exist.
	GetProfile(ctx context.Context, id core.ID) (*core.UserProfile, error)

	// AllProfiles retrieves every stored profile. Used by the collaborative
	// retriever for neighbor search.
	AllProfiles(ctx context.Context) ([]*core.UserProfile, error)

	// UpdateProfile applies fn to the stored profile under a transaction,
	// creating a fresh profile first when none exists. Concurrent updates
	// to the same key are serialized; updates to different keys are not.
	UpdateProfile(ctx context.Context, id core.ID, fn func(profile *core.UserProfile) error) (*core.UserProfile, error)

	// Close closes the repository and releases resources.
	Close() error
}

// BanditRepository manages per-item Thompson Sampling statistics.
type BanditRepository interface {
	// GetArm retrieves the arm for an item, or a fresh arm with the
	// uninformative prior if none is stored yet.
	GetArm(ctx context.Context, itemId core.ID) (*core.BanditArm, error)

	// GetArms retrieves arms for multiple items, substituting fresh arms
	// for items never shown.
	GetArms(ctx context.Context, itemIds ...core.ID) ([]*core.BanditArm, error)

	// RecordOutcome atomically applies one impression outcome to an item's
	// arm: impressions+1, then alpha+1 on success or beta+1 on failure.
	// Concurrent outcomes for the same item never lose updates; outcomes
	// for different items do not block each other.
	RecordOutcome(ctx context.Context, itemId core.ID, success bool) (*core.BanditArm, error)

	// Close closes the repository and releases resources.
	Close() error
}

// InteractionRepository is the append-only interaction log.
type InteractionRepository interface {
	// AppendEvent validates and appends an event. Events are never updated
	// or deleted.
	AppendEvent(ctx context.Context, event *core.InteractionEvent) error

	// EventsSince retrieves events with Timestamp >= since, ordered by
	// timestamp ascending. Used by the out-of-band recalibration job.
	EventsSince(ctx context.Context, since time.Time) ([]*core.InteractionEvent, error)

	// Close closes the repository and releases resources.
	Close() error
}
