package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/storage"
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
type ProfileRepository struct {
	backend *Backend
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) (storage.ProfileRepository, error) {
	return &ProfileRepository{backend: backend}, nil
}

// Close is a no-op; the shared backend owns the database handle.
func (r *ProfileRepository) Close() error {
	return nil
}

// PutProfile stores a profile, replacing any existing one with the same ID.
func (r *ProfileRepository) PutProfile(ctx context.Context, profile *core.UserProfile) error {
	if err := core.ValidateProfile(profile); err != nil {
		return err
	}
	profile.UpdatedAt = time.Now().UTC()
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeProfileKey(profile.Id), storage.MarshalProfile(profile)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetProfile retrieves a profile by ID.
func (r *ProfileRepository) GetProfile(ctx context.Context, id core.ID) (*core.UserProfile, error) {
	var result *core.UserProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		entry, err := tx.Get(makeProfileKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return entry.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalProfile(val)
			return err
		})
	}, false)
	return result, err
}

// AllProfiles retrieves every stored profile in ascending id order.
func (r *ProfileRepository) AllProfiles(ctx context.Context) ([]*core.UserProfile, error) {
	var results []*core.UserProfile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(profilePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				profile, err := storage.UnmarshalProfile(val)
				if err != nil {
					return err
				}
				results = append(results, profile)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateProfile applies fn to the stored profile under conflict protection
// and returns the updated profile. A missing profile is materialized with the
// given id before fn runs, so first-touch updates need no separate create.
// Concurrent updates to the same profile are serialized by conflict retry;
// lost updates would silently corrupt preference state.
func (r *ProfileRepository) UpdateProfile(ctx context.Context, id core.ID, fn func(profile *core.UserProfile) error) (*core.UserProfile, error) {
	var result *core.UserProfile
	err := r.backend.WithKeyedUpdate(func(tx *badger.Txn) error {
		key := makeProfileKey(id)

		var profile *core.UserProfile
		entry, err := tx.Get(key)
		switch err {
		case nil:
			err = entry.Value(func(val []byte) error {
				profile, err = storage.UnmarshalProfile(val)
				return err
			})
			if err != nil {
				return err
			}
		case badger.ErrKeyNotFound:
			profile = &core.UserProfile{Id: id}
		default:
			return err
		}

		if err := fn(profile); err != nil {
			return err
		}
		profile.Id = id
		profile.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalProfile(profile)); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		result = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
