package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/storage"
)

// BanditRepository implements storage.BanditRepository for BadgerDB.
type BanditRepository struct {
	backend *Backend
}

var _ storage.BanditRepository = (*BanditRepository)(nil)

// NewBanditRepository creates a new BanditRepository.
func NewBanditRepository(backend *Backend) (storage.BanditRepository, error) {
	return &BanditRepository{backend: backend}, nil
}

// Close is a no-op; the shared backend owns the database handle.
func (r *BanditRepository) Close() error {
	return nil
}

// GetArm retrieves the bandit arm for an item. Items without recorded
// outcomes get the uniform prior Beta(1, 1).
func (r *BanditRepository) GetArm(ctx context.Context, itemId core.ID) (*core.BanditArm, error) {
	var result *core.BanditArm
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readArm(tx, itemId)
		return err
	}, false)
	return result, err
}

// GetArms retrieves arms for multiple items in one transaction, preserving
// input order. Unknown items get the uniform prior.
func (r *BanditRepository) GetArms(ctx context.Context, itemIds ...core.ID) ([]*core.BanditArm, error) {
	results := make([]*core.BanditArm, 0, len(itemIds))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, itemId := range itemIds {
			arm, err := readArm(tx, itemId)
			if err != nil {
				return err
			}
			results = append(results, arm)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// RecordOutcome atomically records an impression outcome for an item.
// Success increments alpha, failure increments beta; impressions always
// increment. The read-increment-write runs under conflict retry so
// concurrent outcomes for the same item never lose counts.
func (r *BanditRepository) RecordOutcome(ctx context.Context, itemId core.ID, success bool) (*core.BanditArm, error) {
	var result *core.BanditArm
	err := r.backend.WithKeyedUpdate(func(tx *badger.Txn) error {
		arm, err := readArm(tx, itemId)
		if err != nil {
			return err
		}

		arm.Impressions++
		if success {
			arm.Alpha++
			arm.Successes++
		} else {
			arm.Beta++
		}
		arm.UpdatedAt = time.Now().UTC()

		if err := tx.Set(makeArmKey(itemId), storage.MarshalArm(arm)); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		result = arm
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// readArm reads an arm within a transaction, defaulting to the uniform prior.
func readArm(tx *badger.Txn, itemId core.ID) (*core.BanditArm, error) {
	entry, err := tx.Get(makeArmKey(itemId))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return core.NewBanditArm(itemId), nil
		}
		return nil, err
	}
	var arm *core.BanditArm
	err = entry.Value(func(val []byte) error {
		var err error
		arm, err = storage.UnmarshalArm(val)
		return err
	})
	return arm, err
}
