// Copyright 2025 Appscout Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package feedback

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/storage"
)

// Timeout for one event's worth of storage writes once dequeued.
const processTimeout = 10 * time.Second

// Recorder applies interaction events to bandit arms, profiles and the
// interaction log.
//
// Recording is asynchronous: Record validates and enqueues, a worker pool
// applies the writes. Errors during async processing are logged, never
// surfaced to the caller; feedback must not slow down or fail the serving
// path.
type Recorder struct {
	catalog      storage.CatalogRepository
	profiles     storage.ProfileRepository
	bandit       storage.BanditRepository
	interactions storage.InteractionRepository
	pool         *ants.Pool
	inflight     sync.WaitGroup
	logger       *slog.Logger
}

// Option configures a Recorder.
type Option func(*Recorder) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Recorder) error {
		if size < 1 {
			size = 1
		}
		if r.pool != nil {
			r.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRecorder creates a feedback recorder.
func NewRecorder(
	catalog storage.CatalogRepository,
	profiles storage.ProfileRepository,
	bandit storage.BanditRepository,
	interactions storage.InteractionRepository,
	opts ...Option,
) (*Recorder, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if profiles == nil {
		return nil, ErrProfilesRequired
	}
	if bandit == nil {
		return nil, ErrBanditRequired
	}
	if interactions == nil {
		return nil, ErrInteractionsRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Recorder{
		catalog:      catalog,
		profiles:     profiles,
		bandit:       bandit,
		interactions: interactions,
		pool:         pool,
		logger:       slog.Default().With("component", "feedback"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.pool.Release()
			return nil, err
		}
	}
	return r, nil
}

// Record validates the event and enqueues it for asynchronous processing.
func (r *Recorder) Record(event *core.InteractionEvent) error {
	if err := core.ValidateEvent(event); err != nil {
		return err
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	r.inflight.Add(1)
	err := r.pool.Submit(func() {
		defer r.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
		defer cancel()
		r.process(ctx, event)
	})
	if err != nil {
		r.inflight.Done()
		if err == ants.ErrPoolClosed {
			return ErrRecorderClosed
		}
		return err
	}
	return nil
}

// Wait blocks until all enqueued events have been processed.
func (r *Recorder) Wait() {
	r.inflight.Wait()
}

// Release drains the queue and frees the worker pool.
func (r *Recorder) Release() {
	r.inflight.Wait()
	r.pool.Release()
}

// process applies one event. Each write path fails independently; a broken
// profile update still lets bandit counts and the log advance.
func (r *Recorder) process(ctx context.Context, event *core.InteractionEvent) {
	if err := r.interactions.AppendEvent(ctx, event); err != nil {
		r.logger.Error("appending interaction event failed",
			"event_id", event.EventId,
			"error", err)
	}

	r.updateArms(ctx, event)

	if event.ProfileId != 0 {
		if err := r.updateProfile(ctx, event); err != nil {
			r.logger.Error("profile update failed",
				"event_id", event.EventId,
				"profile_id", event.ProfileId,
				"error", err)
		}
	}
}

// updateArms records one outcome per shown item. An impression succeeds when
// the item was clicked or liked.
func (r *Recorder) updateArms(ctx context.Context, event *core.InteractionEvent) {
	clicked := idSet(event.Clicked)
	liked := idSet(event.Liked)

	for _, shown := range event.Shown {
		success := clicked[shown.ItemId] || liked[shown.ItemId]
		if _, err := r.bandit.RecordOutcome(ctx, shown.ItemId, success); err != nil {
			r.logger.Error("bandit outcome failed",
				"event_id", event.EventId,
				"item_id", shown.ItemId,
				"error", err)
		}
	}
}

// updateProfile folds the event into the user profile: interaction sets,
// liked count and the preference vector running average.
func (r *Recorder) updateProfile(ctx context.Context, event *core.InteractionEvent) error {
	// Load liked item vectors outside the transaction; retries must not
	// repeat catalog reads
	likedItems, err := r.catalog.GetItems(ctx, event.Liked...)
	if err != nil {
		return err
	}

	_, err = r.profiles.UpdateProfile(ctx, event.ProfileId, func(profile *core.UserProfile) error {
		for _, id := range event.Clicked {
			profile.Viewed = core.AppendUniqueID(profile.Viewed, id)
		}
		for _, id := range event.Rejected {
			profile.Rejected = core.AppendUniqueID(profile.Rejected, id)
		}
		for _, item := range likedItems {
			if core.ContainsID(profile.Liked, item.Id) {
				continue
			}
			profile.Liked = append(profile.Liked, item.Id)
			profile.LikedCount++
			if len(item.Vector) > 0 {
				profile.PreferenceVector = runningAverage(profile.PreferenceVector, item.Vector, profile.LikedCount)
			}
		}
		return nil
	})
	return err
}

// runningAverage folds vector into avg as the count-th observation.
func runningAverage(avg, vector []float32, count int) []float32 {
	if len(avg) == 0 {
		out := make([]float32, len(vector))
		copy(out, vector)
		return out
	}
	n := float32(count)
	for i := range avg {
		if i < len(vector) {
			avg[i] += (vector[i] - avg[i]) / n
		}
	}
	return avg
}

func idSet(ids []core.ID) map[core.ID]bool {
	set := make(map[core.ID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
