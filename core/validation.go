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


package core

import "fmt"

// ValidateItem validates an Item according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Rating must be within the 0-5 scale
//
// NOT validated (populated at ingestion time by external processes):
//   - Vector (items without embeddings are skipped by the semantic retriever)
//   - Keywords / CategoryScores (may be empty)
func ValidateItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidItem)
	}
	if item.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyName)
	}
	if item.Rating < 0 || item.Rating > 5 {
		return fmt.Errorf("%w: %w: %v", ErrInvalidItem, ErrInvalidRating, item.Rating)
	}
	return nil
}

// ValidateProfile validates a UserProfile according to domain rules.
func ValidateProfile(profile *UserProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}
	if profile.SessionKey == "" {
		return fmt.Errorf("%w: session key cannot be empty", ErrInvalidProfile)
	}
	return nil
}

// ValidateBanditArm validates bandit arm statistics.
// Alpha and beta never drop below the uninformative prior.
func ValidateBanditArm(arm *BanditArm) error {
	if arm == nil {
		return fmt.Errorf("%w: arm is nil", ErrInvalidBanditArm)
	}
	if arm.Alpha < 1 || arm.Beta < 1 {
		return fmt.Errorf("%w: alpha=%v beta=%v", ErrInvalidBanditArm, arm.Alpha, arm.Beta)
	}
	return nil
}

// ValidateEvent validates an InteractionEvent before it is appended to the log.
//
// Validation rules:
//   - EventId must not be empty
//   - Rating, when set, must be within 1-5
//   - Every clicked/liked/rejected id must appear in Shown
func ValidateEvent(event *InteractionEvent) error {
	if event == nil {
		return fmt.Errorf("%w: event is nil", ErrInvalidEvent)
	}
	if event.EventId == "" {
		return fmt.Errorf("%w: event id cannot be empty", ErrInvalidEvent)
	}
	if event.Rating < 0 || event.Rating > 5 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidEvent, ErrInvalidRating, event.Rating)
	}

	shown := make(map[ID]bool, len(event.Shown))
	for _, s := range event.Shown {
		shown[s.ItemId] = true
	}
	for _, set := range [][]ID{event.Clicked, event.Liked, event.Rejected} {
		for _, id := range set {
			if !shown[id] {
				return fmt.Errorf("%w: interacted item %d was never shown", ErrInvalidEvent, id)
			}
		}
	}
	return nil
}

// ValidateLimit validates a requested result count.
func ValidateLimit(limit int) error {
	if limit < 1 || limit > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	return nil
}
