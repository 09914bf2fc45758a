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

import "errors"

// Domain errors
var (
	// ErrInvalidInput indicates the caller supplied an unusable request
	// (empty query text and no profile with history). Not retryable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoCandidates indicates that every retriever and every fallback
	// produced nothing. The caller should broaden the query.
	ErrNoCandidates = errors.New("no candidates found")

	// ErrInvalidItem indicates an Item failed validation.
	ErrInvalidItem = errors.New("invalid item")

	// ErrInvalidProfile indicates a UserProfile failed validation.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrInvalidEvent indicates an InteractionEvent failed validation.
	ErrInvalidEvent = errors.New("invalid interaction event")

	// ErrMissingVector indicates an item lacks a required embedding.
	// Such items are excluded from semantic retrieval, never fatal.
	ErrMissingVector = errors.New("item has no embedding vector")

	// ErrEmptyName indicates the item Name field is empty.
	ErrEmptyName = errors.New("item name cannot be empty")

	// ErrInvalidRating indicates a rating outside the 0-5 scale.
	ErrInvalidRating = errors.New("rating must be between 0 and 5")

	// ErrInvalidLimit indicates a result limit outside [1,100].
	ErrInvalidLimit = errors.New("limit must be between 1 and 100")

	// ErrInvalidBanditArm indicates bandit parameters below the prior.
	ErrInvalidBanditArm = errors.New("bandit alpha and beta must be >= 1")
)
