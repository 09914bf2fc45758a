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


// Package storage provides the storage abstraction layer for appscout.
//
// This package defines repository interfaces that decouple storage
// implementation from ranking logic. It allows for different storage backends
// (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Repositories
//
//   - CatalogRepository: read-only item catalog with nearest-neighbor and
//     keyword/category filter queries (writes only at the ingestion boundary)
//   - ProfileRepository: keyed CRUD for user profiles with serialized
//     per-key updates
//   - BanditRepository: per-item Thompson Sampling statistics with atomic
//     read-increment-write outcomes
//   - InteractionRepository: append-only interaction log
//
// # Constructor Return Type Pattern
//
// Public constructors return interface types to enforce abstraction and
// enable alternative backend implementations:
//
//	catalog, err := badger.NewCatalogRepository(backend) // storage.CatalogRepository
//
// # Concurrency
//
// All repository implementations must be thread-safe. The bandit and profile
// repositories carry the engine's only cross-request mutable state; their
// implementations must guarantee that concurrent updates to the same key are
// serialized (lost updates are a correctness bug, not a tolerable race) while
// updates to different keys proceed independently.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support.
package storage
