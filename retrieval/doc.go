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

// Package retrieval implements the multi-signal candidate retrievers and the
// concurrent fan-out that runs them.
//
// # Signals
//
//   - semantic: embedding similarity between query text and item vectors
//   - keyword: weighted overlap between extracted query keywords and item
//     keyword weights
//   - collaborative: items liked by profiles with overlapping taste
//   - trending: highest-rated catalog items, also the cold-start fallback
//
// Each retriever returns an independently ranked candidate list; the fusion
// package combines them by rank. Retrievers never see each other's output.
//
// # Failure isolation
//
// The Group runs retrievers in parallel with a per-retriever timeout. A
// failed or timed-out retriever yields an empty list and marks the request
// degraded; it cannot fail the request.
package retrieval
