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


// Package ai provides abstractions for the AI collaborators used by appscout.
//
// This package defines interfaces for text embeddings, query intent
// extraction, and contextual relevance judgment. It follows the dependency
// inversion principle: the retrieval pipeline depends on these abstractions
// rather than on concrete service clients.
//
// # Design Principles
//
// The package is designed around four key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - IntentExtractor: Turns query text into weighted keywords and categories
//   - RelevanceJudge: Scores candidate batches against a query
//   - AIProvider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.AIProvider
//
// Test utility constructors (mock.NewMockEmbedder, mock.NewMockRelevanceJudge)
// return CONCRETE types to enable test assertions and behavior injection via
// function fields.
//
// # Failure Modes
//
// Every service can fail with ErrServiceUnavailable or ErrRateLimited; the
// relevance judge can additionally fail with ErrMalformedResponse. All three
// are treated as degradation signals by the pipeline, never as fatal errors
// downstream of input validation.
package ai
