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


package ai

import "errors"

var (
	// ErrServiceUnavailable indicates the upstream AI service could not be
	// reached. Transient; callers retry with backoff before degrading.
	ErrServiceUnavailable = errors.New("ai service unavailable")

	// ErrRateLimited indicates the upstream AI service rejected the call
	// due to rate limiting. Transient; callers back off before retrying.
	ErrRateLimited = errors.New("ai service rate limited")

	// ErrMalformedResponse indicates the service replied with a structure
	// that could not be parsed. Callers fall back rather than abort.
	ErrMalformedResponse = errors.New("malformed ai response")
)
