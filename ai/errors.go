// Copyright 2025 Poiesic Systems
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
	// ErrInvalidMaxAttempts is returned when a retry is requested with fewer than one attempt.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than 0")

	// ErrEmbedderRequired is returned when a decorator is built without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrEmbeddingCacheRequired is returned when a caching embedder is built without a cache.
	ErrEmbeddingCacheRequired = errors.New("embedding cache required")

	// ErrUnexpectedResponse is returned when the embedding service answers
	// with a different number of vectors than texts sent.
	ErrUnexpectedResponse = errors.New("unexpected embedding response")
)
