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


package matching

import "errors"

var (
	// ErrDependencyFailure wraps a failure of the store, the vectorizer or the embedder.
	// The engine never falls back to partial scoring when it is returned.
	ErrDependencyFailure = errors.New("matching dependency failed")

	// ErrInvalidTopK is returned when topK is not a positive integer.
	ErrInvalidTopK = errors.New("topK must be a positive integer")

	// ErrEmbedderRequired is returned when an engine is built without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrVolunteerRepositoryRequired is returned when an engine is built without a volunteer repository.
	ErrVolunteerRepositoryRequired = errors.New("volunteer repository required")

	// ErrRequestRepositoryRequired is returned when an engine is built without a request repository.
	ErrRequestRepositoryRequired = errors.New("request repository required")

	// ErrRequestRequired is returned when Rank is called without a request.
	ErrRequestRequired = errors.New("help request required")

	// ErrDimensionMismatch indicates the embedder returned a vector of the wrong length.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingCountMismatch indicates the embedder returned a different number of vectors than texts.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")

	// ErrInvalidWeights is returned for negative weights or weights that do not sum to 1.
	ErrInvalidWeights = errors.New("invalid scoring weights")

	// ErrInvalidLocationPolicy is returned for a location policy with out-of-range values.
	ErrInvalidLocationPolicy = errors.New("invalid location policy")
)
