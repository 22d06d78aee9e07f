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


// Package storage provides the storage abstraction layer for helpmatch.
//
// This package defines repository interfaces that decouple storage implementation
// from matching logic. Volunteer and request tables, and the embedding cache,
// can be backed by BadgerDB (storage/badger) or by CSV files (storage/csvfile)
// interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the repository interface:
//
//	repo, err := badger.NewVolunteerRepository(backend)  // returns storage.VolunteerRepository
//
// Internal helpers may return concrete types since they're only used within
// the implementation package.
//
// # Ordering
//
// List operations return records in insertion order. The matching engine
// uses that order as its deterministic tie-break, so every backend must
// preserve it.
//
// # Normalization
//
// Records are normalized with core.NormalizeVolunteer and
// core.NormalizeHelpRequest on the way in, so every read yields rows with
// string fields and finite numbers.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
