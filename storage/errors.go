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


package storage

import "errors"

var (
	// ErrNotFound is returned when no volunteer or request has the given ID.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an added record reuses a stored ID.
	// The whole batch is rejected.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrStorageClosed is returned by every operation after the backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrSerializationFailed wraps a record or vector that could not be decoded.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrTruncatedData means a stored vector is shorter than its length prefix.
	ErrTruncatedData = errors.New("truncated data")
)
