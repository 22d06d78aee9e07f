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


package reembed

import (
	"context"

	"github.com/poiesic/helpmatch/core"
	"github.com/poiesic/helpmatch/storage"
)

// DefaultBatchSize is the number of volunteers handed to each batch.
const DefaultBatchSize = 100

// VolunteerIterator walks every stored volunteer in insertion order, in batches.
type VolunteerIterator struct {
	volunteers storage.VolunteerRepository
	batchSize  int
}

// NewVolunteerIterator creates an iterator. A non-positive batchSize falls
// back to DefaultBatchSize.
func NewVolunteerIterator(volunteers storage.VolunteerRepository, batchSize int) *VolunteerIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &VolunteerIterator{
		volunteers: volunteers,
		batchSize:  batchSize,
	}
}

// ForEach calls fn once per batch. Iteration stops at the first error from
// fn, or when ctx is cancelled between batches.
func (it *VolunteerIterator) ForEach(ctx context.Context, fn func([]*core.Volunteer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	all, err := it.volunteers.ListVolunteers(ctx)
	if err != nil {
		return err
	}

	for i := 0; i < len(all); i += it.batchSize {
		end := min(i+it.batchSize, len(all))
		if err := fn(all[i:end]); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}
