package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/helpmatch/core"
	"github.com/poiesic/helpmatch/storage"
)

// VolunteerRepository implements storage.VolunteerRepository for BadgerDB.
type VolunteerRepository struct {
	backend  *Backend
	orderSeq *badger.Sequence
}

var _ storage.VolunteerRepository = (*VolunteerRepository)(nil)

// NewVolunteerRepository creates a new VolunteerRepository.
func NewVolunteerRepository(backend *Backend) (*VolunteerRepository, error) {
	orderSeq, err := backend.GetSequence(volunteerOrderSeq)
	if err != nil {
		return nil, err
	}

	return &VolunteerRepository{
		backend:  backend,
		orderSeq: orderSeq,
	}, nil
}

// Close releases the order sequence.
func (r *VolunteerRepository) Close() error {
	return r.orderSeq.Release()
}

// AddVolunteers normalizes and stores one or more volunteers.
func (r *VolunteerRepository) AddVolunteers(ctx context.Context, volunteers ...*core.Volunteer) ([]*core.Volunteer, error) {
	stored := make([]*core.Volunteer, 0, len(volunteers))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		ids := collectIDs(tx, volunteerRecordPrefix)
		for _, v := range volunteers {
			record := core.NormalizeVolunteer(v)
			if record.ID == "" {
				record.ID = storage.NextFreeID(core.VolunteerPrefix, ids)
			}

			key := makeVolunteerKey(record.ID)
			found, err := exists(tx, key)
			if err != nil {
				return err
			}
			if found {
				return fmt.Errorf("volunteer %s: %w", record.ID, storage.ErrDuplicateKey)
			}

			if err := appendOrdered(tx, r.orderSeq, volunteerOrderPrefix, key, storage.MarshalVolunteer(record)); err != nil {
				return err
			}
			ids = append(ids, record.ID)
			stored = append(stored, record)
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// GetVolunteer retrieves a single volunteer by ID.
func (r *VolunteerRepository) GetVolunteer(ctx context.Context, id string) (*core.Volunteer, error) {
	var result *core.Volunteer
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVolunteerKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			result, err = storage.UnmarshalVolunteer(val)
			return err
		})
	}, false)
	return result, err
}

// ListVolunteers returns every volunteer in insertion order.
func (r *VolunteerRepository) ListVolunteers(ctx context.Context) ([]*core.Volunteer, error) {
	var result []*core.Volunteer
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanOrdered(tx, volunteerOrderPrefix, func(val []byte) error {
			v, err := storage.UnmarshalVolunteer(val)
			if err != nil {
				return err
			}
			result = append(result, v)
			return nil
		})
	}, false)
	return result, err
}
