package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/helpmatch/core"
	"github.com/poiesic/helpmatch/storage"
)

// RequestRepository implements storage.RequestRepository for BadgerDB.
type RequestRepository struct {
	backend  *Backend
	orderSeq *badger.Sequence
}

var _ storage.RequestRepository = (*RequestRepository)(nil)

// NewRequestRepository creates a new RequestRepository.
func NewRequestRepository(backend *Backend) (*RequestRepository, error) {
	orderSeq, err := backend.GetSequence(requestOrderSeq)
	if err != nil {
		return nil, err
	}

	return &RequestRepository{
		backend:  backend,
		orderSeq: orderSeq,
	}, nil
}

// Close releases the order sequence.
func (r *RequestRepository) Close() error {
	return r.orderSeq.Release()
}

// AddRequests normalizes and stores one or more help requests.
func (r *RequestRepository) AddRequests(ctx context.Context, requests ...*core.HelpRequest) ([]*core.HelpRequest, error) {
	stored := make([]*core.HelpRequest, 0, len(requests))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		ids := collectIDs(tx, requestRecordPrefix)
		for _, req := range requests {
			record := core.NormalizeHelpRequest(req)
			if record.ID == "" {
				record.ID = storage.NextFreeID(core.RequestPrefix, ids)
			}

			key := makeRequestKey(record.ID)
			found, err := exists(tx, key)
			if err != nil {
				return err
			}
			if found {
				return fmt.Errorf("request %s: %w", record.ID, storage.ErrDuplicateKey)
			}

			if err := appendOrdered(tx, r.orderSeq, requestOrderPrefix, key, storage.MarshalHelpRequest(record)); err != nil {
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

// GetRequest retrieves a single help request by ID.
func (r *RequestRepository) GetRequest(ctx context.Context, id string) (*core.HelpRequest, error) {
	var result *core.HelpRequest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRequestKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			result, err = storage.UnmarshalHelpRequest(val)
			return err
		})
	}, false)
	return result, err
}

// ListRequests returns every help request in insertion order.
func (r *RequestRepository) ListRequests(ctx context.Context) ([]*core.HelpRequest, error) {
	var result []*core.HelpRequest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanOrdered(tx, requestOrderPrefix, func(val []byte) error {
			req, err := storage.UnmarshalHelpRequest(val)
			if err != nil {
				return err
			}
			result = append(result, req)
			return nil
		})
	}, false)
	return result, err
}
