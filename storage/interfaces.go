package storage

import (
	"context"

	"github.com/poiesic/helpmatch/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close closes the storage backend and releases resources.
	Close() error
}

// VolunteerRepository provides operations for managing volunteer records.
type VolunteerRepository interface {
	Repository

	// AddVolunteers normalizes and stores one or more volunteers.
	// Records with an empty ID get the next VOL_N identity.
	// Returns ErrDuplicateKey if a supplied ID already exists.
	// Returns the stored records with identities populated.
	AddVolunteers(ctx context.Context, volunteers ...*core.Volunteer) ([]*core.Volunteer, error)

	// GetVolunteer retrieves a single volunteer by ID.
	// Returns ErrNotFound if the volunteer doesn't exist.
	GetVolunteer(ctx context.Context, id string) (*core.Volunteer, error)

	// ListVolunteers returns every volunteer in insertion order.
	// The returned slice is a snapshot owned by the caller.
	ListVolunteers(ctx context.Context) ([]*core.Volunteer, error)
}

// RequestRepository provides operations for managing help requests.
type RequestRepository interface {
	Repository

	// AddRequests normalizes and stores one or more help requests.
	// Records with an empty ID get the next REQ_N identity.
	// Returns ErrDuplicateKey if a supplied ID already exists.
	AddRequests(ctx context.Context, requests ...*core.HelpRequest) ([]*core.HelpRequest, error)

	// GetRequest retrieves a single help request by ID.
	// Returns ErrNotFound if the request doesn't exist.
	GetRequest(ctx context.Context, id string) (*core.HelpRequest, error)

	// ListRequests returns every help request in insertion order.
	ListRequests(ctx context.Context) ([]*core.HelpRequest, error)
}

// EmbeddingCache persists embedding vectors keyed by content fingerprint.
// Its method set matches ai.EmbeddingCache.
type EmbeddingCache interface {
	Repository

	// GetEmbedding returns the stored vector and true, or nil and false on a miss.
	GetEmbedding(ctx context.Context, key core.Fingerprint) ([]float32, bool, error)

	// PutEmbedding stores a vector, replacing any previous value for key.
	PutEmbedding(ctx context.Context, key core.Fingerprint, vector []float32) error
}
