package ingestion

import "errors"

var (
	// ErrVolunteerRepositoryRequired is returned when a volunteer repository is not provided.
	ErrVolunteerRepositoryRequired = errors.New("volunteer repository required")

	// ErrRequestRepositoryRequired is returned when a request repository is not provided.
	ErrRequestRepositoryRequired = errors.New("request repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")
)
