package reembed

import "errors"

var (
	// ErrVolunteerRepositoryRequired is returned when a reembedder is built without a volunteer store.
	ErrVolunteerRepositoryRequired = errors.New("volunteer repository required")

	// ErrEmbedderRequired is returned when a reembedder is built without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrEmbeddingCacheRequired is returned when a reembedder is built without a cache to fill.
	ErrEmbeddingCacheRequired = errors.New("embedding cache required")

	// ErrEmbeddingCountMismatch is returned when the embedder returns a different number of vectors than texts.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")
)
