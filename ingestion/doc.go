// Package ingestion provides the intake pipeline for volunteers and help requests.
//
// The Pipeline type manages the intake workflow, including:
//   - Allocating VOL_N / REQ_N identities and adding records to storage
//   - Embedding the texts a match will need, asynchronously
//
// Embedding runs on a worker pool through the caching embedder, so the first
// match against a new volunteer does not pay for its embeddings.
// Errors during async processing are logged but do not fail the ingestion operation.
package ingestion
