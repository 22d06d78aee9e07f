// Package reembed refreshes the embedding cache for every stored volunteer,
// typically after the embedding model or its host changes.
//
// Volunteers are read in insertion order and processed in batches. Each
// batch embeds the distinct non-blank corpus and skill texts with retry and
// exponential backoff, normalizes the vectors and writes them to the cache
// under the same keys the caching embedder reads. Progress is written to an
// io.Writer as the run advances.
package reembed
