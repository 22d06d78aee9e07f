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


// Package ai provides abstractions for the embedding services used by helpmatch.
//
// The package defines the Embedder interface and decorators that add
// behaviour around any implementation:
//
//   - ResilientEmbedder: per-call timeout and retry with exponential backoff,
//     for remote embedding services
//   - CachingEmbedder: read-through cache keyed by model and text fingerprint
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles
//
// Public constructors in ai/openai return INTERFACE types to keep callers
// decoupled from the transport. Test constructors in ai/mock return CONCRETE
// types so tests can inject behaviour and inspect call counts.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "math tutoring")
//	sim := ai.CosineSimilarity(vector, other)
package ai
