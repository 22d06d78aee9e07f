// Package mock provides test double implementations of AI service interfaces.
//
// The mocks let tests run without an embedding server and give controlled,
// deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockEmbedder := mock.NewMockEmbedder().
//	    WithEmbedTextsFunc(func(ctx context.Context, texts []string) ([][]float32, error) {
//	        return nil, errors.New("backend unavailable")
//	    })
//
//	// Check call counts
//	count := mockEmbedder.CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: bag-of-words vectors hashed into 384 dimensions, so
//     shared words give positive similarity and disjoint texts give 0
//   - MockProvider: wraps a MockEmbedder
package mock
