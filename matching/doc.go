// Package matching ranks volunteers against help requests.
//
// A match blends four kinds of evidence for every active volunteer:
//
//   - lexical similarity: TF-IDF over the volunteers' skills and service
//     areas plus the request text, compared by cosine (package lexical)
//   - semantic similarity: cosine between sentence embeddings of the same texts
//   - skill affinity: cosine between the embeddings of the volunteer's skills
//     and the request category
//   - attributes: language match, location/transportation fit and rating
//
// Aggregator combines them with ScoringWeights into a final score in [0, 1].
// Engine sorts candidates by that score, keeping pool order among ties, and
// returns the top K.
//
// # Usage
//
//	engine, err := matching.NewEngine(volunteers, requests, embedder)
//	if err != nil {
//	    return err
//	}
//	defer engine.Release()
//
//	outcome, err := engine.Match(ctx, "REQ_12", matching.DefaultTopK)
//
// An unknown request or an empty pool yields an empty Outcome with an
// explanatory Status. Store or embedder failures are returned wrapped in
// ErrDependencyFailure; the engine never degrades to partial scoring.
package matching
