package lexical

import (
	"fmt"
	"math"

	"github.com/james-bowman/nlp"
	"github.com/james-bowman/nlp/measures/pairwise"
	"github.com/james-bowman/sparse"
)

// Model is a TF-IDF term space fit over a document collection.
//
// Weights are raw term frequency times smoothed inverse document frequency,
// idf(t) = ln((1+n)/(1+df(t))) + 1. nlp.TfidfTransformer supplies the
// logarithm; the term counts are added back on top of its output for the +1,
// so a term present in every document still carries weight.
type Model struct {
	vectoriser *nlp.CountVectoriser
	idf        *nlp.TfidfTransformer
}

// Fit builds the vocabulary and idf table from docs.
func Fit(docs []string) (*Model, error) {
	vectoriser := nlp.NewCountVectoriser()
	vectoriser.Tokeniser = tokeniser
	vectoriser.Fit(docs...)

	m := &Model{vectoriser: vectoriser}
	if len(docs) == 0 || m.VocabularySize() == 0 {
		return m, nil
	}

	counts, err := vectoriser.Transform(docs...)
	if err != nil {
		return nil, fmt.Errorf("counting terms: %w", err)
	}
	m.idf = nlp.NewTfidfTransformer()
	m.idf.Fit(counts)
	return m, nil
}

// VocabularySize returns the number of distinct terms.
func (m *Model) VocabularySize() int {
	return len(m.vectoriser.Vocabulary)
}

// Transform returns a term-document matrix with one column per doc.
// Terms outside the vocabulary are ignored. It returns nil when the model
// has no vocabulary.
func (m *Model) Transform(docs ...string) (*sparse.CSC, error) {
	if m.idf == nil || len(docs) == 0 {
		return nil, nil
	}
	counts, err := m.vectoriser.Transform(docs...)
	if err != nil {
		return nil, fmt.Errorf("counting terms: %w", err)
	}
	scaled, err := m.idf.Transform(counts)
	if err != nil {
		return nil, fmt.Errorf("weighting terms: %w", err)
	}

	var weighted sparse.CSR
	weighted.Add(scaled, counts)
	return weighted.ToCSC(), nil
}

// Similarities returns the cosine similarity of each corpus document to the
// query, each in [0, 1]. The model is fit on the corpus plus the query so
// both share one term space. An empty corpus yields an empty slice, and a
// query with no usable terms yields all zeros.
func Similarities(corpus []string, query string) ([]float64, error) {
	sims := make([]float64, len(corpus))
	if len(corpus) == 0 {
		return sims, nil
	}

	docs := make([]string, 0, len(corpus)+1)
	docs = append(docs, corpus...)
	docs = append(docs, query)

	m, err := Fit(docs)
	if err != nil {
		return nil, err
	}
	matrix, err := m.Transform(docs...)
	if err != nil {
		return nil, err
	}
	if matrix == nil {
		return sims, nil
	}

	q := matrix.ColView(len(corpus))
	for i := range corpus {
		s := pairwise.CosineSimilarity(matrix.ColView(i), q)
		if math.IsNaN(s) {
			// zero vector on either side
			continue
		}
		sims[i] = math.Min(1, math.Max(0, s))
	}
	return sims, nil
}
