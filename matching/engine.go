package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/helpmatch/ai"
	"github.com/poiesic/helpmatch/core"
	"github.com/poiesic/helpmatch/lexical"
	"github.com/poiesic/helpmatch/storage"
)

// DefaultTopK is the number of candidates returned when the caller has no preference.
const DefaultTopK = 3

// defaultBatchSize is the number of texts sent to the embedder per call.
const defaultBatchSize = 32

// Engine ranks volunteers against help requests.
//
// An Engine holds no per-call state: every call reads a fresh snapshot of the
// volunteer pool, and concurrent calls are independent.
type Engine struct {
	volunteers storage.VolunteerRepository
	requests   storage.RequestRepository
	embedder   *textEmbedder
	pool       *ants.Pool
	aggregator Aggregator
	location   LocationPolicy
	monitor    MatchMonitor
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "matching")
		return nil
	}
}

// WithConcurrency sets the number of embedding batches run in parallel.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithConcurrency(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if e.pool != nil {
			e.pool.Release()
		}
		e.pool = pool
		e.embedder.pool = pool
		return nil
	}
}

// WithBatchSize sets the maximum number of texts per embedder call.
func WithBatchSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		e.embedder.batchSize = size
		return nil
	}
}

// WithWeights overrides the final score weights.
func WithWeights(weights ScoringWeights) Option {
	return func(e *Engine) error {
		if err := weights.Validate(); err != nil {
			return err
		}
		e.aggregator.Weights = weights
		return nil
	}
}

// WithTextBlend overrides the lexical/semantic mix.
func WithTextBlend(blend TextBlend) Option {
	return func(e *Engine) error {
		if err := blend.Validate(); err != nil {
			return err
		}
		e.aggregator.Blend = blend
		return nil
	}
}

// WithMaxRating sets the top of the rating scale.
func WithMaxRating(maxRating float64) Option {
	return func(e *Engine) error {
		if maxRating <= 0 {
			return fmt.Errorf("%w: max rating %v must be positive", ErrInvalidWeights, maxRating)
		}
		e.aggregator.MaxRating = maxRating
		return nil
	}
}

// WithLocationPolicy overrides the in-person location scoring.
func WithLocationPolicy(policy LocationPolicy) Option {
	return func(e *Engine) error {
		if err := policy.Validate(); err != nil {
			return err
		}
		e.location = policy
		return nil
	}
}

// WithMonitor sets the default monitor for Match calls.
func WithMonitor(monitor MatchMonitor) Option {
	return func(e *Engine) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		e.monitor = monitor
		return nil
	}
}

// NewEngine creates a matching engine.
// The embedder is owned by the caller and is not closed by the engine.
func NewEngine(
	volunteers storage.VolunteerRepository,
	requests storage.RequestRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Engine, error) {
	if volunteers == nil {
		return nil, ErrVolunteerRepositoryRequired
	}
	if requests == nil {
		return nil, ErrRequestRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := max(runtime.NumCPU()/2, 1)
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		volunteers: volunteers,
		requests:   requests,
		embedder: &textEmbedder{
			embedder:  embedder,
			pool:      pool,
			batchSize: defaultBatchSize,
		},
		pool:       pool,
		aggregator: DefaultAggregator(),
		location:   DefaultLocationPolicy(),
		monitor:    &noopMonitor{},
		logger:     slog.Default().With("component", "matching"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			e.Release()
			return nil, err
		}
	}

	return e, nil
}

// Release releases the worker pool.
// The engine should not be used after calling Release.
func (e *Engine) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// Match ranks the volunteer pool against the request with the given ID and
// returns at most topK candidates.
//
// An unknown request or a pool without active volunteers is not an error:
// the outcome is empty and its Status says why.
func (e *Engine) Match(ctx context.Context, requestID string, topK int) (*Outcome, error) {
	return e.MatchWithMonitor(ctx, requestID, topK, e.monitor)
}

// MatchWithMonitor is Match with a per-call monitor.
func (e *Engine) MatchWithMonitor(ctx context.Context, requestID string, topK int, monitor MatchMonitor) (*Outcome, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopK, topK)
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	req, err := e.requests.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			e.logger.Debug("request not found", "request", requestID)
			outcome := &Outcome{RequestID: requestID, Status: StatusRequestNotFound}
			monitor.Finish(outcome)
			return outcome, nil
		}
		e.logger.Error("error loading request", "request", requestID, "err", err)
		return nil, fmt.Errorf("%w: loading request %s: %w", ErrDependencyFailure, requestID, err)
	}

	pool, err := e.volunteers.ListVolunteers(ctx)
	if err != nil {
		e.logger.Error("error loading volunteers", "err", err)
		return nil, fmt.Errorf("%w: loading volunteers: %w", ErrDependencyFailure, err)
	}

	return e.rank(ctx, req, pool, topK, monitor)
}

// Rank scores pool against req without touching the repositories.
// pool order is the tie-break order.
func (e *Engine) Rank(ctx context.Context, req *core.HelpRequest, pool []*core.Volunteer, topK int) (*Outcome, error) {
	if req == nil {
		return nil, ErrRequestRequired
	}
	if topK <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopK, topK)
	}
	return e.rank(ctx, req, pool, topK, e.monitor)
}

func (e *Engine) rank(ctx context.Context, req *core.HelpRequest, pool []*core.Volunteer, topK int, monitor MatchMonitor) (*Outcome, error) {
	started := time.Now()
	monitor.Start(req, topK)

	outcome := &Outcome{RequestID: req.ID, Status: StatusMatched}

	// 1. Eligible candidates
	candidates := make([]*core.Volunteer, 0, len(pool))
	for _, v := range pool {
		if v.IsActive() {
			candidates = append(candidates, v)
		}
	}
	monitor.AfterCandidateFilter(candidates)
	if len(candidates) == 0 {
		e.logger.Debug("no active volunteers", "request", req.ID, "pool", len(pool))
		outcome.Status = StatusNoActiveVolunteers
		monitor.Finish(outcome)
		return outcome, nil
	}

	// 2. Lexical similarity over the combined corpus
	corpus := make([]string, len(candidates))
	for i, v := range candidates {
		corpus[i] = v.CorpusText()
	}
	query := req.QueryText()
	lexicalSims, err := lexical.Similarities(corpus, query)
	if err != nil {
		e.logger.Error("error vectorizing match texts", "request", req.ID, "err", err)
		return nil, fmt.Errorf("%w: vectorizing: %w", ErrDependencyFailure, err)
	}
	monitor.AfterLexical(lexicalSims)

	// 3. Semantic similarity and skill affinity from one embedding pass.
	// Layout: corpus texts, query, skills texts, category.
	n := len(candidates)
	texts := make([]string, 0, 2*n+2)
	texts = append(texts, corpus...)
	texts = append(texts, query)
	for _, v := range candidates {
		texts = append(texts, v.Skills)
	}
	texts = append(texts, req.Category)

	vectors, err := e.embedder.embed(ctx, texts)
	if err != nil {
		e.logger.Error("error embedding match texts", "request", req.ID, "texts", len(texts), "err", err)
		return nil, fmt.Errorf("%w: embedding: %w", ErrDependencyFailure, err)
	}
	queryVector := vectors[n]
	categoryVector := vectors[2*n+1]

	semanticSims := make([]float64, n)
	affinities := make([]float64, n)
	for i := range candidates {
		semanticSims[i] = ai.CosineSimilarity(vectors[i], queryVector)
		affinities[i] = SkillAffinity(vectors[n+1+i], categoryVector)
	}
	monitor.AfterSemantic(semanticSims, affinities)

	// 4. Attributes and aggregation
	results := make([]*MatchResult, n)
	for i, v := range candidates {
		signals := Signals{
			Lexical:       lexicalSims[i],
			Semantic:      semanticSims[i],
			SkillAffinity: affinities[i],
			Language:      LanguageMatch(req.LanguagePreferred, v.LanguagesSpoken),
			Location:      e.location.Score(req, v),
			Rating:        v.Rating,
		}
		results[i] = &MatchResult{
			Volunteer:      v,
			Lexical:        signals.Lexical,
			Semantic:       signals.Semantic,
			TextSimilarity: e.aggregator.TextSimilarity(signals),
			SkillAffinity:  signals.SkillAffinity,
			LanguageMatch:  signals.Language,
			LocationScore:  signals.Location,
			Score:          e.aggregator.Score(signals),
		}
		monitor.Scored(results[i])
	}

	// 5. Sort descending; stable keeps pool order among equal scores
	slices.SortStableFunc(results, func(a, b *MatchResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	// 6. Truncate
	if len(results) > topK {
		results = results[:topK]
	}
	outcome.Results = results

	e.logger.Debug("match complete",
		"request", req.ID,
		"candidates", n,
		"returned", len(results),
		"elapsed", time.Since(started))
	monitor.Finish(outcome)
	return outcome, nil
}
