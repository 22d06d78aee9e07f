package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/helpmatch/ai"
	"github.com/poiesic/helpmatch/core"
	"github.com/poiesic/helpmatch/storage"
)

const defaultBatchSize = 32

// Pipeline stores new volunteers and help requests and warms the embedding
// cache for them in the background.
type Pipeline struct {
	volunteers    storage.VolunteerRepository
	requests      storage.RequestRepository
	embeddingPool *ants.Pool
	embeddingProc processor
	batchSize     int
	pending       sync.WaitGroup
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for background embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		embeddingPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}
		p.embeddingPool = embeddingPool
		return nil
	}
}

// WithBatchSize sets the number of texts per embedder call.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new intake pipeline.
// embedder should be the caching embedder the matching engine reads through;
// with a plain embedder the warm-up work is wasted.
func NewPipeline(
	volunteers storage.VolunteerRepository,
	requests storage.RequestRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Pipeline, error) {
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
	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		volunteers:    volunteers,
		requests:      requests,
		embeddingPool: embeddingPool,
		batchSize:     defaultBatchSize,
		logger:        slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create the processor after options are applied (so it gets final config)
	embeddingProc, err := newEmbeddingProcessor(embedder, p.batchSize, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.embeddingProc = embeddingProc

	return p, nil
}

// IngestVolunteers stores volunteers, allocating identities where missing,
// and schedules embedding of the texts active volunteers are matched on.
// Errors during async processing are logged but do not fail the ingestion.
func (p *Pipeline) IngestVolunteers(ctx context.Context, volunteers ...*core.Volunteer) ([]*core.Volunteer, error) {
	added, err := p.volunteers.AddVolunteers(ctx, volunteers...)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, 2*len(added))
	for _, v := range added {
		if v.IsActive() {
			texts = append(texts, v.CorpusText(), v.Skills)
		}
	}
	p.submit(texts)
	return added, nil
}

// IngestRequests stores help requests, allocating identities where missing,
// and schedules embedding of their query and category texts.
func (p *Pipeline) IngestRequests(ctx context.Context, requests ...*core.HelpRequest) ([]*core.HelpRequest, error) {
	added, err := p.requests.AddRequests(ctx, requests...)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, 2*len(added))
	for _, r := range added {
		texts = append(texts, r.QueryText(), r.Category)
	}
	p.submit(texts)
	return added, nil
}

func (p *Pipeline) submit(texts []string) {
	if len(texts) == 0 {
		return
	}

	p.pending.Add(1)
	err := p.embeddingPool.Submit(func() {
		defer p.pending.Done()
		if err := p.embeddingProc.process(context.Background(), texts...); err != nil {
			p.logger.Error("error processing embeddings", "err", err)
		}
	})
	if err != nil {
		p.pending.Done()
		p.logger.Error("error scheduling embeddings", "err", err)
	}
}

// Wait blocks until all scheduled background work has finished.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Release waits for background work and releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.Wait()
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
