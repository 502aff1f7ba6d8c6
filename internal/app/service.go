// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	eventqueue "github.com/okian/baton/internal/adapters/mq/queue"
	workerpool "github.com/okian/baton/internal/adapters/mq/worker"
	"github.com/okian/baton/internal/adapters/repository"
	"github.com/okian/baton/internal/domain/dedupe"
	"github.com/okian/baton/internal/domain/health"
	"github.com/okian/baton/internal/domain/model"
	"github.com/okian/baton/internal/domain/redistribution"
	"github.com/okian/baton/internal/domain/roster"
	"github.com/okian/baton/internal/domain/succession"
	"github.com/okian/baton/pkg/logger"
	"github.com/okian/baton/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultWorkerCount = 4
	defaultQueueSize   = 100000
	defaultDedupeSize  = 50000
)

// Service wires the client book, the ingestion pipeline and the
// transition engine behind one facade. Engine calls are synchronous and
// pure: each one reads a single store snapshot and derives everything
// from it, so results never depend on stale partial state.
type Service struct {
	mu sync.RWMutex

	// Core components
	book       repository.Store
	deduper    dedupe.Deduper
	queue      eventqueue.Queue
	workerPool *workerpool.Pool

	// Engine components
	aggregator *roster.Aggregator
	scorer     *health.Scorer
	engine     *redistribution.Engine
	analyzer   *succession.Analyzer

	// Configuration
	workerCount        int
	queueSize          int
	dedupeSize         int
	targetYear         int
	capacityPerPartner int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingestion workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the ingestion queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithTargetYear sets the fiscal year the engine resolves revenue for.
func WithTargetYear(year int) Option {
	return func(s *Service) {
		if year > 0 {
			s.targetYear = year
		}
	}
}

// WithCapacityPerPartner sets the client count treated as full capacity.
func WithCapacityPerPartner(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.capacityPerPartner = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: defaultWorkerCount,
		queueSize:   defaultQueueSize,
		dedupeSize:  defaultDedupeSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting transition service...")

	s.book = repository.NewBookStore(ctx)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
		eventqueue.WithBufferSize(s.queueSize),
	)

	var aggOpts []roster.Option
	var engOpts []redistribution.Option
	var anaOpts []succession.Option
	if s.targetYear > 0 {
		aggOpts = append(aggOpts, roster.WithTargetYear(s.targetYear))
		engOpts = append(engOpts, redistribution.WithTargetYear(s.targetYear))
		anaOpts = append(anaOpts, succession.WithTargetYear(s.targetYear))
	}
	if s.capacityPerPartner > 0 {
		aggOpts = append(aggOpts, roster.WithCapacityPerPartner(s.capacityPerPartner))
	}
	s.aggregator = roster.NewAggregator(aggOpts...)
	s.scorer = health.NewScorer()
	s.engine = redistribution.NewEngine(engOpts...)
	s.analyzer = succession.NewAnalyzer(anaOpts...)

	s.workerPool = workerpool.NewPool(s.workerCount, s.queue, s.book)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "transition service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping transition service...")

	if q, ok := s.queue.(*eventqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	s.started = false
	s.logger.Info(ctx, "transition service stopped")
}

// SeenAndRecord atomically checks if an ingestion event id was seen and
// records it if not. Returns true if the event was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordUpsertDuplicate()
	}
	return seen
}

// Unrecord removes an event ID from the seen set, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Enqueue submits a client upsert for asynchronous processing.
func (s *Service) Enqueue(ctx context.Context, e model.ClientUpsert) bool {
	s.logger.Debug(ctx, "enqueueing client upsert",
		logger.String("eventID", e.EventID),
		logger.String("clientID", e.Client.ID),
	)
	return s.queue.Enqueue(ctx, e)
}

// Clients returns the current book snapshot in insertion order.
func (s *Service) Clients(ctx context.Context) []model.Client {
	return s.book.Snapshot(ctx)
}

// Roster builds the partner roster from the current snapshot.
func (s *Service) Roster(ctx context.Context) []model.Partner {
	start := time.Now()
	partners := s.aggregator.Build(s.book.Snapshot(ctx))
	metrics.RecordRosterBuild()
	metrics.RecordRosterBuildDuration(float64(time.Since(start).Milliseconds()))
	return partners
}

// HealthScore computes the composite portfolio health score for the
// current roster. A degraded result is logged here; the caller still
// receives the neutral score.
func (s *Service) HealthScore(ctx context.Context) health.Score {
	score := s.scorer.Compute(s.Roster(ctx))
	metrics.RecordHealthScore()
	if score.Degraded {
		metrics.RecordHealthFallback()
		s.logger.Error(ctx, "health scoring degraded to neutral score", logger.Error(score.Err))
	}
	return score
}

// PreviewTransition marks the given partners as departing and simulates
// the redistribution of their clients under the chosen strategy. The
// snapshot is read once so the roster and the simulation agree.
func (s *Service) PreviewTransition(ctx context.Context, departingIDs []string, strategy string, custom map[string]string) (redistribution.Preview, error) {
	start := time.Now()

	parsed, err := redistribution.ParseStrategy(strategy)
	if err != nil {
		return redistribution.Preview{}, err
	}

	snapshot := s.book.Snapshot(ctx)
	partners := s.aggregator.Build(snapshot)
	for _, id := range departingIDs {
		partners, err = roster.MarkDeparting(partners, id)
		if err != nil {
			return redistribution.Preview{}, err
		}
	}

	preview, err := s.engine.Simulate(partners, snapshot, parsed, custom)
	if err != nil {
		return redistribution.Preview{}, err
	}

	metrics.RecordPreview(string(parsed))
	metrics.RecordPreviewDuration(float64(time.Since(start).Milliseconds()))
	return preview, nil
}

// SuccessionReport classifies the current book and totals revenue at
// risk for the given departing partners.
func (s *Service) SuccessionReport(ctx context.Context, departingIDs []string) (succession.Report, error) {
	snapshot := s.book.Snapshot(ctx)
	partners := s.aggregator.Build(snapshot)
	var err error
	for _, id := range departingIDs {
		partners, err = roster.MarkDeparting(partners, id)
		if err != nil {
			return succession.Report{}, err
		}
	}
	report := s.analyzer.BuildReport(snapshot, partners)
	metrics.RecordSuccessionReport()
	return report, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}
	if s.started {
		stats["queueLength"] = s.queue.Len(ctx)
		stats["bookSize"] = s.book.Count(ctx)
		metrics.UpdateWorkerCount(s.workerCount)
	}
	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
