// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	notifyqueue "github.com/okian/fullcircle/internal/adapters/mq/queue"
	workerpool "github.com/okian/fullcircle/internal/adapters/mq/worker"
	"github.com/okian/fullcircle/internal/adapters/notify"
	repository "github.com/okian/fullcircle/internal/adapters/repository"
	"github.com/okian/fullcircle/internal/domain/aggregate"
	"github.com/okian/fullcircle/internal/domain/catalog"
	"github.com/okian/fullcircle/internal/domain/gate"
	"github.com/okian/fullcircle/internal/domain/model"
	"github.com/okian/fullcircle/internal/domain/types"
	"github.com/okian/fullcircle/pkg/logger"
	"github.com/okian/fullcircle/pkg/metrics"
)

// smtpSettings carries injected notifier credentials until Start.
type smtpSettings struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// Service implements the API dependencies for the assessment system.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog  *catalog.Catalog
	engine   *aggregate.Engine
	store    *repository.MemStore
	gate     gate.Gate
	queue    *notifyqueue.InMemoryQueue
	pool     *workerpool.Pool
	notifier notify.Notifier

	// Configuration
	tierScheme        string
	maxPeerRaters     int
	maxManagerRaters  int
	shardCount        int
	notifyQueueSize   int
	notifyWorkerCount int
	smtp              smtpSettings

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTierScheme selects the tier boundary scheme by name.
func WithTierScheme(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.tierScheme = name
		}
	}
}

// WithMaxPeerRaters caps distinct peer raters per ratee.
func WithMaxPeerRaters(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPeerRaters = n
		}
	}
}

// WithMaxManagerRaters caps distinct manager raters per ratee.
func WithMaxManagerRaters(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxManagerRaters = n
		}
	}
}

// WithShardCount sets the number of shards in the rating store.
func WithShardCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.shardCount = n
		}
	}
}

// WithNotifyQueueSize bounds the confirmation queue.
func WithNotifyQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.notifyQueueSize = n
		}
	}
}

// WithNotifyWorkerCount sets the number of dispatch workers.
func WithNotifyWorkerCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.notifyWorkerCount = n
		}
	}
}

// WithSMTP injects the notifier transport settings.
func WithSMTP(host string, port int, username, password, from string) Option {
	return func(s *Service) {
		s.smtp = smtpSettings{host: host, port: port, username: username, password: password, from: from}
	}
}

// WithNotifier replaces the notifier. Tests use this to capture messages.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		tierScheme:        catalog.SchemeRevised.Name(),
		maxPeerRaters:     2,
		maxManagerRaters:  2,
		shardCount:        8,
		notifyQueueSize:   1024,
		notifyWorkerCount: 2,
	}

	// Apply all options
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

	s.logger.Info(ctx, "starting assessment service...")

	scheme, err := catalog.SchemeByName(s.tierScheme)
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}
	cat, err := catalog.New(catalog.WithScheme(scheme))
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}
	s.catalog = cat
	s.engine = aggregate.NewEngine(cat)
	s.store = repository.NewMemStore(ctx, repository.WithShardCount(s.shardCount))
	s.gate = gate.NewStoreGate(s.store, cat,
		gate.WithMaxPeerRaters(s.maxPeerRaters),
		gate.WithMaxManagerRaters(s.maxManagerRaters),
	)

	if s.notifier == nil {
		smtpNotifier := notify.NewSMTPNotifier(
			notify.WithHost(s.smtp.host),
			notify.WithPort(s.smtp.port),
			notify.WithCredentials(s.smtp.username, s.smtp.password),
			notify.WithFrom(s.smtp.from),
		)
		if smtpNotifier.Enabled() {
			s.notifier = smtpNotifier
		} else {
			s.logger.Info(ctx, "no SMTP host configured; notifications disabled")
			s.notifier = notify.NoopNotifier{}
		}
	}

	s.queue = notifyqueue.NewInMemoryQueue(notifyqueue.WithCapacity(s.notifyQueueSize))
	s.pool = workerpool.NewPool(s.queue, s.notifier,
		workerpool.WithWorkerCount(s.notifyWorkerCount),
		workerpool.WithLogger(s.logger.Named("notify")),
	)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "assessment service started",
		logger.String("tierScheme", s.tierScheme),
		logger.Int("maxPeerRaters", s.maxPeerRaters),
		logger.Int("maxManagerRaters", s.maxManagerRaters),
		logger.Int("notifyWorkers", s.notifyWorkerCount),
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
	s.logger.Info(ctx, "stopping assessment service...")

	// Close the queue first so workers drain what is left, then stop them.
	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}
	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(ctx, "assessment service stopped")
}

// SubmitRating runs one record through the submission gate. On acceptance a
// confirmation is queued for the given email; queue pressure or delivery
// failures never fail the submission.
func (s *Service) SubmitRating(ctx context.Context, rec model.RatingRecord, email string) (model.RatingRecord, error) {
	accepted, err := s.gate.Submit(ctx, rec)
	if err != nil {
		return model.RatingRecord{}, err
	}

	if email != "" {
		msg := notifyqueue.Message{
			To:        email,
			RaterName: accepted.RaterID,
			Role:      accepted.Role.String(),
		}
		if !s.queue.Enqueue(ctx, msg) {
			metrics.RecordNotificationDropped()
			s.logger.Warn(ctx, "notification queue full; confirmation dropped",
				logger.String("to", email),
				logger.String("recordID", accepted.RecordID),
			)
		}
	}

	return accepted, nil
}

// Report computes the aggregate report for a ratee, in catalog order.
// A ratee with no records at all is reported as not found.
func (s *Service) Report(ctx context.Context, ratee string) ([]aggregate.Result, error) {
	start := time.Now()

	records, err := s.store.ListByRatee(ctx, ratee)
	if err != nil {
		return nil, fmt.Errorf("service: read records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("service: %q: %w", ratee, repository.ErrNotFound)
	}

	byCompetency := s.engine.Aggregate(ctx, records, ratee)
	results := make([]aggregate.Result, 0, len(byCompetency))
	for _, comp := range s.catalog.Competencies() {
		results = append(results, byCompetency[comp])
	}

	metrics.RecordReportGenerated()
	metrics.RecordReportLatency(float64(time.Since(start).Milliseconds()))
	return results, nil
}

// Ratees lists the ratees a peer or manager may assess.
func (s *Service) Ratees(ctx context.Context) ([]string, error) {
	return s.store.Ratees(ctx)
}

// CatalogInfo exposes the static rating catalog.
func (s *Service) CatalogInfo(_ context.Context) types.CatalogInfo {
	names := s.catalog.Competencies()
	infos := make([]types.CompetencyInfo, len(names))
	for i, name := range names {
		infos[i] = types.CompetencyInfo{Name: name, Definition: s.catalog.Definition(name)}
	}
	return types.CatalogInfo{
		Competencies: infos,
		Scale:        s.catalog.Scale(),
		Scheme:       s.catalog.SchemeName(),
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":           s.started,
		"tierScheme":        s.tierScheme,
		"maxPeerRaters":     s.maxPeerRaters,
		"maxManagerRaters":  s.maxManagerRaters,
		"notifyWorkerCount": s.notifyWorkerCount,
	}

	if s.started {
		stats["recordsStored"] = s.store.Count(ctx)
		stats["notifyQueueLength"] = s.queue.Len(ctx)

		metrics.UpdateRecordsStored(s.store.Count(ctx))
		metrics.UpdateNotifyQueueSize(s.queue.Len(ctx))
	}

	return stats
}
