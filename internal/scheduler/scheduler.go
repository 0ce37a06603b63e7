package scheduler

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"imovelhub/server/internal/listing"
)

// JobType represents the periodic maintenance jobs
type JobType int

const (
	JobTypeReconcile JobType = iota
	JobTypePurge
)

// String returns the string representation of a JobType
func (j JobType) String() string {
	switch j {
	case JobTypeReconcile:
		return "reconcile"
	case JobTypePurge:
		return "purge"
	default:
		return "unknown"
	}
}

// MirrorRefresher recomputes the cached sales status of every development
type MirrorRefresher interface {
	RefreshAllSalesStatus(ctx context.Context) (int, error)
}

// Cache is the listing cache maintained by the scheduler
type Cache interface {
	Invalidate(keys ...string)
	Purge() int
}

// Scheduler periodically reconciles the sales mirror with the unit records
// and evicts expired cache entries
type Scheduler struct {
	refresher MirrorRefresher
	cache     Cache
	interval  time.Duration
	logger    *logrus.Logger
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	jobMutex  sync.Mutex // Ensures sequential job execution
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewScheduler creates a new scheduler. cache may be nil.
func NewScheduler(refresher MirrorRefresher, cache Cache, interval time.Duration, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		refresher: refresher,
		cache:     cache,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start runs the jobs once and then on every tick
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.runScheduler()
}

// runScheduler handles all scheduled tasks
func (s *Scheduler) runScheduler() {
	defer s.wg.Done()

	s.logger.Info("Running startup reconciliation")
	s.RunOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.RunOnce()
		}
	}
}

// RunOnce executes every job sequentially
func (s *Scheduler) RunOnce() {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	s.reconcile()
	s.purge()
}

func (s *Scheduler) reconcile() {
	start := time.Now()
	count, err := s.refresher.RefreshAllSalesStatus(s.ctx)
	fields := logrus.Fields{
		"job_type":     JobTypeReconcile.String(),
		"developments": count,
		"duration":     time.Since(start).String(),
	}
	if err != nil {
		s.logger.WithError(err).WithFields(fields).Error("Sales mirror reconciliation failed")
	} else {
		s.logger.WithFields(fields).Info("Sales mirror reconciled")
	}

	if s.cache != nil && count > 0 {
		s.cache.Invalidate(listing.DevelopmentsKey)
	}
}

func (s *Scheduler) purge() {
	if s.cache == nil {
		return
	}
	removed := s.cache.Purge()
	s.logger.WithFields(logrus.Fields{
		"job_type": JobTypePurge.String(),
		"removed":  removed,
	}).Debug("Purged expired cache entries")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		close(s.stopChan)
	})
	s.wg.Wait()
}
