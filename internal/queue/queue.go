package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"imovelhub/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// UnitBatch is a set of units to import into one development
type UnitBatch struct {
	DevelopmentID uint
	Units         []*models.Unit
}

// UnitQueue is an in-memory queue of bulk unit imports
type UnitQueue struct {
	items    chan UnitBatch
	maxSize  int
	workers  int
	closed   bool
	started  bool
	mu       sync.RWMutex
	wg       sync.WaitGroup
	logger   *logrus.Logger
	handlers []func(UnitBatch) error
}

// NewUnitQueue creates a queue holding up to bufferSize pending batches,
// consumed by the given number of workers
func NewUnitQueue(bufferSize, workers int, logger *logrus.Logger) *UnitQueue {
	if logger == nil {
		logger = logrus.New()
	}
	if workers < 1 {
		workers = 1
	}
	return &UnitQueue{
		items:    make(chan UnitBatch, bufferSize),
		maxSize:  bufferSize,
		workers:  workers,
		logger:   logger,
		handlers: make([]func(UnitBatch) error, 0),
	}
}

// Push adds a batch to the queue without blocking
func (q *UnitQueue) Push(batch UnitBatch) error {
	// The read lock is held across the send so Close cannot close the
	// channel underneath it.
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- batch:
		q.logger.WithFields(logrus.Fields{
			"development_id": batch.DevelopmentID,
			"batch_size":     len(batch.Units),
		}).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each batch
func (q *UnitQueue) Subscribe(handler func(UnitBatch) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start launches the workers. Calling it more than once has no effect.
func (q *UnitQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started || q.closed {
		return
	}
	q.started = true

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.process(i)
	}
}

// process consumes batches until the queue is closed and drained
func (q *UnitQueue) process(worker int) {
	defer q.wg.Done()
	for batch := range q.items {
		q.processBatch(worker, batch)
	}
}

// processBatch sends the batch to all subscribed handlers
func (q *UnitQueue) processBatch(worker int, batch UnitBatch) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).WithFields(logrus.Fields{
				"worker":         worker,
				"development_id": batch.DevelopmentID,
			}).Error("Handler failed to process batch")
		}
	}
}

// Close rejects new batches and waits for the workers to drain the queue
func (q *UnitQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.items)
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}

// Len returns the current number of batches in the queue
func (q *UnitQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *UnitQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
