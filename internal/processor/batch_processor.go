package processor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"imovelhub/server/config"
	"imovelhub/server/internal/database"
	"imovelhub/server/internal/queue"
)

// Transactor runs a function inside a database transaction. *gorm.DB
// satisfies it.
type Transactor interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// BatchProcessor imports bulk unit batches taken from the queue
type BatchProcessor struct {
	db          Transactor
	logger      *logrus.Logger
	config      *config.Config
	queue       *queue.UnitQueue
	onProcessed func(queue.UnitBatch)
	once        sync.Once
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewBatchProcessor creates a new batch processor instance
func NewBatchProcessor(db Transactor, q *queue.UnitQueue, config *config.Config, logger *logrus.Logger) *BatchProcessor {
	if logger == nil {
		logger = logrus.New()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &BatchProcessor{
		db:     db,
		queue:  q,
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// OnProcessed registers a callback run after units of a batch have been
// stored. A batch that fails midway reports the chunks already committed.
func (p *BatchProcessor) OnProcessed(fn func(queue.UnitBatch)) {
	p.onProcessed = fn
}

// Start subscribes the processor to the queue and starts the queue workers
func (p *BatchProcessor) Start() {
	p.once.Do(func() {
		p.queue.Subscribe(p.processBatch)
		p.queue.Start()
	})
}

// Stop aborts pending retries. Batches still queued are handled by
// closing the queue first.
func (p *BatchProcessor) Stop() {
	p.cancel()
}

// processBatch stores a batch in chunks of MaxBatchSize units. Each chunk is
// inserted in its own transaction with retries and refreshes the sales mirror.
func (p *BatchProcessor) processBatch(batch queue.UnitBatch) error {
	size := p.config.BatchProcessing.MaxBatchSize
	if size <= 0 {
		size = len(batch.Units)
	}

	inserted := 0
	for start := 0; start < len(batch.Units); start += size {
		end := start + size
		if end > len(batch.Units) {
			end = len(batch.Units)
		}
		chunk := queue.UnitBatch{DevelopmentID: batch.DevelopmentID, Units: batch.Units[start:end]}

		if err := p.processChunk(chunk); err != nil {
			if inserted > 0 && p.onProcessed != nil {
				p.onProcessed(queue.UnitBatch{DevelopmentID: batch.DevelopmentID, Units: batch.Units[:inserted]})
			}
			return fmt.Errorf("development %d: %d of %d units imported: %w",
				batch.DevelopmentID, inserted, len(batch.Units), err)
		}
		inserted += len(chunk.Units)
	}

	p.logger.WithFields(logrus.Fields{
		"development_id": batch.DevelopmentID,
		"units":          inserted,
	}).Info("Successfully processed unit batch")

	if p.onProcessed != nil {
		p.onProcessed(batch)
	}
	return nil
}

// processChunk handles a single chunk with transaction and retry logic
func (p *BatchProcessor) processChunk(chunk queue.UnitBatch) error {
	maxRetries := p.config.BatchProcessing.MaxRetries
	retryDelay := time.Duration(p.config.BatchProcessing.RetryDelay) * time.Second

	var err error
	attempt := 0
	for ; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying batch processing, attempt %d of %d", attempt, maxRetries)
			select {
			case <-p.ctx.Done():
				return fmt.Errorf("batch processing cancelled: %w", err)
			case <-time.After(retryDelay):
			}
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.InsertUnits(tx, chunk.DevelopmentID, chunk.Units); err != nil {
				return err
			}
			_, err := database.RefreshSalesStatusTx(tx, chunk.DevelopmentID)
			return err
		})

		if err == nil {
			return nil
		}

		// A missing development will not appear on retry
		if errors.Is(err, database.ErrNotFound) {
			return err
		}

		p.logger.Errorf("Batch processing failed: %v", err)
	}

	return fmt.Errorf("failed to process batch after %d attempts: %w", attempt, err)
}
