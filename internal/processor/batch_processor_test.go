package processor

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"imovelhub/server/config"
	"imovelhub/server/internal/database"
	"imovelhub/server/internal/models"
	"imovelhub/server/internal/queue"
)

// MockDB is a mock implementation of Transactor
type MockDB struct {
	mock.Mock
}

func (m *MockDB) Transaction(fc func(*gorm.DB) error, opts ...*sql.TxOptions) error {
	args := m.Called(fc)
	return args.Error(0)
}

func testBatch(devID uint, n int) queue.UnitBatch {
	units := make([]*models.Unit, n)
	for i := range units {
		units[i] = &models.Unit{UnitNumber: string(rune('A' + i))}
	}
	return queue.UnitBatch{DevelopmentID: devID, Units: units}
}

func TestNewBatchProcessor(t *testing.T) {
	// Setup
	mockDB := &MockDB{}
	mockQueue := queue.NewUnitQueue(10, 2, nil)
	cfg := &config.Config{}
	cfg.BatchProcessing.ProcessorCount = 2
	cfg.BatchProcessing.MaxRetries = 3
	logger := logrus.New()

	// Test
	processor := NewBatchProcessor(mockDB, mockQueue, cfg, logger)

	// Assert
	assert.NotNil(t, processor)
	assert.Equal(t, mockDB, processor.db)
	assert.Equal(t, mockQueue, processor.queue)
	assert.Equal(t, cfg, processor.config)
	assert.Equal(t, logger, processor.logger)
}

func TestBatchProcessor_ProcessBatch(t *testing.T) {
	// Setup
	mockDB := &MockDB{}
	mockQueue := queue.NewUnitQueue(10, 1, nil)
	cfg := &config.Config{}
	cfg.BatchProcessing.MaxRetries = 3
	cfg.BatchProcessing.RetryDelay = 0
	cfg.BatchProcessing.MaxBatchSize = 100
	logger := logrus.New()

	processor := NewBatchProcessor(mockDB, mockQueue, cfg, logger)

	var processed []queue.UnitBatch
	processor.OnProcessed(func(batch queue.UnitBatch) {
		processed = append(processed, batch)
	})

	batch := testBatch(1, 2)

	// Test successful processing
	mockDB.On("Transaction", mock.Anything).Return(nil).Once()
	err := processor.processBatch(batch)
	assert.NoError(t, err)
	assert.Len(t, processed, 1)

	// Test retry on failure
	mockDB.On("Transaction", mock.Anything).Return(errors.New("db error")).Times(4)
	err = processor.processBatch(batch)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process batch after 4 attempts")
	assert.Len(t, processed, 1)
	mockDB.AssertExpectations(t)
}

func TestBatchProcessor_MissingDevelopmentIsNotRetried(t *testing.T) {
	mockDB := &MockDB{}
	cfg := &config.Config{}
	cfg.BatchProcessing.MaxRetries = 3

	processor := NewBatchProcessor(mockDB, queue.NewUnitQueue(1, 1, nil), cfg, nil)

	mockDB.On("Transaction", mock.Anything).Return(database.ErrNotFound).Once()
	err := processor.processBatch(testBatch(9, 1))
	assert.ErrorIs(t, err, database.ErrNotFound)
	mockDB.AssertNumberOfCalls(t, "Transaction", 1)
}

func TestBatchProcessor_SplitsLargeBatches(t *testing.T) {
	mockDB := &MockDB{}
	cfg := &config.Config{}
	cfg.BatchProcessing.MaxBatchSize = 10

	processor := NewBatchProcessor(mockDB, queue.NewUnitQueue(1, 1, nil), cfg, nil)

	mockDB.On("Transaction", mock.Anything).Return(nil)
	assert.NoError(t, processor.processBatch(testBatch(1, 25)))
	mockDB.AssertNumberOfCalls(t, "Transaction", 3)
}

func TestBatchProcessor_PartialFailureReportsCommittedChunks(t *testing.T) {
	mockDB := &MockDB{}
	cfg := &config.Config{}
	cfg.BatchProcessing.MaxBatchSize = 2

	processor := NewBatchProcessor(mockDB, queue.NewUnitQueue(1, 1, nil), cfg, nil)

	var processed []queue.UnitBatch
	processor.OnProcessed(func(batch queue.UnitBatch) {
		processed = append(processed, batch)
	})

	mockDB.On("Transaction", mock.Anything).Return(nil).Once()
	mockDB.On("Transaction", mock.Anything).Return(errors.New("disk full")).Once()

	batch := testBatch(4, 3)
	err := processor.processBatch(batch)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 units imported")

	if assert.Len(t, processed, 1) {
		assert.Equal(t, uint(4), processed[0].DevelopmentID)
		assert.Equal(t, batch.Units[:2], processed[0].Units)
	}
	mockDB.AssertExpectations(t)
}

func TestBatchProcessor_FirstChunkFailureReportsNothing(t *testing.T) {
	mockDB := &MockDB{}
	cfg := &config.Config{}
	cfg.BatchProcessing.MaxBatchSize = 2

	processor := NewBatchProcessor(mockDB, queue.NewUnitQueue(1, 1, nil), cfg, nil)

	called := false
	processor.OnProcessed(func(queue.UnitBatch) { called = true })

	mockDB.On("Transaction", mock.Anything).Return(errors.New("disk full")).Once()
	assert.Error(t, processor.processBatch(testBatch(4, 3)))
	assert.False(t, called)
}

func TestBatchProcessor_StopCancelsRetries(t *testing.T) {
	mockDB := &MockDB{}
	cfg := &config.Config{}
	cfg.BatchProcessing.MaxRetries = 3
	cfg.BatchProcessing.RetryDelay = 60

	processor := NewBatchProcessor(mockDB, queue.NewUnitQueue(1, 1, nil), cfg, nil)
	processor.Stop()

	mockDB.On("Transaction", mock.Anything).Return(errors.New("db error"))
	err := processor.processBatch(testBatch(1, 1))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
	mockDB.AssertNumberOfCalls(t, "Transaction", 1)
}

func TestBatchProcessor_StartStop(t *testing.T) {
	// Setup
	mockDB := &MockDB{}
	mockQueue := queue.NewUnitQueue(10, 2, nil)
	cfg := &config.Config{}
	logger := logrus.New()

	processor := NewBatchProcessor(mockDB, mockQueue, cfg, logger)

	// Start twice subscribes once
	processor.Start()
	processor.Start()

	// Verify graceful shutdown
	mockQueue.Close()
	processor.Stop()
	assert.True(t, mockQueue.IsClosed())
}
