package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resume-extract/internal/config"
	"resume-extract/internal/extractor"
	"resume-extract/internal/logging"
	"resume-extract/pkg/utils"
)

// JobResult represents the result of an extraction job
type JobResult struct {
	Text      string
	Error     error
	RequestID string
	Duration  time.Duration
}

// ExtractionJob represents a document to be processed by workers
type ExtractionJob struct {
	ID         string
	FileName   string
	Extension  string
	Data       []byte
	ResultChan chan JobResult
	Context    context.Context
	CreatedAt  time.Time
}

// Worker represents a single worker goroutine
type Worker struct {
	ID       int
	JobChan  chan ExtractionJob
	QuitChan chan bool
	Pool     *WorkerPool
	logger   logging.Logger
}

// WorkerPool runs CPU-bound text extraction off the request-handling path on
// a bounded set of goroutines.
type WorkerPool struct {
	config      *config.Config
	workers     []*Worker
	jobQueue    chan ExtractionJob
	dispatcher  *Dispatcher
	rateLimiter *RateLimiter
	engine      extractor.TextExtractor
	logger      logging.Logger
	// queueTimeout bounds how long a submission waits for a queue slot
	queueTimeout time.Duration
	mu           sync.RWMutex
	running      bool
	stats        *PoolStats
}

// PoolStats tracks worker pool statistics
type PoolStats struct {
	mu                    sync.RWMutex
	JobsQueued            int64
	JobsProcessed         int64
	JobsSuccessful        int64
	JobsFailed            int64
	TotalProcessingTime   time.Duration
	AverageProcessingTime time.Duration
}

// PoolStatsData is the lock-free snapshot of pool statistics
type PoolStatsData struct {
	JobsQueued            int64         `json:"jobs_queued"`
	JobsProcessed         int64         `json:"jobs_processed"`
	JobsSuccessful        int64         `json:"jobs_successful"`
	JobsFailed            int64         `json:"jobs_failed"`
	TotalProcessingTime   time.Duration `json:"total_processing_time"`
	AverageProcessingTime time.Duration `json:"average_processing_time"`
}

// NewWorkerPool creates a new worker pool instance
func NewWorkerPool(cfg *config.Config, engine extractor.TextExtractor) *WorkerPool {
	logger := logging.GetGlobalLogger()

	pool := &WorkerPool{
		config:       cfg,
		jobQueue:     make(chan ExtractionJob, cfg.Workers.QueueSize),
		rateLimiter:  NewRateLimiter(cfg),
		engine:       engine,
		logger:       logger,
		queueTimeout: 5 * time.Second,
		stats:        &PoolStats{},
	}

	pool.workers = make([]*Worker, cfg.Workers.PoolSize)
	for i := 0; i < cfg.Workers.PoolSize; i++ {
		worker := &Worker{
			ID:       i + 1,
			JobChan:  make(chan ExtractionJob),
			QuitChan: make(chan bool),
			Pool:     pool,
			logger:   logger.WithField("worker_id", i+1),
		}
		pool.workers[i] = worker
	}

	pool.dispatcher = NewDispatcher(pool.jobQueue, pool.workers)

	logger.Info("Worker pool initialized", map[string]interface{}{
		"pool_size": cfg.Workers.PoolSize,
	})
	return pool
}

// Start starts the worker pool
func (wp *WorkerPool) Start() error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.running {
		return fmt.Errorf("worker pool is already running")
	}

	wp.logger.Info("Starting worker pool")

	wp.dispatcher.Start()
	for _, worker := range wp.workers {
		go worker.Start()
	}

	wp.running = true
	wp.logger.Info("Worker pool started successfully", map[string]interface{}{
		"workers": len(wp.workers),
	})
	return nil
}

// Stop stops the worker pool gracefully
func (wp *WorkerPool) Stop() error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if !wp.running {
		return nil
	}

	wp.logger.Info("Stopping worker pool")

	wp.dispatcher.Stop()
	for _, worker := range wp.workers {
		worker.Stop()
	}
	close(wp.jobQueue)

	wp.running = false
	wp.logger.Info("Worker pool stopped successfully")
	return nil
}

// SubmitJob queues a document for extraction and waits for its result under
// the configured wall-clock budget. Exceeding the budget is reported as a
// distinct timeout failure, never retried.
func (wp *WorkerPool) SubmitJob(ctx context.Context, fileName, extension string, data []byte) (*JobResult, error) {
	if !wp.IsRunning() {
		return nil, fmt.Errorf("worker pool is not running")
	}

	if !wp.rateLimiter.Allow() {
		return nil, utils.NewRateLimitedError("rate limit exceeded, try again later")
	}

	job := ExtractionJob{
		ID:         utils.GenerateRequestID(),
		FileName:   fileName,
		Extension:  extension,
		Data:       data,
		ResultChan: make(chan JobResult, 1),
		Context:    ctx,
		CreatedAt:  time.Now(),
	}

	wp.stats.mu.Lock()
	wp.stats.JobsQueued++
	wp.stats.mu.Unlock()

	select {
	case wp.jobQueue <- job:
		wp.logger.Info("Extraction job submitted to queue", map[string]interface{}{
			"job_id":    job.ID,
			"file_name": fileName,
			"file_size": len(data),
		})
	case <-time.After(wp.queueTimeout):
		return nil, utils.NewWorkerPoolBusyError("job queue is full, request timed out")
	}

	timeout := wp.config.Workers.Timeout

	select {
	case result := <-job.ResultChan:
		return &result, nil
	case <-time.After(timeout):
		return nil, utils.NewExtractionTimeoutError(
			fmt.Sprintf("extraction did not finish within %v", timeout))
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// IsRunning returns true if the worker pool is running
func (wp *WorkerPool) IsRunning() bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	return wp.running
}

// GetStats returns current pool statistics
func (wp *WorkerPool) GetStats() PoolStatsData {
	wp.stats.mu.RLock()
	defer wp.stats.mu.RUnlock()

	stats := PoolStatsData{
		JobsQueued:          wp.stats.JobsQueued,
		JobsProcessed:       wp.stats.JobsProcessed,
		JobsSuccessful:      wp.stats.JobsSuccessful,
		JobsFailed:          wp.stats.JobsFailed,
		TotalProcessingTime: wp.stats.TotalProcessingTime,
	}
	if stats.JobsProcessed > 0 {
		stats.AverageProcessingTime = stats.TotalProcessingTime / time.Duration(stats.JobsProcessed)
	}

	return stats
}

// Start starts the worker goroutine
func (w *Worker) Start() {
	w.logger.Info("Worker started")

	for {
		select {
		case job := <-w.JobChan:
			w.processJob(job)
		case <-w.QuitChan:
			w.logger.Info("Worker stopping")
			return
		}
	}
}

// Stop stops the worker
func (w *Worker) Stop() {
	w.QuitChan <- true
}

// processJob runs one extraction job and reports the result back.
func (w *Worker) processJob(job ExtractionJob) {
	startTime := time.Now()

	w.logger.Debug("Processing extraction job", map[string]interface{}{
		"job_id":    job.ID,
		"worker_id": w.ID,
		"file_name": job.FileName,
	})

	w.Pool.stats.mu.Lock()
	w.Pool.stats.JobsProcessed++
	w.Pool.stats.mu.Unlock()

	result := JobResult{RequestID: job.ID}
	result.Text, result.Error = w.Pool.engine.Extract(job.Context, job.Data, job.Extension)

	processingTime := time.Since(startTime)
	result.Duration = processingTime

	w.Pool.stats.mu.Lock()
	w.Pool.stats.TotalProcessingTime += processingTime
	if result.Error != nil {
		w.Pool.stats.JobsFailed++
	} else {
		w.Pool.stats.JobsSuccessful++
	}
	w.Pool.stats.mu.Unlock()

	// Non-blocking send: the submitter may have timed out and gone away
	select {
	case job.ResultChan <- result:
		w.logger.Info("Extraction job completed", map[string]interface{}{
			"job_id":          job.ID,
			"worker_id":       w.ID,
			"processing_time": processingTime.String(),
			"success":         result.Error == nil,
		})
	case <-time.After(100 * time.Millisecond):
		w.logger.Debug("Result channel timeout - client may have disconnected", map[string]interface{}{
			"job_id":    job.ID,
			"worker_id": w.ID,
		})
	}
}
