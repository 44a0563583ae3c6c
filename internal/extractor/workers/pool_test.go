package workers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-extract/internal/config"
	"resume-extract/pkg/utils"
)

type fakeEngine struct {
	delay time.Duration
}

func (e *fakeEngine) Extract(ctx context.Context, data []byte, extension string) (string, error) {
	if e.delay > 0 {
		select {
		case <-time.After(e.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "extracted: " + string(data), nil
}

func poolConfig(timeout time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.Workers.PoolSize = 2
	cfg.Workers.QueueSize = 4
	cfg.Workers.RateLimit = 600
	cfg.Workers.Timeout = timeout
	return cfg
}

func TestSubmitJobReturnsExtractedText(t *testing.T) {
	pool := NewWorkerPool(poolConfig(2*time.Second), &fakeEngine{})
	require.NoError(t, pool.Start())
	defer pool.Stop()

	result, err := pool.SubmitJob(context.Background(), "resume.txt", ".txt", []byte("hello"))
	require.NoError(t, err)
	require.NoError(t, result.Error)
	assert.Equal(t, "extracted: hello", result.Text)
	assert.NotEmpty(t, result.RequestID)
}

func TestSubmitJobTimesOut(t *testing.T) {
	pool := NewWorkerPool(poolConfig(50*time.Millisecond), &fakeEngine{delay: 500 * time.Millisecond})
	require.NoError(t, pool.Start())
	defer pool.Stop()

	_, err := pool.SubmitJob(context.Background(), "resume.pdf", ".pdf", []byte("slow"))
	require.Error(t, err)

	var customErr *utils.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, "Document processing timed out", customErr.Message)
}

func TestSubmitJobRequiresRunningPool(t *testing.T) {
	pool := NewWorkerPool(poolConfig(time.Second), &fakeEngine{})

	_, err := pool.SubmitJob(context.Background(), "resume.txt", ".txt", []byte("x"))
	assert.Error(t, err)
}

func TestSubmitJobRejectedByRateLimit(t *testing.T) {
	cfg := poolConfig(time.Second)
	cfg.Workers.RateLimit = 60 // one token per second beyond the burst of 5
	pool := NewWorkerPool(cfg, &fakeEngine{})
	require.NoError(t, pool.Start())
	defer pool.Stop()

	var rejected *utils.CustomError
	for i := 0; i < 10; i++ {
		_, err := pool.SubmitJob(context.Background(), "resume.txt", ".txt", []byte("n"))
		if err != nil {
			require.ErrorAs(t, err, &rejected)
			break
		}
	}

	require.NotNil(t, rejected)
	assert.Equal(t, http.StatusTooManyRequests, rejected.Code)
	assert.Equal(t, "Too many extraction requests", rejected.Message)
}

func TestSubmitJobFullQueueReportsBusy(t *testing.T) {
	cfg := poolConfig(time.Second)
	cfg.Workers.QueueSize = 0
	pool := NewWorkerPool(cfg, &fakeEngine{})
	pool.queueTimeout = 20 * time.Millisecond

	// Mark the pool running without starting the dispatcher so nothing
	// drains the queue and the submission has to wait for a slot.
	pool.mu.Lock()
	pool.running = true
	pool.mu.Unlock()

	_, err := pool.SubmitJob(context.Background(), "resume.txt", ".txt", []byte("n"))
	require.Error(t, err)

	var customErr *utils.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, http.StatusServiceUnavailable, customErr.Code)
	assert.Equal(t, "Extraction queue is full", customErr.Message)
}

func TestPoolStatsCountJobs(t *testing.T) {
	pool := NewWorkerPool(poolConfig(2*time.Second), &fakeEngine{})
	require.NoError(t, pool.Start())
	defer pool.Stop()

	for i := 0; i < 3; i++ {
		_, err := pool.SubmitJob(context.Background(), "resume.txt", ".txt", []byte("n"))
		require.NoError(t, err)
	}

	stats := pool.GetStats()
	assert.Equal(t, int64(3), stats.JobsQueued)
	assert.Equal(t, int64(3), stats.JobsSuccessful)
	assert.Equal(t, int64(0), stats.JobsFailed)
}
