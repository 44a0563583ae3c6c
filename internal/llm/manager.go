package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"resume-extract/internal/config"
	"resume-extract/internal/logging"
	"resume-extract/pkg/models"
	"resume-extract/pkg/utils"
)

// Manager owns the AI extraction pipeline: cache lookup, model tier
// selection, bounded retries with backoff, and the rule-based fallback when
// the provider is exhausted.
type Manager struct {
	config   *config.Config
	factory  *LLMFactory
	provider LLMProvider
	cache    CacheStore
	fallback FallbackParser
	logger   logging.Logger
	sleep    func(ctx context.Context, d time.Duration) error
	mu       sync.RWMutex
	healthy  bool
}

// NewManager creates a new LLM manager instance. cache and fallback may be
// nil: without a cache every request hits the provider, without a fallback an
// exhausted provider surfaces as an extraction failure.
func NewManager(cfg *config.Config, cache CacheStore, fallback FallbackParser) *Manager {
	return &Manager{
		config:   cfg,
		factory:  NewLLMFactory(cfg),
		cache:    cache,
		fallback: fallback,
		logger:   logging.GetGlobalLogger(),
		sleep:    sleepContext,
	}
}

// NewManagerWithProvider creates a manager around an existing provider
// instead of building one from configuration.
func NewManagerWithProvider(cfg *config.Config, provider LLMProvider, cache CacheStore, fallback FallbackParser) *Manager {
	m := NewManager(cfg, cache, fallback)
	m.provider = provider
	m.healthy = true
	return m
}

// Start initializes the LLM manager and creates the provider
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Starting LLM manager", map[string]interface{}{
		"provider": m.config.LLM.Provider,
	})

	if m.provider == nil {
		provider, err := m.factory.CreateProvider()
		if err != nil {
			return fmt.Errorf("failed to create LLM provider: %w", err)
		}
		m.provider = provider
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.config.LLM.Timeout)
	defer cancel()

	if err := m.provider.IsHealthy(ctx); err != nil {
		m.logger.Warn("LLM provider health check failed - falling back to rule-based parsing only", map[string]interface{}{
			"error": err.Error(),
		})
		m.healthy = false
		// Allow the server to start; the fallback parser still works
	} else {
		m.healthy = true
		m.logger.Info("LLM manager started successfully", map[string]interface{}{
			"provider": m.provider.GetProviderName(),
		})
	}

	return nil
}

// Stop shuts down the LLM manager
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Stopping LLM manager")
	m.provider = nil
	m.healthy = false
	return nil
}

// ParseResume turns normalized resume text into structured resume data. It
// checks the cache first, then retries the AI provider up to the configured
// bound with exponential backoff, and finally degrades to the rule-based
// parser when one is configured.
func (m *Manager) ParseResume(ctx context.Context, text string, complexity models.ComplexityLabel) (*ParseResult, error) {
	m.mu.RLock()
	provider := m.provider
	healthy := m.healthy
	m.mu.RUnlock()

	model := m.selectModel(complexity)
	cacheKey := utils.CacheKey(utils.Fingerprint(text))

	if cached := m.readCache(ctx, cacheKey); cached != nil {
		return &ParseResult{Resume: cached, ModelUsed: model, FromCache: true}, nil
	}

	if provider == nil || !healthy {
		return m.exhausted(text, fmt.Errorf("LLM provider not available"))
	}

	maxRetries := m.config.LLM.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			m.logger.Info("Retrying AI extraction after backoff", map[string]interface{}{
				"attempt": attempt + 1,
				"backoff": backoff.String(),
			})
			if err := m.sleep(ctx, backoff); err != nil {
				return nil, err
			}
		}

		resume, err := m.extractOnce(ctx, provider, text, model)
		if err == nil {
			m.writeCache(ctx, cacheKey, resume)
			return &ParseResult{Resume: resume, ModelUsed: model}, nil
		}

		lastErr = err
		m.logger.Warn("AI extraction attempt failed", map[string]interface{}{
			"attempt": attempt + 1,
			"model":   model,
			"error":   err.Error(),
		})

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return m.exhausted(text, lastErr)
}

// extractOnce runs a single provider call under the configured LLM timeout.
func (m *Manager) extractOnce(ctx context.Context, provider LLMProvider, text, model string) (*models.ResumeData, error) {
	callCtx, cancel := context.WithTimeout(ctx, m.config.LLM.Timeout)
	defer cancel()

	resume, err := provider.ExtractResume(callCtx, text, model)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, fmt.Errorf("provider returned no resume data")
	}

	resume.ApplyDefaults()
	return resume, nil
}

// exhausted is the terminal path after the provider is unavailable or every
// attempt failed: degrade to the rule-based parser, or report failure.
func (m *Manager) exhausted(text string, cause error) (*ParseResult, error) {
	if m.fallback == nil {
		return nil, utils.NewExtractionFailedError(
			fmt.Sprintf("AI extraction failed after all attempts: %v", cause))
	}

	m.logger.Warn("AI extraction exhausted, using rule-based fallback", map[string]interface{}{
		"error": fmt.Sprintf("%v", cause),
	})

	resume := m.fallback.Parse(text)
	resume.ApplyDefaults()
	return &ParseResult{Resume: resume, ModelUsed: "rule-based"}, nil
}

// readCache returns the cached resume for a key, or nil on miss. Cache errors
// and undecodable entries are logged and treated as misses.
func (m *Manager) readCache(ctx context.Context, key string) *models.ResumeData {
	if m.cache == nil {
		return nil
	}

	value, found, err := m.cache.Get(ctx, key)
	if err != nil {
		m.logger.Warn("Cache read failed, treating as miss", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil
	}
	if !found {
		return nil
	}

	var resume models.ResumeData
	if err := json.Unmarshal(value, &resume); err != nil {
		m.logger.Warn("Invalid JSON in cache, ignoring", map[string]interface{}{
			"key": key,
		})
		return nil
	}

	resume.ApplyDefaults()
	m.logger.Debug("Cache hit for resume parse", map[string]interface{}{"key": key})
	return &resume
}

// writeCache stores a freshly computed result. Failures are logged, never
// propagated.
func (m *Manager) writeCache(ctx context.Context, key string, resume *models.ResumeData) {
	if m.cache == nil {
		return
	}

	value, err := json.Marshal(resume)
	if err != nil {
		m.logger.Warn("Failed to serialize resume for cache", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	if err := m.cache.Set(ctx, key, value, m.config.Redis.TTL); err != nil {
		m.logger.Warn("Cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// selectModel maps a complexity label to the configured model tier.
func (m *Manager) selectModel(complexity models.ComplexityLabel) string {
	if complexity == models.ComplexityComplex {
		return m.config.LLM.ModelComplex
	}
	return m.config.LLM.ModelSimple
}

// IsHealthy checks if the LLM manager and provider are healthy
func (m *Manager) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy && m.provider != nil
}

// GetProviderName returns the name of the current LLM provider
func (m *Manager) GetProviderName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.provider != nil {
		return m.provider.GetProviderName()
	}
	return "none"
}

// CheckHealth performs a health check on the LLM provider
func (m *Manager) CheckHealth(ctx context.Context) error {
	m.mu.RLock()
	provider := m.provider
	m.mu.RUnlock()

	if provider == nil {
		return fmt.Errorf("LLM provider not available")
	}

	err := provider.IsHealthy(ctx)

	m.mu.Lock()
	m.healthy = (err == nil)
	m.mu.Unlock()

	return err
}

// sleepContext sleeps for d unless the context is canceled first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
