package llm

import (
	"context"
	"time"

	"resume-extract/pkg/models"
)

// LLMProvider defines the interface for AI extraction providers
type LLMProvider interface {
	// ExtractResume parses normalized resume text into structured resume
	// data using the given model
	ExtractResume(ctx context.Context, text, model string) (*models.ResumeData, error)

	// IsHealthy checks if the provider is healthy and available
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the provider
	GetProviderName() string
}

// CacheStore is the key-value store used to cache parse results. Satisfied by
// utils.RedisClient; a nil-free stub works for tests and Redis-disabled mode.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// FallbackParser produces structured resume data without the AI provider. It
// must not fail; sparse output is acceptable.
type FallbackParser interface {
	Parse(text string) *models.ResumeData
}

// ParseResult carries a structured resume together with how it was produced.
type ParseResult struct {
	Resume    *models.ResumeData `json:"resume"`
	ModelUsed string             `json:"model_used"`
	FromCache bool               `json:"from_cache"`
}
