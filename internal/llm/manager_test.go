package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-extract/internal/config"
	"resume-extract/pkg/models"
	"resume-extract/pkg/utils"
)

type fakeProvider struct {
	failures int
	calls    int
	resume   *models.ResumeData
}

func (p *fakeProvider) ExtractResume(ctx context.Context, text, model string) (*models.ResumeData, error) {
	p.calls++
	if p.calls <= p.failures {
		return nil, errors.New("provider unavailable")
	}
	return p.resume, nil
}

func (p *fakeProvider) IsHealthy(ctx context.Context) error { return nil }
func (p *fakeProvider) GetProviderName() string             { return "fake" }

type memoryCache struct {
	entries map[string][]byte
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := c.entries[key]
	return value, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.entries[key] = value
	c.sets++
	return nil
}

type staticFallback struct {
	resume *models.ResumeData
}

func (f *staticFallback) Parse(text string) *models.ResumeData {
	clone := *f.resume
	return &clone
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LLM.Provider = "claude"
	cfg.LLM.ModelSimple = "model-simple"
	cfg.LLM.ModelComplex = "model-complex"
	cfg.LLM.Timeout = 5 * time.Second
	cfg.LLM.MaxRetries = 3
	cfg.Redis.TTL = time.Hour
	return cfg
}

func sampleResume(name string) *models.ResumeData {
	return &models.ResumeData{
		PersonalInfo: models.PersonalInfo{FullName: name, JobTitle: "engineer"},
		Sections:     []models.Section{models.NewSection(models.SectionSkills, "Skills")},
	}
}

// recordSleeps replaces the manager's backoff sleep with a recorder.
func recordSleeps(m *Manager) *[]time.Duration {
	var sleeps []time.Duration
	m.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	return &sleeps
}

func TestParseResumeRetriesThenSucceeds(t *testing.T) {
	provider := &fakeProvider{failures: 2, resume: sampleResume("Jane Doe")}
	m := NewManagerWithProvider(testConfig(), provider, nil, nil)
	sleeps := recordSleeps(m)

	result, err := m.ParseResume(context.Background(), "resume text", models.ComplexitySimple)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", result.Resume.PersonalInfo.FullName)
	assert.Equal(t, "model-simple", result.ModelUsed)
	assert.False(t, result.FromCache)
	assert.Equal(t, 3, provider.calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *sleeps)
}

func TestParseResumeExhaustedUsesFallback(t *testing.T) {
	provider := &fakeProvider{failures: 10}
	fallback := &staticFallback{resume: sampleResume("Fallback Person")}
	m := NewManagerWithProvider(testConfig(), provider, nil, fallback)
	recordSleeps(m)

	result, err := m.ParseResume(context.Background(), "resume text", models.ComplexitySimple)
	require.NoError(t, err)

	assert.Equal(t, "Fallback Person", result.Resume.PersonalInfo.FullName)
	assert.Equal(t, "rule-based", result.ModelUsed)
	assert.Equal(t, 3, provider.calls)
}

func TestParseResumeExhaustedWithoutFallbackFails(t *testing.T) {
	provider := &fakeProvider{failures: 10}
	m := NewManagerWithProvider(testConfig(), provider, nil, nil)
	recordSleeps(m)

	_, err := m.ParseResume(context.Background(), "resume text", models.ComplexitySimple)
	require.Error(t, err)

	var customErr *utils.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, "Structured extraction failed", customErr.Message)
}

func TestParseResumeCacheHitSkipsProvider(t *testing.T) {
	cache := newMemoryCache()
	cached := sampleResume("Cached Person")
	cached.ApplyDefaults()

	value, err := json.Marshal(cached)
	require.NoError(t, err)
	key := utils.CacheKey(utils.Fingerprint("resume text"))
	cache.entries[key] = value

	provider := &fakeProvider{resume: sampleResume("Fresh Person")}
	m := NewManagerWithProvider(testConfig(), provider, cache, nil)

	result, err := m.ParseResume(context.Background(), "resume text", models.ComplexityComplex)
	require.NoError(t, err)

	assert.True(t, result.FromCache)
	assert.Equal(t, "Cached Person", result.Resume.PersonalInfo.FullName)
	assert.Equal(t, 0, provider.calls)
}

func TestParseResumeWritesThroughCache(t *testing.T) {
	cache := newMemoryCache()
	provider := &fakeProvider{resume: sampleResume("Jane Doe")}
	m := NewManagerWithProvider(testConfig(), provider, cache, nil)

	first, err := m.ParseResume(context.Background(), "resume text", models.ComplexitySimple)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, 1, cache.sets)

	second, err := m.ParseResume(context.Background(), "resume text", models.ComplexitySimple)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, first.Resume.PersonalInfo, second.Resume.PersonalInfo)
}

func TestParseResumeInvalidCacheEntryIsMiss(t *testing.T) {
	cache := newMemoryCache()
	key := utils.CacheKey(utils.Fingerprint("resume text"))
	cache.entries[key] = []byte("{not json")

	provider := &fakeProvider{resume: sampleResume("Fresh Person")}
	m := NewManagerWithProvider(testConfig(), provider, cache, nil)

	result, err := m.ParseResume(context.Background(), "resume text", models.ComplexitySimple)
	require.NoError(t, err)

	assert.False(t, result.FromCache)
	assert.Equal(t, "Fresh Person", result.Resume.PersonalInfo.FullName)
	assert.Equal(t, 1, provider.calls)
}

func TestParseResumeFillsNestedItemDefaults(t *testing.T) {
	section := models.NewSection(models.SectionExperience, "Work Experience")
	section.Experience = []models.ExperienceItem{{JobTitle: "Engineer", Company: "Acme"}}
	resume := &models.ResumeData{
		PersonalInfo: models.PersonalInfo{FullName: "Jane Doe"},
		Sections:     []models.Section{section},
	}

	provider := &fakeProvider{resume: resume}
	m := NewManagerWithProvider(testConfig(), provider, nil, nil)

	result, err := m.ParseResume(context.Background(), "resume text", models.ComplexitySimple)
	require.NoError(t, err)

	require.Len(t, result.Resume.Sections, 1)
	require.Len(t, result.Resume.Sections[0].Experience, 1)
	assert.NotNil(t, result.Resume.Sections[0].Experience[0].Description)

	value, err := json.Marshal(result.Resume)
	require.NoError(t, err)
	assert.Contains(t, string(value), `"description":[]`)
	assert.NotContains(t, string(value), `"description":null`)
}

func TestSelectModelByComplexity(t *testing.T) {
	m := NewManagerWithProvider(testConfig(), &fakeProvider{}, nil, nil)
	assert.Equal(t, "model-simple", m.selectModel(models.ComplexitySimple))
	assert.Equal(t, "model-complex", m.selectModel(models.ComplexityComplex))
}

func TestParseResumeCanceledContext(t *testing.T) {
	provider := &fakeProvider{failures: 10}
	m := NewManagerWithProvider(testConfig(), provider, nil, nil)
	m.sleep = sleepContext

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.ParseResume(ctx, "resume text", models.ComplexitySimple)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
