package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	Workers struct {
		PoolSize  int           `yaml:"pool_size" default:"4"`
		QueueSize int           `yaml:"queue_size" default:"100"`
		RateLimit int           `yaml:"rate_limit" default:"60"` // requests per minute
		Timeout   time.Duration `yaml:"timeout" default:"180s"`  // wall clock budget per document
	} `yaml:"workers"`

	Extractor struct {
		MaxFileSize  int64   `yaml:"max_file_size" default:"52428800"` // 50MB
		PDFTolerance float64 `yaml:"pdf_tolerance" default:"3"`        // glyph grouping tolerance in points
		OCREnabled   bool    `yaml:"ocr_enabled" default:"true"`
		OCRLanguage  string  `yaml:"ocr_language" default:"eng"`
	} `yaml:"extractor"`

	LLM struct {
		Provider     string        `yaml:"provider" default:"claude"`
		APIKey       string        `yaml:"api_key"`
		ModelSimple  string        `yaml:"model_simple" default:"claude-3-5-haiku-latest"`
		ModelComplex string        `yaml:"model_complex" default:"claude-sonnet-4-20250514"`
		MaxTokens    int           `yaml:"max_tokens" default:"4096"`
		Temperature  float32       `yaml:"temperature" default:"0.1"`
		Timeout      time.Duration `yaml:"timeout" default:"120s"`
		MaxRetries   int           `yaml:"max_retries" default:"3"`
	} `yaml:"llm"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Enabled  bool          `yaml:"enabled" default:"true"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
		TTL      time.Duration `yaml:"ttl" default:"24h"`
	} `yaml:"redis"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Workers.PoolSize = 4
	config.Workers.QueueSize = 100
	config.Workers.RateLimit = 60
	config.Workers.Timeout = 180 * time.Second

	config.Extractor.MaxFileSize = 50 * 1024 * 1024
	config.Extractor.PDFTolerance = 3
	config.Extractor.OCREnabled = true
	config.Extractor.OCRLanguage = "eng"

	config.LLM.Provider = "claude"
	config.LLM.ModelSimple = "claude-3-5-haiku-latest"
	config.LLM.ModelComplex = "claude-sonnet-4-20250514"
	config.LLM.MaxTokens = 4096
	config.LLM.Temperature = 0.1
	config.LLM.Timeout = 120 * time.Second
	config.LLM.MaxRetries = 3

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Enabled = true
	config.Redis.Timeout = 5 * time.Second
	config.Redis.TTL = 24 * time.Hour

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		c.LLM.APIKey = apiKey
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}

	if model := os.Getenv("LLM_MODEL_SIMPLE"); model != "" {
		c.LLM.ModelSimple = model
	}

	if model := os.Getenv("LLM_MODEL_COMPLEX"); model != "" {
		c.LLM.ModelComplex = model
	}

	if timeout := os.Getenv("LLM_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.LLM.Timeout = d
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisEnabled := os.Getenv("REDIS_ENABLED"); redisEnabled != "" {
		c.Redis.Enabled = redisEnabled == "true" || redisEnabled == "1"
	}

	if redisTTL := os.Getenv("REDIS_TTL"); redisTTL != "" {
		if ttl, err := time.ParseDuration(redisTTL); err == nil {
			c.Redis.TTL = ttl
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}

	if maxFileSize := os.Getenv("MAX_FILE_SIZE"); maxFileSize != "" {
		if size, err := strconv.ParseInt(maxFileSize, 10, 64); err == nil {
			c.Extractor.MaxFileSize = size
		}
	}

	if ocrEnabled := os.Getenv("OCR_ENABLED"); ocrEnabled != "" {
		c.Extractor.OCREnabled = ocrEnabled == "true" || ocrEnabled == "1"
	}

	if ocrLanguage := os.Getenv("OCR_LANGUAGE"); ocrLanguage != "" {
		c.Extractor.OCRLanguage = ocrLanguage
	}

	if poolSize := os.Getenv("WORKER_POOL_SIZE"); poolSize != "" {
		if size, err := strconv.Atoi(poolSize); err == nil {
			c.Workers.PoolSize = size
		}
	}

	if timeout := os.Getenv("WORKER_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Workers.Timeout = d
		}
	}
}
