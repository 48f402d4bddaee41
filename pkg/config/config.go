// Package config loads and validates application configuration from YAML files
// with environment-variable overrides. It provides typed structs for the
// corpus collaborators, the search surface, and every backing service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Corpus source kinds.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Search   SearchConfig   `yaml:"search"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings. RateLimit is requests per
// RateWindow per client IP; zero disables limiting. CORS headers are only
// sent when CORSOrigins is set.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	RateLimit       int           `yaml:"rateLimit"`
	RateWindow      time.Duration `yaml:"rateWindow"`
	CORSOrigins     []string      `yaml:"corsOrigins"`
}

// CorpusConfig names where the document list and the stop words come from.
// With the file source, DocsFile lists one document file per token and
// document paths are resolved against BaseDir when relative.
type CorpusConfig struct {
	Source        string `yaml:"source"`
	DocsFile      string `yaml:"docsFile"`
	StopWordsFile string `yaml:"stopWordsFile"`
	BaseDir       string `yaml:"baseDir"`
}

// MaxSearchLimit is the most documents a search ever returns. Search.Limit
// may only lower it.
const MaxSearchLimit = 5

// SearchConfig controls the result cap and the optional result cache.
type SearchConfig struct {
	Limit        int  `yaml:"limit"`
	CacheEnabled bool `yaml:"cacheEnabled"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// RedisConfig holds Redis connection and caching parameters.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	PoolSize int           `yaml:"poolSize"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

// KafkaConfig holds Kafka broker and topic settings for analytics events.
type KafkaConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Brokers         []string      `yaml:"brokers"`
	AnalyticsTopic  string        `yaml:"analyticsTopic"`
	EventBufferSize int           `yaml:"eventBufferSize"`
	BatchSize       int           `yaml:"batchSize"`
	FlushInterval   time.Duration `yaml:"flushInterval"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with defaults for any missing
// values, and an error if the result fails validation.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a Config suitable for running against local files.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			RateWindow:      time.Minute,
		},
		Corpus: CorpusConfig{
			Source:        SourceFile,
			DocsFile:      "docs.txt",
			StopWordsFile: "noisewords.txt",
		},
		Search: SearchConfig{
			Limit: 5,
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "littlesearch",
			User:            "littlesearch",
			Password:        "localdev",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 10,
			CacheTTL: 5 * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:         []string{"localhost:9092"},
			AnalyticsTopic:  "search-analytics",
			EventBufferSize: 1000,
			BatchSize:       100,
			FlushInterval:   2 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
	}
}

// Validate checks the fields the indexer cannot run without.
func (c *Config) Validate() error {
	switch c.Corpus.Source {
	case SourceFile:
		if c.Corpus.DocsFile == "" || c.Corpus.StopWordsFile == "" {
			return fmt.Errorf("corpus: docsFile and stopWordsFile are required for the file source")
		}
	case SourcePostgres:
	default:
		return fmt.Errorf("corpus: unknown source %q", c.Corpus.Source)
	}
	if c.Server.RateLimit < 0 || (c.Server.RateLimit > 0 && c.Server.RateWindow <= 0) {
		return fmt.Errorf("server: rateLimit needs a positive rateWindow")
	}
	if c.Search.Limit < 1 || c.Search.Limit > MaxSearchLimit {
		return fmt.Errorf("search: limit must be between 1 and %d, got %d", MaxSearchLimit, c.Search.Limit)
	}
	return nil
}

// applyEnvOverrides reads LSE_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LSE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LSE_CORPUS_SOURCE"); v != "" {
		cfg.Corpus.Source = v
	}
	if v := os.Getenv("LSE_CORPUS_DOCS_FILE"); v != "" {
		cfg.Corpus.DocsFile = v
	}
	if v := os.Getenv("LSE_CORPUS_STOP_WORDS_FILE"); v != "" {
		cfg.Corpus.StopWordsFile = v
	}
	if v := os.Getenv("LSE_CORPUS_BASE_DIR"); v != "" {
		cfg.Corpus.BaseDir = v
	}
	if v := os.Getenv("LSE_SEARCH_CACHE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Search.CacheEnabled = enabled
		}
	}
	if v := os.Getenv("LSE_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("LSE_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("LSE_POSTGRES_DATABASE"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("LSE_POSTGRES_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("LSE_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("LSE_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("LSE_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("LSE_KAFKA_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Kafka.Enabled = enabled
		}
	}
	if v := os.Getenv("LSE_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("LSE_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LSE_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("LSE_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
}
