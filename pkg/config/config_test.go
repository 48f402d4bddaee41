package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, SourceFile, cfg.Corpus.Source)
	assert.Equal(t, 5, cfg.Search.Limit)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lse.yaml")
	yaml := `
corpus:
  docsFile: corpus/docs.txt
  stopWordsFile: corpus/noise.txt
  baseDir: corpus
search:
  cacheEnabled: true
redis:
  cacheTTL: 30s
server:
  rateLimit: 20
  corsOrigins: ["https://app.example"]
kafka:
  flushInterval: 500ms
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "corpus/docs.txt", cfg.Corpus.DocsFile)
	assert.Equal(t, "corpus/noise.txt", cfg.Corpus.StopWordsFile)
	assert.Equal(t, "corpus", cfg.Corpus.BaseDir)
	assert.True(t, cfg.Search.CacheEnabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, 20, cfg.Server.RateLimit)
	assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	assert.Equal(t, []string{"https://app.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 500*time.Millisecond, cfg.Kafka.FlushInterval)
	assert.Equal(t, 100, cfg.Kafka.BatchSize)
	assert.Equal(t, 8080, cfg.Server.Port, "untouched fields keep defaults")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LSE_SERVER_PORT", "9001")
	t.Setenv("LSE_CORPUS_SOURCE", SourcePostgres)
	t.Setenv("LSE_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("LSE_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, SourcePostgres, cfg.Corpus.Source)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"unknown source", func(c *Config) { c.Corpus.Source = "s3" }, "unknown source"},
		{"file source needs docs file", func(c *Config) { c.Corpus.DocsFile = "" }, "docsFile"},
		{"postgres needs no files", func(c *Config) {
			c.Corpus.Source = SourcePostgres
			c.Corpus.DocsFile = ""
		}, ""},
		{"zero limit", func(c *Config) { c.Search.Limit = 0 }, "limit"},
		{"limit above five", func(c *Config) { c.Search.Limit = 6 }, "between 1 and 5"},
		{"lower limit", func(c *Config) { c.Search.Limit = 3 }, ""},
		{"rate limit without window", func(c *Config) {
			c.Server.RateLimit = 10
			c.Server.RateWindow = 0
		}, "rateWindow"},
		{"negative rate limit", func(c *Config) { c.Server.RateLimit = -1 }, "rateLimit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
