package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/wikifeedia/pkg/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
server:
  listen: ":9090"
  timeout: 45s
  base_url: https://wikifeedia.example.com
  max_conns: 64

database:
  dsn: "file:test.db"
  follower_read_lag: 2m

crawler:
  enabled: true
  interval: 30m
  crawl_on_start: true
  max_workers: 4
  rate_limit: 20
  burst: 2
  max_articles: 50
  retention: 24h
  projects: [en, de]
  wikipedia_url: "http://localhost:9999/%s"

client:
  endpoint: http://localhost:9090/graphql
  page_size: 20
  default_project: de
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "https://wikifeedia.example.com", cfg.Server.BaseURL)
		assert.Equal(t, 64, cfg.Server.MaxConns)

		assert.Equal(t, "file:test.db", cfg.Database.DSN)
		assert.Equal(t, 2*time.Minute, cfg.Database.FollowerReadLag)

		assert.True(t, cfg.Crawler.Enabled)
		assert.True(t, cfg.Crawler.CrawlOnStart)
		assert.Equal(t, 30*time.Minute, cfg.Crawler.Interval)
		assert.Equal(t, 4, cfg.Crawler.MaxWorkers)
		assert.InDelta(t, 20.0, cfg.Crawler.RateLimit, 0.001)
		assert.Equal(t, 2, cfg.Crawler.Burst)
		assert.Equal(t, 50, cfg.Crawler.MaxArticles)
		assert.Equal(t, 24*time.Hour, cfg.Crawler.Retention)
		assert.Equal(t, []string{"en", "de"}, cfg.Crawler.Projects)
		assert.Equal(t, "http://localhost:9999/%s", cfg.Crawler.WikipediaURL)

		assert.Equal(t, "http://localhost:9090/graphql", cfg.Client.Endpoint)
		assert.Equal(t, 20, cfg.Client.PageSize)
		assert.Equal(t, "de", cfg.Client.DefaultProject)
		assert.Equal(t, 256, cfg.Client.CacheSize)

		listen, timeout := cfg.GetServerConfig()
		assert.Equal(t, ":9090", listen)
		assert.Equal(t, 45*time.Second, timeout)
		assert.Same(t, cfg, cfg.GetFullConfig())
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8081\"\n"))
		require.NoError(t, err)

		assert.Equal(t, ":8081", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
		assert.Equal(t, 256, cfg.Server.MaxConns)

		assert.Equal(t, "file:wikifeedia.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
		assert.Equal(t, 10, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 3600, cfg.Database.ConnMaxLifetime)
		assert.Equal(t, 5*time.Minute, cfg.Database.FollowerReadLag)

		assert.False(t, cfg.Crawler.Enabled)
		assert.Equal(t, time.Hour, cfg.Crawler.Interval)
		assert.Equal(t, 30*time.Minute, cfg.Crawler.Timeout)
		assert.Equal(t, 10, cfg.Crawler.MaxWorkers)
		assert.InDelta(t, 75.0, cfg.Crawler.RateLimit, 0.001)
		assert.Equal(t, 5, cfg.Crawler.Burst)
		assert.Equal(t, 200, cfg.Crawler.MaxArticles)
		assert.Equal(t, 48*time.Hour, cfg.Crawler.Retention)
		assert.Equal(t, domain.Projects, cfg.Crawler.Projects)

		assert.Equal(t, "http://localhost:8080/graphql", cfg.Client.Endpoint)
		assert.Equal(t, 10, cfg.Client.PageSize)
		assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
		assert.Equal(t, "en", cfg.Client.DefaultProject)
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("WIKIFEEDIA_TEST_DSN", "file:from-env.db")
		cfg, err := Load(writeConfig(t, "database:\n  dsn: ${WIKIFEEDIA_TEST_DSN}\n"))
		require.NoError(t, err)
		assert.Equal(t, "file:from-env.db", cfg.Database.DSN)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid duration", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server:\n  timeout: soon\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "short server timeout", content: "server:\n  timeout: 100ms\n", errMsg: "server timeout must be at least 1 second"},
		{name: "cert without key", content: "server:\n  tls: true\n  cert_file: /tmp/cert.pem\n", errMsg: "server.cert_file and server.key_file must be set together"},
		{name: "negative max conns", content: "server:\n  max_conns: -1\n", errMsg: "server.max_conns must be non-negative"},
		{name: "short interval", content: "crawler:\n  interval: 10s\n", errMsg: "crawler.interval must be at least 1 minute"},
		{name: "negative rate limit", content: "crawler:\n  rate_limit: -1\n", errMsg: "crawler.rate_limit must be non-negative"},
		{name: "negative workers", content: "crawler:\n  max_workers: -2\n", errMsg: "crawler.max_workers must be at least 1"},
		{name: "unknown project", content: "crawler:\n  projects: [en, xx]\n", errMsg: `unsupported project "xx"`},
		{name: "negative page size", content: "client:\n  page_size: -5\n", errMsg: "client.page_size must be at least 1"},
		{name: "unknown default project", content: "client:\n  default_project: klingon\n", errMsg: `client.default_project: unsupported project "klingon"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "validate config")
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, validate(cfg))
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 10, cfg.Client.PageSize)

	cfg.Crawler.Projects[0] = "changed"
	assert.Equal(t, "en", domain.Projects[0], "default projects are a copy")
}
