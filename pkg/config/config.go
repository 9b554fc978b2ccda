// Package config loads wikifeedia yaml configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/wikifeedia/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Crawler  CrawlerConfig  `yaml:"crawler" json:"crawler" jsonschema:"description=Crawler configuration"`
	Client   ClientConfig   `yaml:"client" json:"client" jsonschema:"description=Terminal client configuration"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen   string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL  string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Public URL of the server used in RSS links"`
	MaxConns int           `yaml:"max_conns" json:"max_conns" jsonschema:"default=256,description=Maximum number of simultaneous connections"`
	TLS      bool          `yaml:"tls" json:"tls" jsonschema:"default=false,description=Serve https with a self-signed certificate unless cert_file and key_file are set"`
	CertFile string        `yaml:"cert_file" json:"cert_file,omitempty" jsonschema:"description=TLS certificate file"`
	KeyFile  string        `yaml:"key_file" json:"key_file,omitempty" jsonschema:"description=TLS key file"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn" json:"dsn" jsonschema:"default=file:wikifeedia.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int           `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int           `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int           `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	FollowerReadLag time.Duration `yaml:"follower_read_lag" json:"follower_read_lag" jsonschema:"default=5m,description=Follower reads see snapshots published at least this long ago"`
}

// CrawlerConfig holds wikipedia crawl settings
type CrawlerConfig struct {
	Enabled      bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Crawl periodically while serving"`
	Interval     time.Duration `yaml:"interval" json:"interval" jsonschema:"default=1h,description=Crawl interval"`
	CrawlOnStart bool          `yaml:"crawl_on_start" json:"crawl_on_start" jsonschema:"default=false,description=Crawl right after the server start"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30m,description=Maximum duration of a single crawl"`
	MaxWorkers   int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=10,description=Concurrent summary requests per project"`
	RateLimit    float64       `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=75,description=Wikipedia requests per second"`
	Burst        int           `yaml:"burst" json:"burst" jsonschema:"default=5,description=Wikipedia rate limiter burst"`
	MaxArticles  int           `yaml:"max_articles" json:"max_articles" jsonschema:"default=200,description=Top articles considered per project"`
	Retention    time.Duration `yaml:"retention" json:"retention" jsonschema:"default=48h,description=Snapshots older than this are pruned"`
	Projects     []string      `yaml:"projects" json:"projects,omitempty" jsonschema:"description=Projects to crawl or all supported if empty"`
	WikipediaURL string        `yaml:"wikipedia_url" json:"wikipedia_url" jsonschema:"description=Per-project REST API URL with %s in place of the project"`
	WikimediaURL string        `yaml:"wikimedia_url" json:"wikimedia_url" jsonschema:"description=Pageviews REST API URL"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for wikipedia requests"`
}

// ClientConfig holds terminal client settings
type ClientConfig struct {
	Endpoint       string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=http://localhost:8080/graphql,description=GraphQL endpoint"`
	PageSize       int           `yaml:"page_size" json:"page_size" jsonschema:"default=10,description=Articles requested per page"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	DefaultProject string        `yaml:"default_project" json:"default_project" jsonschema:"default=en,description=Initially selected project"`
	CacheSize      int           `yaml:"cache_size" json:"cache_size" jsonschema:"default=256,description=Number of cached pages"`
}

// Default returns configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.setDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		return nil, fmt.Errorf("verify config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	// set defaults for server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}
	if c.Server.MaxConns == 0 {
		c.Server.MaxConns = 256
	}

	// set defaults for database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:wikifeedia.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}
	if c.Database.FollowerReadLag == 0 {
		c.Database.FollowerReadLag = 5 * time.Minute
	}

	// set defaults for crawler
	if c.Crawler.Interval == 0 {
		c.Crawler.Interval = time.Hour
	}
	if c.Crawler.Timeout == 0 {
		c.Crawler.Timeout = 30 * time.Minute
	}
	if c.Crawler.MaxWorkers == 0 {
		c.Crawler.MaxWorkers = 10
	}
	if c.Crawler.RateLimit == 0 {
		c.Crawler.RateLimit = 75
	}
	if c.Crawler.Burst == 0 {
		c.Crawler.Burst = 5
	}
	if c.Crawler.MaxArticles == 0 {
		c.Crawler.MaxArticles = 200
	}
	if c.Crawler.Retention == 0 {
		c.Crawler.Retention = 48 * time.Hour
	}
	if len(c.Crawler.Projects) == 0 {
		c.Crawler.Projects = append([]string{}, domain.Projects...)
	}

	// set defaults for client
	if c.Client.Endpoint == "" {
		c.Client.Endpoint = "http://localhost:8080/graphql"
	}
	if c.Client.PageSize == 0 {
		c.Client.PageSize = 10
	}
	if c.Client.Timeout == 0 {
		c.Client.Timeout = 30 * time.Second
	}
	if c.Client.DefaultProject == "" {
		c.Client.DefaultProject = domain.DefaultProject
	}
	if c.Client.CacheSize == 0 {
		c.Client.CacheSize = 256
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if (cfg.Server.CertFile == "") != (cfg.Server.KeyFile == "") {
		return fmt.Errorf("server.cert_file and server.key_file must be set together")
	}
	if cfg.Server.MaxConns < 0 {
		return fmt.Errorf("server.max_conns must be non-negative")
	}

	// validate crawler config
	if cfg.Crawler.Interval < time.Minute {
		return fmt.Errorf("crawler.interval must be at least 1 minute")
	}
	if cfg.Crawler.RateLimit < 0 {
		return fmt.Errorf("crawler.rate_limit must be non-negative")
	}
	if cfg.Crawler.MaxWorkers < 1 {
		return fmt.Errorf("crawler.max_workers must be at least 1")
	}
	for _, p := range cfg.Crawler.Projects {
		if !domain.IsProject(p) {
			return fmt.Errorf("crawler.projects: unsupported project %q", p)
		}
	}

	// validate client config
	if cfg.Client.PageSize < 1 {
		return fmt.Errorf("client.page_size must be at least 1")
	}
	if !domain.IsProject(cfg.Client.DefaultProject) {
		return fmt.Errorf("client.default_project: unsupported project %q", cfg.Client.DefaultProject)
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
