// Package server serves crawled articles over graphql, rss and a small json api.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samsarahq/thunder/graphql"
	"github.com/samsarahq/thunder/graphql/graphiql"
	"github.com/samsarahq/thunder/graphql/introspection"
	"golang.org/x/net/netutil"

	"github.com/umputun/wikifeedia/pkg/config"
	"github.com/umputun/wikifeedia/pkg/rss"
	"github.com/umputun/wikifeedia/pkg/service"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/feed_service.go -pkg mocks -skip-ensure -fmt goimports . FeedService
//go:generate moq -out mocks/crawler.go -pkg mocks -skip-ensure -fmt goimports . Crawler

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	feed    FeedService
	crawler Crawler
	version string
	debug   bool
	rss     *rss.Generator
	schema  *graphql.Schema

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// FeedService provides articles and crawl status
type FeedService interface {
	Articles(ctx context.Context, req service.ArticlesRequest) (*service.ArticlesResponse, error)
	Status(ctx context.Context) (*service.Status, error)
	Projects() []string
	Ping(ctx context.Context) error
}

// Crawler triggers an out of schedule crawl
type Crawler interface {
	CrawlNow()
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetFullConfig() *config.Config
}

// New initializes a new server instance, crawler is optional
func New(cfg ConfigProvider, feed FeedService, crawler Crawler, version string, debug bool) *Server {
	full := cfg.GetFullConfig()
	s := &Server{
		config:  cfg,
		feed:    feed,
		crawler: crawler,
		version: version,
		debug:   debug,
		rss:     rss.NewGenerator(full.Server.BaseURL, full.Crawler.Interval),
		router:  routegroup.New(http.NewServeMux()),
	}
	s.schema = s.buildSchema()
	introspection.AddIntrospectionToSchema(s.schema)

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	srvCfg := s.config.GetFullConfig().Server

	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	if srvCfg.TLS {
		tlsConfig, err := makeTLSConfig(srvCfg.CertFile, srvCfg.KeyFile)
		if err != nil {
			return fmt.Errorf("make tls config: %w", err)
		}
		httpServer.TLSConfig = tlsConfig
	}

	log.Printf("[INFO] starting server on %s, tls: %v", listen, srvCfg.TLS)
	ln, err := net.Listen("tcp", listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listen, err)
	}
	if srvCfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, srvCfg.MaxConns)
	}

	s.lock.Lock()
	s.httpServer = httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	serve := func() error { return httpServer.Serve(ln) }
	if httpServer.TLSConfig != nil {
		// certificates are in TLSConfig already
		serve = func() error { return httpServer.ServeTLS(ln, "", "") }
	}
	if err := serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("wikifeedia", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	// graphql
	s.router.Handle("/graphql", gziphandler.GzipHandler(graphql.HTTPHandler(s.schema)))
	s.router.Handle("/graphiql/", http.StripPrefix("/graphiql/", graphiql.Handler()))

	// API routes
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /projects", s.projectsHandler)
		r.HandleFunc("GET /articles/{project}", s.articlesHandler)
		r.HandleFunc("POST /crawl", s.crawlHandler)
		r.HandleFunc("GET /opml", s.opmlHandler)
	})

	// RSS routes
	s.router.HandleFunc("GET /rss/{project}", s.rssHandler)

	s.router.HandleFunc("GET /healthz", s.healthHandler)
	s.router.Handle("GET /metrics", promhttp.Handler())
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
