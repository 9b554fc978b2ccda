// Package service wraps repositories with request validation, logging and metrics
// for the http server.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/wikifeedia/pkg/domain"
	"github.com/umputun/wikifeedia/pkg/metrics"
	"github.com/umputun/wikifeedia/pkg/repository"
)

// ErrUnknownProject is returned for projects not in domain.Projects
var ErrUnknownProject = errors.New("unknown project")

// page size limits
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ArticlesRequest is a single page request
type ArticlesRequest struct {
	Project      string
	Offset       int
	Limit        int // DefaultLimit if not positive, capped at MaxLimit
	FollowerRead bool
	AsOf         string
}

// ArticlesResponse is a page of articles with the asOf token of the snapshot it came from
type ArticlesResponse struct {
	AsOf     string           `json:"asOf"`
	Articles []domain.Article `json:"articles"`
}

// Status describes the last crawl and the visible snapshots
type Status struct {
	LastCrawl      time.Time                  `json:"last_crawl"`
	LastCrawlError string                     `json:"last_crawl_error,omitempty"`
	Projects       []repository.ProjectStatus `json:"projects"`
}

// FeedService provides read access to crawled articles
type FeedService struct {
	articleRepo *repository.ArticleRepository
	settingRepo *repository.SettingRepository
	repos       *repository.Repositories
}

// NewFeedService creates a new feed service
func NewFeedService(repos *repository.Repositories) *FeedService {
	return &FeedService{
		articleRepo: repos.Article,
		settingRepo: repos.Setting,
		repos:       repos,
	}
}

// Articles returns a page of project articles
func (s *FeedService) Articles(ctx context.Context, req ArticlesRequest) (resp *ArticlesResponse, err error) {
	if !domain.IsProject(req.Project) {
		return nil, fmt.Errorf("%q: %w", req.Project, ErrUnknownProject)
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}
	if req.Limit > MaxLimit {
		req.Limit = MaxLimit
	}

	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.RecordQuery(req.Project, status, time.Since(start).Seconds())
		lgr.Printf("[DEBUG] %s?limit=%d&offset=%d&follower_read=%v&as_of=%s - %v, %s",
			req.Project, req.Limit, req.Offset, req.FollowerRead, req.AsOf, time.Since(start), status)
	}()

	articles, asOf, err := s.articleRepo.GetArticles(ctx, req.Project, req.Offset, req.Limit, req.FollowerRead, req.AsOf)
	if err != nil {
		return nil, fmt.Errorf("get articles: %w", err)
	}
	return &ArticlesResponse{AsOf: asOf, Articles: articles}, nil
}

// Status returns the last crawl outcome and per-project snapshots
func (s *FeedService) Status(ctx context.Context) (*Status, error) {
	lastCrawl, err := s.settingRepo.GetTime(ctx, repository.SettingLastCrawl)
	if err != nil {
		return nil, fmt.Errorf("get last crawl: %w", err)
	}
	lastErr, err := s.settingRepo.GetSetting(ctx, repository.SettingLastCrawlError)
	if err != nil {
		return nil, fmt.Errorf("get last crawl error: %w", err)
	}
	projects, err := s.articleRepo.Status(ctx)
	if err != nil {
		return nil, err
	}
	return &Status{LastCrawl: lastCrawl, LastCrawlError: lastErr, Projects: projects}, nil
}

// Projects returns supported projects in display order
func (s *FeedService) Projects() []string {
	res := make([]string, len(domain.Projects))
	copy(res, domain.Projects)
	return res
}

// Ping checks the database is reachable
func (s *FeedService) Ping(ctx context.Context) error {
	return s.repos.Ping(ctx)
}
