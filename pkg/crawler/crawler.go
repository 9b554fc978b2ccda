// Package crawler pulls the most viewed articles of every project from wikipedia and
// stores each pull as a new snapshot.
//
// A project crawl fetches the top list, fetches article summaries concurrently, drops
// articles without an extract or an image, writes the rest into a fresh snapshot and
// publishes it. Snapshots older than the retention period are pruned afterwards,
// the latest published one is always kept.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/wikifeedia/pkg/domain"
	"github.com/umputun/wikifeedia/pkg/metrics"
	"github.com/umputun/wikifeedia/pkg/repository"
	"github.com/umputun/wikifeedia/pkg/wikipedia"
)

//go:generate moq -out mocks/wiki.go -pkg mocks -skip-ensure -fmt goimports . Wiki
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/setting_store.go -pkg mocks -skip-ensure -fmt goimports . SettingStore

// Wiki is a source of top articles
type Wiki interface {
	FetchTopArticles(ctx context.Context, project string) (*wikipedia.TopPageviews, error)
	GetArticle(ctx context.Context, project, article string) (wikipedia.Article, error)
}

// Store keeps crawled articles in snapshots
type Store interface {
	BeginSnapshot(ctx context.Context, project string) (int64, error)
	InsertArticles(ctx context.Context, snapshotID int64, articles []domain.Article) error
	PublishSnapshot(ctx context.Context, snapshotID int64) error
	DiscardSnapshot(ctx context.Context, snapshotID int64) error
	DeleteSnapshotsBefore(ctx context.Context, project string, before time.Time) (int64, error)
}

// SettingStore records crawl outcome
type SettingStore interface {
	SetTime(ctx context.Context, key string, ts time.Time) error
	SetSetting(ctx context.Context, key, value string) error
}

// ErrNoArticles is returned when none of the top articles could be stored
var ErrNoArticles = errors.New("no articles to store")

// skip reasons
const (
	skipFetchError = "fetch_error"
	skipNoExtract  = "no_extract"
	skipNoImage    = "no_image"
)

// defaults for Params
const (
	DefaultMaxWorkers  = 10
	DefaultMaxArticles = 200
	DefaultRetention   = 48 * time.Hour
)

// Params defines crawler dependencies and parameters
type Params struct {
	Wiki        Wiki
	Store       Store
	Settings    SettingStore // optional
	Projects    []string     // domain.Projects if empty
	MaxWorkers  int          // concurrent summary requests per project
	MaxArticles int          // top articles considered per project
	Retention   time.Duration
}

// Crawler fetches top articles and writes them into snapshots
type Crawler struct {
	wiki        Wiki
	store       Store
	settings    SettingStore
	projects    []string
	maxWorkers  int
	maxArticles int
	retention   time.Duration
	sanitizer   *bluemonday.Policy
	now         func() time.Time
	crawlMu     sync.Mutex
}

// New makes a crawler
func New(p Params) *Crawler {
	if len(p.Projects) == 0 {
		p.Projects = domain.Projects
	}
	if p.MaxWorkers <= 0 {
		p.MaxWorkers = DefaultMaxWorkers
	}
	if p.MaxArticles <= 0 {
		p.MaxArticles = DefaultMaxArticles
	}
	if p.Retention <= 0 {
		p.Retention = DefaultRetention
	}
	return &Crawler{
		wiki:        p.Wiki,
		store:       p.Store,
		settings:    p.Settings,
		projects:    p.Projects,
		maxWorkers:  p.MaxWorkers,
		maxArticles: p.MaxArticles,
		retention:   p.Retention,
		sanitizer:   bluemonday.StrictPolicy(),
		now:         time.Now,
	}
}

// CrawlOnce crawls all projects one by one. A failed project doesn't stop the others,
// all failures are returned together.
func (c *Crawler) CrawlOnce(ctx context.Context) error {
	c.crawlMu.Lock()
	defer c.crawlMu.Unlock()

	start := c.now()
	var errs []error
	for _, project := range c.projects {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if _, err := c.CrawlProject(ctx, project); err != nil {
			lgr.Printf("[WARN] crawl of %s failed: %v", project, err)
			errs = append(errs, fmt.Errorf("crawl %s: %w", project, err))
		}
	}
	err := errors.Join(errs...)
	c.recordOutcome(ctx, start, err)
	lgr.Printf("[INFO] crawled %d projects in %v, %d failed", len(c.projects), c.now().Sub(start), len(errs))
	return err
}

// CrawlProject writes a new published snapshot of the project top articles and prunes
// expired snapshots. Returns the number of stored articles.
func (c *Crawler) CrawlProject(ctx context.Context, project string) (stored int, err error) {
	start := c.now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.RecordCrawl(project, status, c.now().Sub(start).Seconds())
	}()

	top, err := c.wiki.FetchTopArticles(ctx, project)
	if err != nil {
		return 0, fmt.Errorf("fetch top articles: %w", err)
	}
	entries := top.Articles
	if len(entries) > c.maxArticles {
		entries = entries[:c.maxArticles]
	}
	lgr.Printf("[DEBUG] crawling %d top articles of %s", len(entries), project)

	articles := c.fetchArticles(ctx, project, entries)
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	if len(articles) == 0 {
		return 0, ErrNoArticles
	}

	snapshotID, err := c.store.BeginSnapshot(ctx, project)
	if err != nil {
		return 0, fmt.Errorf("begin snapshot: %w", err)
	}
	if err := c.store.InsertArticles(ctx, snapshotID, articles); err != nil {
		c.discard(ctx, snapshotID)
		return 0, fmt.Errorf("insert articles: %w", err)
	}
	if err := c.store.PublishSnapshot(ctx, snapshotID); err != nil {
		c.discard(ctx, snapshotID)
		return 0, fmt.Errorf("publish snapshot: %w", err)
	}
	metrics.RecordStored(project, len(articles))
	lgr.Printf("[INFO] published snapshot %d of %s with %d articles", snapshotID, project, len(articles))

	pruned, err := c.store.DeleteSnapshotsBefore(ctx, project, c.now().Add(-c.retention))
	if err != nil {
		// the new snapshot is already visible, stale ones will be pruned next time
		lgr.Printf("[WARN] failed to prune snapshots of %s: %v", project, err)
		return len(articles), nil
	}
	if pruned > 0 {
		metrics.RecordPruned(project, pruned)
		lgr.Printf("[DEBUG] pruned %d snapshots of %s", pruned, project)
	}
	return len(articles), nil
}

// fetchArticles gets summaries of top entries concurrently, keeping top list order.
// Entries failed to fetch or lacking extract or image are skipped.
func (c *Crawler) fetchArticles(ctx context.Context, project string, entries []wikipedia.TopPageviewsArticle) []domain.Article {
	results := make([]*domain.Article, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxWorkers)
	for i, entry := range entries {
		g.Go(func() error {
			wa, err := c.wiki.GetArticle(ctx, project, entry.Article)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				lgr.Printf("[WARN] failed to retrieve %s/%s: %v", project, entry.Article, err)
				metrics.RecordSkipped(project, skipFetchError)
				return nil
			}
			a, reason := c.makeArticle(project, entry, wa)
			if reason != "" {
				metrics.RecordSkipped(project, reason)
				return nil
			}
			results[i] = &a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		lgr.Printf("[WARN] fetching articles of %s interrupted: %v", project, err)
	}

	res := make([]domain.Article, 0, len(results))
	for _, a := range results {
		if a != nil {
			res = append(res, *a)
		}
	}
	return res
}

// makeArticle converts wikipedia article to domain.Article, returns skip reason if it is not displayable
func (c *Crawler) makeArticle(project string, entry wikipedia.TopPageviewsArticle, wa wikipedia.Article) (domain.Article, string) {
	s := wa.Summary
	abstract := strings.TrimSpace(s.Extract)
	if abstract == "" {
		abstract = c.plainText(s.ExtractHTML)
	}
	if abstract == "" {
		return domain.Article{}, skipNoExtract
	}
	thumbnail, image := wa.Images()
	if thumbnail == "" && image == "" {
		return domain.Article{}, skipNoImage
	}

	title := s.Titles.Normalized
	if title == "" {
		title = c.plainText(s.DisplayTitle)
	}
	if title == "" {
		title = s.Title
	}
	if title == "" {
		title = strings.ReplaceAll(entry.Article, "_", " ")
	}

	articleURL := s.ContentURLs.Desktop.Page
	if articleURL == "" {
		articleURL = fmt.Sprintf("https://%s.wikipedia.org/wiki/%s", project, entry.Article)
	}

	retrieved := s.Retrieved
	if retrieved.IsZero() {
		retrieved = c.now().UTC()
	}

	return domain.Article{
		Project:      project,
		Article:      entry.Article,
		Title:        title,
		Abstract:     abstract,
		ArticleURL:   articleURL,
		ImageURL:     image,
		ThumbnailURL: thumbnail,
		DailyViews:   entry.Views,
		Retrieved:    retrieved,
	}, ""
}

// plainText strips html markup and decodes entities
func (c *Crawler) plainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(c.sanitizer.Sanitize(s)))
}

func (c *Crawler) discard(ctx context.Context, snapshotID int64) {
	if err := c.store.DiscardSnapshot(context.WithoutCancel(ctx), snapshotID); err != nil {
		lgr.Printf("[WARN] failed to discard snapshot %d: %v", snapshotID, err)
	}
}

// recordOutcome stores the crawl time and error, if settings store is set
func (c *Crawler) recordOutcome(ctx context.Context, start time.Time, crawlErr error) {
	metrics.SetLastCrawl(start.Unix())
	if c.settings == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if err := c.settings.SetTime(ctx, repository.SettingLastCrawl, start); err != nil {
		lgr.Printf("[WARN] failed to save last crawl time: %v", err)
	}
	errMsg := ""
	if crawlErr != nil {
		errMsg = crawlErr.Error()
	}
	if err := c.settings.SetSetting(ctx, repository.SettingLastCrawlError, errMsg); err != nil {
		lgr.Printf("[WARN] failed to save last crawl error: %v", err)
	}
}
