package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/wikifeedia/pkg/domain"
	"github.com/umputun/wikifeedia/pkg/metrics"
	"github.com/umputun/wikifeedia/pkg/repository"
)

func setupService(t *testing.T) (*FeedService, *repository.Repositories) {
	t.Helper()
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return NewFeedService(repos), repos
}

func storeArticles(t *testing.T, repos *repository.Repositories, project string, n int) int64 {
	t.Helper()
	ctx := context.Background()
	articles := make([]domain.Article, n)
	for i := range articles {
		articles[i] = domain.Article{
			Project:      project,
			Article:      fmt.Sprintf("Article_%02d", i),
			Title:        fmt.Sprintf("Article %02d", i),
			Abstract:     "abstract",
			ArticleURL:   fmt.Sprintf("https://%s.wikipedia.org/wiki/Article_%02d", project, i),
			ThumbnailURL: "https://upload.wikimedia.org/thumb.jpg",
			DailyViews:   int64(1000 - i),
		}
	}
	id, err := repos.Article.BeginSnapshot(ctx, project)
	require.NoError(t, err)
	require.NoError(t, repos.Article.InsertArticles(ctx, id, articles))
	require.NoError(t, repos.Article.PublishSnapshot(ctx, id))
	return id
}

func TestFeedService_Articles(t *testing.T) {
	svc, repos := setupService(t)
	ctx := context.Background()

	t.Run("no snapshots", func(t *testing.T) {
		resp, err := svc.Articles(ctx, ArticlesRequest{Project: "en"})
		require.NoError(t, err)
		assert.Empty(t, resp.AsOf)
		assert.NotNil(t, resp.Articles)
		assert.Empty(t, resp.Articles)
	})

	id := storeArticles(t, repos, "en", 15)

	t.Run("default limit", func(t *testing.T) {
		resp, err := svc.Articles(ctx, ArticlesRequest{Project: "en"})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%d", id), resp.AsOf)
		require.Len(t, resp.Articles, DefaultLimit)
		assert.Equal(t, "Article_00", resp.Articles[0].Article)
	})

	t.Run("limit capped and negative offset", func(t *testing.T) {
		resp, err := svc.Articles(ctx, ArticlesRequest{Project: "en", Offset: -5, Limit: 5000})
		require.NoError(t, err)
		assert.Len(t, resp.Articles, 15)
	})

	t.Run("next page with asOf", func(t *testing.T) {
		first, err := svc.Articles(ctx, ArticlesRequest{Project: "en", Limit: 10})
		require.NoError(t, err)
		storeArticles(t, repos, "en", 3)

		next, err := svc.Articles(ctx, ArticlesRequest{Project: "en", Offset: 10, Limit: 10, AsOf: first.AsOf})
		require.NoError(t, err)
		assert.Equal(t, first.AsOf, next.AsOf)
		require.Len(t, next.Articles, 5)
		assert.Equal(t, "Article_10", next.Articles[0].Article)

		latest, err := svc.Articles(ctx, ArticlesRequest{Project: "en", Limit: 10})
		require.NoError(t, err)
		assert.NotEqual(t, first.AsOf, latest.AsOf)
		assert.Len(t, latest.Articles, 3)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := svc.Articles(ctx, ArticlesRequest{Project: "xx"})
		require.ErrorIs(t, err, ErrUnknownProject)
	})

	t.Run("bad asOf", func(t *testing.T) {
		_, err := svc.Articles(ctx, ArticlesRequest{Project: "en", AsOf: "nope"})
		require.ErrorIs(t, err, repository.ErrSnapshotNotFound)
	})
}

func TestFeedService_ArticlesMetrics(t *testing.T) {
	svc, repos := setupService(t)
	ctx := context.Background()
	storeArticles(t, repos, "sv", 2)

	okBefore := testutil.ToFloat64(metrics.QueryTotal.WithLabelValues("sv", "ok"))
	errBefore := testutil.ToFloat64(metrics.QueryTotal.WithLabelValues("sv", "error"))

	_, err := svc.Articles(ctx, ArticlesRequest{Project: "sv"})
	require.NoError(t, err)
	_, err = svc.Articles(ctx, ArticlesRequest{Project: "sv", AsOf: "999"})
	require.Error(t, err)

	assert.InDelta(t, okBefore+1, testutil.ToFloat64(metrics.QueryTotal.WithLabelValues("sv", "ok")), 0.001)
	assert.InDelta(t, errBefore+1, testutil.ToFloat64(metrics.QueryTotal.WithLabelValues("sv", "error")), 0.001)
}

func TestFeedService_Status(t *testing.T) {
	svc, repos := setupService(t)
	ctx := context.Background()

	st, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.LastCrawl.IsZero())
	assert.Empty(t, st.LastCrawlError)
	assert.Empty(t, st.Projects)

	crawled := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Setting.SetTime(ctx, repository.SettingLastCrawl, crawled))
	require.NoError(t, repos.Setting.SetSetting(ctx, repository.SettingLastCrawlError, "crawl fr: boom"))
	id := storeArticles(t, repos, "de", 4)

	st, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, crawled, st.LastCrawl)
	assert.Equal(t, "crawl fr: boom", st.LastCrawlError)
	require.Len(t, st.Projects, 1)
	assert.Equal(t, "de", st.Projects[0].Project)
	assert.Equal(t, id, st.Projects[0].SnapshotID)
	assert.Equal(t, 4, st.Projects[0].ArticleCount)
}

func TestFeedService_Projects(t *testing.T) {
	svc, _ := setupService(t)
	projects := svc.Projects()
	assert.Equal(t, domain.Projects, projects)

	projects[0] = "changed"
	assert.Equal(t, "en", domain.Projects[0], "returned slice is a copy")
}

func TestFeedService_Ping(t *testing.T) {
	svc, repos := setupService(t)
	require.NoError(t, svc.Ping(context.Background()))
	require.NoError(t, repos.Close())
	assert.Error(t, svc.Ping(context.Background()))
}
