// Package db defines the sqlite row models of wikifeedia. Times are stored as unix seconds.
package db

import (
	"database/sql"
	"time"

	"github.com/umputun/wikifeedia/pkg/domain"
)

type (
	// NullInt64 is a type alias for sql.NullInt64
	NullInt64 = sql.NullInt64
)

// Snapshot is a single crawl result of a project. Articles of a snapshot become visible
// once it is published and never change afterwards.
type Snapshot struct {
	ID           int64     `db:"id"`
	Project      string    `db:"project"`
	CreatedAt    int64     `db:"created_at"`
	PublishedAt  NullInt64 `db:"published_at"`
	ArticleCount int       `db:"article_count"`
}

// Published reports whether the snapshot is visible to readers
func (s Snapshot) Published() bool {
	return s.PublishedAt.Valid
}

// PublishedTime returns publish time, zero if not published
func (s Snapshot) PublishedTime() time.Time {
	if !s.PublishedAt.Valid {
		return time.Time{}
	}
	return time.Unix(s.PublishedAt.Int64, 0).UTC()
}

// Article is an article row of a snapshot
type Article struct {
	SnapshotID   int64  `db:"snapshot_id"`
	Project      string `db:"project"`
	Article      string `db:"article"`
	Title        string `db:"title"`
	Abstract     string `db:"abstract"`
	ArticleURL   string `db:"article_url"`
	ImageURL     string `db:"image_url"`
	ThumbnailURL string `db:"thumbnail_url"`
	DailyViews   int64  `db:"daily_views"`
	Retrieved    int64  `db:"retrieved"`
}

// NewArticle makes a row for a domain article
func NewArticle(snapshotID int64, a domain.Article) Article {
	var retrieved int64
	if !a.Retrieved.IsZero() {
		retrieved = a.Retrieved.Unix()
	}
	return Article{
		SnapshotID:   snapshotID,
		Project:      a.Project,
		Article:      a.Article,
		Title:        a.Title,
		Abstract:     a.Abstract,
		ArticleURL:   a.ArticleURL,
		ImageURL:     a.ImageURL,
		ThumbnailURL: a.ThumbnailURL,
		DailyViews:   a.DailyViews,
		Retrieved:    retrieved,
	}
}

// Domain converts the row to domain.Article
func (a Article) Domain() domain.Article {
	res := domain.Article{
		Project:      a.Project,
		Article:      a.Article,
		Title:        a.Title,
		Abstract:     a.Abstract,
		ArticleURL:   a.ArticleURL,
		ImageURL:     a.ImageURL,
		ThumbnailURL: a.ThumbnailURL,
		DailyViews:   a.DailyViews,
	}
	if a.Retrieved > 0 {
		res.Retrieved = time.Unix(a.Retrieved, 0).UTC()
	}
	return res
}
