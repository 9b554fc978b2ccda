package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/wikifeedia/pkg/db"
	"github.com/umputun/wikifeedia/pkg/domain"
)

// ErrSnapshotNotFound is returned when the requested asOf snapshot is unknown, pruned or unpublished
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ArticleRepository stores articles in per-crawl snapshots
type ArticleRepository struct {
	db              *sqlx.DB
	followerReadLag time.Duration
	now             func() time.Time
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB, followerReadLag time.Duration) *ArticleRepository {
	return &ArticleRepository{db: db, followerReadLag: followerReadLag, now: time.Now}
}

// ProjectStatus summarizes the visible snapshot of a project
type ProjectStatus struct {
	Project      string    `json:"project"`
	SnapshotID   int64     `json:"snapshot_id"`
	PublishedAt  time.Time `json:"published_at"`
	ArticleCount int       `json:"article_count"`
	Snapshots    int       `json:"snapshots"`
}

// BeginSnapshot creates an unpublished snapshot for project and returns its id
func (r *ArticleRepository) BeginSnapshot(ctx context.Context, project string) (int64, error) {
	var id int64
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "INSERT INTO snapshots (project, created_at) VALUES (?, ?)",
			project, r.now().Unix())
		if err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("get snapshot id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("begin snapshot for %s: %w", project, err)
	}
	return id, nil
}

// InsertArticles adds articles to an unpublished snapshot in a single transaction.
// An article inserted twice replaces the previous row.
func (r *ArticleRepository) InsertArticles(ctx context.Context, snapshotID int64, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}
	query := `
		INSERT INTO articles (snapshot_id, project, article, title, abstract, article_url,
			image_url, thumbnail_url, daily_views, retrieved)
		VALUES (:snapshot_id, :project, :article, :title, :abstract, :article_url,
			:image_url, :thumbnail_url, :daily_views, :retrieved)
		ON CONFLICT(snapshot_id, article) DO UPDATE SET
			title = excluded.title,
			abstract = excluded.abstract,
			article_url = excluded.article_url,
			image_url = excluded.image_url,
			thumbnail_url = excluded.thumbnail_url,
			daily_views = excluded.daily_views,
			retrieved = excluded.retrieved
	`

	return withLockRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		var snap db.Snapshot
		if err := tx.GetContext(ctx, &snap, "SELECT * FROM snapshots WHERE id = ?", snapshotID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("snapshot %d: %w", snapshotID, ErrSnapshotNotFound)
			}
			return fmt.Errorf("get snapshot %d: %w", snapshotID, err)
		}
		if snap.Published() {
			return fmt.Errorf("snapshot %d is already published", snapshotID)
		}

		stmt, err := tx.PrepareNamedContext(ctx, query)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, a := range articles {
			row := db.NewArticle(snapshotID, a)
			row.Project = snap.Project
			if _, err := stmt.ExecContext(ctx, row); err != nil {
				return fmt.Errorf("insert article %s: %w", a.Article, err)
			}
		}
		return tx.Commit()
	})
}

// PublishSnapshot makes the snapshot visible to readers
func (r *ArticleRepository) PublishSnapshot(ctx context.Context, snapshotID int64) error {
	return withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, `
			UPDATE snapshots
			SET published_at = ?,
			    article_count = (SELECT COUNT(*) FROM articles WHERE snapshot_id = ?)
			WHERE id = ? AND published_at IS NULL`,
			r.now().Unix(), snapshotID, snapshotID)
		if err != nil {
			return fmt.Errorf("publish snapshot %d: %w", snapshotID, err)
		}
		return checkPublished(res, snapshotID)
	})
}

// checkPublished fails if the publish update touched no unpublished snapshot
func checkPublished(res sql.Result, snapshotID int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("publish snapshot %d, rows affected: %w", snapshotID, err)
	}
	if n == 0 {
		return fmt.Errorf("publish snapshot %d: %w", snapshotID, ErrSnapshotNotFound)
	}
	return nil
}

// DiscardSnapshot removes an unpublished snapshot with all its articles
func (r *ArticleRepository) DiscardSnapshot(ctx context.Context, snapshotID int64) error {
	if _, err := r.deleteSnapshots(ctx, "SELECT id FROM snapshots WHERE id = ? AND published_at IS NULL", snapshotID); err != nil {
		return fmt.Errorf("discard snapshot %d: %w", snapshotID, err)
	}
	return nil
}

// GetArticles returns a page of articles ordered by daily views and the asOf token of the
// snapshot they were read from. A non-empty asOf reads that exact snapshot. Otherwise
// followerRead reads the newest snapshot published at least the follower read lag ago,
// falling back to the newest one. Returns empty asOf if project has no published snapshots.
func (r *ArticleRepository) GetArticles(ctx context.Context, project string, offset, limit int,
	followerRead bool, asOf string) (articles []domain.Article, newAsOf string, err error) {

	snap, err := r.resolveSnapshot(ctx, project, followerRead, asOf)
	if err != nil {
		return nil, "", err
	}
	if snap == nil {
		return []domain.Article{}, "", nil
	}
	if offset < 0 {
		offset = 0
	}

	var rows []db.Article
	err = r.db.SelectContext(ctx, &rows, `
		SELECT * FROM articles
		WHERE snapshot_id = ?
		ORDER BY daily_views DESC, article
		LIMIT ? OFFSET ?`, snap.ID, limit, offset)
	if err != nil {
		return nil, "", fmt.Errorf("get articles of %s: %w", project, err)
	}

	articles = make([]domain.Article, len(rows))
	for i, row := range rows {
		articles[i] = row.Domain()
	}
	return articles, formatAsOf(snap.ID), nil
}

// resolveSnapshot picks the snapshot to read, nil if there is none
func (r *ArticleRepository) resolveSnapshot(ctx context.Context, project string, followerRead bool,
	asOf string) (*db.Snapshot, error) {

	var snap db.Snapshot
	if asOf != "" {
		id, err := parseAsOf(asOf)
		if err != nil {
			return nil, err
		}
		err = r.db.GetContext(ctx, &snap,
			"SELECT * FROM snapshots WHERE id = ? AND project = ? AND published_at IS NOT NULL", id, project)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("as of %q for %s: %w", asOf, project, ErrSnapshotNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("get snapshot %d: %w", id, err)
		}
		return &snap, nil
	}

	latest := `SELECT * FROM snapshots
		WHERE project = ? AND published_at IS NOT NULL AND published_at <= ?
		ORDER BY published_at DESC, id DESC LIMIT 1`

	if followerRead {
		cutoff := r.now().Add(-r.followerReadLag).Unix()
		err := r.db.GetContext(ctx, &snap, latest, project, cutoff)
		if err == nil {
			return &snap, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get follower snapshot of %s: %w", project, err)
		}
	}

	err := r.db.GetContext(ctx, &snap, latest, project, r.now().Unix())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest snapshot of %s: %w", project, err)
	}
	return &snap, nil
}

// DeleteSnapshotsBefore removes snapshots of project created before the given time,
// the latest published snapshot is always kept. Returns number of deleted snapshots.
func (r *ArticleRepository) DeleteSnapshotsBefore(ctx context.Context, project string, before time.Time) (int64, error) {
	deleted, err := r.deleteSnapshots(ctx, `
		SELECT id FROM snapshots
		WHERE project = ? AND created_at < ?
		AND id NOT IN (
			SELECT id FROM snapshots
			WHERE project = ? AND published_at IS NOT NULL
			ORDER BY published_at DESC, id DESC LIMIT 1
		)`, project, before.Unix(), project)
	if err != nil {
		return 0, fmt.Errorf("delete snapshots of %s: %w", project, err)
	}
	return deleted, nil
}

// deleteSnapshots removes snapshots selected by query together with their articles
func (r *ArticleRepository) deleteSnapshots(ctx context.Context, query string, args ...any) (int64, error) {
	var deleted int64
	err := withLockRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		var ids []int64
		if err := tx.SelectContext(ctx, &ids, query, args...); err != nil {
			return fmt.Errorf("select snapshots: %w", err)
		}
		if len(ids) == 0 {
			deleted = 0
			return nil
		}

		for _, q := range []string{"DELETE FROM articles WHERE snapshot_id IN (?)", "DELETE FROM snapshots WHERE id IN (?)"} {
			inQuery, inArgs, err := sqlx.In(q, ids)
			if err != nil {
				return fmt.Errorf("make query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(inQuery), inArgs...); err != nil {
				return fmt.Errorf("delete: %w", err)
			}
		}
		deleted = int64(len(ids))
		return tx.Commit()
	})
	return deleted, err
}

// Status returns the visible snapshot of every project having one
func (r *ArticleRepository) Status(ctx context.Context) ([]ProjectStatus, error) {
	var rows []struct {
		Project      string `db:"project"`
		SnapshotID   int64  `db:"snapshot_id"`
		PublishedAt  int64  `db:"published_at"`
		ArticleCount int    `db:"article_count"`
		Snapshots    int    `db:"snapshots"`
	}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT s.project, s.id AS snapshot_id, s.published_at, s.article_count,
			(SELECT COUNT(*) FROM snapshots c WHERE c.project = s.project AND c.published_at IS NOT NULL) AS snapshots
		FROM snapshots s
		WHERE s.published_at IS NOT NULL
		AND s.id = (
			SELECT l.id FROM snapshots l
			WHERE l.project = s.project AND l.published_at IS NOT NULL
			ORDER BY l.published_at DESC, l.id DESC LIMIT 1
		)
		ORDER BY s.project`)
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}

	res := make([]ProjectStatus, len(rows))
	for i, row := range rows {
		res[i] = ProjectStatus{
			Project:      row.Project,
			SnapshotID:   row.SnapshotID,
			PublishedAt:  time.Unix(row.PublishedAt, 0).UTC(),
			ArticleCount: row.ArticleCount,
			Snapshots:    row.Snapshots,
		}
	}
	return res, nil
}

func formatAsOf(snapshotID int64) string {
	return strconv.FormatInt(snapshotID, 10)
}

func parseAsOf(asOf string) (int64, error) {
	id, err := strconv.ParseInt(asOf, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid as of %q: %w", asOf, ErrSnapshotNotFound)
	}
	return id, nil
}
