// Package metrics provides Prometheus metrics for wikifeedia.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CrawlTotal counts project crawls.
	CrawlTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wikifeedia",
			Name:      "crawl_total",
			Help:      "Total number of project crawls",
		},
		[]string{"project", "status"},
	)

	// CrawlDuration measures project crawl duration.
	CrawlDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wikifeedia",
			Name:      "crawl_duration_seconds",
			Help:      "Duration of project crawls in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"project"},
	)

	// ArticlesStored counts articles written into snapshots.
	ArticlesStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wikifeedia",
			Name:      "articles_stored_total",
			Help:      "Total number of articles stored",
		},
		[]string{"project"},
	)

	// ArticlesSkipped counts top articles not stored, by reason.
	ArticlesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wikifeedia",
			Name:      "articles_skipped_total",
			Help:      "Total number of top articles skipped",
		},
		[]string{"project", "reason"},
	)

	// QueryTotal counts feed queries served.
	QueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wikifeedia",
			Name:      "query_total",
			Help:      "Total number of feed queries",
		},
		[]string{"project", "status"},
	)

	// QueryDuration measures feed query duration.
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wikifeedia",
			Name:      "query_duration_seconds",
			Help:      "Duration of feed queries in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"project"},
	)

	// SnapshotsPruned counts deleted snapshots.
	SnapshotsPruned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wikifeedia",
			Name:      "snapshots_pruned_total",
			Help:      "Total number of pruned snapshots",
		},
		[]string{"project"},
	)

	// LastCrawl is the unix time of the last completed crawl.
	LastCrawl = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "wikifeedia",
			Name:      "last_crawl_timestamp_seconds",
			Help:      "Unix time of the last completed crawl",
		},
	)
)

// RecordCrawl records a project crawl.
func RecordCrawl(project, status string, duration float64) {
	CrawlTotal.WithLabelValues(project, status).Inc()
	CrawlDuration.WithLabelValues(project).Observe(duration)
}

// RecordStored records articles written into a snapshot.
func RecordStored(project string, count int) {
	ArticlesStored.WithLabelValues(project).Add(float64(count))
}

// RecordSkipped records a skipped top article.
func RecordSkipped(project, reason string) {
	ArticlesSkipped.WithLabelValues(project, reason).Inc()
}

// RecordQuery records a feed query.
func RecordQuery(project, status string, duration float64) {
	QueryTotal.WithLabelValues(project, status).Inc()
	QueryDuration.WithLabelValues(project).Observe(duration)
}

// RecordPruned records deleted snapshots.
func RecordPruned(project string, count int64) {
	SnapshotsPruned.WithLabelValues(project).Add(float64(count))
}

// SetLastCrawl sets the time of the last completed crawl.
func SetLastCrawl(unix int64) {
	LastCrawl.Set(float64(unix))
}
