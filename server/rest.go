package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/rest"

	"github.com/umputun/wikifeedia/pkg/repository"
	"github.com/umputun/wikifeedia/pkg/service"
)

const rssLimit = 50

// statusHandler returns server status with the last crawl and visible snapshots
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.feed.Status(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get status: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{
		"status":           "ok",
		"version":          s.version,
		"time":             time.Now().UTC(),
		"last_crawl":       st.LastCrawl,
		"last_crawl_error": st.LastCrawlError,
		"projects":         st.Projects,
	})
}

// projectsHandler returns supported projects
func (s *Server) projectsHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, rest.JSON{"projects": s.feed.Projects()})
}

// articlesHandler is the json twin of the graphql articles query,
// e.g. /api/v1/articles/en?offset=10&limit=10&follower_read=true&as_of=42
func (s *Server) articlesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := service.ArticlesRequest{
		Project:      r.PathValue("project"),
		FollowerRead: q.Get("follower_read") == "true",
		AsOf:         q.Get("as_of"),
	}
	var err error
	if v := q.Get("offset"); v != "" {
		if req.Offset, err = strconv.Atoi(v); err != nil {
			renderError(w, r, errors.New("invalid offset"), http.StatusBadRequest)
			return
		}
	}
	if v := q.Get("limit"); v != "" {
		if req.Limit, err = strconv.Atoi(v); err != nil {
			renderError(w, r, errors.New("invalid limit"), http.StatusBadRequest)
			return
		}
	}

	resp, err := s.feed.Articles(r.Context(), req)
	switch {
	case errors.Is(err, service.ErrUnknownProject):
		renderError(w, r, err, http.StatusNotFound)
		return
	case errors.Is(err, repository.ErrSnapshotNotFound):
		renderError(w, r, err, http.StatusGone)
		return
	case err != nil:
		log.Printf("[ERROR] failed to get articles: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// crawlHandler triggers a crawl out of schedule
func (s *Server) crawlHandler(w http.ResponseWriter, r *http.Request) {
	if !s.crawlMutation() {
		renderError(w, r, errors.New("crawler is disabled"), http.StatusServiceUnavailable)
		return
	}
	renderJSON(w, r, http.StatusAccepted, rest.JSON{"status": "crawl requested"})
}

// rssHandler serves RSS feed of the most viewed articles of a project
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	project := r.PathValue("project")

	resp, err := s.feed.Articles(ctx, service.ArticlesRequest{Project: project, Limit: rssLimit, FollowerRead: true})
	if errors.Is(err, service.ErrUnknownProject) {
		http.Error(w, "Unknown project", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[ERROR] failed to get articles for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	var updated time.Time
	if len(resp.Articles) > 0 {
		updated = resp.Articles[0].Retrieved
	}
	feed, err := s.rss.GenerateRSS(project, resp.Articles, updated)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if _, err := w.Write([]byte(feed)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler serves OPML with RSS feeds of all projects
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	opml, err := s.rss.GenerateOPML(s.feed.Projects())
	if err != nil {
		log.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="wikifeedia.opml"`)
	if _, err := w.Write([]byte(opml)); err != nil {
		log.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}

// healthHandler reports OK if the database is reachable
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=UTF-8")
	if err := s.feed.Ping(r.Context()); err != nil {
		log.Printf("[WARN] health check failed: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("database unavailable"))
		return
	}
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("[WARN] could not write response: %v", err)
	}
}
