package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const topResponse = `{"items":[{"project":"en.wikipedia","access":"all-access","year":"2024","month":"03","day":"14",
"articles":[
 {"article":"Main_Page","views":5000000,"rank":1},
 {"article":"Special:Search","views":1000000,"rank":2},
 {"article":"Pi","views":90000,"rank":3},
 {"article":"Wikipedia:Featured_pictures","views":50000,"rank":4},
 {"article":"Albert_Einstein","views":40000,"rank":5}
]}]}`

const summaryResponse = `{
 "type":"standard","title":"Pi","displaytitle":"<span class=\"mw-page-title-main\">Pi</span>",
 "titles":{"canonical":"Pi","normalized":"Pi","display":"<span>Pi</span>"},
 "lang":"en","extract":"The number π is a mathematical constant.",
 "extract_html":"<p>The number <b>π</b> is a mathematical constant.</p>",
 "thumbnail":{"source":"https://upload.wikimedia.org/thumb/pi.png","width":320,"height":240},
 "originalimage":{"source":"https://upload.wikimedia.org/pi.png","width":1024,"height":768},
 "content_urls":{"desktop":{"page":"https://en.wikipedia.org/wiki/Pi"},"mobile":{"page":"https://en.m.wikipedia.org/wiki/Pi"}}
}`

func newTestClient(ts *httptest.Server) *Client {
	c := New(Opts{WikipediaURL: ts.URL + "/%s/api/rest_v1", WikimediaURL: ts.URL + "/wikimedia", RateLimit: 1000, Burst: 10})
	c.now = func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) }
	return c
}

func TestClient_FetchTopArticles(t *testing.T) {
	t.Run("yesterday, special pages filtered", func(t *testing.T) {
		var path, agent atomic.Value
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path.Store(r.URL.Path)
			agent.Store(r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(topResponse))
		}))
		defer ts.Close()

		top, err := newTestClient(ts).FetchTopArticles(context.Background(), "en")
		require.NoError(t, err)
		assert.Equal(t, "/wikimedia/metrics/pageviews/top/en.wikipedia.org/all-access/2024/03/14", path.Load())
		assert.Equal(t, defaultUserAgent, agent.Load())
		require.Len(t, top.Articles, 2)
		assert.Equal(t, "Pi", top.Articles[0].Article)
		assert.Equal(t, int64(90000), top.Articles[0].Views)
		assert.Equal(t, "Albert_Einstein", top.Articles[1].Article)
	})

	t.Run("unknown project", func(t *testing.T) {
		c := New(Opts{})
		_, err := c.FetchTopArticles(context.Background(), "xx")
		require.ErrorIs(t, err, ErrUnknownProject)
	})

	t.Run("empty items", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"items":[]}`))
		}))
		defer ts.Close()
		_, err := newTestClient(ts).FetchTopArticles(context.Background(), "fr")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("not found", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no data", http.StatusNotFound)
		}))
		defer ts.Close()
		_, err := newTestClient(ts).FetchTopArticles(context.Background(), "de")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}))
		defer ts.Close()
		_, err := newTestClient(ts).FetchTopArticles(context.Background(), "de")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 503: overloaded")
	})

	t.Run("bad json", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"items":`))
		}))
		defer ts.Close()
		_, err := newTestClient(ts).FetchTopArticles(context.Background(), "en")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode response")
	})
}

func TestClient_GetArticle(t *testing.T) {
	t.Run("summary with images, no media request", func(t *testing.T) {
		var mediaCalls atomic.Int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/en/api/rest_v1/page/summary/Pi":
				assert.Equal(t, "en-US,en;q=0.9", r.Header.Get("Accept-Language"))
				_, _ = w.Write([]byte(summaryResponse))
			case strings.HasPrefix(r.URL.Path, "/en/api/rest_v1/page/media/"):
				mediaCalls.Add(1)
				_, _ = w.Write([]byte(`{"items":[]}`))
			default:
				http.NotFound(w, r)
			}
		}))
		defer ts.Close()

		a, err := newTestClient(ts).GetArticle(context.Background(), "en", "Pi")
		require.NoError(t, err)
		assert.Equal(t, "en", a.Project)
		assert.Equal(t, "Pi", a.Article)
		assert.Equal(t, "Pi", a.Summary.Titles.Normalized)
		assert.Equal(t, "The number π is a mathematical constant.", a.Summary.Extract)
		assert.Equal(t, "https://en.wikipedia.org/wiki/Pi", a.Summary.ContentURLs.Desktop.Page)
		assert.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), a.Summary.Retrieved)
		thumb, orig := a.Images()
		assert.Equal(t, "https://upload.wikimedia.org/thumb/pi.png", thumb)
		assert.Equal(t, "https://upload.wikimedia.org/pi.png", orig)
		assert.Equal(t, int32(0), mediaCalls.Load())
	})

	t.Run("images from media", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/fr/api/rest_v1/page/summary/Tour_Eiffel":
				_, _ = w.Write([]byte(`{"title":"Tour Eiffel","extract":"La tour.","titles":{"normalized":"Tour Eiffel"}}`))
			case "/fr/api/rest_v1/page/media/Tour_Eiffel":
				_, _ = w.Write([]byte(`{"items":[
					{"type":"video","thumbnail":{"source":"v.jpg"},"original":{"source":"v.webm"}},
					{"type":"image","thumbnail":{"source":"t.jpg"},"original":{"source":"o.jpg"}}]}`))
			default:
				http.NotFound(w, r)
			}
		}))
		defer ts.Close()

		a, err := newTestClient(ts).GetArticle(context.Background(), "fr", "Tour_Eiffel")
		require.NoError(t, err)
		require.Len(t, a.Media, 2)
		thumb, orig := a.Images()
		assert.Equal(t, "t.jpg", thumb)
		assert.Equal(t, "o.jpg", orig)
	})

	t.Run("no images at all", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.Contains(r.URL.Path, "/page/summary/") {
				_, _ = w.Write([]byte(`{"title":"Foo","extract":"foo"}`))
				return
			}
			http.NotFound(w, r)
		}))
		defer ts.Close()

		a, err := newTestClient(ts).GetArticle(context.Background(), "de", "Foo")
		require.NoError(t, err)
		thumb, orig := a.Images()
		assert.Empty(t, thumb)
		assert.Empty(t, orig)
	})

	t.Run("summary not found", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer ts.Close()
		_, err := newTestClient(ts).GetArticle(context.Background(), "en", "Missing")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("article name escaped", func(t *testing.T) {
		var rawPath atomic.Value
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawPath.Store(r.URL.EscapedPath())
			_, _ = w.Write([]byte(summaryResponse))
		}))
		defer ts.Close()
		_, err := newTestClient(ts).GetArticleSummary(context.Background(), "en", "AC/DC")
		require.NoError(t, err)
		assert.Equal(t, "/en/api/rest_v1/page/summary/AC%2FDC", rawPath.Load())
	})

	t.Run("canceled context", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(summaryResponse))
		}))
		defer ts.Close()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newTestClient(ts).GetArticleSummary(ctx, "en", "Pi")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsSpecial(t *testing.T) {
	tbl := []struct {
		article string
		special bool
	}{
		{"Main_Page", true},
		{"Special:Search", true},
		{"Wikipedia:Featured_pictures", true},
		{"Pagina_principale", true},
		{"Wikipédia:Accueil_principal", true},
		{"Заглавная_страница", true},
		{"-", true},
		{"", true},
		{"Pi", false},
		{"Albert_Einstein", false},
		{"Special_relativity", false},
	}
	for _, tt := range tbl {
		t.Run(tt.article, func(t *testing.T) {
			assert.Equal(t, tt.special, IsSpecial(tt.article))
		})
	}
}
