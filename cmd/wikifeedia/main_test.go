package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const topResponse = `{"items":[{"project":"en.wikipedia","access":"all-access","year":"2024","month":"03","day":"14",
"articles":[
 {"article":"Main_Page","views":5000000,"rank":1},
 {"article":"Go_(programming_language)","views":90000,"rank":2},
 {"article":"Special:Search","views":70000,"rank":3},
 {"article":"Rust_(programming_language)","views":40000,"rank":4}
]}]}`

const summaryTemplate = `{
 "type":"standard","title":"%[1]s",
 "titles":{"canonical":"%[1]s","normalized":"%[2]s","display":"%[2]s"},
 "lang":"en","extract":"%[2]s is a programming language.",
 "thumbnail":{"source":"https://upload.wikimedia.org/thumb/%[1]s.png","width":320,"height":240},
 "originalimage":{"source":"https://upload.wikimedia.org/%[1]s.png","width":1024,"height":768},
 "content_urls":{"desktop":{"page":"https://en.wikipedia.org/wiki/%[1]s"}}
}`

// fakeWikipedia serves top pageviews and summaries for any project
func fakeWikipedia(t *testing.T) *httptest.Server {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/metrics/pageviews/top/"):
			_, _ = w.Write([]byte(topResponse))
		case strings.Contains(r.URL.Path, "/page/summary/"):
			name := path.Base(r.URL.Path)
			_, _ = fmt.Fprintf(w, summaryTemplate, name, strings.ReplaceAll(name, "_", " "))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func writeConfig(t *testing.T, dir, wikiURL string) string {
	t.Helper()
	content := fmt.Sprintf(`
database:
  dsn: "file:%s"
crawler:
  projects: [en]
  wikipedia_url: "%s/%%s"
  wikimedia_url: "%s"
  rate_limit: 1000
  burst: 10
`, filepath.Join(dir, "test.db"), wikiURL, wikiURL)
	configPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

// syncBuffer is a bytes.Buffer safe for concurrent use
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRun_MissingConfig(t *testing.T) {
	err := run(context.Background(), Opts{Config: "non-existent-config.yml"}, "setup", nil, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0o600))

	err := run(context.Background(), Opts{Config: configPath}, "setup", nil, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_UnknownCommand(t *testing.T) {
	err := run(context.Background(), Opts{}, "blah", nil, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "blah"`)
}

func TestRun_Setup(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "setup.db")
	require.NoError(t, run(context.Background(), Opts{DSN: "file:" + dbFile}, "setup", nil, io.Discard))
	_, err := os.Stat(dbFile)
	require.NoError(t, err)
}

func TestRun_Top(t *testing.T) {
	ts := fakeWikipedia(t)
	opts := Opts{Config: writeConfig(t, t.TempDir(), ts.URL)}

	t.Run("top articles", func(t *testing.T) {
		opts.Top.Project = "en"
		opts.Top.Num = 1
		var out bytes.Buffer
		require.NoError(t, run(context.Background(), opts, "top", nil, &out))
		assert.Contains(t, out.String(), "en.wikipedia.org, 2024-03-14")
		assert.Contains(t, out.String(), "1. Go (programming language) (90000)")
		assert.Contains(t, out.String(), "Go (programming language) is a programming language.")
		assert.NotContains(t, out.String(), "Rust", "limited to one")
		assert.NotContains(t, out.String(), "Main_Page")
	})

	t.Run("article fetch failure", func(t *testing.T) {
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.Contains(r.URL.Path, "/metrics/pageviews/top/") {
				_, _ = w.Write([]byte(topResponse))
				return
			}
			http.Error(w, "oops", http.StatusInternalServerError)
		}))
		defer broken.Close()

		o := Opts{Config: writeConfig(t, t.TempDir(), broken.URL)}
		o.Top.Project = "en"
		o.Top.Num = 2
		err := run(context.Background(), o, "top", nil, io.Discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get article Go_(programming_language)")
	})

	t.Run("unknown project", func(t *testing.T) {
		opts.Top.Project = "xx"
		err := run(context.Background(), opts, "top", nil, io.Discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch top articles of xx")
	})
}

func TestRun_CrawlServeBrowse(t *testing.T) {
	ts := fakeWikipedia(t)
	opts := Opts{Config: writeConfig(t, t.TempDir(), ts.URL)}
	ctx := context.Background()

	require.NoError(t, run(ctx, opts, "setup", nil, io.Discard))
	require.NoError(t, run(ctx, opts, "crawl", nil, io.Discard))

	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	opts.Server.Listen = addr
	opts.Server.NoCrawl = true
	srvCtx, cancel := context.WithCancel(ctx)
	srvErr := make(chan error, 1)
	go func() { srvErr <- run(srvCtx, opts, "server", nil, io.Discard) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/ping")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	t.Run("rss", func(t *testing.T) {
		resp, err := http.Get("http://" + addr + "/rss/en")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "<title>Go (programming language)</title>")
		assert.Contains(t, string(body), "<title>Rust (programming language)</title>")
	})

	t.Run("browse", func(t *testing.T) {
		in, inWriter := io.Pipe()
		out := &syncBuffer{}
		opts.Browse.Endpoint = "http://" + addr + "/graphql"
		opts.Browse.Height = 40

		done := make(chan error, 1)
		go func() { done <- run(ctx, opts, "browse", in, out) }()

		require.Eventually(t, func() bool {
			return strings.Contains(out.String(), "Rust (programming language)")
		}, 5*time.Second, 20*time.Millisecond)
		assert.Contains(t, out.String(), "Go (programming language)")
		assert.Contains(t, out.String(), "https://en.wikipedia.org/wiki/Go_(programming_language)")

		_, err := inWriter.Write([]byte("q\n"))
		require.NoError(t, err)
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("browse didn't quit")
		}
		_ = inWriter.Close()
	})

	cancel()
	select {
	case err := <-srvErr:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	var opts Opts
	opts.DSN = "file:override.db"
	opts.Server.Listen = ":9999"
	opts.Browse.Endpoint = "http://example.com/graphql"
	opts.Browse.Project = "ja"
	opts.Browse.PageSize = 25
	opts.Server.TLS = true

	cfg, err := loadConfig(opts)
	require.NoError(t, err)
	assert.Equal(t, "file:override.db", cfg.Database.DSN)
	assert.Equal(t, ":9999", cfg.Server.Listen)
	assert.Equal(t, "http://example.com/graphql", cfg.Client.Endpoint)
	assert.Equal(t, "ja", cfg.Client.DefaultProject)
	assert.Equal(t, 25, cfg.Client.PageSize)
	assert.True(t, cfg.Server.TLS)

	opts.Server.Insecure = true
	cfg, err = loadConfig(opts)
	require.NoError(t, err)
	assert.False(t, cfg.Server.TLS, "insecure wins over tls")
}

func TestSetupLog(t *testing.T) {
	setupLog(true, false)
	setupLog(false, true, "secret")
	setupLog(false, false)
}
