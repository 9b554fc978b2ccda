package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/wikifeedia/pkg/domain"
)

// Status of a feed session
type Status int

// session states
const (
	StatusIdle Status = iota
	StatusLoadingFirst
	StatusReady
	StatusLoadingMore
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoadingFirst:
		return "loading-first"
	case StatusReady:
		return "ready"
	case StatusLoadingMore:
		return "loading-more"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

var (
	// ErrUnknownProject is returned for a project outside of domain.Projects
	ErrUnknownProject = errors.New("unknown project")
	// ErrClosed is returned once the controller was torn down
	ErrClosed = errors.New("feed controller closed")
)

// State is a point-in-time view of the controller
type State struct {
	Session  uint64
	Project  string
	Status   Status
	Articles []domain.Article
	AsOf     string
	Err      error
	Stale    bool // articles include a cached page not yet confirmed by the network
	Done     bool // the last page was shorter than the page size

	version uint64
}

// Loading reports whether a fetch is in flight for the session
func (s State) Loading() bool {
	return s.Status == StatusLoadingFirst || s.Status == StatusLoadingMore
}

// ControllerOpts defines dependencies and parameters of a Controller.
// OnChange receives states one at a time, in the order they were produced. It may call
// back into the controller; states caused by such calls are delivered after it returns.
type ControllerOpts struct {
	Querier  Querier
	Builder  ParamsBuilder
	Cache    *Cache        // optional, enables cache-and-network fetches
	Timeout  time.Duration // optional per-request timeout
	OnChange func(State)   // optional, called with every new state
}

// Controller owns the request lifecycle of the feed. Each StartSession begins a new
// session with its own id; responses tagged with an older id are dropped.
// At most one request is in flight at any time.
type Controller struct {
	querier  Querier
	builder  ParamsBuilder
	cache    *Cache
	timeout  time.Duration
	onChange func(State)

	mu       sync.Mutex
	session  uint64
	project  string
	status   Status
	articles []domain.Article
	asOf     string
	err      error
	stale    bool
	done     bool
	inFlight bool
	cancel   context.CancelFunc
	closed   bool
	unmounts []func()
	version  uint64

	notifyMu   sync.Mutex
	notified   uint64
	pending    []State
	delivering bool

	wg sync.WaitGroup
}

// NewController makes a controller in idle state
func NewController(opts ControllerOpts) *Controller {
	if opts.Builder.PageSize <= 0 {
		opts.Builder.PageSize = DefaultPageSize
	}
	return &Controller{
		querier:  opts.Querier,
		builder:  opts.Builder,
		cache:    opts.Cache,
		timeout:  opts.Timeout,
		onChange: opts.OnChange,
		status:   StatusIdle,
	}
}

// StartSession drops everything accumulated so far and requests the first page of project.
// Any in-flight request is canceled and its response ignored.
func (c *Controller) StartSession(project string) error {
	if !domain.IsProject(project) {
		return fmt.Errorf("%w: %q", ErrUnknownProject, project)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.session++
	c.project = project
	c.articles = nil
	c.asOf = ""
	c.err = nil
	c.stale = false
	c.done = false
	c.status = StatusLoadingFirst

	params := c.builder.Build(project, 0, "")
	c.applyCachedLocked(params)
	c.dispatchLocked(params)
	state := c.stateLocked()
	c.mu.Unlock()

	lgr.Printf("[DEBUG] feed session %d started for %s", state.Session, project)
	c.notify(state)
	return nil
}

// LoadMore requests the next page of the current session. It does nothing if a request is
// in flight, the session is not ready or the end of data was reached. Returns true if a
// request was issued.
func (c *Controller) LoadMore() bool {
	c.mu.Lock()
	if c.closed || c.inFlight || c.status != StatusReady || c.done {
		c.mu.Unlock()
		return false
	}

	params := c.builder.Build(c.project, len(c.articles), c.asOf)
	c.status = StatusLoadingMore
	c.applyCachedLocked(params)
	c.dispatchLocked(params)
	state := c.stateLocked()
	c.mu.Unlock()

	lgr.Printf("[DEBUG] feed session %d loading more, offset %d", state.Session, params.Offset)
	c.notify(state)
	return true
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Mount installs a scroll listener calling LoadMore whenever the viewport reaches the
// bottom of the content. The returned function removes the listener; Teardown removes
// it as well.
func (c *Controller) Mount(events *ScrollEvents) (unmount func()) {
	remove := events.Listen(func(v Viewport) {
		if v.AtBottom() {
			c.LoadMore()
		}
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		remove()
		return func() {}
	}
	c.unmounts = append(c.unmounts, remove)
	return remove
}

// Teardown cancels in-flight requests, removes scroll listeners and waits for
// request goroutines to finish. The controller can't be used afterwards.
func (c *Controller) Teardown() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.inFlight = false
	unmounts := c.unmounts
	c.unmounts = nil
	c.mu.Unlock()

	for _, unmount := range unmounts {
		unmount()
	}
	c.wg.Wait()
}

// Wait blocks until all issued requests completed
func (c *Controller) Wait() {
	c.wg.Wait()
}

// applyCachedLocked renders a cached response for params right away, the network
// response replaces it once arrived
func (c *Controller) applyCachedLocked(params Params) {
	page, ok := c.cache.Get(params)
	if !ok {
		return
	}
	c.articles = splice(c.articles, params.Offset, page.Articles)
	if params.Offset == 0 {
		c.asOf = page.AsOf
	}
	c.stale = true
}

// dispatchLocked runs the query for params in background, tagged with the current session
func (c *Controller) dispatchLocked(params Params) {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.inFlight = true
	session := c.session

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()

		reqCtx := ctx
		if c.timeout > 0 {
			var timeoutCancel context.CancelFunc
			reqCtx, timeoutCancel = context.WithTimeout(ctx, c.timeout)
			defer timeoutCancel()
		}

		page, err := c.querier.Query(reqCtx, params)
		if err == nil && page == nil {
			err = fmt.Errorf("%w: empty page", ErrMalformedResponse)
		}
		c.onResponse(session, params, page, err)
	}()
}

// onResponse merges a page into the session it was requested for
func (c *Controller) onResponse(session uint64, params Params, page *Page, err error) {
	c.mu.Lock()
	if c.closed || session != c.session {
		c.mu.Unlock()
		lgr.Printf("[DEBUG] dropped response of superseded session %d for %s, offset %d",
			session, params.Project, params.Offset)
		return
	}

	c.cancel = nil
	c.inFlight = false
	c.stale = false

	if err != nil {
		// cached articles of the failed page were never confirmed
		if params.Offset < len(c.articles) {
			c.articles = c.articles[:params.Offset:params.Offset]
		}
		if params.Offset == 0 {
			c.asOf = ""
		}
		c.status = StatusError
		c.err = err
		state := c.stateLocked()
		c.mu.Unlock()
		lgr.Printf("[WARN] feed request for %s failed, offset %d: %v", params.Project, params.Offset, err)
		c.notify(state)
		return
	}

	c.articles = splice(c.articles, params.Offset, page.Articles)
	if params.Offset == 0 {
		c.asOf = page.AsOf // pinned for the rest of the session
	}
	c.done = len(page.Articles) < params.Limit
	c.status = StatusReady
	c.err = nil
	c.cache.Put(params, *page)
	state := c.stateLocked()
	c.mu.Unlock()

	lgr.Printf("[DEBUG] feed session %d got %d articles at offset %d, total %d",
		session, len(page.Articles), params.Offset, len(state.Articles))
	c.notify(state)
}

func (c *Controller) stateLocked() State {
	c.version++
	return State{
		Session:  c.session,
		Project:  c.project,
		Status:   c.status,
		Articles: append([]domain.Article(nil), c.articles...),
		AsOf:     c.asOf,
		Err:      c.err,
		Stale:    c.stale,
		Done:     c.done,
		version:  c.version,
	}
}

// notify delivers state to the change callback, skipping states older than the last
// delivered one. The callback runs without locks held; a notify issued while another
// delivery is running queues the state for that delivery loop.
func (c *Controller) notify(state State) {
	if c.onChange == nil {
		return
	}
	c.notifyMu.Lock()
	c.pending = append(c.pending, state)
	if c.delivering {
		c.notifyMu.Unlock()
		return
	}
	c.delivering = true
	for len(c.pending) > 0 {
		next := c.pending[0]
		c.pending = c.pending[1:]
		if next.version <= c.notified {
			continue
		}
		c.notified = next.version
		c.notifyMu.Unlock()
		c.onChange(next)
		c.notifyMu.Lock()
	}
	c.delivering = false
	c.pending = nil
	c.notifyMu.Unlock()
}

// splice replaces everything after offset with page, never touching the shared backing array
func splice(articles []domain.Article, offset int, page []domain.Article) []domain.Article {
	if offset > len(articles) {
		offset = len(articles)
	}
	res := make([]domain.Article, 0, offset+len(page))
	res = append(res, articles[:offset]...)
	return append(res, page...)
}
