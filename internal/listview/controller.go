package listview

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/simp-lee/svcadmin/internal/domain"
)

const subscriberBuffer = 16

// Controller owns one list screen's collection and query intent.
//
// All methods are safe for concurrent use. No lock is held while the data
// source or a remote mutation runs. Only the response to the most recently
// issued fetch is applied.
type Controller[T any, K cmp.Ordered] struct {
	rules     Rules[T, K]
	source    DataSource[T]
	debounce  time.Duration
	afterFunc func(time.Duration, func()) Timer
	log       *slog.Logger

	baseCtx context.Context
	cancel  context.CancelFunc

	mu         sync.Mutex
	query      Query
	items      []T
	totalCount int
	totalPages int
	gen        uint64
	seq        uint64
	fetching   bool
	pending    map[K]*PendingAction[T, K]
	err        error
	timer      Timer
	timerGen   uint64
	subs       []chan Event
	closed     bool
}

// New creates a Controller. The collection starts empty; call Refresh to load it.
func New[T any, K cmp.Ordered](cfg Config[T, K]) (*Controller[T, K], error) {
	if cfg.Source == nil {
		return nil, errors.New("listview: data source is nil")
	}
	if cfg.ID == nil {
		return nil, errors.New("listview: identity accessor is nil")
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pageSize = min(pageSize, MaxPageSize)

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	afterFunc := cfg.AfterFunc
	if afterFunc == nil {
		afterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller[T, K]{
		rules:     cfg.Rules,
		source:    cfg.Source,
		debounce:  debounce,
		afterFunc: afterFunc,
		log:       log,
		baseCtx:   ctx,
		cancel:    cancel,
		query: Query{
			Filters:  map[string]string{},
			Page:     1,
			PageSize: pageSize,
			Sort:     cfg.DefaultSort,
		},
		items:      []T{},
		totalPages: 1,
		pending:    map[K]*PendingAction[T, K]{},
	}, nil
}

// SetSearchText updates the search text, resets to the first page and
// schedules a debounced refetch. Each call cancels the previously scheduled one.
func (c *Controller[T, K]) SetSearchText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.query.Search = text
	c.query.Page = 1
	c.stopTimerLocked()

	gen := c.timerGen
	c.timer = c.afterFunc(c.debounce, func() {
		c.mu.Lock()
		if c.closed || gen != c.timerGen {
			c.mu.Unlock()
			return
		}
		c.timer = nil
		c.mu.Unlock()

		if err := c.fetch(c.baseCtx); err != nil && !errors.Is(err, ErrClosed) {
			c.log.Debug("debounced fetch failed", slog.Any("error", err))
		}
	})
	c.notifyLocked(EventQueryChanged)
}

// SetFilter sets one filter value, or clears it when value is empty, resets
// to the first page and refetches immediately.
func (c *Controller[T, K]) SetFilter(ctx context.Context, name, value string) error {
	if err := c.updateQuery(func(q *Query) {
		if value == "" {
			delete(q.Filters, name)
		} else {
			q.Filters[name] = value
		}
	}); err != nil {
		return err
	}
	return c.fetch(ctx)
}

// SetSort changes the sort key and resets to the first page. Server-paged
// lists refetch; client-paged lists only re-derive.
func (c *Controller[T, K]) SetSort(ctx context.Context, key string) error {
	if err := c.updateQuery(func(q *Query) { q.Sort = key }); err != nil {
		return err
	}
	if c.rules.Paging == PagingClient {
		return nil
	}
	return c.fetch(ctx)
}

// SetPageSize changes the page size, capped at MaxPageSize, and resets to
// the first page.
func (c *Controller[T, K]) SetPageSize(ctx context.Context, size int) error {
	if size <= 0 {
		return domain.NewValidationError("invalid page size", map[string]string{"page_size": "must be greater than 0"})
	}
	if err := c.updateQuery(func(q *Query) { q.PageSize = min(size, MaxPageSize) }); err != nil {
		return err
	}
	if c.rules.Paging == PagingClient {
		return nil
	}
	return c.fetch(ctx)
}

// SetPage moves to page n, clamped to [1, TotalPages]. It never fails for
// an out-of-range page.
func (c *Controller[T, K]) SetPage(ctx context.Context, n int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	n = ClampPage(n, c.totalPagesLocked())
	if n == c.query.Page {
		c.mu.Unlock()
		return nil
	}
	c.query.Page = n
	c.notifyLocked(EventQueryChanged)
	c.mu.Unlock()

	if c.rules.Paging == PagingClient {
		return nil
	}
	return c.fetch(ctx)
}

// Apply changes several parts of the intent at once, resets to the first
// page and fetches once in either paging mode. A pending debounced search
// is folded into that fetch. PageSize is capped at MaxPageSize and a
// non-positive size keeps the current one.
func (c *Controller[T, K]) Apply(ctx context.Context, fn func(q *Query)) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	size := c.query.PageSize
	fn(&c.query)
	if c.query.Filters == nil {
		c.query.Filters = map[string]string{}
	}
	if c.query.PageSize <= 0 {
		c.query.PageSize = size
	}
	c.query.PageSize = min(c.query.PageSize, MaxPageSize)
	c.query.Page = 1
	c.stopTimerLocked()
	c.notifyLocked(EventQueryChanged)
	c.mu.Unlock()

	return c.fetch(ctx)
}

// Refresh re-issues the fetch for the current query.
func (c *Controller[T, K]) Refresh(ctx context.Context) error {
	return c.fetch(ctx)
}

func (c *Controller[T, K]) updateQuery(fn func(q *Query)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	fn(&c.query)
	c.query.Page = 1
	c.notifyLocked(EventQueryChanged)
	return nil
}

// fetch loads the current query. A response that arrives after a newer fetch
// was issued is dropped and nil is returned. On failure the previous
// collection is kept.
func (c *Controller[T, K]) fetch(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	// An explicit fetch already carries the latest search text.
	c.stopTimerLocked()
	c.seq++
	seq := c.seq
	c.fetching = true
	params := c.paramsLocked()
	c.notifyLocked(EventFetchStarted)
	c.mu.Unlock()

	res, err := c.source.List(ctx, params)

	c.mu.Lock()
	if seq != c.seq || c.closed {
		c.mu.Unlock()
		c.log.Debug("discarding superseded list response", slog.Uint64("seq", seq))
		return nil
	}
	c.fetching = false

	if err != nil {
		c.err = domain.NewAppError(domain.CodeFetchFailed, "failed to load list", err)
		c.notifyLocked(EventFetchFailed)
		fetchErr := c.err
		c.mu.Unlock()
		c.log.Warn("list fetch failed", slog.Int("page", params.Page), slog.Any("error", err))
		return fetchErr
	}

	refetch := c.applyLocked(res)
	c.err = nil
	c.notifyLocked(EventFetched)
	c.mu.Unlock()

	if refetch {
		return c.fetch(ctx)
	}
	return nil
}

// applyLocked replaces the collection with res. It reports whether the
// current page fell past the last page and must be fetched again.
func (c *Controller[T, K]) applyLocked(res FetchResult[T]) bool {
	c.items = slices.Clone(res.Items)
	if c.items == nil {
		c.items = []T{}
	}
	c.gen++

	if c.rules.Paging == PagingClient {
		c.totalCount = len(c.items)
		c.totalPages = PageCount(c.totalCount, c.query.PageSize)
		return false
	}

	c.totalCount = max(res.TotalCount, 0)
	c.totalPages = PageCount(c.totalCount, c.query.PageSize)
	if c.query.Page > c.totalPages {
		c.query.Page = c.totalPages
		return len(c.items) == 0 && c.totalCount > 0
	}
	return false
}

func (c *Controller[T, K]) paramsLocked() ListParams {
	p := ListParams{
		Search:  c.query.Search,
		Sort:    c.query.Sort,
		Filters: maps.Clone(c.query.Filters),
	}
	if c.rules.Paging == PagingServer {
		p.Page = c.query.Page - 1
		p.Size = c.query.PageSize
	}
	return p
}

// totalPagesLocked is the page count of the current view.
func (c *Controller[T, K]) totalPagesLocked() int {
	if c.rules.Paging == PagingServer {
		return c.totalPages
	}
	_, total := Derive(c.items, c.query, c.rules)
	return PageCount(total, c.query.PageSize)
}

// DerivedView returns the currently visible page.
func (c *Controller[T, K]) DerivedView() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	view, _ := Derive(c.items, c.query, c.rules)
	return view
}

// Snapshot returns the visible items together with the query, totals and status.
func (c *Controller[T, K]) Snapshot() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, matched := Derive(c.items, c.query, c.rules)
	v := View[T]{
		Items:      items,
		Query:      c.query.clone(),
		TotalCount: c.totalCount,
		TotalPages: c.totalPages,
		Status:     c.statusLocked(),
		Err:        c.err,
	}
	if c.rules.Paging == PagingClient {
		v.TotalCount = matched
		v.TotalPages = PageCount(matched, c.query.PageSize)
		v.Query.Page = ClampPage(c.query.Page, v.TotalPages)
	}
	return v
}

// Query returns a copy of the current intent.
func (c *Controller[T, K]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.clone()
}

// Get returns the held entity with the given id.
func (c *Controller[T, K]) Get(id K) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexLocked(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Status reports the current loading/error state.
func (c *Controller[T, K]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *Controller[T, K]) statusLocked() Status {
	switch {
	case c.fetching:
		return StatusFetching
	case len(c.pending) > 0:
		return StatusMutating
	case c.err != nil:
		return StatusError
	default:
		return StatusIdle
	}
}

// Err returns the last surfaced error, or nil once dismissed.
func (c *Controller[T, K]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// DismissError clears the surfaced error. The collection is not touched.
func (c *Controller[T, K]) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		return
	}
	c.err = nil
	c.notifyLocked(EventErrorDismissed)
}

// Subscribe returns a channel of change events. Events are dropped when the
// subscriber falls behind. The channel is closed by Close.
func (c *Controller[T, K]) Subscribe() <-chan Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan Event, subscriberBuffer)
	if c.closed {
		close(ch)
		return ch
	}
	c.subs = append(c.subs, ch)
	return ch
}

// Close stops the debounce timer, cancels background fetches and closes
// subscriber channels. It is safe to call more than once.
func (c *Controller[T, K]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopTimerLocked()
	c.cancel()
	for _, ch := range c.subs {
		close(ch)
	}
	c.subs = nil
}

func (c *Controller[T, K]) stopTimerLocked() {
	c.timerGen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller[T, K]) notifyLocked(kind EventKind) {
	ev := Event{Kind: kind, Status: c.statusLocked()}
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (c *Controller[T, K]) indexLocked(id K) int {
	return slices.IndexFunc(c.items, func(item T) bool { return c.rules.ID(item) == id })
}
