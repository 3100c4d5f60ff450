package browser

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/pokedex/internal/logging"
	"github.com/rshade/pokedex/internal/pokemon"
)

// DefaultPageSize is the number of entries requested per page.
const DefaultPageSize = 20

var (
	// ErrStale is returned to the caller of a load whose result was discarded
	// because a newer load superseded it.
	ErrStale = errors.New("browser: load superseded by a newer request")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("browser: controller closed")

	// ErrNotListed is returned by Select for an ID that is not in the list.
	ErrNotListed = errors.New("browser: item not in the current list")
)

// Fetcher returns one page of entries. An empty query means no filter.
type Fetcher interface {
	FetchPage(ctx context.Context, query string, offset, limit int) (pokemon.Page, error)
}

// Navigator opens the detail view for an entry.
type Navigator interface {
	ShowDetail(p pokemon.Pokemon)
}

// Option configures a Controller.
type Option func(*Controller)

// WithPageSize overrides DefaultPageSize.
func WithPageSize(n int) Option {
	return func(c *Controller) { c.pageSize = n }
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithLogger sets the controller logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = logging.ComponentLogger(l, "browser") }
}

// Controller is the list state machine. It is safe for concurrent use; fetches
// run without holding its lock.
type Controller struct {
	fetcher  Fetcher
	nav      Navigator
	pageSize int
	debounce time.Duration
	logger   zerolog.Logger

	rootCtx    context.Context
	rootCancel context.CancelFunc
	searches   *Debouncer[string]

	mu          sync.Mutex
	state       ViewState
	offset      int
	activeQuery string
	rawQuery    string
	gen         uint64
	fresh       bool
	cancelLoad  context.CancelFunc
	cancelMore  context.CancelFunc
	subs        map[int]chan ViewState
	nextSub     int
	closed      bool
}

// New returns a controller in StateInitial. fetcher and nav are required.
func New(fetcher Fetcher, nav Navigator, opts ...Option) (*Controller, error) {
	if fetcher == nil {
		return nil, errors.New("browser: fetcher is required")
	}
	if nav == nil {
		return nil, errors.New("browser: navigator is required")
	}

	c := &Controller{
		fetcher:  fetcher,
		nav:      nav,
		pageSize: DefaultPageSize,
		debounce: DefaultDebounce,
		logger:   zerolog.Nop(),
		state:    StateInitial{},
		subs:     make(map[int]chan ViewState),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.pageSize <= 0 {
		return nil, errors.New("browser: page size must be positive")
	}
	if c.debounce < 0 {
		return nil, errors.New("browser: debounce must not be negative")
	}

	c.rootCtx, c.rootCancel = context.WithCancel(context.Background())
	c.rootCtx = c.logger.WithContext(c.rootCtx)
	// RunSearch already ignores a query equal to the active one, so the
	// debouncer does not filter repeats itself.
	c.searches = NewDebouncer(c.debounce, false, c.emitSearch)
	return c, nil
}

// PageSize returns the configured page size.
func (c *Controller) PageSize() int { return c.pageSize }

// State returns a copy of the current state.
func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneState(c.state)
}

// RawQuery returns the search text as typed, before debounce and normalization.
func (c *Controller) RawQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rawQuery
}

// ActiveQuery returns the normalized query the list currently reflects.
func (c *Controller) ActiveQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeQuery
}

// Subscribe returns a channel that receives the current state and then every
// change. Slow readers only see the newest state. The returned func unsubscribes
// and closes the channel.
func (c *Controller) Subscribe() (<-chan ViewState, func()) {
	ch := make(chan ViewState, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- cloneState(c.state)

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

// LoadInitial loads the first page for the active query.
func (c *Controller) LoadInitial(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	run := c.beginLoadLocked(ctx, false)
	c.mu.Unlock()
	return c.finishLoad(run)
}

// Refresh reloads the first page for the active query from the upstream,
// skipping cached responses. Pages loaded after it skip the cache too.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	run := c.beginLoadLocked(ctx, true)
	c.mu.Unlock()
	return c.finishLoad(run)
}

// SetSearchQuery records raw input and schedules a debounced search.
// It never fetches synchronously.
func (c *Controller) SetSearchQuery(raw string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.rawQuery = raw
	c.mu.Unlock()
	c.searches.Trigger(raw)
}

// FlushSearch runs a pending debounced search immediately.
func (c *Controller) FlushSearch() bool {
	return c.searches.Flush()
}

// RunSearch switches the list to query. A query equal to the active one after
// trimming and lower-casing is a no-op.
func (c *Controller) RunSearch(ctx context.Context, query string) error {
	q := pokemon.NormalizeQuery(query)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if q == c.activeQuery {
		c.mu.Unlock()
		return nil
	}
	c.activeQuery = q
	run := c.beginLoadLocked(ctx, false)
	c.mu.Unlock()
	return c.finishLoad(run)
}

// LoadMore appends the next page. It is a no-op unless the list is loaded for
// the active query, has more entries and no other load-more is in flight.
// A failed load-more keeps the loaded items and returns the error.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	cur, ok := c.state.(StateSuccess)
	if !ok || !cur.HasMore || cur.IsLoadingMore || cur.Query != c.activeQuery {
		c.mu.Unlock()
		return nil
	}

	gen, offset, query := c.gen, c.offset, c.activeQuery
	if c.fresh {
		ctx = pokemon.ContextWithBypassCache(ctx)
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancelMore = cancel
	cur.IsLoadingMore = true
	c.setStateLocked(cur)
	c.mu.Unlock()

	log := c.logger.With().Str("query", query).Int("offset", offset).Logger()
	log.Debug().Ctx(ctx).Msg("loading more")

	page, err := c.fetcher.FetchPage(fetchCtx, query, offset, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	cancel()
	if c.closed {
		return ErrClosed
	}
	if gen != c.gen {
		log.Debug().Ctx(ctx).Msg("discarding superseded page")
		return ErrStale
	}
	c.cancelMore = nil

	cur, ok = c.state.(StateSuccess)
	if !ok {
		return ErrStale
	}
	cur.IsLoadingMore = false
	if err != nil {
		c.setStateLocked(cur)
		log.Warn().Ctx(ctx).Err(err).Msg("load more failed")
		return err
	}

	cur.Items = appendUnique(cur.Items, page.Items)
	cur.HasMore = page.HasMore
	c.offset += c.pageSize
	c.setStateLocked(cur)
	log.Debug().Ctx(ctx).Int("items", len(cur.Items)).Bool("has_more", cur.HasMore).Msg("page appended")
	return nil
}

// Select opens the detail view for the listed entry with id.
func (c *Controller) Select(id int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	var (
		found pokemon.Pokemon
		ok    bool
	)
	if cur, isSuccess := c.state.(StateSuccess); isSuccess {
		for _, p := range cur.Items {
			if p.ID == id {
				found, ok = p, true
				break
			}
		}
	}
	c.mu.Unlock()

	if !ok {
		return ErrNotListed
	}
	c.nav.ShowDetail(found)
	return nil
}

// Close stops the debouncer, cancels in-flight fetches and closes subscriber
// channels. It is safe to call more than once.
func (c *Controller) Close() {
	c.searches.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.cancelLoad != nil {
		c.cancelLoad()
		c.cancelLoad = nil
	}
	if c.cancelMore != nil {
		c.cancelMore()
		c.cancelMore = nil
	}
	c.rootCancel()
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

type loadRun struct {
	ctx    context.Context //nolint:containedctx // carried from begin to finish of one load
	cancel context.CancelFunc
	gen    uint64
	query  string
}

// beginLoadLocked supersedes every load in flight and enters StateLoading.
// fresh makes this generation's fetches bypass the response cache.
func (c *Controller) beginLoadLocked(ctx context.Context, fresh bool) loadRun {
	if c.cancelLoad != nil {
		c.cancelLoad()
	}
	if c.cancelMore != nil {
		c.cancelMore()
		c.cancelMore = nil
	}
	c.gen++
	c.fresh = fresh
	if fresh {
		ctx = pokemon.ContextWithBypassCache(ctx)
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancelLoad = cancel
	c.offset = 0
	c.setStateLocked(StateLoading{})
	return loadRun{ctx: fetchCtx, cancel: cancel, gen: c.gen, query: c.activeQuery}
}

func (c *Controller) finishLoad(run loadRun) error {
	log := c.logger.With().Str("query", run.query).Uint64("generation", run.gen).Logger()
	log.Debug().Ctx(run.ctx).Msg("loading first page")

	page, err := c.fetcher.FetchPage(run.ctx, run.query, 0, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	run.cancel()
	if c.closed {
		return ErrClosed
	}
	if run.gen != c.gen {
		log.Debug().Msg("discarding superseded page")
		return ErrStale
	}
	c.cancelLoad = nil

	if err != nil {
		c.setStateLocked(StateError{Message: pokemon.UserMessage(err)})
		log.Warn().Err(err).Msg("load failed")
		return err
	}

	items := appendUnique(make([]pokemon.Pokemon, 0, len(page.Items)), page.Items)
	c.offset = c.pageSize
	c.setStateLocked(StateSuccess{Items: items, Query: run.query, HasMore: page.HasMore})
	log.Debug().Int("items", len(items)).Bool("has_more", page.HasMore).Msg("first page loaded")
	return nil
}

// setStateLocked stores s and hands a copy to every subscriber, replacing any
// state a subscriber has not read yet.
func (c *Controller) setStateLocked(s ViewState) {
	c.state = s
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- cloneState(s)
	}
}

func (c *Controller) emitSearch(query string) {
	err := c.RunSearch(c.rootCtx, query)
	if err == nil || errors.Is(err, ErrStale) || errors.Is(err, ErrClosed) {
		return
	}
	c.logger.Debug().Err(err).Str("query", query).Msg("debounced search failed")
}
