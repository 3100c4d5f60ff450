// Package catalog serves list pages, name searches and detail records on top of the
// PokeAPI client and the response cache. It is the fetch capability the list
// controller is wired to.
package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/rshade/pokedex/internal/engine/cache"
	"github.com/rshade/pokedex/internal/logging"
	"github.com/rshade/pokedex/internal/pokeapi"
	"github.com/rshade/pokedex/internal/pokemon"
)

const (
	// IndexLimit is large enough to pull every species in one list call.
	IndexLimit = 100000

	// DefaultIndexTTL bounds how long the in-memory name index is reused.
	DefaultIndexTTL = time.Hour

	opList       = "list"
	opIndex      = "index"
	opIndexFresh = "index-fresh"
	opDetail     = "detail"
)

// API is the subset of the PokeAPI client the catalog calls.
type API interface {
	ListPokemon(ctx context.Context, limit, offset int) (*pokeapi.ListResponse, error)
	GetPokemon(ctx context.Context, nameOrID string) (*pokeapi.DetailResponse, error)
}

// Catalog answers page, search and detail requests.
type Catalog struct {
	api      API
	store    *cache.FileStore
	logger   zerolog.Logger
	indexTTL time.Duration
	now      func() time.Time

	group singleflight.Group

	mu      sync.Mutex
	index   []pokemon.Pokemon
	indexAt time.Time
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithStore enables the on-disk response cache.
func WithStore(s *cache.FileStore) Option {
	return func(c *Catalog) { c.store = s }
}

// WithLogger sets the catalog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Catalog) { c.logger = logging.ComponentLogger(l, "catalog") }
}

// WithIndexTTL overrides DefaultIndexTTL.
func WithIndexTTL(d time.Duration) Option {
	return func(c *Catalog) { c.indexTTL = d }
}

// New returns a catalog backed by api.
func New(api API, opts ...Option) *Catalog {
	c := &Catalog{
		api:      api,
		logger:   zerolog.Nop(),
		indexTTL: DefaultIndexTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPage returns limit entries starting at offset. An empty query lists the
// whole catalog; otherwise entries whose name contains the query, or whose ID
// equals it, are returned in ID order. A ctx marked with
// pokemon.ContextWithBypassCache skips cached pages and, for the first page of
// a search, reloads the name index.
func (c *Catalog) FetchPage(ctx context.Context, query string, offset, limit int) (pokemon.Page, error) {
	if err := (pokemon.PageRequest{Query: query, Offset: offset, Limit: limit}).Validate(); err != nil {
		return pokemon.Page{}, err
	}

	query = pokemon.NormalizeQuery(query)
	if query == "" {
		return c.listPage(ctx, offset, limit)
	}
	return c.searchPage(ctx, query, offset, limit)
}

// Detail returns the full record for a name or numeric ID.
func (c *Catalog) Detail(ctx context.Context, nameOrID string) (pokemon.Detail, error) {
	name := pokemon.NormalizeQuery(strings.TrimPrefix(strings.TrimSpace(nameOrID), "#"))
	if err := (pokemon.DetailRequest{Name: name}).Validate(); err != nil {
		return pokemon.Detail{}, err
	}
	if id, err := strconv.Atoi(name); err == nil {
		name = strconv.Itoa(id)
	}

	key := cache.GenerateKey(cache.KeyParams{Operation: opDetail, Name: name})
	var detail pokemon.Detail
	if c.cacheGet(key, &detail) {
		return detail, nil
	}

	resp, err := c.api.GetPokemon(ctx, name)
	if err != nil {
		return pokemon.Detail{}, err
	}
	detail, err = resp.ToDetail()
	if err != nil {
		return pokemon.Detail{}, err
	}
	c.cacheSet(key, opDetail, detail)
	return detail, nil
}

func (c *Catalog) listPage(ctx context.Context, offset, limit int) (pokemon.Page, error) {
	key := cache.GenerateKey(cache.KeyParams{Operation: opList, Offset: offset, Limit: limit})
	var page pokemon.Page
	if !pokemon.BypassCache(ctx) && c.cacheGet(key, &page) {
		return page, nil
	}

	resp, err := c.api.ListPokemon(ctx, limit, offset)
	if err != nil {
		return pokemon.Page{}, err
	}
	page, err = resp.ToPage(limit)
	if err != nil {
		return pokemon.Page{}, err
	}
	c.cacheSet(key, opList, page)
	return page, nil
}

func (c *Catalog) searchPage(ctx context.Context, query string, offset, limit int) (pokemon.Page, error) {
	// Later pages of a refreshed search reuse the index its first page reloaded.
	index, err := c.nameIndex(ctx, offset == 0 && pokemon.BypassCache(ctx))
	if err != nil {
		return pokemon.Page{}, err
	}

	matches := Filter(index, query)
	if offset >= len(matches) {
		return pokemon.Page{Items: []pokemon.Pokemon{}}, nil
	}
	end := min(offset+limit, len(matches))
	items := make([]pokemon.Pokemon, end-offset)
	copy(items, matches[offset:end])
	return pokemon.Page{Items: items, HasMore: end < len(matches)}, nil
}

// Filter returns the entries matching query: a name substring, or the exact ID
// with an optional leading '#'.
func Filter(index []pokemon.Pokemon, query string) []pokemon.Pokemon {
	id, idErr := strconv.Atoi(strings.TrimPrefix(query, "#"))
	out := make([]pokemon.Pokemon, 0)
	for _, p := range index {
		if strings.Contains(p.Name, query) || (idErr == nil && p.ID == id) {
			out = append(out, p)
		}
	}
	return out
}

// nameIndex returns every entry, loading it at most once per TTL no matter how
// many searches ask concurrently. fresh skips both the in-memory and on-disk
// copies and loads the index from the upstream.
func (c *Catalog) nameIndex(ctx context.Context, fresh bool) ([]pokemon.Pokemon, error) {
	if !fresh {
		if idx, ok := c.cachedIndex(); ok {
			return idx, nil
		}
	}

	// The load outlives any single caller so one canceled search does not fail
	// the others sharing it.
	loadCtx := context.WithoutCancel(ctx)
	key := opIndex
	if fresh {
		key = opIndexFresh
	}
	ch := c.group.DoChan(key, func() (any, error) {
		if !fresh {
			if idx, ok := c.cachedIndex(); ok {
				return idx, nil
			}
		}
		return c.loadIndex(loadCtx, fresh)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		idx, _ := res.Val.([]pokemon.Pokemon)
		return idx, nil
	}
}

func (c *Catalog) cachedIndex() ([]pokemon.Pokemon, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index != nil && c.now().Sub(c.indexAt) < c.indexTTL {
		return c.index, true
	}
	return nil, false
}

func (c *Catalog) loadIndex(ctx context.Context, fresh bool) ([]pokemon.Pokemon, error) {
	key := cache.GenerateKey(cache.KeyParams{Operation: opIndex, Limit: IndexLimit})

	var idx []pokemon.Pokemon
	if fresh || !c.cacheGet(key, &idx) {
		resp, err := c.api.ListPokemon(ctx, IndexLimit, 0)
		if err != nil {
			return nil, err
		}
		if idx, err = resp.Items(); err != nil {
			return nil, err
		}
		c.cacheSet(key, opIndex, idx)
	}

	c.logger.Debug().Ctx(ctx).Int("entries", len(idx)).Msg("name index loaded")

	c.mu.Lock()
	c.index = idx
	c.indexAt = c.now()
	c.mu.Unlock()
	return idx, nil
}

// cacheGet decodes key into v and reports a hit. Misses of any kind fall
// through to the network.
func (c *Catalog) cacheGet(key string, v any) bool {
	if c.store == nil || !c.store.IsEnabled() {
		return false
	}
	err := c.store.GetJSON(key, v)
	switch {
	case err == nil:
		c.logger.Debug().Str("key", key).Msg("cache hit")
		return true
	case errors.Is(err, cache.ErrNotFound), errors.Is(err, cache.ErrExpired):
		return false
	default:
		c.logger.Debug().Err(err).Str("key", key).Msg("cache read failed")
		return false
	}
}

func (c *Catalog) cacheSet(key, op string, v any) {
	if c.store == nil || !c.store.IsEnabled() {
		return
	}
	if err := c.store.SetJSON(key, op, v); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
