package browser

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rshade/pokedex/internal/pokemon"
)

type fetchCall struct {
	Query  string
	Offset int
	Limit  int
}

// fakeFetcher records calls and answers them through respond.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []fetchCall
	respond func(ctx context.Context, call fetchCall) (pokemon.Page, error)
}

func (f *fakeFetcher) FetchPage(ctx context.Context, query string, offset, limit int) (pokemon.Page, error) {
	call := fetchCall{Query: query, Offset: offset, Limit: limit}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	respond := f.respond
	f.mu.Unlock()
	if respond == nil {
		return pokemon.Page{}, nil
	}
	return respond(ctx, call)
}

func (f *fakeFetcher) Calls() []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fetchCall(nil), f.calls...)
}

func (f *fakeFetcher) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeNavigator struct {
	mu    sync.Mutex
	shown []pokemon.Pokemon
}

func (n *fakeNavigator) ShowDetail(p pokemon.Pokemon) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shown = append(n.shown, p)
}

// entries returns n entries with consecutive IDs starting at first.
func entries(first, n int) []pokemon.Pokemon {
	out := make([]pokemon.Pokemon, 0, n)
	for id := first; id < first+n; id++ {
		out = append(out, pokemon.Pokemon{
			ID:   id,
			Name: fmt.Sprintf("mon-%d", id),
			URL:  fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", id),
		})
	}
	return out
}

// catalogOf serves a fixed list of total entries, paged by offset and limit.
func catalogOf(total int) func(context.Context, fetchCall) (pokemon.Page, error) {
	all := entries(1, total)
	return func(_ context.Context, c fetchCall) (pokemon.Page, error) {
		end := min(c.Offset+c.Limit, len(all))
		start := min(c.Offset, end)
		return pokemon.Page{Items: append([]pokemon.Pokemon(nil), all[start:end]...), HasMore: end < len(all)}, nil
	}
}

func newTestController(t *testing.T, f *fakeFetcher, opts ...Option) (*Controller, *fakeNavigator) {
	t.Helper()
	nav := &fakeNavigator{}
	c, err := New(f, nav, append([]Option{WithDebounce(20 * time.Millisecond)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, nav
}

func successState(t *testing.T, s ViewState) StateSuccess {
	t.Helper()
	st, ok := s.(StateSuccess)
	require.Truef(t, ok, "state is %s, want success", s.Kind())
	return st
}

func ids(items []pokemon.Pokemon) []int {
	out := make([]int, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}
