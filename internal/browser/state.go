package browser

import (
	"slices"

	"github.com/rshade/pokedex/internal/pokemon"
)

// Kind names a ViewState variant.
type Kind int

const (
	KindInitial Kind = iota
	KindLoading
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindInitial:
		return "initial"
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// ViewState is what a view renders. The variants are StateInitial, StateLoading,
// StateSuccess and StateError; no other package can add one.
type ViewState interface {
	Kind() Kind
	viewState()
}

// StateInitial is the state before the first load.
type StateInitial struct{}

// StateLoading covers an initial load, a refresh and a new search.
type StateLoading struct{}

// StateSuccess holds the accumulated list for Query.
type StateSuccess struct {
	Items         []pokemon.Pokemon
	Query         string
	IsLoadingMore bool
	HasMore       bool
}

// StateError carries a user-facing message. Refresh retries.
type StateError struct {
	Message string
}

func (StateInitial) Kind() Kind { return KindInitial }
func (StateLoading) Kind() Kind { return KindLoading }
func (StateSuccess) Kind() Kind { return KindSuccess }
func (StateError) Kind() Kind   { return KindError }

func (StateInitial) viewState() {}
func (StateLoading) viewState() {}
func (StateSuccess) viewState() {}
func (StateError) viewState()   {}

// cloneState copies s so the caller cannot reach the controller's item slice.
func cloneState(s ViewState) ViewState {
	if st, ok := s.(StateSuccess); ok {
		st.Items = slices.Clone(st.Items)
		if st.Items == nil {
			st.Items = []pokemon.Pokemon{}
		}
		return st
	}
	return s
}

// appendUnique appends the entries of page whose IDs are not yet in items,
// keeping the first occurrence of each ID.
func appendUnique(items, page []pokemon.Pokemon) []pokemon.Pokemon {
	seen := make(map[int]struct{}, len(items)+len(page))
	for _, p := range items {
		seen[p.ID] = struct{}{}
	}
	for _, p := range page {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		items = append(items, p)
	}
	return items
}
