// Package browser implements the paginated, searchable list controller behind the
// Pokémon browser.
//
// A Controller owns a ViewState and drives it through page fetches issued to an
// injected Fetcher:
//
//	Initial -> Loading -> Success{items, query, isLoadingMore, hasMore}
//	                   \-> Error{message}
//
// Search input is debounced, a newer search or refresh cancels and supersedes the
// load in flight, and responses from a superseded load are discarded with ErrStale.
// Items are appended page by page with duplicate IDs dropped. Views observe the
// state through State or Subscribe and never mutate it.
package browser
