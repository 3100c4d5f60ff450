package cli

import (
	"context"
	"fmt"

	"github.com/rshade/pokedex/internal/catalog"
	"github.com/rshade/pokedex/internal/config"
	"github.com/rshade/pokedex/internal/engine/cache"
	"github.com/rshade/pokedex/internal/logging"
	"github.com/rshade/pokedex/internal/pokeapi"
)

// newStore opens the response cache described by cfg. A disabled cache is
// returned as a store that reports cache.ErrDisabled.
func newStore(cfg *config.Config) (*cache.FileStore, error) {
	store, err := cache.NewFileStore(
		cfg.Cache.Directory,
		cfg.Cache.Enabled,
		cfg.Cache.TTLSeconds,
		cfg.Cache.MaxSizeMB,
	)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return store, nil
}

// newCatalog builds the PokeAPI client, the cache and the catalog on top of them.
func newCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	client := pokeapi.NewClient(
		pokeapi.WithBaseURL(cfg.API.BaseURL),
		pokeapi.WithTimeout(cfg.API.Timeout),
		pokeapi.WithUserAgent(cfg.API.UserAgent),
	)

	opts := []catalog.Option{catalog.WithLogger(*logging.FromContext(ctx))}
	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	if store.IsEnabled() {
		opts = append(opts, catalog.WithStore(store), catalog.WithIndexTTL(store.TTL()))
	}
	return catalog.New(client, opts...), nil
}
