package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/internal/engine/cache"
)

const bytesPerKB = 1024

// openCache opens the configured cache, failing with a hint when it is disabled.
func openCache(cmd *cobra.Command) (*cache.FileStore, error) {
	store, err := newStore(configFromContext(cmd.Context()))
	if err != nil {
		return nil, err
	}
	if !store.IsEnabled() {
		return nil, fmt.Errorf("%w (set cache.enabled or POKEDEX_CACHE_ENABLED)", cache.ErrDisabled)
	}
	return store, nil
}

// NewCacheStatsCmd creates the cache stats command.
func NewCacheStatsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show response cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutputFormat(output); err != nil {
				return err
			}
			store, err := openCache(cmd)
			if err != nil {
				return err
			}
			st, err := store.Stats()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch output {
			case outputJSON, outputNDJSON:
				return writeJSON(w, newCacheReport(st, store.TTL()))
			case outputYAML:
				return writeYAML(w, newCacheReport(st, store.TTL()))
			}

			tw := newTabWriter(w)
			fmt.Fprintf(tw, "Directory:\t%s\n", st.Directory)
			fmt.Fprintf(tw, "TTL:\t%s\n", cache.FormatDuration(store.TTL()))
			fmt.Fprintf(tw, "Entries:\t%d (%d expired)\n", st.Entries, st.Expired)
			fmt.Fprintf(tw, "Size:\t%s\n", formatBytes(st.Bytes))
			if st.Entries > 0 {
				fmt.Fprintf(tw, "Oldest:\t%s ago\n", cache.FormatDuration(time.Since(st.Oldest)))
				fmt.Fprintf(tw, "Newest:\t%s ago\n", cache.FormatDuration(time.Since(st.Newest)))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}

// cacheReport is the structured form of cache stats.
type cacheReport struct {
	Directory  string     `json:"directory"        yaml:"directory"`
	TTLSeconds int        `json:"ttl_seconds"      yaml:"ttl_seconds"`
	Entries    int        `json:"entries"          yaml:"entries"`
	Expired    int        `json:"expired"          yaml:"expired"`
	Bytes      int64      `json:"bytes"            yaml:"bytes"`
	Oldest     *time.Time `json:"oldest,omitempty" yaml:"oldest,omitempty"`
	Newest     *time.Time `json:"newest,omitempty" yaml:"newest,omitempty"`
}

func newCacheReport(st cache.Stats, ttl time.Duration) cacheReport {
	r := cacheReport{
		Directory:  st.Directory,
		TTLSeconds: int(ttl.Seconds()),
		Entries:    st.Entries,
		Expired:    st.Expired,
		Bytes:      st.Bytes,
	}
	if !st.Oldest.IsZero() {
		r.Oldest, r.Newest = &st.Oldest, &st.Newest
	}
	return r
}

// NewCacheClearCmd creates the cache clear command.
func NewCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(cmd)
			if err != nil {
				return err
			}
			n, err := store.Clear()
			if err != nil {
				return err
			}
			logger.Info().Ctx(cmd.Context()).Int("removed", n).Msg("cache cleared")
			cmd.Printf("Removed %d cache entries\n", n)
			return nil
		},
	}
}

// NewCachePruneCmd creates the cache prune command.
func NewCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired and unreadable cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(cmd)
			if err != nil {
				return err
			}
			n, err := store.Prune()
			if err != nil {
				return err
			}
			logger.Info().Ctx(cmd.Context()).Int("removed", n).Msg("cache pruned")
			cmd.Printf("Pruned %d cache entries\n", n)
			return nil
		},
	}
}

// formatBytes renders n as B, KB or MB.
func formatBytes(n int64) string {
	switch {
	case n < bytesPerKB:
		return fmt.Sprintf("%d B", n)
	case n < bytesPerKB*bytesPerKB:
		return fmt.Sprintf("%.1f KB", float64(n)/bytesPerKB)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(bytesPerKB*bytesPerKB))
	}
}

