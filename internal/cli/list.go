package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/internal/catalog"
	"github.com/rshade/pokedex/internal/cli/pagination"
	"github.com/rshade/pokedex/internal/engine/batch"
	"github.com/rshade/pokedex/internal/logging"
	"github.com/rshade/pokedex/internal/pokemon"
)

const defaultDetailConcurrency = 4

type listParams struct {
	page        *pagination.Params
	query       string
	output      string
	details     bool
	concurrency int
}

// listRow is one entry of list output. Types is only filled with --details.
type listRow struct {
	ID    int      `json:"id"              yaml:"id"`
	Name  string   `json:"name"            yaml:"name"`
	URL   string   `json:"url"             yaml:"url"`
	Types []string `json:"types,omitempty" yaml:"types,omitempty"`
}

// listResult is the structured list output.
type listResult struct {
	Query      string          `json:"query,omitempty" yaml:"query,omitempty"`
	Items      []listRow       `json:"items"           yaml:"items"`
	Pagination pagination.Meta `json:"pagination"      yaml:"pagination"`
}

// NewListCmd creates the list command, a single non-interactive page fetch.
func NewListCmd() *cobra.Command {
	params := listParams{page: pagination.NewParams()}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of Pokémon",
		Long: `Fetches one page of Pokémon, optionally filtered by a search query.

A query matches names containing it or an exact Pokédex number ("25" or "#025").
Use --limit/--offset or --page/--page-size to choose the window; structured
outputs include pagination metadata with the next offset when more exist.`,
		Example: `  # First 20 Pokémon
  pokedex list

  # Page 3 of 50, as JSON
  pokedex list --page 3 --page-size 50 --output json

  # Names containing "chu", newest first, with types
  pokedex list --query chu --sort id:desc --details

  # Stream as NDJSON
  pokedex list --limit 200 --output ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, params)
		},
	}

	params.page.AddFlags(cmd)
	cmd.Flags().StringVar(&params.query, "query", "", "filter by name substring or Pokédex number")
	cmd.Flags().StringVarP(&params.output, "output", "o", outputTable, "output format: table, json, ndjson or yaml")
	cmd.Flags().BoolVar(&params.details, "details", false, "fetch each entry's types (one request per entry)")
	cmd.Flags().IntVar(&params.concurrency, "concurrency", defaultDetailConcurrency,
		"maximum detail requests in flight with --details")

	return cmd
}

func runList(cmd *cobra.Command, params listParams) error {
	if err := params.page.Validate(); err != nil {
		return err
	}
	if err := validateOutputFormat(params.output); err != nil {
		return err
	}
	if params.concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", params.concurrency)
	}

	ctx := cmd.Context()
	cat, err := newCatalog(ctx, configFromContext(ctx))
	if err != nil {
		return err
	}

	offset, limit := params.page.OffsetLimit()
	page, err := cat.FetchPage(ctx, params.query, offset, limit)
	if err != nil {
		return fmt.Errorf("%s: %w", pokemon.UserMessage(err), err)
	}

	items := page.Items
	if params.page.Sort != "" {
		if items, err = pagination.SortPokemon(items, params.page.Sort); err != nil {
			return err
		}
	}

	rows, err := buildRows(ctx, cat, items, params)
	if err != nil {
		return err
	}

	result := listResult{
		Query:      pokemon.NormalizeQuery(params.query),
		Items:      rows,
		Pagination: pagination.NewMeta(*params.page, len(rows), page.HasMore),
	}
	return renderList(cmd.OutOrStdout(), params.output, result, params.details)
}

// buildRows converts entries to rows, fetching types concurrently with --details.
func buildRows(ctx context.Context, cat *catalog.Catalog, items []pokemon.Pokemon, params listParams) ([]listRow, error) {
	if !params.details {
		rows := make([]listRow, 0, len(items))
		for _, p := range items {
			rows = append(rows, listRow{ID: p.ID, Name: p.Name, URL: p.URL})
		}
		return rows, nil
	}

	log := logging.FromContext(ctx)
	proc := batch.NewProcessorWithDefaults[pokemon.Pokemon]().
		WithProgress(func(s batch.Snapshot) {
			log.Debug().Ctx(ctx).
				Int("done", s.DoneItems).
				Int("total", s.TotalItems).
				Msg("fetching details")
		})

	rows, err := batch.Map(ctx, proc, items, params.concurrency, func(ctx context.Context, p pokemon.Pokemon) (listRow, error) {
		d, err := cat.Detail(ctx, p.Name)
		if err != nil {
			return listRow{}, fmt.Errorf("%s: %w", p.Name, err)
		}
		types := make([]string, 0, len(d.Types))
		for _, t := range d.Types {
			types = append(types, t.Name)
		}
		return listRow{ID: p.ID, Name: p.Name, URL: p.URL, Types: types}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching details: %w", err)
	}
	return rows, nil
}

func renderList(w io.Writer, format string, result listResult, details bool) error {
	switch format {
	case outputJSON:
		return writeJSON(w, result)
	case outputNDJSON:
		// Streams carry entries only; pagination metadata does not fit line-by-line output.
		return writeNDJSON(w, result.Items)
	case outputYAML:
		return writeYAML(w, result)
	default:
		return renderListTable(w, result, details)
	}
}

func renderListTable(w io.Writer, result listResult, details bool) error {
	if len(result.Items) == 0 {
		if result.Query != "" {
			_, err := fmt.Fprintf(w, "No Pokémon match %q\n", result.Query)
			return err
		}
		_, err := fmt.Fprintln(w, "No Pokémon found")
		return err
	}

	tw := newTabWriter(w)
	if details {
		fmt.Fprintln(tw, "ID\tName\tTypes")
		fmt.Fprintln(tw, "--\t----\t-----")
	} else {
		fmt.Fprintln(tw, "ID\tName")
		fmt.Fprintln(tw, "--\t----")
	}
	for _, row := range result.Items {
		id := pokemon.FormatID(row.ID)
		name := pokemon.Capitalize(row.Name)
		if details {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", id, name, strings.Join(row.Types, ", "))
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", id, name)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	meta := result.Pagination
	if !meta.HasMore {
		return nil
	}
	if meta.NextPage != nil {
		_, err := fmt.Fprintf(w, "\nMore results available: --page %d --page-size %d\n", *meta.NextPage, meta.Limit)
		return err
	}
	_, err := fmt.Fprintf(w, "\nMore results available: --offset %d --limit %d\n", *meta.NextOffset, meta.Limit)
	return err
}
