package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/internal/browser"
	"github.com/rshade/pokedex/internal/catalog"
	"github.com/rshade/pokedex/internal/config"
	"github.com/rshade/pokedex/internal/logging"
	"github.com/rshade/pokedex/internal/tui"
)

type browseParams struct {
	query string
	plain bool
	pages int
}

// NewBrowseCmd creates the browse command. On a terminal it runs the
// interactive browser; otherwise it prints the first pages as plain text.
func NewBrowseCmd() *cobra.Command {
	var params browseParams

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse Pokémon interactively",
		Long: `Opens a scrollable list of Pokémon with search-as-you-type.

Keys: ↑/↓ or j/k to move, / to search, enter for details, r to refresh, q to quit.
More entries load automatically as you scroll towards the end of the list.

When stdout is not a terminal (or with --plain) the first --pages pages are
printed one entry per line instead.`,
		Example: `  # Browse everything
  pokedex browse

  # Browse starting from a search
  pokedex browse --query eevee

  # Print the first three pages for a script
  pokedex browse --plain --pages 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, params)
		},
	}

	cmd.Flags().StringVarP(&params.query, "query", "q", "", "initial search query")
	cmd.Flags().BoolVar(&params.plain, "plain", false, "print plain text instead of starting the interactive browser")
	cmd.Flags().IntVar(&params.pages, "pages", 1, "pages to print in plain mode")

	return cmd
}

func runBrowse(cmd *cobra.Command, params browseParams) error {
	if params.pages < 1 {
		return fmt.Errorf("pages must be at least 1, got %d", params.pages)
	}

	ctx := cmd.Context()
	cfg := configFromContext(ctx)
	cat, err := newCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	router := tui.NewRouter()
	ctrl, err := newController(ctx, cfg, cat, router)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	mode := tui.DetectOutputMode(false, false, params.plain)
	logging.FromContext(ctx).Debug().Ctx(ctx).Stringer("mode", mode).Msg("browse output mode")

	if mode == tui.OutputModeInteractive {
		return runInteractiveBrowse(ctx, ctrl, router, cat, params.query)
	}
	return runPlainBrowse(ctx, cmd.OutOrStdout(), ctrl, params)
}

func newController(
	ctx context.Context,
	cfg *config.Config,
	cat *catalog.Catalog,
	nav browser.Navigator,
) (*browser.Controller, error) {
	return browser.New(cat, nav,
		browser.WithPageSize(cfg.Browser.PageSize),
		browser.WithDebounce(cfg.Browser.Debounce),
		browser.WithLogger(*logging.FromContext(ctx)),
	)
}

func runInteractiveBrowse(
	ctx context.Context,
	ctrl *browser.Controller,
	router *tui.Router,
	cat *catalog.Catalog,
	query string,
) error {
	model := tui.NewBrowseModel(ctx, ctrl, router, cat)
	if query != "" {
		model.SetInitialQuery(query)
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}

// runPlainBrowse drives the same controller without a terminal: load the
// first page, then keep loading until pages pages are printed or the list ends.
func runPlainBrowse(ctx context.Context, w io.Writer, ctrl *browser.Controller, params browseParams) error {
	var err error
	if params.query != "" {
		err = ctrl.RunSearch(ctx, params.query)
	} else {
		err = ctrl.LoadInitial(ctx)
	}
	if err != nil {
		return err
	}

	for range params.pages - 1 {
		s, ok := ctrl.State().(browser.StateSuccess)
		if !ok || !s.HasMore {
			break
		}
		if err = ctrl.LoadMore(ctx); err != nil {
			return err
		}
	}

	s, ok := ctrl.State().(browser.StateSuccess)
	if !ok {
		return fmt.Errorf("unexpected browser state %s", ctrl.State().Kind())
	}
	if _, err = io.WriteString(w, tui.RenderPlainList(s.Items)); err != nil {
		return err
	}
	if len(s.Items) == 0 && s.Query != "" {
		_, err = fmt.Fprintf(w, "No Pokémon match %q\n", s.Query)
	}
	return err
}
