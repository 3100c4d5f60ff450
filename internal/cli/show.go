package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/internal/pokemon"
)

// statBarWidth is the number of cells in a full (255) stat bar.
const statBarWidth = 20

// NewShowCmd creates the show command, which prints one Pokémon's detail card.
func NewShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <name|id>",
		Short: "Show details for one Pokémon",
		Example: `  # By name
  pokedex show bulbasaur

  # By Pokédex number
  pokedex show 25
  pokedex show '#025'

  # As YAML
  pokedex show mewtwo --output yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutputFormat(output); err != nil {
				return err
			}

			ctx := cmd.Context()
			cat, err := newCatalog(ctx, configFromContext(ctx))
			if err != nil {
				return err
			}
			d, err := cat.Detail(ctx, args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", pokemon.UserMessage(err), err)
			}

			w := cmd.OutOrStdout()
			switch output {
			case outputJSON:
				return writeJSON(w, d)
			case outputNDJSON:
				return writeNDJSON(w, []pokemon.Detail{d})
			case outputYAML:
				return writeYAML(w, d)
			default:
				return renderDetailCard(w, d)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json, ndjson or yaml")
	return cmd
}

// renderDetailCard prints a plain-text card with a text bar per base stat.
func renderDetailCard(w io.Writer, d pokemon.Detail) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", d.IDFormatted(), d.DisplayName())

	types := make([]string, 0, len(d.Types))
	for _, t := range d.Types {
		types = append(types, t.DisplayName())
	}
	fmt.Fprintf(&b, "Types:     %s\n", strings.Join(types, " / "))
	fmt.Fprintf(&b, "Height:    %s\n", d.HeightInMeters())
	fmt.Fprintf(&b, "Weight:    %s\n", d.WeightInKg())

	if len(d.Abilities) > 0 {
		abilities := make([]string, 0, len(d.Abilities))
		for _, a := range d.Abilities {
			abilities = append(abilities, pokemon.Capitalize(a))
		}
		fmt.Fprintf(&b, "Abilities: %s\n", strings.Join(abilities, ", "))
	}

	if len(d.Stats) > 0 {
		b.WriteString("\nBase stats\n")
		tw := newTabWriter(&b)
		for _, s := range d.Stats {
			filled := int(s.Percentage()*statBarWidth + 0.5) //nolint:mnd // round to nearest cell
			fmt.Fprintf(tw, "  %s\t%d\t%s%s\n", s.DisplayName(), s.BaseStat,
				strings.Repeat("█", filled), strings.Repeat("░", statBarWidth-filled))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if d.Sprites.FrontDefault != "" {
		fmt.Fprintf(&b, "\nSprite: %s\n", d.Sprites.FrontDefault)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
