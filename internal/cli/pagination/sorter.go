package pagination

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/rshade/pokedex/internal/pokemon"
)

// sortFields maps each accepted field to its comparison.
//
//nolint:gochecknoglobals // fixed lookup table
var sortFields = map[string]func(a, b pokemon.Pokemon) int{
	"id": func(a, b pokemon.Pokemon) int { return cmp.Compare(a.ID, b.ID) },
	"name": func(a, b pokemon.Pokemon) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	},
}

// SortFields lists the accepted sort fields.
func SortFields() []string {
	fields := make([]string, 0, len(sortFields))
	for f := range sortFields {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

// SortPokemon returns a sorted copy of items for a "field[:order]" expression.
func SortPokemon(items []pokemon.Pokemon, expr string) ([]pokemon.Pokemon, error) {
	field, order, err := ParseSort(expr)
	if err != nil {
		return nil, err
	}
	compare, ok := sortFields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(SortFields(), ", "))
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b pokemon.Pokemon) int {
		if order == SortOrderDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted, nil
}
