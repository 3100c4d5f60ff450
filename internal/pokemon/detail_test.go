package pokemon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/pokedex/internal/pokemon"
)

func TestDetailFormatting(t *testing.T) {
	d := pokemon.Detail{ID: 25, Name: "pikachu", Height: 4, Weight: 60}

	assert.Equal(t, "Pikachu", d.DisplayName())
	assert.Equal(t, "#025", d.IDFormatted())
	assert.Equal(t, "0.4 m", d.HeightInMeters())
	assert.Equal(t, "6.0 kg", d.WeightInKg())
}

func TestStatDisplayName(t *testing.T) {
	tests := map[string]string{
		"hp":              "HP",
		"attack":          "Attack",
		"defense":         "Defense",
		"special-attack":  "Sp. Atk",
		"special-defense": "Sp. Def",
		"speed":           "Speed",
		"accuracy":        "Accuracy",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, pokemon.Stat{Name: in}.DisplayName())
		})
	}
}

func TestStatPercentage(t *testing.T) {
	assert.InDelta(t, 0.0, pokemon.Stat{BaseStat: 0}.Percentage(), 1e-9)
	assert.InDelta(t, 0.5, pokemon.Stat{BaseStat: 127}.Percentage(), 0.01)
	assert.InDelta(t, 1.0, pokemon.Stat{BaseStat: 255}.Percentage(), 1e-9)
	assert.InDelta(t, 1.0, pokemon.Stat{BaseStat: 300}.Percentage(), 1e-9)
}

func TestTypeDisplayName(t *testing.T) {
	assert.Equal(t, "Electric", pokemon.Type{Slot: 1, Name: "electric"}.DisplayName())
}
