package pokemon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pokedex/internal/pokemon"
)

func TestNewPokemon(t *testing.T) {
	tests := []struct {
		name    string
		pName   string
		url     string
		wantID  int
		wantErr bool
	}{
		{name: "trailing slash", pName: "bulbasaur", url: "https://pokeapi.co/api/v2/pokemon/1/", wantID: 1},
		{name: "no trailing slash", pName: "pikachu", url: "https://pokeapi.co/api/v2/pokemon/25", wantID: 25},
		{name: "non numeric", pName: "x", url: "https://pokeapi.co/api/v2/pokemon/abc/", wantErr: true},
		{name: "zero id", pName: "x", url: "https://pokeapi.co/api/v2/pokemon/0/", wantErr: true},
		{name: "empty name", pName: " ", url: "https://pokeapi.co/api/v2/pokemon/4/", wantErr: true},
		{name: "empty url", pName: "x", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := pokemon.NewPokemon(tt.pName, tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, pokemon.ErrInvalidResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, p.ID)
			assert.Equal(t, tt.pName, p.Name)
		})
	}
}

func TestPokemonDerivedFields(t *testing.T) {
	p := pokemon.Pokemon{ID: 7, Name: "squirtle"}

	assert.Equal(t, "Squirtle", p.DisplayName())
	assert.Equal(t, "#007", p.IDFormatted())
	assert.Equal(t,
		"https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/7.png",
		p.ImageURL())
	assert.Equal(t, "#1025", pokemon.FormatID(1025))
}

func TestCapitalize(t *testing.T) {
	assert.Empty(t, pokemon.Capitalize(""))
	assert.Equal(t, "Mr-mime", pokemon.Capitalize("mr-mime"))
	assert.Equal(t, "Éclair", pokemon.Capitalize("éclair"))
	assert.Equal(t, "Abc", pokemon.Capitalize("Abc"))
}

func TestHasMore(t *testing.T) {
	assert.True(t, pokemon.HasMore(true, true, 3, 20), "cursor wins over short page")
	assert.False(t, pokemon.HasMore(true, false, 20, 20), "no cursor on a full page")
	assert.True(t, pokemon.HasMore(false, false, 20, 20))
	assert.False(t, pokemon.HasMore(false, false, 19, 20))
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "pika", pokemon.NormalizeQuery("  PIKA "))
	assert.Empty(t, pokemon.NormalizeQuery("   "))
}
