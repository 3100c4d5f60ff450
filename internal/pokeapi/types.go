package pokeapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rshade/pokedex/internal/pokemon"
)

// NamedResource is the {name, url} pair used across the API.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListResponse is the payload of GET /pokemon.
type ListResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`

	// CursorKnown reports whether the payload carried a "next" key at all.
	CursorKnown bool `json:"-"`
}

// UnmarshalJSON records whether "next" was present, so a missing cursor can be
// told apart from an explicit null.
func (r *ListResponse) UnmarshalJSON(data []byte) error {
	type plain ListResponse
	aux := struct {
		*plain

		RawNext json.RawMessage `json:"next"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.CursorKnown = aux.RawNext != nil
	r.Next = nil
	if aux.RawNext != nil && !bytes.Equal(aux.RawNext, []byte("null")) {
		var next string
		if err := json.Unmarshal(aux.RawNext, &next); err != nil {
			return fmt.Errorf("next: %w", err)
		}
		r.Next = &next
	}
	return nil
}

// ToPage converts the payload into a domain page for a request of the given limit.
func (r *ListResponse) ToPage(limit int) (pokemon.Page, error) {
	items, err := r.Items()
	if err != nil {
		return pokemon.Page{}, err
	}
	return pokemon.Page{
		Items:   items,
		HasMore: pokemon.HasMore(r.CursorKnown, r.Next != nil, len(r.Results), limit),
	}, nil
}

// Items converts every result into a domain entry.
func (r *ListResponse) Items() ([]pokemon.Pokemon, error) {
	items := make([]pokemon.Pokemon, 0, len(r.Results))
	for _, res := range r.Results {
		p, err := pokemon.NewPokemon(res.Name, res.URL)
		if err != nil {
			return nil, pokemon.NewFetchError(pokemon.ErrInvalidResponse, "convert list", err)
		}
		items = append(items, p)
	}
	return items, nil
}

// DetailResponse is the subset of GET /pokemon/{name} the app uses.
type DetailResponse struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Height    int           `json:"height"`
	Weight    int           `json:"weight"`
	Types     []TypeSlot    `json:"types"`
	Stats     []StatEntry   `json:"stats"`
	Abilities []AbilitySlot `json:"abilities"`
	Sprites   SpriteSet     `json:"sprites"`
}

// TypeSlot is one entry of "types".
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// StatEntry is one entry of "stats".
type StatEntry struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// AbilitySlot is one entry of "abilities".
type AbilitySlot struct {
	Slot     int           `json:"slot"`
	IsHidden bool          `json:"is_hidden"`
	Ability  NamedResource `json:"ability"`
}

// SpriteSet holds nullable sprite URLs.
type SpriteSet struct {
	FrontDefault *string `json:"front_default"`
	FrontShiny   *string `json:"front_shiny"`
}

// ToDetail converts the payload into the domain record.
func (d *DetailResponse) ToDetail() (pokemon.Detail, error) {
	if d.ID <= 0 || d.Name == "" {
		return pokemon.Detail{}, pokemon.NewFetchError(pokemon.ErrInvalidResponse, "convert detail",
			fmt.Errorf("missing id or name (id=%d name=%q)", d.ID, d.Name))
	}
	out := pokemon.Detail{
		ID:        d.ID,
		Name:      d.Name,
		Height:    d.Height,
		Weight:    d.Weight,
		Types:     make([]pokemon.Type, 0, len(d.Types)),
		Stats:     make([]pokemon.Stat, 0, len(d.Stats)),
		Abilities: make([]string, 0, len(d.Abilities)),
		Sprites: pokemon.Sprites{
			FrontDefault: deref(d.Sprites.FrontDefault),
			FrontShiny:   deref(d.Sprites.FrontShiny),
		},
	}
	for _, t := range d.Types {
		out.Types = append(out.Types, pokemon.Type{Slot: t.Slot, Name: t.Type.Name})
	}
	for _, s := range d.Stats {
		out.Stats = append(out.Stats, pokemon.Stat{Name: s.Stat.Name, BaseStat: s.BaseStat, Effort: s.Effort})
	}
	for _, a := range d.Abilities {
		out.Abilities = append(out.Abilities, a.Ability.Name)
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
