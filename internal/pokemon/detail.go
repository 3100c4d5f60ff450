package pokemon

import (
	"fmt"
	"math"
)

// maxBaseStat is the highest base stat any Pokémon has, used to scale stat bars.
const maxBaseStat = 255.0

// Detail is the full record for one Pokémon.
type Detail struct {
	ID        int      `json:"id"        yaml:"id"`
	Name      string   `json:"name"      yaml:"name"`
	Height    int      `json:"height"    yaml:"height"` // decimetres
	Weight    int      `json:"weight"    yaml:"weight"` // hectograms
	Types     []Type   `json:"types"     yaml:"types"`
	Stats     []Stat   `json:"stats"     yaml:"stats"`
	Abilities []string `json:"abilities" yaml:"abilities"`
	Sprites   Sprites  `json:"sprites"   yaml:"sprites"`
}

// DisplayName returns the capitalized name.
func (d Detail) DisplayName() string {
	return Capitalize(d.Name)
}

// IDFormatted returns the ID as "#%03d".
func (d Detail) IDFormatted() string {
	return FormatID(d.ID)
}

// HeightInMeters formats the height, e.g. "0.7 m".
func (d Detail) HeightInMeters() string {
	return fmt.Sprintf("%.1f m", float64(d.Height)/10.0) //nolint:mnd // decimetres to metres
}

// WeightInKg formats the weight, e.g. "6.9 kg".
func (d Detail) WeightInKg() string {
	return fmt.Sprintf("%.1f kg", float64(d.Weight)/10.0) //nolint:mnd // hectograms to kilograms
}

// Type is one elemental type slot.
type Type struct {
	Slot int    `json:"slot" yaml:"slot"`
	Name string `json:"name" yaml:"name"`
}

// DisplayName returns the capitalized type name.
func (t Type) DisplayName() string {
	return Capitalize(t.Name)
}

// Stat is one base stat.
type Stat struct {
	Name     string `json:"name"      yaml:"name"`
	BaseStat int    `json:"base_stat" yaml:"base_stat"`
	Effort   int    `json:"effort"    yaml:"effort"`
}

// DisplayName returns the short label used on stat bars.
func (s Stat) DisplayName() string {
	switch s.Name {
	case "hp":
		return "HP"
	case "attack":
		return "Attack"
	case "defense":
		return "Defense"
	case "special-attack":
		return "Sp. Atk"
	case "special-defense":
		return "Sp. Def"
	case "speed":
		return "Speed"
	default:
		return Capitalize(s.Name)
	}
}

// Percentage returns the stat relative to the maximum base stat, capped at 1.
func (s Stat) Percentage() float64 {
	return math.Min(float64(s.BaseStat)/maxBaseStat, 1.0)
}

// Sprites holds optional sprite URLs; empty means the upstream had none.
type Sprites struct {
	FrontDefault string `json:"front_default,omitempty" yaml:"front_default,omitempty"`
	FrontShiny   string `json:"front_shiny,omitempty"   yaml:"front_shiny,omitempty"`
}
