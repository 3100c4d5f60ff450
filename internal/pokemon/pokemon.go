package pokemon

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// spriteURLFormat is the official artwork location for a Pokémon ID.
const spriteURLFormat = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png"

// Pokemon is one entry of the catalog list.
type Pokemon struct {
	ID   int    `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url"  yaml:"url"`
}

// NewPokemon builds a list entry from an upstream name and resource URL,
// deriving the ID from the URL's last path segment.
func NewPokemon(name, url string) (Pokemon, error) {
	if strings.TrimSpace(name) == "" {
		return Pokemon{}, fmt.Errorf("%w: empty name for %q", ErrInvalidResponse, url)
	}
	id, err := IDFromURL(url)
	if err != nil {
		return Pokemon{}, err
	}
	return Pokemon{ID: id, Name: name, URL: url}, nil
}

// IDFromURL extracts the numeric ID from a resource URL such as
// https://pokeapi.co/api/v2/pokemon/25/.
func IDFromURL(url string) (int, error) {
	trimmed := strings.TrimRight(url, "/")
	idx := strings.LastIndexByte(trimmed, '/')
	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: no positive id in %q", ErrInvalidResponse, url)
	}
	return id, nil
}

// ImageURL returns the sprite URL for the entry.
func (p Pokemon) ImageURL() string {
	return fmt.Sprintf(spriteURLFormat, p.ID)
}

// DisplayName returns the name with its first character upper-cased.
func (p Pokemon) DisplayName() string {
	return Capitalize(p.Name)
}

// IDFormatted returns the ID zero-padded to three digits, e.g. "#001".
func (p Pokemon) IDFormatted() string {
	return FormatID(p.ID)
}

// FormatID renders an ID as "#%03d".
func FormatID(id int) string {
	return fmt.Sprintf("#%03d", id)
}

// Capitalize upper-cases the first character of s and leaves the rest untouched.
func Capitalize(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	// A Caser is stateful, so each call gets its own.
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}

// Page is one batch of entries plus a continuation flag.
type Page struct {
	Items   []Pokemon `json:"items"    yaml:"items"`
	HasMore bool      `json:"has_more" yaml:"has_more"`
}

// HasMore decides whether another page follows. A cursor reported by the upstream wins;
// without one, a full page means there may be more.
func HasMore(cursorKnown, cursorPresent bool, returned, limit int) bool {
	if cursorKnown {
		return cursorPresent
	}
	return returned == limit
}

// NormalizeQuery trims whitespace and lower-cases a search query.
func NormalizeQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
