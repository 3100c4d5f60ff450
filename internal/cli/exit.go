package cli

import (
	"context"
	"errors"

	"github.com/rshade/pokedex/internal/config"
	"github.com/rshade/pokedex/internal/pokemon"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUsage       = 2
	ExitNotFound    = 3
	ExitUnavailable = 4
	ExitInterrupted = 130
)

// ExitCode maps a command error to a process exit code so scripts can tell a
// bad request from a missing Pokémon or an unreachable API.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, pokemon.ErrInvalidRequest), errors.Is(err, config.ErrInvalidConfig):
		return ExitUsage
	case errors.Is(err, pokemon.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, pokemon.ErrNetwork),
		errors.Is(err, pokemon.ErrDecoding),
		errors.Is(err, pokemon.ErrInvalidResponse):
		return ExitUnavailable
	default:
		return ExitError
	}
}
