package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rshade/pokedex/internal/logging"
)

// Validate checks the level and format names.
func (lc LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(lc.Level)); err != nil || lc.Level == "" {
		return fmt.Errorf("logging.level %q is not a known level", lc.Level)
	}
	switch lc.Format {
	case logging.FormatJSON, logging.FormatConsole:
		return nil
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", logging.FormatJSON, logging.FormatConsole, lc.Format)
	}
}

// ToLoggingConfig converts the section for the logging package. A set File
// selects file output; otherwise logs go to stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  strings.ToLower(lc.Level),
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}
