package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

const (
	// SchemaVersion is written by `config init`.
	SchemaVersion = "1.0.0"

	supportedSchema = ">= 1.0.0, < 2.0.0"
)

// CheckSchemaVersion accepts an empty version (treated as current) or one
// satisfying the supported range.
func CheckSchemaVersion(v string) error {
	if v == "" {
		return nil
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("schema_version %q: %w", v, err)
	}
	constraint, err := semver.NewConstraint(supportedSchema)
	if err != nil {
		return fmt.Errorf("schema constraint: %w", err)
	}
	if !constraint.Check(ver) {
		return fmt.Errorf("schema_version %s is not supported (want %s)", ver, supportedSchema)
	}
	return nil
}
