package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/pokedex/pkg/version"
)

// versionInfo is the structured form of the version command.
type versionInfo struct {
	Version   string `json:"version"    yaml:"version"`
	Commit    string `json:"commit"     yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	Release   bool   `json:"release"    yaml:"release"`
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versionInfo{
				Version:   version.GetVersion(),
				Commit:    version.GetGitCommit(),
				BuildDate: version.GetBuildDate(),
				Release:   version.IsRelease(),
			}
			switch output {
			case outputJSON:
				return writeJSON(cmd.OutOrStdout(), info)
			case outputYAML:
				return writeYAML(cmd.OutOrStdout(), info)
			default:
				cmd.Println(version.String())
				return nil
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: json or yaml (default: one line)")
	return cmd
}
