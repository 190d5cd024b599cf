package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/turtacn/KeyIP-Descriptors/internal/domain/descriptor"
)

// BuildInfo is the printed result of the version command.
type BuildInfo struct {
	Version        string `json:"version"`
	Commit         string `json:"commit"`
	BuildDate      string `json:"build_date"`
	GoVersion      string `json:"go_version"`
	CatalogVersion string `json:"catalog_version"`
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("keyip-desc %s (commit %s, built %s, %s)\ndescriptor catalog %s\n",
		b.Version, b.Commit, b.BuildDate, b.GoVersion, b.CatalogVersion)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintResult(cmd, BuildInfo{
				Version:        Version,
				Commit:         GitCommit,
				BuildDate:      BuildDate,
				GoVersion:      runtime.Version(),
				CatalogVersion: descriptor.CatalogVersion,
			})
		},
	}
}

//Personal.AI order the ending
