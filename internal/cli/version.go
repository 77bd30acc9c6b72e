package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
}

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{Version: Version, GitCommit: GitCommit, GoVersion: runtime.Version()}
			if c.jsonOutput {
				return c.outputJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "adminctl %s (commit: %s, %s)\n", info.Version, info.GitCommit, info.GoVersion)
			return nil
		},
	}
}
