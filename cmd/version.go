package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/samzong/git-autocommit/cmd.Version=...".
var (
	Version   = "dev"
	BuildTime = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show git-autocommit version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Fprintf(outWriter(), "git-autocommit version %s (built at %s)\n", Version, BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
