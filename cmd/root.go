package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samzong/git-autocommit/internal/config"
)

var (
	cfgFile   string
	configErr error
	rootCmd   = &cobra.Command{
		Use:   "git-autocommit",
		Short: "git-autocommit - stage, describe and commit in one step",
		Long: `git-autocommit inspects the working tree, offers to stage what is missing, ` +
			`asks an LLM for a conventional commit message and commits once you confirm it.`,
		Version:       fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		Args:          cobra.NoArgs,
		RunE:          runCommit,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

func Execute() error {
	return rootCmd.Execute()
}

// SetContext sets the context every command runs with.
func SetContext(ctx context.Context) {
	rootCmd.SetContext(ctx)
}

// RootCmd exposes the command tree for documentation generation.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file path (default is $XDG_CONFIG_HOME/git-autocommit/config.yaml)")
	addCommitFlags(rootCmd)
}

func initConfig() {
	configErr = config.InitConfig(cfgFile)
}

// loadConfig returns the effective configuration or the error that stopped it
// from loading.
func loadConfig() (*config.Config, error) {
	if configErr != nil {
		return nil, fmt.Errorf("configuration error: %w", configErr)
	}
	return config.GetConfig()
}
