package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/samzong/git-autocommit/internal/config"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Show or change git-autocommit settings",
	}

	configGetCmd = &cobra.Command{
		Use:       "get [key]",
		Short:     "Print the effective configuration, or a single key",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: config.Keys,
		RunE: func(_ *cobra.Command, args []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}
			keys := config.Keys
			if len(args) == 1 {
				if !config.IsKnownKey(args[0]) {
					return fmt.Errorf("unknown configuration key %q", args[0])
				}
				keys = args
			}
			out := outWriter()
			for _, key := range keys {
				fmt.Fprintf(out, "%s: %s\n", key, displayValue(key))
			}
			if len(args) == 0 {
				fmt.Fprintf(out, "config file: %s\n", viper.ConfigFileUsed())
			}
			return nil
		},
	}

	configSetCmd = &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change a setting and save it to the config file",
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys,
		RunE: func(_ *cobra.Command, args []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}
			key, value := args[0], args[1]
			if err := config.SetFromString(key, value); err != nil {
				return err
			}

			cfg, err := config.GetConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
			if err := config.SaveConfig(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Fprintf(outWriter(), "%s set to %s\n", key, displayValue(key))
			if key == "model" {
				fmt.Fprintf(outWriter(), "Hint: suggested models are %s\n",
					strings.Join(config.GetSuggestedModels(), ", "))
			}
			return nil
		},
	}
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func displayValue(key string) string {
	switch key {
	case "api_key":
		if viper.GetString(key) == "" {
			return "<not set>"
		}
		return "********"
	case "prompt.allowed_types":
		return strings.Join(viper.GetStringSlice(key), ", ")
	}
	value := viper.GetString(key)
	if value == "" {
		return "<not set>"
	}
	return value
}
