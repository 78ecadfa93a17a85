package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/samzong/git-autocommit/internal/config"
	"github.com/samzong/git-autocommit/internal/llm"
	"github.com/samzong/git-autocommit/internal/ui"
)

const maxKeyAttempts = 3

// credentialPrompter reads the answers of the authenticate dialog.
type credentialPrompter interface {
	PromptSecret(label string) (string, error)
	Prompt(label string) (string, error)
}

type credentials struct {
	APIKey  string
	APIBase string
	Model   string
}

var (
	authenticateCmd = &cobra.Command{
		Use:   "authenticate",
		Short: "Configure and verify the chat backend credentials",
		Long: `Prompts for the API key (hidden on a terminal), an optional OpenAI-compatible ` +
			`base URL and the default model, saves them to the config file and checks them ` +
			`by listing the models the backend offers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			term := ui.NewTerminalWithIO(inReader(), outWriter(), errWriter())
			return runAuthenticate(cmd.Context(), term, errWriter(), cfg)
		},
	}

	saveCredentials = func(c credentials) error {
		config.SetConfigValue("api_key", c.APIKey)
		config.SetConfigValue("api_base", c.APIBase)
		config.SetConfigValue("model", c.Model)
		return config.SaveConfig()
	}

	verifyCredentials = func(ctx context.Context, c credentials, timeout time.Duration) error {
		client := llm.NewClient(llm.Options{APIKey: c.APIKey, APIBase: c.APIBase, Timeout: timeout})
		return client.TestConnection(ctx, c.Model)
	}
)

func init() {
	rootCmd.AddCommand(authenticateCmd)
}

func runAuthenticate(ctx context.Context, p credentialPrompter, out io.Writer, current *config.Config) error {
	fmt.Fprintln(out, "git-autocommit authenticate - configure your API credentials")

	apiKey, err := promptAPIKey(p, out, current.APIKey)
	if err != nil {
		return err
	}

	baseLabel := current.APIBase
	if baseLabel == "" {
		baseLabel = "OpenAI"
	}
	apiBase, err := p.Prompt(fmt.Sprintf("API base URL (default: %s): ", baseLabel))
	if err != nil {
		return err
	}
	if apiBase == "" {
		apiBase = current.APIBase
	}

	modelDefault := current.Model
	if modelDefault == "" {
		modelDefault = config.DefaultModel
	}
	model, err := p.Prompt(fmt.Sprintf("Model (default: %s): ", modelDefault))
	if err != nil {
		return err
	}
	if model == "" {
		model = modelDefault
	}

	creds := credentials{APIKey: apiKey, APIBase: apiBase, Model: model}
	if err := saveCredentials(creds); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	fmt.Fprintf(out, "Credentials saved to %s\n", viper.ConfigFileUsed())

	fmt.Fprintln(out, "Verifying credentials...")
	timeout := time.Duration(current.Timeout) * time.Second
	if err := verifyCredentials(ctx, creds, timeout); err != nil {
		return fmt.Errorf("credential check failed: %w", err)
	}
	fmt.Fprintln(out, "Authentication succeeded.")
	return nil
}

func promptAPIKey(p credentialPrompter, out io.Writer, existing string) (string, error) {
	label := "API key (required): "
	if existing != "" {
		label = "API key (leave blank to keep current): "
	}

	for range maxKeyAttempts {
		key, err := p.PromptSecret(label)
		if err != nil {
			return "", err
		}
		if key != "" {
			return key, nil
		}
		if existing != "" {
			return existing, nil
		}
		fmt.Fprintln(out, "API key is required.")
	}
	return "", errors.New("no API key entered")
}
