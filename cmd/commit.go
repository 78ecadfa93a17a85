package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samzong/git-autocommit/internal/config"
	"github.com/samzong/git-autocommit/internal/git"
	"github.com/samzong/git-autocommit/internal/interact"
	"github.com/samzong/git-autocommit/internal/llm"
	"github.com/samzong/git-autocommit/internal/logging"
	"github.com/samzong/git-autocommit/internal/message"
	"github.com/samzong/git-autocommit/internal/ui"
	"github.com/samzong/git-autocommit/internal/workflow"
)

type commitFlags struct {
	yes      bool
	dryRun   bool
	noVerify bool
	model    string
	verbose  bool
}

var (
	commitOpts commitFlags

	commitCmd = &cobra.Command{
		Use:   "commit",
		Short: "Stage changes, generate a commit message and commit",
		Args:  cobra.NoArgs,
		RunE:  runCommit,
	}

	// newGateway is replaced in tests.
	newGateway = func() interact.Gateway {
		term := ui.NewTerminal()
		term.Out = outWriter()
		term.Err = errWriter()
		return term
	}
)

func init() {
	addCommitFlags(commitCmd)
	rootCmd.AddCommand(commitCmd)
}

func addCommitFlags(c *cobra.Command) {
	c.Flags().BoolVarP(&commitOpts.yes, "yes", "y", false, "Answer yes to every question")
	c.Flags().BoolVar(&commitOpts.dryRun, "dry-run", false, "Generate and confirm the message, do not commit")
	c.Flags().BoolVar(&commitOpts.noVerify, "no-verify", false, "Skip pre-commit and commit-msg hooks")
	c.Flags().StringVar(&commitOpts.model, "model", "", "Model to use for this run")
	c.Flags().BoolVarP(&commitOpts.verbose, "verbose", "V", false, "Log git commands and engine decisions")
}

func runCommit(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if commitOpts.model != "" {
		cfg.Model = commitOpts.model
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, err := logging.New(logging.LevelFor(cfg.LogLevel, commitOpts.verbose), errWriter())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	repo := git.NewClient(git.Options{Logger: logger})
	if err := repo.CheckGitRepository(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return fmt.Errorf("%w: run `git-autocommit authenticate` or set %s_API_KEY",
			llm.ErrMissingAPIKey, config.EnvPrefix)
	}

	gateway := newGateway()
	if commitOpts.yes {
		gateway = interact.AutoConfirm{Gateway: gateway}
	}

	flow := workflow.NewCommitFlow(workflow.Deps{
		Repo:      repo,
		Generator: newGenerator(cfg, logger),
		Gateway:   gateway,
		Logger:    logger,
	}, workflow.CommitOptions{
		DryRun:           commitOpts.dryRun,
		NoVerify:         commitOpts.noVerify,
		MaxSubjectLength: cfg.Prompt.MaxSubjectLength,
	})

	outcome, err := flow.Run(ctx)
	if err != nil {
		return err
	}
	logger.Debug("autocommit finished", zap.Stringer("outcome", outcome))
	return nil
}

func newLLMClient(cfg *config.Config, logger *zap.Logger) *llm.Client {
	return llm.NewClient(llm.Options{
		APIKey:  cfg.APIKey,
		APIBase: cfg.APIBase,
		Model:   cfg.Model,
		Timeout: time.Duration(cfg.Timeout) * time.Second,
		Logger:  logger,
	})
}

func newGenerator(cfg *config.Config, logger *zap.Logger) *message.Generator {
	return message.NewGenerator(
		newLLMClient(cfg, logger),
		cfg.Model,
		message.OptionsFromConfig(cfg.Prompt),
		logger,
	)
}
