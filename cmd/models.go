package cmd

import (
	"context"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/samzong/git-autocommit/internal/config"
	"github.com/samzong/git-autocommit/internal/llm"
)

var (
	modelsCmd = &cobra.Command{
		Use:   "models",
		Short: "List the models the chat backend offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			models, err := listModels(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			renderModels(outWriter(), models)
			return nil
		},
	}

	listModels = func(ctx context.Context, cfg *config.Config) ([]llm.Model, error) {
		return newLLMClient(cfg, nil).ListModels(ctx)
	}
)

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func renderModels(w io.Writer, models []llm.Model) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle("Available Models")
	tw.AppendHeader(table.Row{"ID", "Owned By", "Created"})
	for _, m := range models {
		created := "N/A"
		if !m.Created.IsZero() {
			created = m.Created.Format("2006-01-02")
		}
		tw.AppendRow(table.Row{m.ID, m.OwnedBy, created})
	}
	tw.AppendFooter(table.Row{"", "Total", len(models)})
	tw.SetStyle(table.StyleLight)
	tw.Render()
}
