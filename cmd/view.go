package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gspu/critic/internal/controller"
	"github.com/gspu/critic/internal/domain"
	m "github.com/gspu/critic/internal/model"
)

var formatFlag string

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously generated coverage reports",
		Long: `View coverage reports persisted by a previous run: interactively on a
terminal, as a plain table otherwise, or as YAML with --format yaml.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := controller.Format(formatFlag)
			if format != controller.FormatTable && format != controller.FormatYAML {
				return fmt.Errorf("unknown format %q", formatFlag)
			}

			ui := controller.NewUI(cmd, format, controller.IsTTY(os.Stdout))
			workflow := domain.NewViewWorkflow(reportStore, ui)

			return workflow.View(cmd.Context(), domain.ViewArgs{
				Reports: m.Path(viper.GetString(outputFlagName)),
				UI:      ui,
			})
		},
	}

	cmd.Flags().StringVar(&formatFlag, formatFlagName, string(controller.FormatTable), "output format: table or yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
