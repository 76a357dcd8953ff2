package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gspu/critic/internal/adapter"
	"github.com/gspu/critic/internal/controller"
	"github.com/gspu/critic/internal/domain"
	m "github.com/gspu/critic/internal/model"
)

var minCoverageFlag int
var noCoverageFlag bool
var retainTraceFlag bool
var shellFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run specfile [specfile...]",
		Short: "Run test scripts and report coverage",
		Long:  runLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout := time.Duration(viper.GetInt64(runTimeoutKey)) * time.Second

			runner := adapter.NewLocalShellRunner(
				viper.GetString(runShellKey),
				timeout,
				cmd.OutOrStdout(),
				cmd.ErrOrStderr(),
			)
			ui := controller.NewSimpleUI(cmd)
			workflow := domain.NewWorkflow(fsAdapter, runner, reportStore, ui)

			return workflow.Run(cmd.Context(), domain.RunArgs{
				Specs:           parsePaths(args),
				Reports:         m.Path(viper.GetString(outputFlagName)),
				CoverageEnabled: viper.GetBool(coverageEnabledKey) && !noCoverageFlag,
				MinimumPercent:  viper.GetInt(minimumPercentKey),
				RetainTrace:     viper.GetBool(retainTraceKey),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&minCoverageFlag, minCoverageFlagName, "m", viper.GetInt(minimumPercentKey), "minimum acceptable coverage percentage per file (0-100)")
	bindFlagToConfig(cmd.Flags().Lookup(minCoverageFlagName), minimumPercentKey)

	// Not viper-bound: the flag disables what the config key enables.
	cmd.Flags().BoolVar(&noCoverageFlag, noCoverageFlagName, false, "run specs without measuring coverage")

	cmd.Flags().BoolVar(&retainTraceFlag, retainTraceFlagName, viper.GetBool(retainTraceKey), "keep the raw trace artifacts for debugging instead of deleting them")
	bindFlagToConfig(cmd.Flags().Lookup(retainTraceFlagName), retainTraceKey)

	cmd.Flags().StringVar(&shellFlag, shellFlagName, viper.GetString(runShellKey), "interpreter used to execute spec files")
	bindFlagToConfig(cmd.Flags().Lookup(shellFlagName), runShellKey)

	cmd.Flags().Int64(timeoutFlagName, viper.GetInt64(runTimeoutKey), "per-spec timeout in seconds")
	bindFlagToConfig(cmd.Flags().Lookup(timeoutFlagName), runTimeoutKey)
}
