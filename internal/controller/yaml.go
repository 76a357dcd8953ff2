package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "github.com/gspu/critic/internal/model"
)

// YAMLUI renders reports as YAML for machine consumption.
type YAMLUI struct {
	cmd *cobra.Command
}

// NewYAMLUI creates a new YAMLUI.
func NewYAMLUI(cmd *cobra.Command) *YAMLUI {
	return &YAMLUI{cmd: cmd}
}

// DisplayRunReports encodes the reports to the command's stdout.
func (y *YAMLUI) DisplayRunReports(ctx context.Context, reports []m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := yaml.Marshal(reports)
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}

	_, err = fmt.Fprint(y.cmd.OutOrStdout(), string(raw))

	return err
}
