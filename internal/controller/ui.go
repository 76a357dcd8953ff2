// Package controller provides the output surfaces for coverage reports:
// a plain table renderer, a YAML renderer and an interactive TUI.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "github.com/gspu/critic/internal/model"
)

// Format selects how stored reports are rendered by the view command.
type Format string

// Recognized output formats.
const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// UI renders run reports. Implementations decide presentation only; all
// numbers arrive precomputed.
type UI interface {
	// DisplayRunReports renders the reports of a completed run.
	DisplayRunReports(ctx context.Context, reports []m.RunReport) error
}

// NewUI picks the presentation for the view command: YAML when asked
// for, the interactive TUI on a terminal, the plain table otherwise.
func NewUI(cmd *cobra.Command, format Format, tty bool) UI {
	switch {
	case format == FormatYAML:
		return NewYAMLUI(cmd)
	case tty:
		return NewTUI(cmd.OutOrStdout())
	default:
		return NewSimpleUI(cmd)
	}
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
