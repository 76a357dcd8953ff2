package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/gspu/critic/internal/model"
)

// SimpleUI renders coverage as plain tables on the cobra command's
// stdout.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayRunReports renders one section per spec run: a coverage table
// followed by the uncovered-line listings.
func (s *SimpleUI) DisplayRunReports(ctx context.Context, reports []m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, report := range reports {
		s.printf("\nCoverage for %s (exit %d)\n\n", report.Spec, report.ExitCode)

		if len(report.Results) == 0 {
			s.printf("  no subject files traced\n")
			continue
		}

		s.printf("%s", renderCoverageTable(report.Results))

		for _, result := range report.Results {
			if result.Errored() {
				s.printf("  %s: %s\n", result.File, result.Err)
				continue
			}

			if len(result.Uncovered) > 0 {
				s.printf("  %s uncovered: %s\n", result.File, joinLines(result.Uncovered))
			}
		}
	}

	return nil
}

func renderCoverageTable(results []m.CoverageResult) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"File", "Lines", "Covered", "Ignored", "Percent", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	for _, result := range results {
		table.Append([]string{
			string(result.File),
			strconv.Itoa(result.TotalLines),
			strconv.Itoa(result.Covered),
			strconv.Itoa(result.Ignored),
			fmt.Sprintf("%d%%", result.Percent),
			statusLabel(result),
		})
	}

	table.Render()

	return buf.String()
}

func statusLabel(result m.CoverageResult) string {
	switch {
	case result.Errored():
		return color.New(color.FgYellow).Sprint("error")
	case result.BelowMinimum:
		return color.New(color.FgRed).Sprint("low")
	default:
		return color.New(color.FgGreen).Sprint("ok")
	}
}

func joinLines(lines []int) string {
	parts := make([]string, 0, len(lines))
	for _, n := range lines {
		parts = append(parts, strconv.Itoa(n))
	}

	return strings.Join(parts, " ")
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
