package controller

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	m "github.com/gspu/critic/internal/model"
)

func captureCmd() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	return cmd, buf
}

func sampleReports() []m.RunReport {
	return []m.RunReport{
		{
			Spec:     "examples/basic/lib_spec.sh",
			ExitCode: 0,
			Results: []m.CoverageResult{
				{
					File:       "/work/lib.sh",
					TotalLines: 15,
					Measurable: 9,
					Covered:    6,
					Ignored:    0,
					Percent:    66,
					Uncovered:  []int{11, 13, 14},
				},
				{
					File:         "/work/extra.sh",
					TotalLines:   4,
					Measurable:   2,
					Covered:      0,
					Percent:      0,
					Uncovered:    []int{2, 3},
					BelowMinimum: true,
				},
			},
		},
	}
}

func TestSimpleUIDisplaysCoverageTable(t *testing.T) {
	color.NoColor = true

	cmd, buf := captureCmd()
	ui := NewSimpleUI(cmd)

	require.NoError(t, ui.DisplayRunReports(context.Background(), sampleReports()))

	out := buf.String()
	require.Contains(t, out, "Coverage for examples/basic/lib_spec.sh (exit 0)")
	require.Contains(t, out, "/work/lib.sh")
	require.Contains(t, out, "66%")
	require.Contains(t, out, "ok")
	require.Contains(t, out, "low")
	require.Contains(t, out, "/work/lib.sh uncovered: 11 13 14")
}

func TestSimpleUIDisplaysErroredFile(t *testing.T) {
	color.NoColor = true

	cmd, buf := captureCmd()
	ui := NewSimpleUI(cmd)

	reports := []m.RunReport{{
		Spec: "s.sh",
		Results: []m.CoverageResult{
			{File: "/work/gone.sh", Err: "open /work/gone.sh: no such file"},
		},
	}}

	require.NoError(t, ui.DisplayRunReports(context.Background(), reports))

	out := buf.String()
	require.Contains(t, out, "error")
	require.Contains(t, out, "open /work/gone.sh: no such file")
}

func TestSimpleUINoSubjectFiles(t *testing.T) {
	cmd, buf := captureCmd()
	ui := NewSimpleUI(cmd)

	require.NoError(t, ui.DisplayRunReports(context.Background(), []m.RunReport{{Spec: "s.sh"}}))

	require.Contains(t, buf.String(), "no subject files traced")
}

func TestSimpleUIHonorsContextCancellation(t *testing.T) {
	cmd, buf := captureCmd()
	ui := NewSimpleUI(cmd)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, ui.DisplayRunReports(ctx, sampleReports()))
	require.Empty(t, buf.String())
}
