package controller

import (
	"bytes"
	"context"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "github.com/gspu/critic/internal/model"
)

func TestYAMLUIRendersDecodableReports(t *testing.T) {
	cmd, buf := captureCmd()
	ui := NewYAMLUI(cmd)

	require.NoError(t, ui.DisplayRunReports(context.Background(), sampleReports()))

	var decoded []m.RunReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, sampleReports(), decoded)
}

func TestYAMLUIOutputIsStable(t *testing.T) {
	cmd, buf := captureCmd()
	ui := NewYAMLUI(cmd)

	require.NoError(t, ui.DisplayRunReports(context.Background(), sampleReports()))

	var decoded []m.RunReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	again, err := yaml.Marshal(decoded)
	require.NoError(t, err)

	if !bytes.Equal(again, buf.Bytes()) {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(buf.String()),
			B:        difflib.SplitLines(string(again)),
			FromFile: "first",
			ToFile:   "second",
			Context:  2,
		})
		t.Fatalf("yaml output not stable across a round trip:\n%s", diff)
	}
}

func TestYAMLUIContainsExpectedFields(t *testing.T) {
	cmd, buf := captureCmd()
	ui := NewYAMLUI(cmd)

	require.NoError(t, ui.DisplayRunReports(context.Background(), sampleReports()))

	out := buf.String()
	require.Contains(t, out, "spec: examples/basic/lib_spec.sh")
	require.Contains(t, out, "file: /work/lib.sh")
	require.Contains(t, out, "percent: 66")
	require.Contains(t, out, "below_minimum: true")
	// Errors are omitted when empty.
	require.NotContains(t, out, "error:")
}

func TestYAMLUIEmptyReports(t *testing.T) {
	cmd, buf := captureCmd()
	ui := NewYAMLUI(cmd)

	require.NoError(t, ui.DisplayRunReports(context.Background(), []m.RunReport{}))
	require.Equal(t, "[]\n", buf.String())
}
