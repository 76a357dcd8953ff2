package adapter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/gspu/critic/internal/model"
)

func TestReportStoreRoundTrip(t *testing.T) {
	store := NewFileReportStore()
	dir := m.Path(filepath.Join(t.TempDir(), "reports"))

	reports := []m.RunReport{
		{
			Spec:     "/work/lib_spec.sh",
			ExitCode: 0,
			Results: []m.CoverageResult{
				{
					File:       "/work/lib.sh",
					TotalLines: 12,
					Measurable: 8,
					Covered:    6,
					Ignored:    1,
					Percent:    66,
					Uncovered:  []int{9, 11},
				},
			},
		},
	}

	require.NoError(t, store.SaveReports(dir, reports))

	loaded, err := store.LoadReports(dir)
	require.NoError(t, err)
	require.Equal(t, reports, loaded)
}

func TestReportStoreLoadMissing(t *testing.T) {
	store := NewFileReportStore()

	_, err := store.LoadReports(m.Path(t.TempDir()))
	require.Error(t, err)
}

func TestReportStoreSaveOverwrites(t *testing.T) {
	store := NewFileReportStore()
	dir := m.Path(t.TempDir())

	first := []m.RunReport{{Spec: "a_spec.sh"}}
	second := []m.RunReport{{Spec: "b_spec.sh", ExitCode: 1}}

	require.NoError(t, store.SaveReports(dir, first))
	require.NoError(t, store.SaveReports(dir, second))

	loaded, err := store.LoadReports(dir)
	require.NoError(t, err)
	require.Equal(t, second, loaded)
}
