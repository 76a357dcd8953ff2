package domain

import (
	m "github.com/gspu/critic/internal/model"
	"github.com/gspu/critic/pkg/lineset"
)

// ReporterOptions configures per-file report building.
type ReporterOptions struct {
	// MinimumPercent flags files below this percentage. The flag is data
	// for the caller; building the result never fails because of it.
	MinimumPercent int
}

// BuildResult combines a file's classification with its post-expansion
// covered set.
//
// The percentage denominator keeps ignored lines: an ignore block hides
// its lines from the uncovered listing but still weighs in the
// percentage. Scripts in the wild have tuned their thresholds against
// this behavior, so it is kept as-is rather than silently corrected.
func BuildResult(file m.Path, cls m.Classification, covered lineset.Set, opts ReporterOptions) m.CoverageResult {
	measurable := Measurable(cls)
	denominator := measurable.Union(cls.Ignored)
	coveredMeasurable := covered.Intersect(measurable)

	// An empty or fully-structural file is trivially fully covered.
	percent := 100
	if denominator.Len() > 0 {
		percent = coveredMeasurable.Len() * 100 / denominator.Len()
	}

	uncovered := measurable.Diff(cls.Ignored).Diff(coveredMeasurable).Sorted()

	return m.CoverageResult{
		File:         file,
		TotalLines:   cls.TotalLines,
		Measurable:   measurable.Len(),
		Covered:      coveredMeasurable.Len(),
		Ignored:      cls.Ignored.Len(),
		Percent:      percent,
		Uncovered:    uncovered,
		BelowMinimum: percent < opts.MinimumPercent,
	}
}

// ErroredResult records a file whose source could not be read back at
// report time. The error stays isolated to this file's result so the
// remaining files are still reported.
func ErroredResult(file m.Path, err error) m.CoverageResult {
	return m.CoverageResult{File: file, Err: err.Error()}
}
