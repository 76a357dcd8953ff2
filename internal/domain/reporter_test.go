package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gspu/critic/pkg/lineset"
)

// Ten lines: 1-2 comments, 3-10 code.
const tenLineScript = `# header
# more header
a=1
b=2
c=3
d=4
e=5
f=6
g=7
h=8
`

func TestBuildResultBasicPercentage(t *testing.T) {
	cls := Classify("a.sh", []byte(tenLineScript))
	covered := lineset.New(3, 4, 5)

	result := BuildResult("a.sh", cls, covered, ReporterOptions{})

	require.Equal(t, 8, result.Measurable)
	require.Equal(t, 3, result.Covered)
	// 3*100/8 with integer division.
	require.Equal(t, 37, result.Percent)
	require.Equal(t, []int{6, 7, 8, 9, 10}, result.Uncovered)
	require.False(t, result.BelowMinimum)
}

func TestBuildResultIgnoredStaysInDenominatorButNotListing(t *testing.T) {
	script := strings.Join([]string{
		"# header",         // 1
		"",                 // 2
		"a=1",              // 3
		"b=2",              // 4
		"# critic ignore",  // 5
		"c=3",              // 6
		"# critic /ignore", // 7
		"d=4",              // 8
	}, "\n")

	cls := Classify("b.sh", []byte(script))
	covered := lineset.New(3)

	result := BuildResult("b.sh", cls, covered, ReporterOptions{})

	// measurable = {3,4,6,8}; denominator = measurable ∪ {5,6,7} = 6 lines.
	require.Equal(t, 4, result.Measurable)
	require.Equal(t, 3, result.Ignored)
	require.Equal(t, 1, result.Covered)
	require.Equal(t, 100/6, result.Percent)

	// Ignored lines are hidden from the listing even though they still
	// weigh in the percentage.
	require.Equal(t, []int{4, 8}, result.Uncovered)
}

func TestBuildResultEmptyDenominatorIsFullyCovered(t *testing.T) {
	script := "# only comments\n\n# nothing to measure\n"
	cls := Classify("c.sh", []byte(script))

	result := BuildResult("c.sh", cls, lineset.New(), ReporterOptions{})

	require.Equal(t, 0, result.Measurable)
	require.Equal(t, 100, result.Percent)
	require.Empty(t, result.Uncovered)
}

func TestBuildResultEmptyFileIsFullyCovered(t *testing.T) {
	cls := Classify("empty.sh", nil)

	result := BuildResult("empty.sh", cls, lineset.New(), ReporterOptions{})

	require.Equal(t, 100, result.Percent)
}

func TestBuildResultBelowMinimumFlag(t *testing.T) {
	cls := Classify("a.sh", []byte(tenLineScript))
	covered := lineset.New(3, 4, 5)

	result := BuildResult("a.sh", cls, covered, ReporterOptions{MinimumPercent: 50})
	require.True(t, result.BelowMinimum)

	result = BuildResult("a.sh", cls, covered, ReporterOptions{MinimumPercent: 37})
	require.False(t, result.BelowMinimum)
}

func TestBuildResultCoverageOutsideMeasurableIsDropped(t *testing.T) {
	cls := Classify("a.sh", []byte(tenLineScript))
	// Lines 1-2 are comments; the tracer should never report them, but a
	// noisy log must not inflate the numbers.
	covered := lineset.New(1, 2, 3)

	result := BuildResult("a.sh", cls, covered, ReporterOptions{})

	require.Equal(t, 1, result.Covered)
}

func TestErroredResult(t *testing.T) {
	result := ErroredResult("gone.sh", errors.New("open gone.sh: no such file"))

	require.True(t, result.Errored())
	require.Equal(t, "open gone.sh: no such file", result.Err)
	require.Equal(t, 0, result.Percent)
}
