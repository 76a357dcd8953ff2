package model

// CoverageResult holds the coverage numbers for a single subject file.
// Uncovered lists measurable lines that were neither executed nor
// inside an ignore block, in ascending order.
type CoverageResult struct {
	File         Path   `yaml:"file" msgpack:"file"`
	TotalLines   int    `yaml:"total_lines" msgpack:"total_lines"`
	Measurable   int    `yaml:"measurable" msgpack:"measurable"`
	Covered      int    `yaml:"covered" msgpack:"covered"`
	Ignored      int    `yaml:"ignored" msgpack:"ignored"`
	Percent      int    `yaml:"percent" msgpack:"percent"`
	Uncovered    []int  `yaml:"uncovered,omitempty" msgpack:"uncovered"`
	BelowMinimum bool   `yaml:"below_minimum" msgpack:"below_minimum"`
	Err          string `yaml:"error,omitempty" msgpack:"error"`
}

// Errored reports whether the file could not be read back at report time.
func (r CoverageResult) Errored() bool {
	return r.Err != ""
}

// RunReport groups the per-file results of one spec-file run together
// with the spec script's own exit code.
type RunReport struct {
	Spec     Path             `yaml:"spec" msgpack:"spec"`
	ExitCode int              `yaml:"exit_code" msgpack:"exit_code"`
	Results  []CoverageResult `yaml:"coverage,omitempty" msgpack:"coverage"`
}

// Failed reports whether the run should count against the caller: the
// spec script exited non-zero, a file could not be reported, or a file
// fell below the configured minimum percentage.
func (r RunReport) Failed() bool {
	if r.ExitCode != 0 {
		return true
	}

	for _, result := range r.Results {
		if result.BelowMinimum || result.Errored() {
			return true
		}
	}

	return false
}
