package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gspu/critic/internal/adapter"
	"github.com/gspu/critic/internal/controller"
	m "github.com/gspu/critic/internal/model"
	"github.com/gspu/critic/pkg/lineset"
)

// ErrRunFailed signals that at least one spec run failed: a non-zero
// script exit, an unreadable subject file, or coverage below the
// configured minimum. The caller folds it into the exit code.
var ErrRunFailed = errors.New("one or more spec runs failed")

// RunArgs carries the configuration of one invocation of the harness.
// The per-spec timeout is the runner's own concern and is set at its
// construction.
type RunArgs struct {
	Specs           []m.Path
	Reports         m.Path
	CoverageEnabled bool
	MinimumPercent  int
	RetainTrace     bool
}

// ViewArgs carries the configuration of the view command. UI overrides
// the workflow's default presentation when set, so the view command can
// pick table, YAML or TUI output after flag parsing.
type ViewArgs struct {
	Reports m.Path
	UI      controller.UI
}

// Workflow runs spec files under the tracer and reports coverage.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	View(ctx context.Context, args ViewArgs) error
}

const classifierCacheSize = 128

type workflow struct {
	fs     adapter.SourceFSAdapter
	runner adapter.ShellRunner
	store  adapter.ReportStore
	ui     controller.UI

	// Classifications are pure functions of content, so they are cached
	// by content hash across spec runs within one invocation.
	classCache *lru.Cache[string, m.Classification]
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	runner adapter.ShellRunner,
	store adapter.ReportStore,
	ui controller.UI,
) Workflow {
	cache, err := lru.New[string, m.Classification](classifierCacheSize)
	if err != nil {
		// Only reachable with a non-positive size.
		panic(err)
	}

	return &workflow{
		fs:         fs,
		runner:     runner,
		store:      store,
		ui:         ui,
		classCache: cache,
	}
}

// NewViewWorkflow creates a Workflow limited to viewing persisted
// reports. Run fails since no shell runner is attached.
func NewViewWorkflow(store adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{store: store, ui: ui}
}

// Run executes every spec file, renders the combined report, persists it
// and returns ErrRunFailed when any run should fail the invocation.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	if w.runner == nil {
		return errors.New("workflow has no shell runner")
	}

	reports := make([]m.RunReport, 0, len(args.Specs))

	for _, spec := range args.Specs {
		report, err := w.runSpec(ctx, spec, args)
		if err != nil {
			return fmt.Errorf("run %s: %w", spec, err)
		}

		reports = append(reports, report)
	}

	if err := w.ui.DisplayRunReports(ctx, reports); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if args.Reports != "" {
		if err := w.store.SaveReports(args.Reports, reports); err != nil {
			return fmt.Errorf("persist reports: %w", err)
		}
	}

	for _, report := range reports {
		if report.Failed() {
			return ErrRunFailed
		}
	}

	return nil
}

// View renders previously persisted reports.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	reports, err := w.store.LoadReports(args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	ui := args.UI
	if ui == nil {
		ui = w.ui
	}

	return ui.DisplayRunReports(ctx, reports)
}

// runSpec traces one spec file and computes its coverage. The engine is
// single-threaded and runs strictly after the traced execution; the
// trace artifacts are removed on every exit path unless retained.
func (w *workflow) runSpec(ctx context.Context, spec m.Path, args RunArgs) (m.RunReport, error) {
	specAbs, err := w.fs.Abs(spec)
	if err != nil {
		return m.RunReport{}, fmt.Errorf("resolve spec path: %w", err)
	}

	if _, err := w.fs.FileInfo(specAbs); err != nil {
		return m.RunReport{}, fmt.Errorf("spec file: %w", err)
	}

	session, err := adapter.NewTraceSession()
	if err != nil {
		return m.RunReport{}, err
	}
	defer session.Cleanup(args.RetainTrace)

	exitCode, err := w.runner.Run(ctx, specAbs, session)
	if err != nil {
		return m.RunReport{}, err
	}

	report := m.RunReport{Spec: spec, ExitCode: exitCode}
	if !args.CoverageEnabled {
		return report, nil
	}

	decls, err := session.Symbols()
	if err != nil {
		return m.RunReport{}, err
	}

	events, err := session.Events()
	if err != nil {
		return m.RunReport{}, err
	}

	registry := NewSymbolRegistry(decls, session.HarnessPath, specAbs)
	hits := Correlate(events, registry)

	opts := ReporterOptions{MinimumPercent: args.MinimumPercent}
	for _, file := range trackedFiles(registry, hits) {
		report.Results = append(report.Results, w.reportFile(file, hits[file], opts))
	}

	return report, nil
}

// trackedFiles is the sorted union of files declaring subject symbols
// and files the trace actually reached.
func trackedFiles(registry *SymbolRegistry, hits map[m.Path]*FileHits) []m.Path {
	seen := make(map[m.Path]struct{})

	for _, file := range registry.SubjectFiles() {
		seen[file] = struct{}{}
	}

	for file := range hits {
		seen[file] = struct{}{}
	}

	files := make([]m.Path, 0, len(seen))
	for file := range seen {
		files = append(files, file)
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files
}

// reportFile builds one file's result. Errors stay isolated here so no
// single file can prevent the rest of the report.
func (w *workflow) reportFile(file m.Path, hits *FileHits, opts ReporterOptions) m.CoverageResult {
	cls, err := w.classify(file)
	if err != nil {
		slog.Warn("subject file unreadable at report time", "file", file, "error", err)
		return ErroredResult(file, err)
	}

	covered := lineset.New()
	if hits != nil {
		covered = hits.CoveredLines()
	}

	covered = ExpandHeredocs(covered, cls.Heredocs)

	result := BuildResult(file, cls, covered, opts)

	slog.Debug("file reported",
		"file", file, "covered", result.Covered, "percent", result.Percent)

	return result
}

// classify returns the file's classification, cached by content hash so
// a file shared across spec runs is read and classified once.
func (w *workflow) classify(file m.Path) (m.Classification, error) {
	key, err := w.fs.HashFile(file)
	if err != nil {
		return m.Classification{}, err
	}

	if cls, ok := w.classCache.Get(key); ok {
		return cls, nil
	}

	content, err := w.fs.ReadFile(file)
	if err != nil {
		return m.Classification{}, err
	}

	cls := Classify(file, content)
	w.classCache.Add(key, cls)

	return cls, nil
}
