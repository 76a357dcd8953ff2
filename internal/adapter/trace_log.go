package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	m "github.com/gspu/critic/internal/model"
)

// traceLineRe matches one xtrace record: `(<file>:<line>): args` with an
// optional `symbol(): ` segment when the statement was a function call.
// The interpreter repeats the first PS4 character once per nesting
// level, hence the leading run of opening parens.
var traceLineRe = regexp.MustCompile(`^\(+(.+?):([0-9]+)\):\s*(?:([A-Za-z_][A-Za-z0-9_]*)\(\):\s*)?(.*)$`)

// ParseTrace decodes the raw trace stream. Lines that do not match the
// record pattern are interpreter noise and are skipped silently; the
// result computed from a noisy log is identical to one computed with the
// noise removed.
func ParseTrace(raw []byte) []m.TraceEvent {
	var events []m.TraceEvent

	for _, line := range strings.Split(string(raw), "\n") {
		match := traceLineRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		lineNo, err := strconv.Atoi(match[2])
		if err != nil || lineNo < 1 {
			continue
		}

		events = append(events, m.TraceEvent{
			File:   m.Path(match[1]),
			Line:   lineNo,
			Symbol: match[3],
			Args:   match[4],
		})
	}

	return events
}

// TraceSession owns the on-disk artifacts of one traced run: the trace
// log the interpreter appends to and the declared-symbol dump written at
// the end of the run. Both live in a private temp directory that is
// removed on every exit path unless the caller asks to retain it.
type TraceSession struct {
	TracePath   m.Path
	SymbolsPath m.Path

	// HarnessPath is where the runner writes its bootstrap script. From
	// the trace's point of view this is the harness file, and events
	// attributed to it are excluded from coverage.
	HarnessPath m.Path

	dir string
}

// NewTraceSession allocates the session directory and its artifacts.
func NewTraceSession() (*TraceSession, error) {
	dir, err := os.MkdirTemp("", "critic-trace-*")
	if err != nil {
		return nil, fmt.Errorf("create trace dir: %w", err)
	}

	session := &TraceSession{
		TracePath:   m.Path(filepath.Join(dir, "trace.log")),
		SymbolsPath: m.Path(filepath.Join(dir, "symbols")),
		HarnessPath: m.Path(filepath.Join(dir, "bootstrap.sh")),
		dir:         dir,
	}

	for _, path := range []m.Path{session.TracePath, session.SymbolsPath} {
		if err := os.WriteFile(string(path), nil, 0o600); err != nil {
			_ = os.RemoveAll(dir)
			return nil, fmt.Errorf("create trace artifact: %w", err)
		}
	}

	return session, nil
}

// Events reads the trace log in full and decodes it. The log is a
// write-once artifact; it is read exactly once, at finalization.
func (s *TraceSession) Events() ([]m.TraceEvent, error) {
	raw, err := os.ReadFile(string(s.TracePath))
	if err != nil {
		return nil, fmt.Errorf("read trace log: %w", err)
	}

	return ParseTrace(raw), nil
}

// Symbols reads and decodes the declared-symbol dump.
func (s *TraceSession) Symbols() ([]m.SymbolDecl, error) {
	raw, err := os.ReadFile(string(s.SymbolsPath))
	if err != nil {
		return nil, fmt.Errorf("read symbol dump: %w", err)
	}

	return ParseSymbolDump(raw), nil
}

// Cleanup removes the session directory. With retain set the artifacts
// are kept for inspection and their location logged instead.
func (s *TraceSession) Cleanup(retain bool) {
	if retain {
		slog.Info("trace artifacts retained", "dir", s.dir)
		return
	}

	if err := os.RemoveAll(s.dir); err != nil {
		slog.Warn("failed to remove trace artifacts", "dir", s.dir, "error", err)
	}
}
