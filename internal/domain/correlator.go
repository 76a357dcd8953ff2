package domain

import (
	m "github.com/gspu/critic/internal/model"
	"github.com/gspu/critic/pkg/lineset"
)

// FileHits accumulates the trace observations for one subject file.
// LineHits keeps the raw multiset of observed line numbers; SymbolHits
// records which subject symbols were invoked, ready for function-level
// coverage later. The base report only consumes the deduplicated lines.
type FileHits struct {
	LineHits   map[int]int
	SymbolHits map[string]struct{}
}

func newFileHits() *FileHits {
	return &FileHits{
		LineHits:   make(map[int]int),
		SymbolHits: make(map[string]struct{}),
	}
}

// CoveredLines derives the covered set from the multiset. Every line
// observed at least once is covered exactly once, no matter how often it
// ran. This must stay insert-if-absent set semantics, never an
// "appears exactly once" occurrence filter, which would drop lines
// executed more than twice.
func (h *FileHits) CoveredLines() lineset.Set {
	covered := lineset.New()
	for line := range h.LineHits {
		covered.Add(line)
	}

	return covered
}

// Correlate walks the trace once and groups subject events by file.
// Events originating from the harness bootstrap or the spec file are
// discarded outright; temporal order carries no meaning for coverage.
func Correlate(events []m.TraceEvent, registry *SymbolRegistry) map[m.Path]*FileHits {
	hits := make(map[m.Path]*FileHits)

	for _, event := range events {
		if event.File == registry.Harness() || event.File == registry.Spec() {
			continue
		}

		fileHits, ok := hits[event.File]
		if !ok {
			fileHits = newFileHits()
			hits[event.File] = fileHits
		}

		fileHits.LineHits[event.Line]++

		if event.Symbol != "" && registry.IsSubject(event.Symbol) {
			fileHits.SymbolHits[event.Symbol] = struct{}{}
		}
	}

	return hits
}
