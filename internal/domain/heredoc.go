package domain

import (
	m "github.com/gspu/critic/internal/model"
	"github.com/gspu/critic/pkg/lineset"
)

// ExpandHeredocs marks the full extent of every heredoc whose start line
// is covered. The tracer reports only the statement that opens a block
// and can never emit events for the embedded text, so the whole extent
// inherits coverage from the start line. A block whose start line is
// uncovered contributes nothing. The input set is not modified.
func ExpandHeredocs(covered lineset.Set, heredocs []m.Heredoc) lineset.Set {
	expanded := covered.Clone()

	for _, doc := range heredocs {
		if !expanded.Has(doc.Start) {
			continue
		}

		expanded.AddRange(doc.Start+1, doc.BodyEnd)
	}

	return expanded
}
