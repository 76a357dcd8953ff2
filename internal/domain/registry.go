package domain

import (
	"sort"

	m "github.com/gspu/critic/internal/model"
)

// SymbolRegistry partitions the functions declared in the traced process
// into subject symbols (declared in code under test) and everything
// else. It is built once per run from an injected enumeration and handed
// explicitly to the correlator and workflow; there is no ambient lookup.
type SymbolRegistry struct {
	symbols map[string]m.SymbolDecl
	subject map[string]struct{}
	harness m.Path
	spec    m.Path
}

// NewSymbolRegistry indexes the declared-symbol enumeration. Later
// declarations of the same name overwrite earlier ones, matching the
// interpreter's re-declaration behavior. A symbol with no resolvable
// declaring file stays non-subject: undercounting is preferred over
// counting harness code as covered subject code.
func NewSymbolRegistry(decls []m.SymbolDecl, harness, spec m.Path) *SymbolRegistry {
	r := &SymbolRegistry{
		symbols: make(map[string]m.SymbolDecl, len(decls)),
		subject: make(map[string]struct{}),
		harness: harness,
		spec:    spec,
	}

	for _, decl := range decls {
		r.symbols[decl.Name] = decl
	}

	for name, decl := range r.symbols {
		if decl.File == "" || decl.File == harness || decl.File == spec {
			continue
		}

		r.subject[name] = struct{}{}
	}

	return r
}

// Harness returns the harness bootstrap path the registry excludes.
func (r *SymbolRegistry) Harness() m.Path {
	return r.harness
}

// Spec returns the test-specification path the registry excludes.
func (r *SymbolRegistry) Spec() m.Path {
	return r.spec
}

// IsSubject reports whether the named symbol is code under test.
func (r *SymbolRegistry) IsSubject(name string) bool {
	_, ok := r.subject[name]
	return ok
}

// Provenance returns the declaring file and line for a symbol.
func (r *SymbolRegistry) Provenance(name string) (m.SymbolDecl, bool) {
	decl, ok := r.symbols[name]
	return decl, ok
}

// SubjectFiles returns the sorted distinct files that declare at least
// one subject symbol. These are the files tracked for coverage even when
// the trace never reaches them.
func (r *SymbolRegistry) SubjectFiles() []m.Path {
	seen := make(map[m.Path]struct{})

	for name := range r.subject {
		seen[r.symbols[name].File] = struct{}{}
	}

	files := make([]m.Path, 0, len(seen))
	for file := range seen {
		files = append(files, file)
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files
}
