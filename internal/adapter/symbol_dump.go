package adapter

import (
	"strconv"
	"strings"

	m "github.com/gspu/critic/internal/model"
)

// ParseSymbolDump decodes the declared-function enumeration produced by
// the interpreter under extdebug, one `name line file` record per line.
// Records that cannot be decoded yield a declaration without provenance,
// which the registry treats as non-subject; everything else is skipped.
func ParseSymbolDump(raw []byte) []m.SymbolDecl {
	var decls []m.SymbolDecl

	for _, line := range strings.Split(string(raw), "\n") {
		fields := strings.Fields(line)

		switch {
		case len(fields) >= 3:
			lineNo, err := strconv.Atoi(fields[1])
			if err != nil {
				continue
			}

			// File paths may contain spaces; everything after the line
			// number belongs to the path.
			file := strings.Join(fields[2:], " ")
			decls = append(decls, m.SymbolDecl{
				Name: fields[0],
				File: m.Path(file),
				Line: lineNo,
			})
		case len(fields) == 1:
			// A bare name has no resolvable provenance.
			decls = append(decls, m.SymbolDecl{Name: fields[0]})
		}
	}

	return decls
}
