package adapter

import (
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/gspu/critic/internal/model"
)

func TestParseSymbolDump(t *testing.T) {
	dump := "greet 4 /work/lib.sh\n" +
		"assert_eq 10 /tmp/critic/bootstrap.sh\n"

	decls := ParseSymbolDump([]byte(dump))

	require.Equal(t, []m.SymbolDecl{
		{Name: "greet", File: "/work/lib.sh", Line: 4},
		{Name: "assert_eq", File: "/tmp/critic/bootstrap.sh", Line: 10},
	}, decls)
}

func TestParseSymbolDumpPathWithSpaces(t *testing.T) {
	decls := ParseSymbolDump([]byte("fn 3 /work/my project/lib.sh\n"))

	require.Len(t, decls, 1)
	require.Equal(t, m.Path("/work/my project/lib.sh"), decls[0].File)
}

func TestParseSymbolDumpBareNameHasNoProvenance(t *testing.T) {
	decls := ParseSymbolDump([]byte("mystery\n"))

	require.Equal(t, []m.SymbolDecl{{Name: "mystery"}}, decls)
}

func TestParseSymbolDumpSkipsMalformedRecords(t *testing.T) {
	dump := "greet notanumber /work/lib.sh\n" +
		"\n" +
		"ok 1 /work/lib.sh\n"

	decls := ParseSymbolDump([]byte(dump))

	require.Equal(t, []m.SymbolDecl{{Name: "ok", File: "/work/lib.sh", Line: 1}}, decls)
}
