package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/gspu/critic/internal/model"
	"github.com/gspu/critic/pkg/lineset"
)

func TestExpandHeredocsCoversBodyThroughTerminator(t *testing.T) {
	// Block starts at 12, terminator EOF at 16; trace only sees line 12.
	heredocs := []m.Heredoc{{Start: 12, Terminator: "EOF", BodyEnd: 16}}
	covered := lineset.New(12)

	expanded := ExpandHeredocs(covered, heredocs)

	require.Equal(t, []int{12, 13, 14, 15, 16}, expanded.Sorted())
}

func TestExpandHeredocsSkipsUncoveredStart(t *testing.T) {
	heredocs := []m.Heredoc{{Start: 12, Terminator: "EOF", BodyEnd: 16}}
	covered := lineset.New(3)

	expanded := ExpandHeredocs(covered, heredocs)

	require.Equal(t, []int{3}, expanded.Sorted())
}

func TestExpandHeredocsIsMonotonic(t *testing.T) {
	heredocs := []m.Heredoc{
		{Start: 2, Terminator: "A", BodyEnd: 4},
		{Start: 8, Terminator: "B", BodyEnd: 9},
	}
	covered := lineset.New(1, 2, 7)

	expanded := ExpandHeredocs(covered, heredocs)

	for _, line := range covered.Sorted() {
		require.True(t, expanded.Has(line))
	}
}

func TestExpandHeredocsDoesNotMutateInput(t *testing.T) {
	heredocs := []m.Heredoc{{Start: 1, Terminator: "EOF", BodyEnd: 3}}
	covered := lineset.New(1)

	_ = ExpandHeredocs(covered, heredocs)

	require.Equal(t, []int{1}, covered.Sorted())
}
