// Package model defines the data structures for coverage measurement.
package model

import "github.com/gspu/critic/pkg/lineset"

// Path represents a file system path.
type Path string

// Heredoc describes one here-document block found in a source file.
// BodyEnd is the terminator line, or the last line of the file when the
// block is unterminated.
type Heredoc struct {
	Start      int
	Terminator string
	BodyEnd    int
}

// Classification holds the statically derived line categories of one
// source file. The sets are computed by independent passes and may
// overlap; a line is measurable when it is in neither BlankOrComment
// nor Structural.
type Classification struct {
	TotalLines     int
	BlankOrComment lineset.Set
	Structural     lineset.Set
	Ignored        lineset.Set
	Heredocs       []Heredoc
}
