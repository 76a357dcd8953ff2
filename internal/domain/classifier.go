// Package domain implements the coverage engine: line classification,
// the declared-symbol registry, trace correlation, heredoc expansion and
// per-file report building, plus the workflow that ties them together.
package domain

import (
	"log/slog"
	"regexp"
	"strings"

	m "github.com/gspu/critic/internal/model"
	"github.com/gspu/critic/pkg/lineset"
)

var (
	// Function headers: `name() {`, `name()`, `function name {` and the
	// `function name() {` mix. The tracer never reports these as discrete
	// statements, so they would otherwise always read as uncovered.
	functionHeaderRe = regexp.MustCompile(`^\s*(?:function\s+[A-Za-z_][A-Za-z0-9_]*\s*(?:\(\s*\))?|[A-Za-z_][A-Za-z0-9_]*\s*\(\s*\))\s*\{?\s*$`)

	closingBraceRe = regexp.MustCompile(`^\s*\}\s*$`)

	ignoreOpenRe  = regexp.MustCompile(`^\s*#\s*critic\s+ignore\b`)
	ignoreCloseRe = regexp.MustCompile(`^\s*#\s*critic\s+/ignore\b`)

	// Here-document redirection with its delimiter word. The leading
	// `(?:^|[^<])` keeps here-strings (`<<<`) from matching.
	heredocStartRe = regexp.MustCompile(`(?:^|[^<])<<(-?)[ \t]*\\?(["']?)([A-Za-z_][A-Za-z0-9_]*)`)
)

// Classify statically partitions one file's lines into the coverage
// categories. It is a pure function of the content and never fails;
// text it cannot make sense of simply yields smaller sets.
func Classify(path m.Path, content []byte) m.Classification {
	lines := splitLines(content)

	return m.Classification{
		TotalLines:     len(lines),
		BlankOrComment: blankOrCommentLines(lines),
		Structural:     structuralLines(lines),
		Ignored:        ignoredLines(lines),
		Heredocs:       findHeredocs(path, lines),
	}
}

// splitLines breaks content into lines without the trailing empty
// element a final newline would otherwise produce.
func splitLines(content []byte) []string {
	text := strings.TrimSuffix(string(content), "\n")
	if text == "" {
		return nil
	}

	return strings.Split(text, "\n")
}

func blankOrCommentLines(lines []string) lineset.Set {
	set := lineset.New()

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			set.Add(i + 1)
		}
	}

	return set
}

func structuralLines(lines []string) lineset.Set {
	set := lineset.New()

	for i, line := range lines {
		if functionHeaderRe.MatchString(line) || closingBraceRe.MatchString(line) {
			set.Add(i + 1)
		}
	}

	return set
}

// ignoredLines collects the inclusive ranges between `# critic ignore`
// and `# critic /ignore` markers. A simple inside/outside state machine
// over ordered lines: a second open while inside is part of the region,
// a close while outside is an ordinary comment, and an unmatched open
// ignores through end-of-file.
func ignoredLines(lines []string) lineset.Set {
	set := lineset.New()
	inside := false

	for i, line := range lines {
		switch {
		case !inside && ignoreOpenRe.MatchString(line):
			inside = true

			set.Add(i + 1)
		case inside:
			set.Add(i + 1)

			if ignoreCloseRe.MatchString(line) {
				inside = false
			}
		}
	}

	return set
}

// findHeredocs pairs each here-document redirection with the next
// standalone line equal to its terminator. For the `<<-` form leading
// tabs are stripped before comparing, matching the interpreter. An
// unterminated block extends to end-of-file.
func findHeredocs(path m.Path, lines []string) []m.Heredoc {
	var docs []m.Heredoc

	for i := 0; i < len(lines); i++ {
		match := heredocStartRe.FindStringSubmatch(lines[i])
		if match == nil {
			continue
		}

		stripTabs := match[1] == "-"
		terminator := match[3]

		bodyEnd := len(lines)
		terminated := false

		for j := i + 1; j < len(lines); j++ {
			candidate := lines[j]
			if stripTabs {
				candidate = strings.TrimLeft(candidate, "\t")
			}

			if candidate == terminator {
				bodyEnd = j + 1
				terminated = true

				break
			}
		}

		if !terminated {
			slog.Debug("unterminated heredoc, extending to end of file",
				"file", path, "line", i+1, "terminator", terminator)
		}

		docs = append(docs, m.Heredoc{Start: i + 1, Terminator: terminator, BodyEnd: bodyEnd})

		// Resume scanning after the block so delimiter-looking text in the
		// body is not mistaken for another redirection.
		i = bodyEnd - 1
	}

	return docs
}

// Measurable derives the set of lines eligible for coverage from a
// classification: every line that is neither blank/comment nor
// structural.
func Measurable(cls m.Classification) lineset.Set {
	all := lineset.New()
	all.AddRange(1, cls.TotalLines)

	return all.Diff(cls.BlankOrComment).Diff(cls.Structural)
}
