package convert

import (
	"strings"
	"unicode"

	"github.com/yaronf/xmlrfc2md/sliceedit"
)

// fillColumns is the target width of the optional paragraph re-wrap pass.
const fillColumns = 120

var inlineEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"[", "\\[",
	"]", "\\]",
	"\t", " ",
)

// EscapeInline escapes the characters that are markup in the target
// dialect: angle brackets become entities, square brackets (link syntax)
// are backslash-escaped, and tabs are normalized to a single space.
func EscapeInline(t string) string {
	return inlineEscaper.Replace(t)
}

// escapeTitle is the lighter escaping used for caption and title text,
// which ends up inside an attribute block rather than running text.
func escapeTitle(t string) string {
	return strings.ReplaceAll(t, "\t", " ")
}

// escapeSource normalizes tabs inside fenced code content. Nothing else is
// touched: the content of a fence is verbatim.
func escapeSource(t string) string {
	return strings.ReplaceAll(t, "\t", " ")
}

// splitLines splits on newlines, discarding a final empty fragment when the
// text ends with a newline, so that joining the result with "\n" does not
// invent a trailing line.
func splitLines(t string) []string {
	lines := strings.Split(t, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// CollapseIndent strips the leading whitespace of every line, leaving a
// single marker space on lines that were indented. The exact indentation of
// the source tree is presentational only, but "this line was indented" is
// preserved. In span mode the lines are joined with single spaces instead
// of newlines, for content that must stay on one line.
func CollapseIndent(t string, span bool) string {
	lines := splitLines(t)
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		stripped := strings.TrimLeftFunc(ln, unicode.IsSpace)
		if stripped != ln {
			stripped = " " + stripped
		}
		out = append(out, stripped)
	}
	if span {
		return strings.Join(out, " ")
	}
	return strings.Join(out, "\n")
}

// ConcatWithGap joins two fragments of running text, inserting a single
// space unless the boundary already implies none is wanted: the left side
// ends with an opening bracket, a quote or a period, or the right side
// starts with whitespace. The source tree is whitespace-insensitive around
// inline elements, so the gap has to be reconstructed heuristically.
func ConcatWithGap(s, t string) string {
	if s == "" || t == "" {
		return s + t
	}
	switch s[len(s)-1] {
	case '(', '[', '.', '"':
		return s + t
	}
	switch t[0] {
	case ' ', '\n':
		return s + t
	}
	return s + " " + t
}

// lstrip removes leading whitespace, including newlines.
func lstrip(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

// prefixQuote puts a "> " marker in front of every line of t.
func prefixQuote(t string) string {
	lines := strings.Split(t, "\n")
	for i, ln := range lines {
		if ln == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + ln
		}
	}
	return strings.Join(lines, "\n")
}

// FillText greedily re-wraps every overlong line of text to fillColumns
// columns, breaking only at spaces (never at hyphens). Empty lines, markup
// directive lines (headings, table rows, attribute blocks) and the content
// of fenced blocks pass through verbatim. The pass is idempotent: wrapping
// already-wrapped text is a no-op.
//
// The wrap points are queued as single-byte edits on the original text, so
// the whole pass costs one allocation.
func FillText(text string) string {
	buf := sliceedit.NewBuffer([]byte(text))

	inFence := false
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "~~~") {
			inFence = !inFence
		} else if !inFence && len(line) > fillColumns && !isDirectiveLine(line) {
			wrapLine(buf, offset, line)
		}
		offset += len(line) + 1
	}

	return buf.String()
}

// isDirectiveLine reports whether a line holds markup that must never be
// re-wrapped: headings, table rows and attribute blocks.
func isDirectiveLine(line string) bool {
	return strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "|") ||
		strings.HasPrefix(line, "{:")
}

// wrapLine queues a newline edit at every wrap point of one overlong line.
// base is the byte offset of the line within the buffer's text.
func wrapLine(buf *sliceedit.Buffer, base int, line string) {
	start := 0    // start of the current visual line
	prev := -1    // last space seen since start
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' {
			continue
		}
		if i-start > fillColumns && prev > start {
			buf.Replace(base+prev, base+prev+1, "\n")
			start = prev + 1
		}
		prev = i
	}
	if len(line)-start > fillColumns && prev > start {
		buf.Replace(base+prev, base+prev+1, "\n")
	}
}
