package convert

import (
	"strings"
	"testing"
)

func TestConcatWithGap(t *testing.T) {
	tests := []struct {
		name string
		s    string
		t    string
		want string
	}{
		{"plain words", "foo", "bar", "foo bar"},
		{"empty left", "", "bar", "bar"},
		{"empty right", "foo", "", "foo"},
		{"after open paren", "(", "text", "(text"},
		{"after open bracket", "see [", "x", "see [x"},
		{"after period", "See.", "Then", "See.Then"},
		{"after quote", `say "`, "x", `say "x`},
		{"right starts with space", "foo", " bar", "foo bar"},
		{"right starts with newline", "foo", "\nbar", "foo\nbar"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ConcatWithGap(tc.s, tc.t); got != tc.want {
				t.Errorf("ConcatWithGap(%q, %q) = %q, want %q", tc.s, tc.t, got, tc.want)
			}
		})
	}
}

func TestCollapseIndent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		span bool
		want string
	}{
		{"flat text", "plain", false, "plain"},
		{"indented lines", "  indented\nplain\n   deep", false, " indented\nplain\n deep"},
		{"span mode", "  indented\nplain\n   deep", true, " indented plain deep"},
		{"trailing newline dropped", "one\ntwo\n", false, "one\ntwo"},
		{"trailing spaces kept", "word  \n  next", false, "word  \n next"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CollapseIndent(tc.in, tc.span); got != tc.want {
				t.Errorf("CollapseIndent(%q, %v) = %q, want %q", tc.in, tc.span, got, tc.want)
			}
		})
	}
}

func TestEscapeInline(t *testing.T) {
	got := EscapeInline("<a>[b]\tc")
	want := `&lt;a&gt;\[b\] c`
	if got != want {
		t.Errorf("EscapeInline = %q, want %q", got, want)
	}
}

func TestFillText(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", 50))

	wrapped := FillText(long)
	for i, ln := range strings.Split(wrapped, "\n") {
		if len(ln) > fillColumns {
			t.Errorf("line %d still %d columns wide: %q", i, len(ln), ln)
		}
	}
	if strings.ReplaceAll(wrapped, "\n", " ") != long {
		t.Error("wrapping changed the text content")
	}
	if again := FillText(wrapped); again != wrapped {
		t.Error("FillText is not idempotent")
	}
}

func TestFillTextPreservesMarkup(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", 50))
	tests := []struct {
		name string
		in   string
	}{
		{"heading line", "# " + long},
		{"table row", "|" + long},
		{"attribute block", "{: title='" + long + "'}"},
		{"fenced content", "~~~\n" + long + "\n~~~"},
		{"short lines", "one\ntwo\nthree"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FillText(tc.in); got != tc.in {
				t.Errorf("FillText rewrapped protected text:\n got %q\nwant %q", got, tc.in)
			}
		})
	}
}

func TestPrefixQuote(t *testing.T) {
	got := prefixQuote("first\n\nsecond")
	want := "> first\n>\n> second"
	if got != want {
		t.Errorf("prefixQuote = %q, want %q", got, want)
	}
}
