package convert

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/yaronf/xmlrfc2md/rfcdoc"
)

// An ialPair is one key-value entry of a kramdown inline attribute list.
type ialPair struct {
	Key string
	Val string
}

// generateIAL renders a kramdown inline attribute list, like
// {: #anchor title='Caption'}. The id key uses the short #value form.
func generateIAL(pairs ...ialPair) string {
	if len(pairs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("{:")
	for _, p := range pairs {
		if p.Key == "id" {
			sb.WriteString(" #" + p.Val)
		} else {
			sb.WriteString(" " + p.Key + "='" + p.Val + "'")
		}
	}
	sb.WriteString("}")
	return sb.String()
}

// extractSourceCode renders a sourcecode or artwork element as a fenced
// block. The markers and name attributes survive as an attribute list.
//
// A type attribute is copied onto the fence as the language annotation, on
// faith: xml2rfc does not validate it and neither do we, so the warning is
// throttled to once per run. The chroma lexer registry tells us at least
// whether a highlighter would recognize the tag.
func (c *Converter) extractSourceCode(e *rfcdoc.Node) string {
	lang, hasLang := e.Lookup("type")
	t := escapeSource(e.Text)

	var pairs []ialPair
	if e.Get("markers") == "true" {
		pairs = append(pairs, ialPair{"sourcecode-markers", "true"})
	}
	if name, ok := e.Lookup("name"); ok {
		pairs = append(pairs, ialPair{"sourcecode-name", name})
	}
	ial := ""
	if len(pairs) > 0 {
		ial = "\n" + generateIAL(pairs...)
	}

	if !hasLang {
		return "\n~~~\n" + t + "\n~~~" + ial
	}
	c.throttle("warn-lang", "language tag for source code may be incorrect",
		"lang", lang, "recognized", lexers.Get(lang) != nil)
	return "\n~~~ " + lang + "\n" + t + "\n~~~" + ial
}

// extractFigure renders a figure element. A figure wraps one artwork or
// sourcecode child; when the figure offers an artset of alternate
// renditions, the ASCII-art fallback is selected because the target markup
// cannot embed the richer forms. Caption and anchor attach as a trailing
// attribute list associating an identifier and a title with the fence.
func (c *Converter) extractFigure(e *rfcdoc.Node) string {
	anchor, hasAnchor := e.Lookup("anchor")
	display := anchor
	if !hasAnchor {
		display = "[no anchor]"
	}

	var content *rfcdoc.Node
	if e.Find("artset") != nil {
		c.log.Warnw("artset found for figure, kramdown does not support raw SVG yet, extracting ASCII art",
			"figure", display)
		content = e.FindWithAttr("artset/artwork", "type", "ascii-art")
		if content == nil {
			c.log.Errorw("no ASCII art for figure", "figure", display)
			return ""
		}
	} else {
		content = e.Find("artwork")
		if content == nil {
			content = e.Find("sourcecode")
		}
		if content == nil {
			c.log.Warnw("figure has no content", "figure", display)
			return ""
		}
	}

	nameEl := e.Find("name")
	if nameEl == nil {
		return c.extractSourceCode(content)
	}
	name := nameEl.Text
	if hasAnchor {
		return c.extractSourceCode(content) + "\n" + generateIAL(ialPair{"id", anchor}, ialPair{"title", name}) + "\n"
	}
	return c.extractSourceCode(content) + "\n" + generateIAL(ialPair{"title", name}) + "\n"
}

// extractTable renders a table element: an optional header row followed by
// its alignment row, then every body row, all cells in span mode so no cell
// spills over its line. A malformed table (no head row where a head exists,
// no body, no body rows) renders as an empty string with a diagnostic, and
// callers must tolerate that.
func (c *Converter) extractTable(root *rfcdoc.Node) (string, error) {
	anchor, hasAnchor := root.Lookup("anchor")

	var sb strings.Builder
	sb.WriteString("\n")

	if thead := root.Find("thead"); thead != nil {
		tr := thead.Find("tr")
		if tr == nil {
			c.log.Errorw("no tr in table head")
			return "", nil
		}
		ths := tr.FindAll("th")
		for _, th := range ths {
			cell, err := c.extractChildren(th, Context{Span: true})
			if err != nil {
				return "", err
			}
			sb.WriteString("|" + cell)
		}
		sb.WriteString("\n")
		for _, th := range ths {
			sb.WriteString("|")
			align, ok := th.Lookup("align")
			var dash string
			switch {
			case !ok:
				dash = "-"
			case align == "left":
				dash = ":-"
			case align == "center":
				dash = ":-:"
			default:
				dash = "-:"
			}
			sb.WriteString(dash + " ")
		}
		sb.WriteString("\n")
	}

	tbody := root.Find("tbody")
	if tbody == nil {
		c.log.Errorw("no body for table")
		return "", nil
	}
	trs := tbody.FindAll("tr")
	if len(trs) == 0 {
		c.log.Errorw("no rows in table body")
		return "", nil
	}
	for _, tr := range trs {
		for _, td := range tr.FindAll("td") {
			cell, err := c.extractChildren(td, Context{Span: true})
			if err != nil {
				return "", err
			}
			sb.WriteString("|" + cell)
		}
		sb.WriteString("\n")
	}

	content := sb.String()
	if nameEl := root.Find("name"); nameEl != nil {
		name := escapeTitle(nameEl.Text)
		if hasAnchor {
			return content + generateIAL(ialPair{"id", anchor}, ialPair{"title", name}) + "\n", nil
		}
		return content + generateIAL(ialPair{"title", name}) + "\n", nil
	}
	return content, nil
}

// extractList renders one list item. An item whose only paragraph is plain
// text renders on a single line after the marker. An item with several
// paragraphs or mixed block content renders the first paragraph after the
// marker and every further top-level child indented one nesting unit per
// list level, reproducing loose-item semantics.
func (c *Converter) extractList(root *rfcdoc.Node, ctx Context) (string, error) {
	var marker string
	switch ctx.List {
	case Unordered:
		marker = "* "
	case Ordered:
		marker = "1. "
	default:
		marker = ""
	}

	// An item whose content is a single paragraph (or bare text) is tight:
	// marker plus content on one line. Anything else is loose.
	if len(root.FindAll("t")) == 0 || len(root.Children) == 1 {
		body, err := c.extractChildren(root, ctx)
		if err != nil {
			return "", err
		}
		return marker + lstrip(body), nil
	}

	level := ctx.ListLevel
	if level < 1 {
		level = 1
	}
	indent := strings.Repeat("    ", level)

	var sb strings.Builder
	isFirst := true
	for _, elem := range root.Children {
		sub := ctx
		switch elem.Tag {
		case "ul":
			sub.List = Unordered
		case "ol":
			sub.List = Ordered
		case "dl":
			sub.List = Definition
		}
		frag, err := c.extractChildren(elem, sub)
		if err != nil {
			return "", err
		}
		if isFirst && elem.Tag == "t" {
			sb.WriteString(marker + lstrip(frag))
			isFirst = false
		} else {
			sb.WriteString(indentLines(frag, indent))
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// indentLines prefixes every non-empty line of t with the indent string.
func indentLines(t string, indent string) string {
	lines := strings.Split(t, "\n")
	for i, ln := range lines {
		if ln != "" {
			lines[i] = indent + ln
		}
	}
	return strings.Join(lines, "\n")
}
