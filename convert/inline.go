package convert

import (
	"fmt"
	"strings"

	"github.com/yaronf/xmlrfc2md/rfcdoc"
)

// extractXRef renders a cross-reference element.
//
// A reference carrying inline text becomes a markdown link to the target
// anchor. Without text and without a section attribute it becomes a bare
// document citation, in the alternate {{<target}} form when the format
// attribute asks for a counter. With a section attribute, the sectionFormat
// attribute selects how target and section combine; a value outside the
// known set aborts the conversion.
func (c *Converter) extractXRef(elem *rfcdoc.Node) (string, error) {
	target, hasTarget := elem.Lookup("target")
	section, hasSection := elem.Lookup("section")
	sectionFormat := elem.Get("sectionFormat")
	format := elem.Get("format")
	txt := elem.Text

	if !hasTarget {
		c.log.Errorw("missing target in xref")
		return "badxref", nil
	}
	if txt != "" {
		if format != "" && format != "default" {
			c.log.Warnw("cannot render specially formatted xref with text content",
				"target", target, "format", format)
		}
		return "[" + EscapeInline(txt) + "](#" + target + ")", nil
	}
	if !hasSection {
		if format == "counter" {
			return "{{<" + target + "}}", nil
		}
		return "{{" + target + "}}", nil
	}

	switch sectionFormat {
	case "of":
		return "Section " + section + " of {{" + target + "}}", nil
	case "comma":
		return "{{" + target + "}}, Section " + section, nil
	case "parens":
		return "{{" + target + "}} (" + section + ")", nil
	case "bare":
		return section, nil
	default:
		return "", fmt.Errorf("unsupported xref section format: %q", sectionFormat)
	}
}

// extractERef appends an external reference to the accumulated output.
// Without brackets the bare target is emitted. With brackets, URL targets
// are wrapped in raw angle brackets (markdown autolink form) and anything
// else in escaped ones.
func (c *Converter) extractERef(output string, elem *rfcdoc.Node) string {
	target := elem.Get("target")
	brackets := elem.Get("brackets")

	if brackets == "" || brackets == "none" {
		return ConcatWithGap(output, target)
	}
	if strings.HasPrefix(target, "http") {
		return ConcatWithGap(output, "<"+target+">")
	}
	return ConcatWithGap(output, "&lt;"+target+"&gt;")
}
