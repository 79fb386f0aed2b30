package convert

import (
	"strings"

	"github.com/yaronf/xmlrfc2md/rfcdoc"
)

// reservedSectionSlugs are the heading slugs of boilerplate sections that
// the target dialect generates by itself from the front-matter metadata.
// Rendering them again would duplicate the authors and contributors blocks,
// so subtrees with these slugs are skipped entirely.
var reservedSectionSlugs = map[string]bool{
	"name-authors-addresses": true,
	"name-authors-address":   true,
	"name-contributors":      true,
}

// sectionTitle renders the heading line of a section: the "#" markers for
// the level, the title and an anchor tag. The anchor is also registered for
// cross-document reference checking. A section without a name draws a
// diagnostic and renders nothing.
func (c *Converter) sectionTitle(elem *rfcdoc.Node, level int) string {
	anchorTag := ""
	if anchor, ok := elem.Lookup("anchor"); ok {
		c.anchors = append(c.anchors, anchor)
		anchorTag = "{#" + anchor + "}"
	}
	nameEl := elem.Find("name")
	if nameEl == nil {
		c.log.Errorw("section with no name")
		return ""
	}
	return "\n" + strings.Repeat("#", level) + " " + strings.TrimSpace(nameEl.Text) + " " + anchorTag + "\n"
}

// extractChildren walks the children of root in document order and renders
// them as markdown, threading the ambient context. The function is pure
// given its inputs, except for the anchor registry and the warning
// counters, which are append-only side channels.
func (c *Converter) extractChildren(root *rfcdoc.Node, ctx Context) (string, error) {
	output := ""
	if root.Text != "" {
		output += CollapseIndent(EscapeInline(root.Text), ctx.Span)
	}

	for _, elem := range root.Children {
		switch kindOf(elem.Tag) {
		case kindPara:
			if anchor, ok := elem.Lookup("anchor"); ok && !strings.HasPrefix(anchor, "section-") {
				output += generateIAL(ialPair{"id", anchor}) + "\n"
			}
			frag, err := c.extractChildren(elem, Context{SectionLevel: ctx.SectionLevel, ListLevel: ctx.ListLevel})
			if err != nil {
				return "", err
			}
			output += frag + "\n"

		case kindBlockquote, kindAside:
			frag, err := c.extractChildren(elem, Context{SectionLevel: ctx.SectionLevel, ListLevel: ctx.ListLevel})
			if err != nil {
				return "", err
			}
			tag := "{:quote}"
			if elem.Tag == "aside" {
				tag = "{:aside}"
			}
			output += tag + "\n" + prefixQuote(strings.TrimSpace(frag)) + "\n\n"

		case kindERef:
			output = c.extractERef(output, elem)

		case kindListItem:
			if anchor, ok := elem.Lookup("anchor"); ok {
				output += generateIAL(ialPair{"id", anchor}) + "\n"
			}
			item := ctx
			item.ListLevel++
			frag, err := c.extractList(elem, item)
			if err != nil {
				return "", err
			}
			output += frag + "\n"

		case kindSection:
			slug := ""
			if nameEl := elem.Find("name"); nameEl != nil {
				slug = nameEl.Get("slugifiedName")
			}
			if reservedSectionSlugs[slug] {
				// The author address and contributors sections are
				// regenerated downstream from the front matter.
				continue
			}
			output += c.sectionTitle(elem, ctx.SectionLevel+1)
			if numbered, ok := elem.Lookup("numbered"); ok {
				output += generateIAL(ialPair{"numbered", numbered})
			}
			frag, err := c.extractChildren(elem, Context{SectionLevel: ctx.SectionLevel + 1})
			if err != nil {
				return "", err
			}
			output += frag + "\n"

		case kindUnordered:
			frag, err := c.extractChildren(elem, Context{ctx.SectionLevel, ctx.ListLevel, Unordered, false})
			if err != nil {
				return "", err
			}
			output += frag

		case kindOrdered:
			frag, err := c.extractChildren(elem, Context{ctx.SectionLevel, ctx.ListLevel, Ordered, false})
			if err != nil {
				return "", err
			}
			output += frag

		case kindDefinitionList:
			if indent, ok := elem.Lookup("indent"); ok {
				output += "\n" + generateIAL(ialPair{"indent", indent})
			}
			frag, err := c.extractChildren(elem, Context{ctx.SectionLevel, ctx.ListLevel, Definition, false})
			if err != nil {
				return "", err
			}
			output += frag

		case kindTerm:
			frag, err := c.extractChildren(elem, Context{ctx.SectionLevel, ctx.ListLevel, Definition, false})
			if err != nil {
				return "", err
			}
			if anchor, ok := elem.Lookup("anchor"); ok {
				output += "\n" + generateIAL(ialPair{"id", anchor}) + frag
			} else {
				output += "\n" + frag
			}

		case kindDefinition:
			frag, err := c.extractChildren(elem, Context{SectionLevel: ctx.SectionLevel, ListLevel: ctx.ListLevel})
			if err != nil {
				return "", err
			}
			output += ": " + lstrip(frag)

		case kindXRef:
			frag, err := c.extractXRef(elem)
			if err != nil {
				return "", err
			}
			output = ConcatWithGap(output, frag)

		case kindDisplayRef:
			// displayreference only renames anchors, which kramdown-rfc
			// handles through the bibliography.

		case kindBCP14:
			// Requirement keywords pass through unescaped.
			output = ConcatWithGap(output, elem.Text)

		case kindTT:
			output = ConcatWithGap(output, "`"+elem.Text+"`")

		case kindEmph:
			output = ConcatWithGap(output, "*"+elem.Text+"*")

		case kindStrong:
			output = ConcatWithGap(output, "**"+elem.Text+"**")

		case kindBreak:
			output += "\n"

		case kindSup:
			output += "<sup>" + elem.Text + "</sup>"

		case kindContact:
			// A contact in running text, as opposed to the contributors
			// section, renders as the bare full name.
			output += " " + elem.Get("fullname")

		case kindName, kindReferences, kindAuthor:
			// The section name is consumed by sectionTitle, references and
			// authors by the preamble extractor.

		case kindSourceCode:
			output += c.extractSourceCode(elem)

		case kindFigure:
			output += c.extractFigure(elem)

		case kindTable:
			frag, err := c.extractTable(elem)
			if err != nil {
				return "", err
			}
			output += frag

		default:
			c.log.Errorw("skipping unknown element", "tag", elem.Tag)
		}

		if elem.Tail != "" {
			output += CollapseIndent(EscapeInline(elem.Tail), ctx.Span)
		}
	}

	return output, nil
}
