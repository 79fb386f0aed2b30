package convert

import (
	"errors"
	"strings"

	"github.com/yaronf/xmlrfc2md/rfcdoc"
)

// Fatal input conditions. Any of these aborts the run before output is
// committed.
var (
	ErrNotRFC     = errors.New(`root element is not "rfc"`)
	ErrNoFront    = errors.New("no front block found")
	ErrNoAbstract = errors.New("no abstract found")
	ErrNoMiddle   = errors.New("cannot find middle part of document")
)

// Convert transforms a parsed xml2rfc document into kramdown-rfc Markdown.
// The output has the YAML front matter first, then the abstract, middle and
// back parts, each under its own divider. The back divider appears only
// when the document has back matter.
func (c *Converter) Convert(root *rfcdoc.Node) (string, error) {
	if root == nil || root.Tag != "rfc" {
		return "", ErrNotRFC
	}

	var sb strings.Builder

	preamble, err := c.extractPreamble(root)
	if err != nil {
		return "", err
	}
	sb.WriteString("---\n")
	sb.WriteString(preamble)
	sb.WriteString("\n")

	abstract := root.Find("front/abstract")
	if abstract == nil {
		return "", ErrNoAbstract
	}
	frag, err := c.extractChildren(abstract, Context{})
	if err != nil {
		return "", err
	}
	sb.WriteString("--- abstract\n\n")
	sb.WriteString(frag)
	sb.WriteString("\n\n")

	middle := root.Find("middle")
	if middle == nil {
		return "", ErrNoMiddle
	}
	frag, err = c.extractChildren(middle, Context{})
	if err != nil {
		return "", err
	}
	if c.fill {
		frag = FillText(frag)
	}
	sb.WriteString("\n--- middle\n\n")
	sb.WriteString(frag)

	if back := root.Find("back"); back != nil {
		frag, err = c.extractChildren(back, Context{})
		if err != nil {
			return "", err
		}
		if c.fill {
			frag = FillText(frag)
		}
		sb.WriteString("\n--- back\n\n")
		sb.WriteString(frag)
	}

	return sb.String(), nil
}
