// Package convert implements the transformation of an xml2rfc document tree
// into kramdown-rfc Markdown: a YAML front-matter block built from the
// document metadata and bibliography, followed by the abstract, middle and
// back parts rendered as Markdown text.
package convert

import (
	"go.uber.org/zap"
)

// ListType tells the renderer which kind of list the current element
// belongs to, so list items can pick their marker.
type ListType int

const (
	NoList ListType = iota
	Unordered
	Ordered
	Definition
)

// Context is the ambient rendering state threaded through every recursive
// call. It is passed by value: each subtree gets its own copy and nothing
// is shared across siblings.
type Context struct {
	// SectionLevel is the current heading depth, starting at 0.
	SectionLevel int

	// ListLevel is the list nesting depth, used for indentation of loose
	// list items.
	ListLevel int

	// List is the type of the enclosing list container, if any.
	List ListType

	// Span collapses all line breaks into single spaces. It is used when
	// rendering into a single-line table cell.
	Span bool
}

// A Converter holds the per-run state of one conversion: the logger, the
// registry of section anchors seen so far, and the counters that throttle
// repeated warnings. A Converter must not be reused across documents.
type Converter struct {
	log  *zap.SugaredLogger
	fill bool

	// anchors collects every section anchor encountered, in document
	// order. It is append-only and is only read by callers after the run.
	anchors []string

	// messages counts throttled warnings by class. The first occurrence
	// of a class is logged, later ones are only counted.
	messages map[string]int
}

// New returns a Converter ready to process one document. When fill is true,
// the middle and back parts are re-wrapped to fillColumns columns.
func New(logger *zap.SugaredLogger, fill bool) *Converter {
	return &Converter{
		log:      logger,
		fill:     fill,
		messages: make(map[string]int),
	}
}

// Anchors returns the section anchors registered during the run, in
// document order.
func (c *Converter) Anchors() []string {
	return c.anchors
}

// MessageCounts returns how many times each throttled warning class fired.
func (c *Converter) MessageCounts() map[string]int {
	out := make(map[string]int, len(c.messages))
	for k, v := range c.messages {
		out[k] = v
	}
	return out
}

// throttle logs msg the first time its class is seen and counts silently
// afterwards. Documents with many code blocks would otherwise drown the
// diagnostics channel in copies of the same warning.
func (c *Converter) throttle(class string, msg string, keysAndValues ...any) {
	if c.messages[class] == 0 {
		c.log.Warnw(msg, keysAndValues...)
	}
	c.messages[class]++
}

// nodeKind is the closed enumeration of element kinds the extractor knows
// how to render. Tags outside the table map to kindUnknown, which draws a
// diagnostic and contributes no text.
type nodeKind int

const (
	kindUnknown nodeKind = iota
	kindPara
	kindBlockquote
	kindAside
	kindERef
	kindListItem
	kindSection
	kindUnordered
	kindOrdered
	kindDefinitionList
	kindTerm
	kindDefinition
	kindXRef
	kindDisplayRef
	kindBCP14
	kindTT
	kindEmph
	kindStrong
	kindBreak
	kindSup
	kindContact
	kindName
	kindReferences
	kindAuthor
	kindSourceCode
	kindFigure
	kindTable
)

var tagKinds = map[string]nodeKind{
	"t":                kindPara,
	"blockquote":       kindBlockquote,
	"aside":            kindAside,
	"eref":             kindERef,
	"li":               kindListItem,
	"section":          kindSection,
	"ul":               kindUnordered,
	"ol":               kindOrdered,
	"dl":               kindDefinitionList,
	"dt":               kindTerm,
	"dd":               kindDefinition,
	"xref":             kindXRef,
	"displayreference": kindDisplayRef,
	"bcp14":            kindBCP14,
	"tt":               kindTT,
	"em":               kindEmph,
	"emph":             kindEmph,
	"strong":           kindStrong,
	"br":               kindBreak,
	"sup":              kindSup,
	"contact":          kindContact,
	"name":             kindName,
	"references":       kindReferences,
	"author":           kindAuthor,
	"sourcecode":       kindSourceCode,
	"artwork":          kindSourceCode,
	"figure":           kindFigure,
	"table":            kindTable,
}

func kindOf(tag string) nodeKind {
	return tagKinds[tag]
}
