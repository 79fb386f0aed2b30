package convert

import (
	"fmt"
	"regexp"
	"strings"

	yaml "github.com/goccy/go-yaml"

	"github.com/yaronf/xmlrfc2md/rfcdoc"
	"github.com/yaronf/xmlrfc2md/sliceedit"
)

// rfcAnchor matches the anchor naming convention of RFC citations.
var rfcAnchor = regexp.MustCompile(`^(?i:rfc[0-9]+)$`)

// A RefEntry is one resolved bibliography entry. The three cases are
// explicit variants rather than a nullable record: a well-known document
// needs no detail beyond its anchor, a DOI target collapses to a short
// form, and everything else carries a full record.
type RefEntry interface {
	// yamlValue returns the value serialized under the entry's anchor.
	yamlValue() any
}

// WellKnownRef is a document identified purely by its anchor naming
// convention (RFC numbers, I-D. drafts, BCP and STD series). It serializes
// as an empty value: the downstream processor resolves the anchor itself.
type WellKnownRef struct{}

func (WellKnownRef) yamlValue() any { return nil }

// DOIRef is a reference whose target is a DOI URL, serialized in the short
// DOI.suffix form.
type DOIRef struct {
	DOI string
}

func (r DOIRef) yamlValue() any { return "DOI." + r.DOI }

// FullRef carries the complete record of a reference that cannot be
// resolved by convention.
type FullRef struct {
	Target     string
	RefContent string
	Title      string
	Date       string // empty plus HasDate false serializes as date: false
	HasDate    bool
	Authors    []yaml.MapSlice
	SeriesInfo yaml.MapSlice
}

func (r FullRef) yamlValue() any {
	out := yaml.MapSlice{}
	if r.Target != "" {
		out = append(out, yaml.MapItem{Key: "target", Value: r.Target})
	}
	if r.RefContent != "" {
		out = append(out, yaml.MapItem{Key: "refcontent", Value: r.RefContent})
	}
	out = append(out, yaml.MapItem{Key: "title", Value: r.Title})
	if r.HasDate {
		out = append(out, yaml.MapItem{Key: "date", Value: r.Date})
	} else {
		out = append(out, yaml.MapItem{Key: "date", Value: false})
	}
	out = append(out, yaml.MapItem{Key: "author", Value: r.Authors})
	if len(r.SeriesInfo) > 0 {
		out = append(out, yaml.MapItem{Key: "seriesinfo", Value: r.SeriesInfo})
	}
	return out
}

// extractPreamble reads the document metadata and the bibliography and
// serializes them as the YAML front matter of the output document. The
// mapping keeps insertion order; the serializer is handed ordered map
// slices throughout.
func (c *Converter) extractPreamble(rfc *rfcdoc.Node) (string, error) {
	front := rfc.Find("front")
	if front == nil {
		return "", ErrNoFront
	}

	preamble := yaml.MapSlice{}
	add := func(key string, value any) {
		preamble = append(preamble, yaml.MapItem{Key: key, Value: value})
	}

	if titleEl := front.Find("title"); titleEl != nil {
		add("title", titleEl.Text)
		if abbrev, ok := titleEl.Lookup("abbrev"); ok {
			add("abbrev", abbrev)
		}
	}
	if docname, ok := rfc.Lookup("docName"); ok {
		add("docname", docname)
	}
	if category, ok := rfc.Lookup("category"); ok {
		add("category", category)
	}
	if ipr, ok := rfc.Lookup("ipr"); ok {
		add("ipr", ipr)
	}
	if st, ok := rfc.Lookup("submissionType"); ok {
		add("submissiontype", st)
	}
	if areaEl := front.Find("area"); areaEl != nil {
		add("area", areaEl.Text)
	}
	if wgEl := front.Find("workgroup"); wgEl != nil {
		add("workgroup", wgEl.Text)
	}

	keywords := make([]string, 0)
	for _, el := range front.FindAll("keyword") {
		keywords = append(keywords, el.Text)
	}
	add("keyword", keywords)

	// Magic required for some references to work
	add("stand_alone", "yes")

	add("pi", c.processingInstructions(rfc))

	add("kramdown_options", yaml.MapSlice{
		{Key: "auto_id_prefix", Value: "autogen-"},
	})

	add("author", convertAuthors(front, "author"))

	if sec := findContributors(rfc); sec != nil {
		add("contributor", convertAuthors(sec, "contact"))
	}

	normative, err := c.convertReferences(rfc, "normative")
	if err != nil {
		return "", err
	}
	informative, err := c.convertReferences(rfc, "informative")
	if err != nil {
		return "", err
	}
	if informative == nil {
		// The alternate spelling appears in old documents.
		informative, err = c.convertReferences(rfc, "informational")
		if err != nil {
			return "", err
		}
	}

	var sb strings.Builder
	head, err := yaml.Marshal(preamble)
	if err != nil {
		return "", fmt.Errorf("serializing preamble: %w", err)
	}
	sb.Write(head)
	sb.WriteString("\n\n")
	if normative != nil {
		b, err := yaml.Marshal(yaml.MapSlice{{Key: "normative", Value: normative}})
		if err != nil {
			return "", fmt.Errorf("serializing normative references: %w", err)
		}
		sb.Write(nullsAsEmpty(b))
	}
	if informative != nil {
		b, err := yaml.Marshal(yaml.MapSlice{{Key: "informative", Value: informative}})
		if err != nil {
			return "", fmt.Errorf("serializing informative references: %w", err)
		}
		sb.Write(nullsAsEmpty(b))
	}

	return sb.String(), nil
}

// nullsAsEmpty rewrites serialized null entries from "anchor: null" to the
// bare "anchor:" form the downstream processor expects for well-known
// references. Scalar values containing ": null" are quoted by the
// serializer, so the plain-text match cannot hit inside one.
func nullsAsEmpty(b []byte) []byte {
	buf := sliceedit.NewBuffer(b)
	buf.ReplaceAllString(": null\n", ":\n")
	return buf.Bytes()
}

// processingInstructions builds the pi mapping: a fixed default set plus
// the directives mirroring attributes of the document root.
func (c *Converter) processingInstructions(rfc *rfcdoc.Node) yaml.MapSlice {
	pi := yaml.MapSlice{
		{Key: "rfcedstyle", Value: "yes"},
		{Key: "strict", Value: "yes"},
		{Key: "comments", Value: "yes"},
		{Key: "inline", Value: "yes"},
		{Key: "text-list-symbols", Value: "-o*+"},
		{Key: "docmapping", Value: "yes"},
	}
	if rfc.Get("tocInclude") == "true" {
		pi = append(pi, yaml.MapItem{Key: "toc", Value: "yes"})
	}
	if _, ok := rfc.Lookup("tocDepth"); ok {
		// No direct conversion for the depth value itself
		pi = append(pi, yaml.MapItem{Key: "tocindent", Value: "yes"})
	}
	if rfc.Get("sortRefs") == "true" {
		pi = append(pi, yaml.MapItem{Key: "sortrefs", Value: "yes"})
	}
	if rfc.Get("symRefs") == "true" {
		pi = append(pi, yaml.MapItem{Key: "symrefs", Value: "yes"})
	}
	return pi
}

// convertAuthors builds the person records of the named child elements:
// authors of the document or of a reference, or contacts of the
// contributors section. All three share the same shape.
func convertAuthors(parent *rfcdoc.Node, tagName string) []yaml.MapSlice {
	people := make([]yaml.MapSlice, 0)
	for _, a := range parent.FindAll(tagName) {
		person := yaml.MapSlice{}
		addIf := func(key, val string) {
			if val != "" {
				person = append(person, yaml.MapItem{Key: key, Value: val})
			}
		}

		initials := a.Get("initials")
		surname := a.Get("surname")
		if initials != "" && surname != "" {
			addIf("ins", initials+" "+surname)
		}
		addIf("name", a.Get("fullname"))
		if orgEl := a.Find("organization"); orgEl != nil {
			addIf("organization", orgEl.Text)
		}
		if el := a.Find("address/uri"); el != nil {
			addIf("uri", el.Text)
		}
		if el := a.Find("address/email"); el != nil {
			addIf("email", el.Text)
		}
		if el := a.Find("address/phone"); el != nil {
			addIf("phone", el.Text)
		}
		if postal := a.Find("address/postal"); postal != nil {
			for _, field := range []string{"street", "city", "region", "code", "country"} {
				if el := postal.Find(field); el != nil {
					addIf(field, el.Text)
				}
			}
		}
		people = append(people, person)
	}
	return people
}

// convertSeriesInfo collects the seriesInfo name/value pairs of a
// reference front block. Malformed entries are skipped with a warning.
func (c *Converter) convertSeriesInfo(front *rfcdoc.Node) yaml.MapSlice {
	var seriesInfo yaml.MapSlice
	for _, si := range front.FindAll("seriesInfo") {
		name, okName := si.Lookup("name")
		value, okValue := si.Lookup("value")
		if !okName || !okValue {
			c.log.Warnw("bad seriesInfo, skipping")
			continue
		}
		seriesInfo = append(seriesInfo, yaml.MapItem{Key: name, Value: value})
	}
	return seriesInfo
}

// findReferences locates the reference block of the given type (normative,
// informative) by its slugified heading. Blocks may sit directly under back
// or one level deeper when the document groups them.
func (c *Converter) findReferences(rfc *rfcdoc.Node, refType string) *rfcdoc.Node {
	blocks := rfc.FindAll("back/references/references")
	if len(blocks) == 0 {
		blocks = rfc.FindAll("back/references")
	}
	for _, block := range blocks {
		nameEl := block.Find("name")
		if nameEl == nil {
			c.log.Errorw("no name for reference block")
			continue
		}
		if nameEl.Get("slugifiedName") == "name-"+refType+"-references" {
			return block
		}
	}
	return nil
}

// findContributors locates the contributors section of the back matter by
// its reserved, language-independent slug.
func findContributors(rfc *rfcdoc.Node) *rfcdoc.Node {
	for _, s := range rfc.FindAll("back/section") {
		nameEl := s.Find("name")
		if nameEl != nil && nameEl.Get("slugifiedName") == "name-contributors" {
			return s
		}
	}
	return nil
}

// classifyReference resolves one reference element to its entry variant.
func (c *Converter) classifyReference(ref *rfcdoc.Node, anchor string) (RefEntry, error) {
	if rfcAnchor.MatchString(anchor) || strings.HasPrefix(anchor, "I-D.") ||
		strings.HasPrefix(anchor, "BCP") || strings.HasPrefix(anchor, "STD") {
		return WellKnownRef{}, nil
	}
	if target := ref.Get("target"); strings.HasPrefix(target, "https://doi.org/") {
		return DOIRef{DOI: strings.TrimPrefix(target, "https://doi.org/")}, nil
	}
	return c.fullReference(ref, anchor)
}

// fullReference builds the complete record of a reference. A reference
// without a front block or without a title cannot be represented at all and
// aborts the conversion.
func (c *Converter) fullReference(ref *rfcdoc.Node, anchor string) (RefEntry, error) {
	front := ref.Find("front")
	if front == nil {
		return nil, fmt.Errorf("reference %q has no front block", anchor)
	}
	titleEl := front.Find("title")
	if titleEl == nil {
		return nil, fmt.Errorf("reference %q has no title", anchor)
	}

	out := FullRef{
		Target: ref.Get("target"),
		Title:  titleEl.Text,
	}
	if rc := ref.Find("refcontent"); rc != nil && rc.Text != "" {
		out.RefContent = rc.Text
	}
	if dateEl := front.Find("date"); dateEl != nil {
		month := dateEl.Get("month")
		year := dateEl.Get("year")
		if month != "" {
			out.Date = month + " " + year
		} else {
			out.Date = year
		}
		out.HasDate = true
	}
	out.Authors = convertAuthors(front, "author")
	out.SeriesInfo = c.convertSeriesInfo(front)
	return out, nil
}

// convertReferences resolves every reference and referencegroup of the
// given block type into an ordered mapping keyed by anchor. A missing block
// or an empty one yields nil, which callers treat as "omit the key".
func (c *Converter) convertReferences(rfc *rfcdoc.Node, refType string) (yaml.MapSlice, error) {
	block := c.findReferences(rfc, refType)
	if block == nil {
		c.log.Warnw("no references of this type", "type", refType)
		return nil, nil
	}
	refList := block.FindAll("reference")
	if len(refList) == 0 {
		c.log.Warnw("no references of this type", "type", refType)
		return nil, nil
	}

	refs := yaml.MapSlice{}
	for _, ref := range refList {
		anchor, ok := ref.Lookup("anchor")
		if !ok {
			c.log.Warnw("reference missing an anchor")
			continue
		}
		entry, err := c.classifyReference(ref, anchor)
		if err != nil {
			return nil, err
		}
		refs = append(refs, yaml.MapItem{Key: anchor, Value: entry.yamlValue()})
	}

	for _, group := range block.FindAll("referencegroup") {
		anchor, ok := group.Lookup("anchor")
		if !ok {
			c.log.Warnw("reference group missing an anchor")
			continue
		}
		if strings.HasPrefix(anchor, "BCP") || strings.HasPrefix(anchor, "STD") {
			refs = append(refs, yaml.MapItem{Key: anchor, Value: WellKnownRef{}.yamlValue()})
			continue
		}
		c.log.Warnw("unexpected reference group, dropping", "anchor", anchor)
	}

	return refs, nil
}
