package convert

import (
	"strings"
	"testing"

	"github.com/hesusruiz/vcutils/yaml"
)

const preambleDoc = `<rfc docName="draft-test-proto-00" category="std" ipr="trust200902"
  submissionType="IETF" tocInclude="true" sortRefs="true" symRefs="true">
<front>
<title abbrev="Test">A Test Protocol</title>
<area>Security</area>
<workgroup>testwg</workgroup>
<keyword>test</keyword>
<keyword>protocol</keyword>
<author initials="J." surname="Doe" fullname="Jane Doe">
<organization>Example Corp</organization>
<address><email>jane@example.com</email><postal><city>Oslo</city><country>NO</country></postal></address>
</author>
<abstract><t>Abstract.</t></abstract>
</front>
<middle><section><name slugifiedName="name-one">One</name><t>Body.</t></section></middle>
<back>
<references><name slugifiedName="name-references">References</name>
<references><name slugifiedName="name-normative-references">Normative References</name>
<reference anchor="RFC9000"><front><title>QUIC</title></front></reference>
<reference anchor="DOIREF" target="https://doi.org/10.1/xyz"><front><title>X</title></front></reference>
<referencegroup anchor="BCP14"/>
<referencegroup anchor="WEIRD"/>
</references>
<references><name slugifiedName="name-informative-references">Informative References</name>
<reference anchor="EXT" target="https://example.com/spec">
<front><title>An External Spec</title>
<author initials="A." surname="Body" fullname="Ann Body"/>
<date month="June" year="2020"/>
<seriesInfo name="DOI" value="10.5/abc"/>
</front>
<refcontent>Tech Report</refcontent>
</reference>
<reference anchor="NODATE"><front><title>Old Memo</title></front></reference>
</references>
</references>
<section><name slugifiedName="name-contributors">Contributors</name>
<contact fullname="Con Tributor"><address><email>con@example.com</email></address></contact>
</section>
</back>
</rfc>`

func TestExtractPreambleMetadata(t *testing.T) {
	conv := newTestConverter(t)
	pre, err := conv.extractPreamble(parseFragment(t, preambleDoc))
	if err != nil {
		t.Fatalf("extractPreamble() error = %v", err)
	}
	if !strings.HasPrefix(pre, "title:") {
		t.Errorf("front matter does not start with the title: %q", firstLine(pre))
	}

	cfg, err := yaml.ParseYaml(pre)
	if err != nil {
		t.Fatalf("front matter is not valid YAML: %v\n%s", err, pre)
	}
	scalars := []struct {
		path string
		want string
	}{
		{"title", "A Test Protocol"},
		{"abbrev", "Test"},
		{"docname", "draft-test-proto-00"},
		{"category", "std"},
		{"ipr", "trust200902"},
		{"submissiontype", "IETF"},
		{"area", "Security"},
		{"workgroup", "testwg"},
		{"kramdown_options.auto_id_prefix", "autogen-"},
		{"pi.text-list-symbols", "-o*+"},
	}
	for _, tc := range scalars {
		if got := cfg.String(tc.path); got != tc.want {
			t.Errorf("%s = %q, want %q", tc.path, got, tc.want)
		}
	}

	for _, want := range []string{
		"- test", "- protocol", "stand_alone",
		"J. Doe", "name: Jane Doe", "organization: Example Corp",
		"email: jane@example.com", "city: Oslo",
		"contributor", "Con Tributor",
	} {
		if !strings.Contains(pre, want) {
			t.Errorf("front matter missing %q:\n%s", want, pre)
		}
	}
}

func TestExtractPreambleReferences(t *testing.T) {
	conv := newTestConverter(t)
	pre, err := conv.extractPreamble(parseFragment(t, preambleDoc))
	if err != nil {
		t.Fatalf("extractPreamble() error = %v", err)
	}

	idxNorm := strings.Index(pre, "normative:")
	idxInf := strings.Index(pre, "informative:")
	if idxNorm < 0 || idxInf < 0 || idxNorm > idxInf {
		t.Fatalf("reference blocks missing or out of order (normative %d, informative %d)", idxNorm, idxInf)
	}

	if strings.Contains(pre, "null") {
		t.Errorf("well-known reference serialized with an explicit null:\n%s", pre)
	}
	for _, want := range []string{
		"RFC9000:\n", "BCP14:\n",
		"DOIREF: DOI.10.1/xyz",
		"target: https://example.com/spec",
		"title: An External Spec",
		"date: June 2020",
		"refcontent: Tech Report",
		"DOI: 10.5/abc",
		"Ann Body",
		"date: false",
	} {
		if !strings.Contains(pre, want) {
			t.Errorf("references missing %q:\n%s", want, pre)
		}
	}
	if strings.Contains(pre, "WEIRD") {
		t.Errorf("unknown reference group was kept:\n%s", pre)
	}
}

func TestExtractPreambleInformationalSpelling(t *testing.T) {
	src := `<rfc><front><title>T</title></front><back>
<references><name slugifiedName="name-informational-references">Informational References</name>
<reference anchor="OLDREF" target="https://doi.org/10.9/old"><front><title>Y</title></front></reference>
</references>
</back></rfc>`
	conv := newTestConverter(t)
	pre, err := conv.extractPreamble(parseFragment(t, src))
	if err != nil {
		t.Fatalf("extractPreamble() error = %v", err)
	}
	if !strings.Contains(pre, "informative:") || !strings.Contains(pre, "OLDREF: DOI.10.9/old") {
		t.Errorf("informational block not folded into informative:\n%s", pre)
	}
}

func TestExtractPreambleBadReference(t *testing.T) {
	src := `<rfc><front><title>T</title></front><back>
<references><name slugifiedName="name-normative-references">Normative References</name>
<reference anchor="XX"><front/></reference>
</references>
</back></rfc>`
	conv := newTestConverter(t)
	if _, err := conv.extractPreamble(parseFragment(t, src)); err == nil {
		t.Fatal("title-less reference did not abort the conversion")
	}
}

func TestExtractPreambleNoFront(t *testing.T) {
	conv := newTestConverter(t)
	if _, err := conv.extractPreamble(parseFragment(t, `<rfc><middle/></rfc>`)); err != ErrNoFront {
		t.Errorf("error = %v, want ErrNoFront", err)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
