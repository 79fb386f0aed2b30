package rfcdoc

import (
	"testing"
)

func TestParseFromBytes(t *testing.T) {
	src := []byte(`<rfc docName="draft-x"><front><title abbrev="T">The Title</title></front>` +
		`<middle><t>Hello <xref target="A"/> tail text.</t></middle></rfc>`)

	root, err := ParseFromBytes(src)
	if err != nil {
		t.Fatalf("ParseFromBytes() error = %v", err)
	}
	if root.Tag != "rfc" {
		t.Fatalf("root tag = %q, want %q", root.Tag, "rfc")
	}
	if got := root.Get("docName"); got != "draft-x" {
		t.Errorf("docName = %q, want %q", got, "draft-x")
	}

	title := root.Find("front/title")
	if title == nil {
		t.Fatal("front/title not found")
	}
	if title.Text != "The Title" {
		t.Errorf("title text = %q, want %q", title.Text, "The Title")
	}
	if v, ok := title.Lookup("abbrev"); !ok || v != "T" {
		t.Errorf("abbrev = %q, %v, want %q, true", v, ok, "T")
	}
	if _, ok := title.Lookup("missing"); ok {
		t.Error("Lookup of absent attribute reported present")
	}

	para := root.Find("middle/t")
	if para == nil {
		t.Fatal("middle/t not found")
	}
	if para.Text != "Hello " {
		t.Errorf("paragraph text = %q, want %q", para.Text, "Hello ")
	}
	if len(para.Children) != 1 {
		t.Fatalf("paragraph children = %d, want 1", len(para.Children))
	}
	xref := para.Children[0]
	if xref.Tag != "xref" || xref.Get("target") != "A" {
		t.Errorf("child = %q target %q, want xref A", xref.Tag, xref.Get("target"))
	}
	if xref.Tail != " tail text." {
		t.Errorf("tail = %q, want %q", xref.Tail, " tail text.")
	}
}

func TestFindWithAttr(t *testing.T) {
	src := []byte(`<figure><artset><artwork type="svg">S</artwork>` +
		`<artwork type="ascii-art">A</artwork></artset></figure>`)

	root, err := ParseFromBytes(src)
	if err != nil {
		t.Fatalf("ParseFromBytes() error = %v", err)
	}

	if got := len(root.FindAll("artset/artwork")); got != 2 {
		t.Errorf("FindAll returned %d nodes, want 2", got)
	}
	art := root.FindWithAttr("artset/artwork", "type", "ascii-art")
	if art == nil {
		t.Fatal("FindWithAttr found nothing")
	}
	if art.Text != "A" {
		t.Errorf("ascii artwork text = %q, want %q", art.Text, "A")
	}
	if root.FindWithAttr("artset/artwork", "type", "png") != nil {
		t.Error("FindWithAttr matched a missing attribute value")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := ParseFromBytes(nil); err != ErrNoContent {
		t.Errorf("ParseFromBytes(nil) error = %v, want ErrNoContent", err)
	}
}
