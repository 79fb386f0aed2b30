// Package rfcdoc builds an in-memory tree from an xml2rfc XML document.
//
// The tree keeps what the conversion engine needs and nothing else: element
// tags, attributes in document order, the character data that precedes the
// first child of an element, and the "tail" text that follows an element but
// still belongs to its parent. The tree is read-only after parsing.
package rfcdoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// An Attribute is a single key="value" pair on an element.
type Attribute struct {
	Key string
	Val string
}

// Node is one element of the parsed document.
type Node struct {
	Tag  string
	Attr []Attribute

	// Text is the character data between the start tag and the first child
	// (or the end tag, if the element has no children).
	Text string

	// Tail is the character data between this element's end tag and the
	// next sibling. It belongs to the parent element.
	Tail string

	Children []*Node
}

var ErrNoContent = errors.New("no content")

// Parse reads a well-formed XML document and returns its root element.
// Comments, processing instructions and directives are discarded.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	// Published RFCs occasionally use HTML entities like &nbsp;
	dec.Entity = xml.HTMLEntity

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Tag: t.Name.Local}
			for _, a := range t.Attr {
				n.Attr = append(n.Attr, Attribute{Key: a.Name.Local, Val: a.Value})
			}
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				// Whitespace around the root element
				continue
			}
			cur := stack[len(stack)-1]
			if len(cur.Children) == 0 {
				cur.Text += string(t)
			} else {
				// Text after a child is the tail of that child
				last := cur.Children[len(cur.Children)-1]
				last.Tail += string(t)
			}
		}
	}

	if root == nil {
		return nil, ErrNoContent
	}
	return root, nil
}

// ParseFromBytes uses a byte array as the source of the document.
func ParseFromBytes(src []byte) (*Node, error) {
	if len(src) == 0 {
		return nil, ErrNoContent
	}
	return Parse(bytes.NewReader(src))
}

// Get returns the value of the named attribute, or "" if it is absent.
func (n *Node) Get(key string) string {
	v, _ := n.Lookup(key)
	return v
}

// Lookup returns the value of the named attribute and whether it is present.
// An attribute explicitly set to the empty string is still "present".
func (n *Node) Lookup(key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "./")
	return strings.Split(path, "/")
}

// FindAll returns, in document order, the descendants reached by following
// path, a slash-separated sequence of child tags like "back/references".
// A leading "./" is accepted and ignored.
func (n *Node) FindAll(path string) []*Node {
	nodes := []*Node{n}
	for _, seg := range splitPath(path) {
		var next []*Node
		for _, nd := range nodes {
			for _, c := range nd.Children {
				if c.Tag == seg {
					next = append(next, c)
				}
			}
		}
		nodes = next
	}
	return nodes
}

// Find returns the first node reached by following path, or nil.
func (n *Node) Find(path string) *Node {
	if all := n.FindAll(path); len(all) > 0 {
		return all[0]
	}
	return nil
}

// FindWithAttr returns the first node reached by following path whose
// attribute key has the value val, or nil.
func (n *Node) FindWithAttr(path, key, val string) *Node {
	for _, nd := range n.FindAll(path) {
		if nd.Get(key) == val {
			return nd
		}
	}
	return nil
}
