package maven

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Document is a parsed XML document whose element lookups are bound to the
// namespace of its root element.
//
// POMs and metadata files appear both with and without
// xmlns="http://maven.apache.org/POM/4.0.0". The namespace is detected once
// from the root and every [Element.Find] matches children in that namespace,
// so callers never deal with it.
type Document struct {
	root xmlNode
}

type xmlNode struct {
	XMLName  xml.Name
	Text     string    `xml:",chardata"`
	Children []xmlNode `xml:",any"`
}

// ParseDocument parses data into a Document.
// UTF-8, ISO-8859-1 and windows-1252 encodings are accepted.
func ParseDocument(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	var doc Document
	if err := dec.Decode(&doc.root); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	return &doc, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return input, nil
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	}
	return nil, fmt.Errorf("unsupported charset %q", label)
}

// Namespace returns the namespace URI of the root element ("" if none).
func (d *Document) Namespace() string { return d.root.XMLName.Space }

// Root returns the root element.
func (d *Document) Root() Element {
	return Element{ns: d.root.XMLName.Space, node: &d.root}
}

// Element is a node of a [Document]. The zero value has no children.
type Element struct {
	ns   string
	node *xmlNode
}

// Name returns the local name of the element.
func (e Element) Name() string {
	if e.node == nil {
		return ""
	}
	return e.node.XMLName.Local
}

// Text returns the trimmed character data of the element.
func (e Element) Text() string {
	if e.node == nil {
		return ""
	}
	return strings.TrimSpace(e.node.Text)
}

// Find returns the first direct child with the given local name in the
// document namespace.
func (e Element) Find(local string) (Element, bool) {
	if e.node == nil {
		return Element{}, false
	}
	for i := range e.node.Children {
		if e.matches(&e.node.Children[i], local) {
			return Element{ns: e.ns, node: &e.node.Children[i]}, true
		}
	}
	return Element{}, false
}

// FindAll returns every direct child with the given local name in the
// document namespace, in document order.
func (e Element) FindAll(local string) []Element {
	if e.node == nil {
		return nil
	}
	var out []Element
	for i := range e.node.Children {
		if e.matches(&e.node.Children[i], local) {
			out = append(out, Element{ns: e.ns, node: &e.node.Children[i]})
		}
	}
	return out
}

// ChildText returns the trimmed text of the named child. ok is false when
// the child is missing or empty.
func (e Element) ChildText(local string) (text string, ok bool) {
	child, found := e.Find(local)
	if !found {
		return "", false
	}
	text = child.Text()
	return text, text != ""
}

// Path follows a chain of child names, e.g. Path("versioning", "versions").
func (e Element) Path(names ...string) (Element, bool) {
	cur := e
	for _, name := range names {
		next, ok := cur.Find(name)
		if !ok {
			return Element{}, false
		}
		cur = next
	}
	return cur, true
}

func (e Element) matches(n *xmlNode, local string) bool {
	return n.XMLName.Space == e.ns && n.XMLName.Local == local
}
