// Package xmlnav provides namespace-agnostic navigation over XML
// documents. Orphanet ships the same dumps with and without namespace
// declarations depending on the release, so every lookup compares
// local element names only.
package xmlnav

import (
	"encoding/xml"
	"io"
	"strings"
)

// Node is one element of a parsed document tree.
type Node struct {
	// Tag holds the element name in Clark notation: "{ns}local" when
	// the element is namespaced, plain "local" otherwise.
	Tag      string
	Attr     map[string]string
	Text     string
	Children []*Node
}

// Local strips a Clark-notation namespace prefix from a tag name.
func Local(tag string) string {
	if strings.HasPrefix(tag, "{") {
		if _, local, ok := strings.Cut(tag, "}"); ok {
			return local
		}
	}
	return tag
}

// Local returns the node's tag with any namespace prefix stripped.
func (n *Node) Local() string {
	if n == nil {
		return ""
	}
	return Local(n.Tag)
}

// Get returns the named attribute, or "" when absent.
func (n *Node) Get(name string) string {
	if n == nil {
		return ""
	}
	return n.Attr[name]
}

// First returns the first direct child with the given local name,
// or nil when there is none.
func (n *Node) First(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Local() == name {
			return c
		}
	}
	return nil
}

// All returns every direct child with the given local name.
func (n *Node) All(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Local() == name {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the stripped text of the first matching direct
// child, or def when the child is absent or empty.
func (n *Node) ChildText(name, def string) string {
	c := n.First(name)
	if c == nil {
		return def
	}
	if t := strings.TrimSpace(c.Text); t != "" {
		return t
	}
	return def
}

// ChildTextLang returns the stripped text of the first matching direct
// child whose lang attribute equals lang or is absent, else def.
func (n *Node) ChildTextLang(name, lang, def string) string {
	if n == nil {
		return def
	}
	for _, c := range n.Children {
		if c.Local() != name {
			continue
		}
		if l, ok := c.Attr["lang"]; ok && l != lang {
			continue
		}
		return strings.TrimSpace(c.Text)
	}
	return def
}

// Descendants returns every descendant (at any depth, including
// matches nested inside other matches) with the given local name,
// in document order.
func (n *Node) Descendants(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	var walk func(*Node)
	walk = func(p *Node) {
		for _, c := range p.Children {
			if c.Local() == name {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// Parse reads an XML document and returns its root element.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return decodeElement(dec, se)
		}
	}
}

// Stream walks a document forward-only and invokes fn once for each
// element whose local name matches. Only the matched element's subtree
// is materialized; it is released as soon as fn returns, so memory
// stays bounded regardless of document size.
func Stream(r io.Reader, name string, fn func(*Node) error) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != name {
			continue
		}
		n, err := decodeElement(dec, se)
		if err != nil {
			return err
		}
		if err := fn(n); err != nil {
			return err
		}
	}
}

func decodeElement(dec *xml.Decoder, se xml.StartElement) (*Node, error) {
	n := &Node{Tag: clark(se.Name)}
	if len(se.Attr) > 0 {
		n.Attr = make(map[string]string, len(se.Attr))
		for _, a := range se.Attr {
			n.Attr[a.Name.Local] = a.Value
		}
	}
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			n.Text = text.String()
			return n, nil
		}
	}
}

func clark(name xml.Name) string {
	if name.Space != "" {
		return "{" + name.Space + "}" + name.Local
	}
	return name.Local
}
