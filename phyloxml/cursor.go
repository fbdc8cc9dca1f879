// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

// Package phyloxml provides the Cursor the gene tree builder consumes, and
// one concrete implementation of it over encoding/xml. The cursor contract
// itself is the real dependency surface of the tree builder; the PhyloXML
// tokenizer behind it is treated as a replaceable collaborator.
package phyloxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"strings"
)

// Cursor is a stateful navigator over a parsed XML document. Name matching
// is case-insensitive and uses substring containment so namespaced element
// names (e.g. "phy:clade") are accepted.
type Cursor interface {
	ToRoot()
	ToFirstChild() bool
	ToFirstChildNamed(name string) bool
	ToNextSibling() bool
	ToParent() bool
	ElementName() string
	Text() string
	Attr(name string) (string, bool)
	MatchElement(name string) bool
	Clone() Cursor
	Index() int
	HashCode() uint32
}

// element is one parsed XML element, built once when the document is read.
type element struct {
	name     string
	attrs    map[string]string
	text     string
	children []*element
	parent   *element
	seq      uint64
	index    int // position among parent's children
}

// XMLCursor is the Cursor implementation over a document parsed with
// encoding/xml. It is built once from a reader and then navigated
// repeatedly; Clone returns an independent cursor over the same underlying
// (read-only) document tree.
type XMLCursor struct {
	doc *element // synthetic document root; its children are the top-level elements
	cur *element
}

// NewXMLCursor parses r fully into a minimal in-memory element tree and
// returns a cursor positioned nowhere (callers must call ToRoot).
func NewXMLCursor(r io.Reader) (*XMLCursor, error) {
	dec := xml.NewDecoder(r)
	doc := &element{name: "#document"}
	var seq uint64
	stack := []*element{doc}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("phyloxml: %w: %v", errMalformedXML, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			parent := stack[len(stack)-1]
			el := &element{
				name:   t.Name.Local,
				attrs:  make(map[string]string, len(t.Attr)),
				parent: parent,
				seq:    seq,
				index:  len(parent.children),
			}
			seq++
			for _, a := range t.Attr {
				el.attrs[a.Name.Local] = a.Value
			}
			parent.children = append(parent.children, el)
			stack = append(stack, el)
		case xml.CharData:
			if len(stack) > 0 {
				cur := stack[len(stack)-1]
				cur.text += string(t)
			}
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	return &XMLCursor{doc: doc}, nil
}

var errMalformedXML = errors.New("xml token stream error")

func (c *XMLCursor) ToRoot() { c.cur = c.doc }

func (c *XMLCursor) ToFirstChild() bool {
	if c.cur == nil || len(c.cur.children) == 0 {
		return false
	}
	c.cur = c.cur.children[0]
	return true
}

func (c *XMLCursor) ToFirstChildNamed(name string) bool {
	start := c.cur
	if !c.ToFirstChild() {
		return false
	}
	for {
		if c.MatchElement(name) {
			return true
		}
		if !c.ToNextSibling() {
			c.cur = start
			return false
		}
	}
}

func (c *XMLCursor) ToNextSibling() bool {
	if c.cur == nil || c.cur.parent == nil {
		return false
	}
	siblings := c.cur.parent.children
	next := c.cur.index + 1
	if next >= len(siblings) {
		return false
	}
	c.cur = siblings[next]
	return true
}

func (c *XMLCursor) ToParent() bool {
	if c.cur == nil || c.cur.parent == nil {
		return false
	}
	c.cur = c.cur.parent
	return true
}

func (c *XMLCursor) ElementName() string {
	if c.cur == nil {
		return ""
	}
	return c.cur.name
}

func (c *XMLCursor) Text() string {
	if c.cur == nil {
		return ""
	}
	return c.cur.text
}

func (c *XMLCursor) Attr(name string) (string, bool) {
	if c.cur == nil {
		return "", false
	}
	v, ok := c.cur.attrs[name]
	return v, ok
}

func (c *XMLCursor) MatchElement(name string) bool {
	if c.cur == nil {
		return false
	}
	return strings.Contains(strings.ToLower(c.cur.name), strings.ToLower(name))
}

func (c *XMLCursor) Clone() Cursor {
	cp := *c
	return &cp
}

func (c *XMLCursor) Index() int {
	if c.cur == nil {
		return -1
	}
	return c.cur.index
}

// HashCode returns a stable, deterministic value per document position: the
// element's preorder sequence number, mixed through FNV-1a so it is not
// simply the raw visitation count. Any injective function over distinct
// clade positions satisfies the contract; this one needs no cryptographic
// properties, so it stays off the dependency graph's crypto packages
// entirely.
func (c *XMLCursor) HashCode() uint32 {
	if c.cur == nil {
		return 0
	}
	h := fnv.New32a()
	var buf [8]byte
	seq := c.cur.seq
	for i := 0; i < 8; i++ {
		buf[i] = byte(seq >> (8 * i))
	}
	_, _ = h.Write(buf[:])
	return h.Sum32()
}
