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

package phyloxml

import (
	"strings"
	"testing"
)

func TestXMLCursorNavigation(t *testing.T) {
	doc := `<phyloxml><phylogeny><clade><name>root</name><clade><name>A</name></clade><clade><name>B</name></clade></clade></phylogeny></phyloxml>`
	cur, err := NewXMLCursor(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("NewXMLCursor: %v", err)
	}
	cur.ToRoot()

	if !cur.ToFirstChildNamed("phyloxml") {
		t.Fatalf("ToFirstChildNamed(phyloxml) failed")
	}
	if !cur.ToFirstChildNamed("phylogeny") {
		t.Fatalf("ToFirstChildNamed(phylogeny) failed")
	}
	if !cur.ToFirstChildNamed("clade") {
		t.Fatalf("ToFirstChildNamed(clade) failed")
	}

	clone := cur.Clone()
	if !clone.ToFirstChildNamed("name") {
		t.Fatalf("clone ToFirstChildNamed(name) failed")
	}
	if clone.Text() != "root" {
		t.Fatalf("clone.Text() = %q, want root", clone.Text())
	}
	// original cursor must be unaffected by navigating the clone.
	if cur.ElementName() != "clade" {
		t.Fatalf("original cursor moved: ElementName() = %q, want clade", cur.ElementName())
	}

	if !cur.ToFirstChild() {
		t.Fatalf("ToFirstChild failed")
	}
	if !cur.MatchElement("NAME") {
		t.Fatalf("MatchElement(NAME) should match case-insensitively")
	}
	if !cur.ToNextSibling() {
		t.Fatalf("ToNextSibling failed")
	}
	if got, _ := cur.Attr("missing"); got != "" {
		t.Fatalf("Attr(missing) = %q, want \"\"", got)
	}
	if !cur.ToParent() {
		t.Fatalf("ToParent failed")
	}
}

func TestHashCodeStableAndDistinct(t *testing.T) {
	doc := `<phyloxml><phylogeny><clade><clade><name>A</name></clade><clade><name>B</name></clade></clade></phylogeny></phyloxml>`
	cur, err := NewXMLCursor(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("NewXMLCursor: %v", err)
	}
	cur.ToRoot()
	cur.ToFirstChildNamed("phyloxml")
	cur.ToFirstChildNamed("phylogeny")
	cur.ToFirstChildNamed("clade")
	cur.ToFirstChild()

	h1 := cur.HashCode()
	h2 := cur.HashCode()
	if h1 != h2 {
		t.Fatalf("HashCode() not stable across calls: %d != %d", h1, h2)
	}

	if !cur.ToNextSibling() {
		t.Fatalf("ToNextSibling failed")
	}
	if cur.HashCode() == h1 {
		t.Fatalf("HashCode() did not distinguish sibling positions")
	}
}

func TestNamespacedElementMatching(t *testing.T) {
	doc := `<phy:phyloxml><phy:phylogeny><phy:clade><phy:name>A</phy:name></phy:clade></phy:phylogeny></phy:phyloxml>`
	cur, err := NewXMLCursor(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("NewXMLCursor: %v", err)
	}
	cur.ToRoot()
	if !cur.ToFirstChildNamed("phyloxml") {
		t.Fatalf("namespaced phyloxml element not matched")
	}
}
