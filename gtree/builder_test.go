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

package gtree

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-gene-orthology/phyloxml"
)

func parse(t *testing.T, doc string) phyloxml.Cursor {
	t.Helper()
	cur, err := phyloxml.NewXMLCursor(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("NewXMLCursor: %v", err)
	}
	cur.ToRoot()
	return cur
}

func TestBuildMissingPhyloxml(t *testing.T) {
	cur := parse(t, `<nexml/>`)
	if _, err := Build(cur); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("Build() error = %v, want ErrMalformedInput", err)
	}
}

func TestBuildMissingPhylogeny(t *testing.T) {
	cur := parse(t, `<phyloxml><network/></phyloxml>`)
	if _, err := Build(cur); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("Build() error = %v, want ErrMalformedInput", err)
	}
}

func TestBuildMissingClade(t *testing.T) {
	cur := parse(t, `<phyloxml><phylogeny><name/></phylogeny></phyloxml>`)
	if _, err := Build(cur); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("Build() error = %v, want ErrMalformedInput", err)
	}
}

func TestBuildNonNumericConfidence(t *testing.T) {
	doc := `<phyloxml><phylogeny><clade>
		<events><duplications>1</duplications></events>
		<confidence type="duplication_confidence_score">not-a-number</confidence>
		<clade><name>A</name></clade>
		<clade><name>B</name></clade>
	</clade></phylogeny></phyloxml>`
	if _, err := Build(parse(t, doc)); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("Build() error = %v, want ErrMalformedInput", err)
	}
}

func TestBuildLeafTaxonomyAndGeneName(t *testing.T) {
	doc := `<phyloxml><phylogeny><clade>
		<events><speciations>1</speciations></events>
		<clade><name>A</name><taxonomy><scientific_name>Homo sapiens</scientific_name></taxonomy></clade>
		<clade><name>B</name></clade>
	</clade></phylogeny></phyloxml>`
	tree, err := Build(parse(t, doc))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	leaves := tree.Leaves()
	if len(leaves) != 2 {
		t.Fatalf("len(Leaves()) = %d, want 2", len(leaves))
	}
	if leaves[0].GeneName() != "A" || leaves[0].Taxonomy() != "Homo sapiens" {
		t.Fatalf("leaves[0] = %q/%q, want A/Homo sapiens", leaves[0].GeneName(), leaves[0].Taxonomy())
	}
	if leaves[1].GeneName() != "B" || leaves[1].Taxonomy() != "" {
		t.Fatalf("leaves[1] = %q/%q, want B/\"\"", leaves[1].GeneName(), leaves[1].Taxonomy())
	}

	if _, ok := tree.LeafByHash(leaves[0].Hash()); !ok {
		t.Fatalf("LeafByHash(leaves[0].Hash()) not found")
	}
}

func TestBuildDubiousDemotion(t *testing.T) {
	doc := `<phyloxml><phylogeny><clade>
		<events><duplications>1</duplications></events>
		<confidence type="duplication_confidence_score">0</confidence>
		<clade><name>A</name></clade>
		<clade><name>B</name></clade>
	</clade></phylogeny></phyloxml>`
	tree, err := Build(parse(t, doc))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tree.Root().Type() != Dubious {
		t.Fatalf("root type = %v, want Dubious", tree.Root().Type())
	}
}

func TestBuildOtherWhenNoEvents(t *testing.T) {
	doc := `<phyloxml><phylogeny><clade>
		<clade><name>A</name></clade>
		<clade><name>B</name></clade>
	</clade></phylogeny></phyloxml>`
	tree, err := Build(parse(t, doc))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tree.Root().Type() != Other {
		t.Fatalf("root type = %v, want Other", tree.Root().Type())
	}
}
