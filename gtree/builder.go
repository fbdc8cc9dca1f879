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
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-gene-orthology/phyloxml"
)

// Build walks cur from the document root and materializes one Node per
// <clade> descendant of the first <clade> inside the first <phylogeny>
// inside the first <phyloxml> element. It fails with ErrMalformedInput if
// any of those ancestors is missing, or if a duplication confidence value
// is present but not numeric.
func Build(cur phyloxml.Cursor) (*Tree, error) {
	c := cur.Clone()
	c.ToRoot()

	if !descendToNamed(c, "phyloxml") {
		return nil, fmt.Errorf("%w: no phyloxml element", ErrMalformedInput)
	}
	if !descendToNamed(c, "phylogeny") {
		return nil, fmt.Errorf("%w: no phylogeny element", ErrMalformedInput)
	}
	if !descendToNamed(c, "clade") {
		return nil, fmt.Errorf("%w: no clade element", ErrMalformedInput)
	}

	root, leaves, err := buildNode(c, nil)
	if err != nil {
		return nil, err
	}
	return &Tree{root: root, leafByHash: leaves}, nil
}

// descendToNamed moves c to the first child (among the children of c's
// current position) whose element name contains substr, case-insensitively.
func descendToNamed(c phyloxml.Cursor, substr string) bool {
	return c.ToFirstChildNamed(substr)
}

// buildNode recursively materializes the clade at c's current position,
// returning the node and this subtree's hash->leaf map. Internal nodes'
// per-child maps are merged upward and discarded rather than retained, so
// only the Tree built from the root ends up holding the authoritative map -
// the same "merge upward, root is authoritative" invariant the design notes
// describe, expressed here as a plain return value instead of a field that
// would need to be nulled out on every non-root node afterwards.
func buildNode(c phyloxml.Cursor, parent *Node) (*Node, map[uint32]*Node, error) {
	n := &Node{hash: c.HashCode(), parent: parent}

	childClades := collectChildClades(c)
	if len(childClades) == 0 {
		n.typ = Leaf
		if name, ok := childText(c, "name"); ok {
			n.geneName = strings.TrimSpace(name)
		}
		if tax, ok := taxonomyText(c); ok {
			n.taxonomy = tax
		}
		return n, map[uint32]*Node{n.hash: n}, nil
	}

	typ, confidence, err := deriveInternalType(c)
	if err != nil {
		return nil, nil, err
	}
	n.typ = typ
	n.confidence = confidence

	leaves := make(map[uint32]*Node)
	n.children = make([]*Node, 0, len(childClades))
	for _, cc := range childClades {
		child, childLeaves, err := buildNode(cc, n)
		if err != nil {
			return nil, nil, err
		}
		n.children = append(n.children, child)
		for h, l := range childLeaves {
			leaves[h] = l
		}
	}
	return n, leaves, nil
}

// collectChildClades returns a cloned cursor positioned at each direct
// <clade> child of c's current position, in document order.
func collectChildClades(c phyloxml.Cursor) []phyloxml.Cursor {
	walk := c.Clone()
	if !walk.ToFirstChild() {
		return nil
	}
	var out []phyloxml.Cursor
	for {
		if walk.MatchElement("clade") {
			out = append(out, walk.Clone())
		}
		if !walk.ToNextSibling() {
			break
		}
	}
	return out
}

// childText returns the text content of the first direct child of c's
// current position whose name contains substr.
func childText(c phyloxml.Cursor, substr string) (string, bool) {
	walk := c.Clone()
	if !walk.ToFirstChildNamed(substr) {
		return "", false
	}
	return walk.Text(), true
}

// taxonomyText extracts a representative taxon string from a <taxonomy>
// child, if present: the text of its first nested element (typically
// <scientific_name> or <code>), falling back to the taxonomy element's own
// text.
func taxonomyText(c phyloxml.Cursor) (string, bool) {
	walk := c.Clone()
	if !walk.ToFirstChildNamed("taxonomy") {
		return "", false
	}
	inner := walk.Clone()
	if inner.ToFirstChild() {
		if t := strings.TrimSpace(inner.Text()); t != "" {
			return t, true
		}
	}
	return strings.TrimSpace(walk.Text()), true
}

// deriveInternalType applies the type derivation rule (spec §3): a clade
// with an <events> child reporting non-empty <speciations> is SPECIATION; a
// non-empty <duplications> is DUPLICATION unless the clade's
// <confidence type="duplication_confidence_score"> is <= 0, in which case it
// is demoted to DUBIOUS. Anything else is OTHER.
func deriveInternalType(c phyloxml.Cursor) (NodeType, float64, error) {
	events := c.Clone()
	if !events.ToFirstChildNamed("events") {
		return Other, 0, nil
	}

	if specText, ok := childText(events, "speciations"); ok && strings.TrimSpace(specText) != "" {
		return Speciation, 0, nil
	}

	dupText, ok := childText(events, "duplications")
	if !ok || strings.TrimSpace(dupText) == "" {
		return Other, 0, nil
	}

	confidence, hasConfidence, err := duplicationConfidence(c)
	if err != nil {
		return Other, 0, err
	}
	if hasConfidence && confidence <= dubiousConfidenceThreshold {
		return Dubious, confidence, nil
	}
	return Duplication, confidence, nil
}

// duplicationConfidence reads the clade's
// <confidence type="duplication_confidence_score"> value, if present.
func duplicationConfidence(c phyloxml.Cursor) (float64, bool, error) {
	walk := c.Clone()
	if !walk.ToFirstChild() {
		return 0, false, nil
	}
	for {
		if walk.MatchElement("confidence") {
			if typ, ok := walk.Attr("type"); ok && strings.Contains(strings.ToLower(typ), "duplication_confidence_score") {
				text := strings.TrimSpace(walk.Text())
				v, err := strconv.ParseFloat(text, 64)
				if err != nil {
					return 0, false, fmt.Errorf("%w: non-numeric confidence value %q", ErrMalformedInput, text)
				}
				return v, true, nil
			}
		}
		if !walk.ToNextSibling() {
			return 0, false, nil
		}
	}
}
