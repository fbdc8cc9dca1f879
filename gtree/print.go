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
	"io"
)

// Fprint writes a hierarchical text diagram of the tree to w: one line per
// clade, indented by depth, showing its type and, for leaves, gene name and
// taxon, and for duplication and dubious internals their confidence. Used
// by the CLI's tree-print flag.
func (t *Tree) Fprint(w io.Writer) error {
	if t.root == nil {
		return nil
	}
	return fprintNode(w, t.root, "")
}

func fprintNode(w io.Writer, n *Node, pad string) error {
	if n.IsLeaf() {
		taxon := n.taxonomy
		if taxon == "" {
			taxon = "-"
		}
		if _, err := fmt.Fprintf(w, "%sLEAF %s [%s]\n", pad, n.geneName, taxon); err != nil {
			return err
		}
		return nil
	}

	line := fmt.Sprintf("%s%s", pad, n.typ)
	if n.typ == Duplication || n.typ == Dubious {
		line += fmt.Sprintf(" (confidence=%g)", n.confidence)
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := fprintNode(w, c, pad+"  "); err != nil {
			return err
		}
	}
	return nil
}
