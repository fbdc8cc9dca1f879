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

package classify

import "github.com/ethereum/go-gene-orthology/gtree"

// Naive answers the same queries as Classifier by walking the in-memory
// tree directly, with no index: O(leaves x depth) per query. It exists as
// a reference oracle for tests, not for production use on large trees.
type Naive struct {
	tree *gtree.Tree
}

func NewNaive(tree *gtree.Tree) *Naive {
	return &Naive{tree: tree}
}

// NaiveOrtholog is an unclassified ortholog: the oracle reports group
// membership but, unlike Classifier, does not itself compute cardinality -
// tests compare only the sets of names the two report (spec §8 invariant
// 5 is an equivalence of ortholog *names*, not of the derived
// cardinality).
type NaiveOrtholog struct {
	GeneName string
	Taxon    string
}

// NaiveParalog is an unclassified paralog; see NaiveOrtholog.
type NaiveParalog struct {
	GeneName string
	Taxon    string
}

// Orthologs walks q's ancestors and, at every ancestor, claims its subtree
// leaves not already claimed by a nearer ancestor - i.e. the leaves whose
// LCA with q is that ancestor. A claimed leaf is only emitted when the
// ancestor's type is SPECIATION or DUBIOUS; a leaf claimed at a DUPLICATION
// (or OTHER) ancestor is still marked visited so a farther SPECIATION
// ancestor cannot re-emit it as an ortholog (it is q's paralog, or
// unrelated, not its ortholog).
func (nv *Naive) Orthologs(geneName string) []NaiveOrtholog {
	q := nv.findLeaf(geneName)
	if q == nil {
		return nil
	}

	visited := map[*gtree.Node]bool{q: true}
	var out []NaiveOrtholog
	for _, ancestor := range q.Ancestors() {
		emit := ancestor.Type() == gtree.Speciation || ancestor.Type() == gtree.Dubious
		for _, leaf := range subtreeLeaves(ancestor) {
			if visited[leaf] {
				continue
			}
			visited[leaf] = true
			if emit {
				out = append(out, NaiveOrtholog{GeneName: leaf.GeneName(), Taxon: leaf.Taxonomy()})
			}
		}
	}
	return out
}

// Paralogs walks q's ancestors and, at every ancestor, claims its subtree
// leaves not already claimed by a nearer ancestor - the symmetric
// "claim at every ancestor, emit only at the matching type" fix of
// Orthologs: a leaf claimed at a SPECIATION/DUBIOUS/OTHER ancestor is
// marked visited but not emitted, so a farther DUPLICATION ancestor cannot
// re-emit it as a paralog (it is q's ortholog, or unrelated, not its
// paralog).
func (nv *Naive) Paralogs(geneName string) []NaiveParalog {
	q := nv.findLeaf(geneName)
	if q == nil {
		return nil
	}

	visited := map[*gtree.Node]bool{q: true}
	var out []NaiveParalog
	for _, ancestor := range q.Ancestors() {
		emit := ancestor.Type() == gtree.Duplication
		for _, leaf := range subtreeLeaves(ancestor) {
			if visited[leaf] {
				continue
			}
			visited[leaf] = true
			if emit {
				out = append(out, NaiveParalog{GeneName: leaf.GeneName(), Taxon: leaf.Taxonomy()})
			}
		}
	}
	return out
}

func (nv *Naive) findLeaf(geneName string) *gtree.Node {
	for _, leaf := range nv.tree.Leaves() {
		if leaf.GeneName() == geneName {
			return leaf
		}
	}
	return nil
}

func subtreeLeaves(n *gtree.Node) []*gtree.Node {
	if n.IsLeaf() {
		return []*gtree.Node{n}
	}
	var out []*gtree.Node
	for _, c := range n.Children() {
		out = append(out, subtreeLeaves(c)...)
	}
	return out
}

// LCA returns the lowest common ancestor of a and b by intersecting their
// ancestor chains (including themselves): walk a's chain nearest-first,
// return the first node that also appears in b's chain. Neither Naive nor
// Classifier calls it; it is exported for checking the ortholog/paralog
// LCA-type rule independently of both.
func LCA(a, b *gtree.Node) *gtree.Node {
	bChain := map[*gtree.Node]bool{b: true}
	for _, n := range b.Ancestors() {
		bChain[n] = true
	}
	if bChain[a] {
		return a
	}
	for _, n := range a.Ancestors() {
		if bChain[n] {
			return n
		}
	}
	return nil
}
