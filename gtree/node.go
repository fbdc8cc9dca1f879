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

// Package gtree implements the in-memory gene tree: the node shape produced
// by the tree builder, traversal helpers, and the pretty-printer used by the
// CLI.
package gtree

// NodeType classifies a clade by the event that produced it. The numeric
// values match the type codes of the on-disk index format (see package
// index), so conversions between the two are direct casts.
type NodeType uint8

const (
	Speciation NodeType = iota
	Duplication
	Dubious
	// GeneSplit is enumerated by the wire format but never produced by the
	// tree builder; treated as Other wherever it is encountered.
	GeneSplit
	Leaf
	Other
)

func (t NodeType) String() string {
	switch t {
	case Speciation:
		return "SPECIATION"
	case Duplication:
		return "DUPLICATION"
	case Dubious:
		return "DUBIOUS"
	case GeneSplit:
		return "GENE_SPLIT"
	case Leaf:
		return "LEAF"
	default:
		return "OTHER"
	}
}

// dubiousConfidenceThreshold is the cutoff below (and at) which a
// duplication-flagged clade is demoted to Dubious.
const dubiousConfidenceThreshold = 0.0

// Node is one <clade>. Internal nodes own their children; a Node never owns
// its parent (the back-reference is a plain, non-owning pointer).
type Node struct {
	hash       uint32
	typ        NodeType
	parent     *Node
	children   []*Node
	geneName   string
	taxonomy   string
	confidence float64
}

// Hash is the stable identifier derived from the node's position in the
// source document (see phyloxml.Cursor.HashCode).
func (n *Node) Hash() uint32 { return n.hash }

func (n *Node) Type() NodeType { return n.typ }

func (n *Node) Parent() *Node { return n.parent }

func (n *Node) Children() []*Node { return n.children }

func (n *Node) IsLeaf() bool { return n.typ == Leaf }

// GeneName is only meaningful for leaves.
func (n *Node) GeneName() string { return n.geneName }

// Taxonomy is only meaningful for leaves, and only if the source document
// carried a taxonomy annotation.
func (n *Node) Taxonomy() string { return n.taxonomy }

// Confidence is only meaningful for nodes the builder considered for
// duplication status (i.e. internal nodes with a <duplications> event).
func (n *Node) Confidence() float64 { return n.confidence }

// Tree is the rooted, in-memory gene tree produced by Build. It owns every
// Node transitively through Root; destroying a Tree destroys its nodes.
type Tree struct {
	root       *Node
	leafByHash map[uint32]*Node
}

func (t *Tree) Root() *Node { return t.root }

// LeafByHash is the root's authoritative hash->leaf map (spec: "the leaves
// map on the root shares, by node hash, never by lifetime, with per-child
// leaves maps; during construction the maps are merged upward so only the
// root's map is authoritative").
func (t *Tree) LeafByHash(hash uint32) (*Node, bool) {
	n, ok := t.leafByHash[hash]
	return n, ok
}

// Leaves returns every leaf in left-to-right DFS order - the same order the
// indexer assigns dense labels in.
func (t *Tree) Leaves() []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.IsLeaf() {
			out = append(out, n)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	if t.root != nil {
		walk(t.root)
	}
	return out
}

// Ancestors returns n's ancestor chain, nearest parent first and the root
// last. It walks parent pointers rather than caching a per-node ancestor
// vector (see spec design notes: an earlier revision of the source this
// system is modeled on carried a per-node ancestor vector and paid for it in
// quadratic memory; a query only needs the chain once).
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}
