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

// Package ivtree is an immutable, bulk-built augmented interval tree keyed
// by closed [start,stop] label ranges, each carrying an opaque uint32
// value (here, a gene tree node hash).
//
// The ordering and containment rules ("lower-left to-the-left, a truly
// covers b iff a's bounds are <= b's on the left and >= on the right") are
// ported from the ordered-BST-of-intervals approach in
// github.com/gaissmai/interval; this package reimplements that approach
// directly over a balanced, sorted-and-median-split tree rather than
// importing the library, since only a narrow read-only slice of its public
// surface (bulk build + contained-by query) is needed and the exact
// generic Interface it asks callers to implement could not be verified
// against the fragment of its source available for reference.
package ivtree

import "sort"

// Interval is a closed range [Start, Stop] with an attached value.
type Interval struct {
	Start, Stop uint32
	Value       uint32
}

type node struct {
	iv          Interval
	maxStop     uint32
	left, right *node
}

// Tree is an immutable interval tree, always constructed in one bulk pass
// (spec: "Builds the interval tree from the duplication section in a single
// bulk construction, not incremental insertions").
type Tree struct {
	root *node
	size int
}

// New builds a Tree over items in one pass: sort by (Start, Stop), then
// recursively split on the median to get a balanced BST, augmenting every
// node with the maximum Stop anywhere in its subtree so queries can prune
// whole branches.
func New(items ...Interval) *Tree {
	sorted := make([]Interval, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Stop < sorted[j].Stop
	})
	return &Tree{root: build(sorted), size: len(sorted)}
}

func build(items []Interval) *node {
	if len(items) == 0 {
		return nil
	}
	mid := len(items) / 2
	n := &node{iv: items[mid], maxStop: items[mid].Stop}
	n.left = build(items[:mid])
	n.right = build(items[mid+1:])
	if n.left != nil && n.left.maxStop > n.maxStop {
		n.maxStop = n.left.maxStop
	}
	if n.right != nil && n.right.maxStop > n.maxStop {
		n.maxStop = n.right.maxStop
	}
	return n
}

func (t *Tree) Size() int { return t.size }

// FindContained returns every interval [s,t] stored in the tree with
// lo <= s <= t <= hi. Order is unspecified and may vary between equivalent
// trees built from the same items in different orders; callers that need a
// deterministic result merge/sort afterward (see gtree/classify).
func (t *Tree) FindContained(lo, hi uint32) []Interval {
	var out []Interval
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil || n.maxStop < lo {
			return
		}
		walk(n.left)
		if n.iv.Start >= lo && n.iv.Start <= hi && n.iv.Stop <= hi {
			out = append(out, n.iv)
		}
		if n.iv.Start > hi {
			return
		}
		walk(n.right)
	}
	walk(t.root)
	return out
}
