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

// Package index builds, persists and reloads the compact per-tree index:
// dense leaf labels, internal-node intervals, and the duplication-interval
// tree, so that a repeated query against the same tree costs a handful of
// interval-tree lookups instead of a full tree walk.
package index

import (
	"fmt"
	"io"

	"github.com/ethereum/go-gene-orthology/gtree"
	"github.com/ethereum/go-gene-orthology/internal/ivtree"
)

// Leaf is the persisted shape of an indexed leaf.
type Leaf struct {
	Hash     uint32
	Label    uint32
	GeneName string
}

// Internal is the persisted shape of an indexed internal node.
type Internal struct {
	Hash     uint32
	Min, Max uint32
	Type     gtree.NodeType
}

// Index holds the four lookup structures described in spec §3. It is a
// standalone value: a gtree.Tree does not hold or own an Index, and each
// Build or Load returns a new one, which callers pass alongside the tree.
type Index struct {
	Leaves           map[string]Leaf     // gene name -> leaf
	LeafLabels       []Leaf              // label -> leaf, dense, label order
	InternalNodes    map[uint32]Internal // node hash -> internal
	DuplicationNodes *ivtree.Tree        // duplication-node intervals, label -> node hash

	// internalOrder preserves the post-order the internals were discovered
	// in during Build, so Write produces byte-identical output across runs
	// on identical input (spec §8 invariant 8) without depending on Go's
	// randomized map iteration order.
	internalOrder []uint32
	dupOrder      []ivtree.Interval
}

// Build assigns dense DFS labels to every leaf, computes each internal
// node's (min,max) label interval, and collects the duplication-node
// intervals, per spec §4.2.
func Build(t *gtree.Tree) (*Index, error) {
	root := t.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: empty tree", gtree.ErrMalformedInput)
	}

	idx := &Index{
		Leaves:        make(map[string]Leaf),
		InternalNodes: make(map[uint32]Internal),
	}

	var label uint32
	var assign func(n *gtree.Node) (uint32, uint32, error)
	assign = func(n *gtree.Node) (uint32, uint32, error) {
		if n.IsLeaf() {
			l := label
			label++
			leaf := Leaf{Hash: n.Hash(), Label: l, GeneName: n.GeneName()}
			if _, dup := idx.Leaves[leaf.GeneName]; dup {
				return 0, 0, fmt.Errorf("%w: duplicate gene name %q", gtree.ErrMalformedInput, leaf.GeneName)
			}
			idx.Leaves[leaf.GeneName] = leaf
			idx.LeafLabels = append(idx.LeafLabels, leaf)
			return l, l, nil
		}

		children := n.Children()
		if len(children) == 0 {
			return 0, 0, fmt.Errorf("%w: internal node with no children", gtree.ErrMalformedInput)
		}
		min, max, err := assign(children[0])
		if err != nil {
			return 0, 0, err
		}
		for _, c := range children[1:] {
			cmin, cmax, err := assign(c)
			if err != nil {
				return 0, 0, err
			}
			if cmin < min {
				min = cmin
			}
			if cmax > max {
				max = cmax
			}
		}

		internal := Internal{Hash: n.Hash(), Min: min, Max: max, Type: n.Type()}
		idx.InternalNodes[n.Hash()] = internal
		idx.internalOrder = append(idx.internalOrder, n.Hash())
		// Dubious nodes do not contribute to the duplication interval set -
		// this is the behavioural consequence of the confidence threshold
		// and is load-bearing for query accuracy (spec §4.2, §8 S5).
		if n.Type() == gtree.Duplication {
			iv := ivtree.Interval{Start: min, Stop: max, Value: n.Hash()}
			idx.dupOrder = append(idx.dupOrder, iv)
		}
		return min, max, nil
	}

	if _, _, err := assign(root); err != nil {
		return nil, err
	}
	idx.DuplicationNodes = ivtree.New(idx.dupOrder...)
	return idx, nil
}

// Write serializes the index in the section-oriented format of spec §6.2.
func Write(w io.Writer, idx *Index) error {
	if err := writeU32(w, uint32(len(idx.LeafLabels))); err != nil {
		return err
	}
	for _, leaf := range idx.LeafLabels {
		if err := writeU32(w, uint32(gtree.Leaf)); err != nil {
			return err
		}
		if err := writeU32(w, leaf.Label); err != nil {
			return err
		}
		if err := writeString(w, leaf.GeneName); err != nil {
			return err
		}
		if err := writeU32(w, leaf.Hash); err != nil {
			return err
		}
	}

	if err := writeU32(w, uint32(len(idx.internalOrder))); err != nil {
		return err
	}
	for _, hash := range idx.internalOrder {
		in := idx.InternalNodes[hash]
		if err := writeU32(w, uint32(in.Type)); err != nil {
			return err
		}
		if err := writeU32(w, in.Min); err != nil {
			return err
		}
		if err := writeU32(w, in.Max); err != nil {
			return err
		}
		if err := writeU32(w, in.Hash); err != nil {
			return err
		}
	}

	if err := writeU32(w, uint32(len(idx.dupOrder))); err != nil {
		return err
	}
	for _, iv := range idx.dupOrder {
		if err := writeU32(w, uint32(gtree.Duplication)); err != nil {
			return err
		}
		if err := writeU32(w, iv.Start); err != nil {
			return err
		}
		if err := writeU32(w, iv.Stop); err != nil {
			return err
		}
		if err := writeU32(w, iv.Value); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the three sections back in order and rebuilds the four lookup
// structures, including a single bulk construction of the duplication
// interval tree. A record whose type does not match its section's expected
// type is skipped rather than rejected (tolerant reader per spec §6.2); a
// type code outside the valid enum range is an ErrFormatMismatch, as is any
// trailing data left over after the three declared sections are consumed.
func Load(r io.Reader) (*Index, error) {
	idx := &Index{
		Leaves:        make(map[string]Leaf),
		InternalNodes: make(map[uint32]Internal),
	}

	leafCount, err := readU32(r)
	if err != nil {
		return nil, wrapReadErr(err)
	}
	idx.LeafLabels = make([]Leaf, 0, leafCount)
	for i := uint32(0); i < leafCount; i++ {
		typ, err := readU32(r)
		if err != nil {
			return nil, wrapReadErr(err)
		}
		if typ > maxTypeCode {
			return nil, fmt.Errorf("%w: invalid type code %d in leaf section", gtree.ErrFormatMismatch, typ)
		}
		label, err := readU32(r)
		if err != nil {
			return nil, wrapReadErr(err)
		}
		nameLen, err := readU32(r)
		if err != nil {
			return nil, wrapReadErr(err)
		}
		name, err := readString(r, nameLen)
		if err != nil {
			return nil, wrapReadErr(err)
		}
		hash, err := readU32(r)
		if err != nil {
			return nil, wrapReadErr(err)
		}
		if gtree.NodeType(typ) != gtree.Leaf {
			continue // tolerant reader: skip records of the wrong type for this section
		}
		leaf := Leaf{Hash: hash, Label: label, GeneName: name}
		idx.Leaves[leaf.GeneName] = leaf
		idx.LeafLabels = append(idx.LeafLabels, leaf)
	}

	internalCount, err := readU32(r)
	if err != nil {
		return nil, wrapReadErr(err)
	}
	for i := uint32(0); i < internalCount; i++ {
		typ, err := readU32(r)
		if err != nil {
			return nil, wrapReadErr(err)
		}
		if typ > maxTypeCode {
			return nil, fmt.Errorf("%w: invalid type code %d in internal section", gtree.ErrFormatMismatch, typ)
		}
		min, err := readU32(r)
		if err != nil {
			return nil, wrapReadErr(err)
		}
		max, err := readU32(r)
		if err != nil {
			return nil, wrapReadErr(err)
		}
		hash, err := readU32(r)
		if err != nil {
			return nil, wrapReadErr(err)
		}
		if gtree.NodeType(typ) == gtree.Leaf {
			continue // not an internal-node record; skip
		}
		in := Internal{Hash: hash, Min: min, Max: max, Type: gtree.NodeType(typ)}
		idx.InternalNodes[in.Hash] = in
		idx.internalOrder = append(idx.internalOrder, in.Hash)
	}

	dupCount, err := readU32(r)
	if err != nil {
		return nil, wrapReadErr(err)
	}
	for i := uint32(0); i < dupCount; i++ {
		typ, err := readU32(r)
		if err != nil {
			return nil, wrapReadErr(err)
		}
		if typ > maxTypeCode {
			return nil, fmt.Errorf("%w: invalid type code %d in duplication section", gtree.ErrFormatMismatch, typ)
		}
		start, err := readU32(r)
		if err != nil {
			return nil, wrapReadErr(err)
		}
		stop, err := readU32(r)
		if err != nil {
			return nil, wrapReadErr(err)
		}
		hash, err := readU32(r)
		if err != nil {
			return nil, wrapReadErr(err)
		}
		if gtree.NodeType(typ) != gtree.Duplication {
			continue
		}
		iv := ivtree.Interval{Start: start, Stop: stop, Value: hash}
		idx.dupOrder = append(idx.dupOrder, iv)
	}
	idx.DuplicationNodes = ivtree.New(idx.dupOrder...)

	// Trailing bytes after the three declared sections indicate the file's
	// layout doesn't actually match the section-count header we just
	// trusted.
	var probe [1]byte
	if n, err := r.Read(probe[:]); n > 0 || (err != nil && err != io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after duplication section", gtree.ErrFormatMismatch)
	}

	return idx, nil
}
