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

// Package classify answers ortholog and paralog queries against a gene
// tree using its loaded index: a handful of ancestor-chain walks and
// interval-tree lookups per query rather than a full tree walk. See
// Naive for a brute-force reference implementation of the same queries,
// used to cross-check this one in tests.
package classify

import (
	"sort"

	"github.com/ethereum/go-gene-orthology/gtree"
	"github.com/ethereum/go-gene-orthology/gtree/index"
	"github.com/ethereum/go-gene-orthology/internal/ivtree"
)

// Cardinality classifies an ortholog pair by the number and placement of
// duplication ancestors between the query and the result.
type Cardinality uint8

const (
	OneToOne Cardinality = iota
	OneToMany
	ManyToMany
)

func (c Cardinality) String() string {
	switch c {
	case OneToOne:
		return "one-to-one"
	case OneToMany:
		return "one-to-many"
	case ManyToMany:
		return "many-to-many"
	default:
		return "unknown"
	}
}

// SpeciesRelation classifies a paralog pair by whether the query and the
// result share a taxon.
type SpeciesRelation uint8

const (
	WithinSpecies SpeciesRelation = iota
	BetweenSpecies
)

func (r SpeciesRelation) String() string {
	if r == WithinSpecies {
		return "within-species"
	}
	return "between-species"
}

// Ortholog is one classified ortholog of a query gene.
type Ortholog struct {
	GeneName    string
	Taxon       string
	Cardinality Cardinality
}

// Paralog is one classified paralog of a query gene.
type Paralog struct {
	GeneName string
	Taxon    string
	Relation SpeciesRelation
}

// Classifier answers queries against a tree and its matching index. The
// two must come from the same Build (or a Build/Write/Load round trip of
// it); mixing a tree with an unrelated index produces undefined results.
type Classifier struct {
	tree *gtree.Tree
	idx  *index.Index
}

func New(tree *gtree.Tree, idx *index.Index) *Classifier {
	return &Classifier{tree: tree, idx: idx}
}

// labelRange is a closed, inclusive [min, max] range of dense leaf labels.
type labelRange struct{ min, max uint32 }

// queryLeaf resolves geneName to its index record and in-memory node. The
// second return is false if the gene is absent from the index, in which
// case callers report an empty result rather than an error (spec: the
// classifier never raises NotFound).
func (c *Classifier) queryLeaf(geneName string) (index.Leaf, *gtree.Node, bool) {
	leaf, ok := c.idx.Leaves[geneName]
	if !ok {
		return index.Leaf{}, nil, false
	}
	node, ok := c.tree.LeafByHash(leaf.Hash)
	if !ok {
		return index.Leaf{}, nil, false
	}
	return leaf, node, true
}

// Orthologs returns every ortholog of geneName, grouped by cardinality in
// one-to-one, one-to-many, many-to-many order (spec §4.4.4); within a
// group the order is the ancestor walk's, nearest ancestor first and
// ascending labels within each ancestor's new range, which is stable but
// not overall label order.
func (c *Classifier) Orthologs(geneName string) ([]Ortholog, error) {
	leaf, node, ok := c.queryLeaf(geneName)
	if !ok {
		return nil, nil
	}

	var oneToOne, oneToMany, manyToMany []uint32
	visited := make(map[uint32]bool)
	dupOnPath := 0
	prev := labelRange{leaf.Label, leaf.Label}

	for _, ancestor := range node.Ancestors() {
		in, ok := c.idx.InternalNodes[ancestor.Hash()]
		if !ok {
			continue
		}
		curr := labelRange{in.Min, in.Max}

		switch in.Type {
		case gtree.Speciation, gtree.Dubious:
			for _, r := range newRanges(curr, prev) {
				contained := c.idx.DuplicationNodes.FindContained(r.min, r.max)
				dupUnion := mergeContained(contained)
				for label := r.min; label <= r.max; label++ {
					if visited[label] {
						continue
					}
					visited[label] = true
					inDup := inUnion(dupUnion, label)
					cardinality := classifyOrtholog(dupOnPath > 0, inDup)
					switch cardinality {
					case OneToOne:
						oneToOne = append(oneToOne, label)
					case OneToMany:
						oneToMany = append(oneToMany, label)
					case ManyToMany:
						manyToMany = append(manyToMany, label)
					}
					if label == r.max {
						break // avoid uint32 wraparound when max is the type's maximum value
					}
				}
			}
		case gtree.Duplication:
			dupOnPath++
		}
		prev = curr
	}

	var out []Ortholog
	appendLabels := func(labels []uint32, card Cardinality) {
		for _, l := range labels {
			rl := c.idx.LeafLabels[l]
			taxon := ""
			if n, ok := c.tree.LeafByHash(rl.Hash); ok {
				taxon = n.Taxonomy()
			}
			out = append(out, Ortholog{GeneName: rl.GeneName, Taxon: taxon, Cardinality: card})
		}
	}
	appendLabels(oneToOne, OneToOne)
	appendLabels(oneToMany, OneToMany)
	appendLabels(manyToMany, ManyToMany)
	return out, nil
}

// Paralogs returns every paralog of geneName, in label order. Every
// ancestor claims the labels of its interval not already claimed by a
// nearer (deeper) one, so each label is claimed by its LCA with the query;
// only labels claimed by a DUPLICATION ancestor are reported, which keeps a
// farther duplication from re-reporting a nearer speciation's orthologs.
func (c *Classifier) Paralogs(geneName string) ([]Paralog, error) {
	leaf, node, ok := c.queryLeaf(geneName)
	if !ok {
		return nil, nil
	}
	queryTaxon := node.Taxonomy()

	visited := map[uint32]bool{leaf.Label: true}
	var labels []uint32

	for _, ancestor := range node.Ancestors() {
		in, ok := c.idx.InternalNodes[ancestor.Hash()]
		if !ok {
			continue
		}
		emit := in.Type == gtree.Duplication
		for label := in.Min; label <= in.Max; label++ {
			if !visited[label] {
				visited[label] = true
				if emit {
					labels = append(labels, label)
				}
			}
			if label == in.Max {
				break
			}
		}
	}

	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	out := make([]Paralog, 0, len(labels))
	for _, l := range labels {
		rl := c.idx.LeafLabels[l]
		taxon := ""
		if n, ok := c.tree.LeafByHash(rl.Hash); ok {
			taxon = n.Taxonomy()
		}
		relation := BetweenSpecies
		if taxon == queryTaxon {
			relation = WithinSpecies
		}
		out = append(out, Paralog{GeneName: rl.GeneName, Taxon: taxon, Relation: relation})
	}
	return out, nil
}

// newRanges computes curr \ prev as up to two disjoint label ranges: the
// part of curr to the left of prev and the part to its right. prev is
// always a contiguous sub-range of curr (it is either the query's own
// singleton label or a previously visited child's interval), so this is
// a strict generalization of the spec's two named cases (rightward:
// curr.min == prev.min; leftward: curr.max == prev.max) to trees with
// more than two children per node.
func newRanges(curr, prev labelRange) []labelRange {
	var out []labelRange
	if prev.min > curr.min {
		out = append(out, labelRange{curr.min, prev.min - 1})
	}
	if prev.max < curr.max {
		out = append(out, labelRange{prev.max + 1, curr.max})
	}
	return out
}

// mergeContained reduces a set of (possibly nested or overlapping)
// duplication-node intervals returned by FindContained into a sorted,
// disjoint set covering the same labels, per spec §4.4.3: sort by start,
// then fold each interval into the running merged range, skipping ones
// strictly contained in it and extending it across ones that overlap.
func mergeContained(in []ivtree.Interval) []labelRange {
	if len(in) == 0 {
		return nil
	}
	sorted := make([]ivtree.Interval, len(in))
	copy(sorted, in)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Stop < sorted[j].Stop
	})

	merged := []labelRange{{sorted[0].Start, sorted[0].Stop}}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Stop <= last.max {
			continue // strictly contained in the running merged range
		}
		if iv.Start <= last.max+1 {
			last.max = iv.Stop // overlaps or abuts; extend in place
			continue
		}
		merged = append(merged, labelRange{iv.Start, iv.Stop})
	}
	return merged
}

func classifyOrtholog(dupOnPath, inDup bool) Cardinality {
	switch {
	case !dupOnPath && !inDup:
		return OneToOne
	case dupOnPath && inDup:
		return ManyToMany
	default:
		return OneToMany
	}
}

func inUnion(ranges []labelRange, label uint32) bool {
	for _, r := range ranges {
		if label >= r.min && label <= r.max {
			return true
		}
	}
	return false
}
