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

package ivtree

import (
	"sort"
	"testing"
)

func sortedIntervals(in []Interval) []Interval {
	out := make([]Interval, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Stop < out[j].Stop
	})
	return out
}

func TestFindContainedBasic(t *testing.T) {
	tree := New(
		Interval{Start: 0, Stop: 1, Value: 1},
		Interval{Start: 3, Stop: 8, Value: 2},
		Interval{Start: 4, Stop: 5, Value: 3},
		Interval{Start: 10, Stop: 10, Value: 4},
	)

	got := sortedIntervals(tree.FindContained(2, 9))
	want := []Interval{{Start: 3, Stop: 8, Value: 2}, {Start: 4, Stop: 5, Value: 3}}
	if len(got) != len(want) {
		t.Fatalf("FindContained(2,9) = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FindContained(2,9)[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFindContainedExcludesPartialOverlap(t *testing.T) {
	tree := New(Interval{Start: 5, Stop: 12, Value: 9})
	if got := tree.FindContained(0, 10); len(got) != 0 {
		t.Fatalf("expected no contained interval for partial overlap, got %+v", got)
	}
	if got := tree.FindContained(5, 12); len(got) != 1 {
		t.Fatalf("expected exact match to be contained, got %+v", got)
	}
}

func TestFindContainedEmptyTree(t *testing.T) {
	tree := New()
	if got := tree.FindContained(0, 100); len(got) != 0 {
		t.Fatalf("expected empty result from empty tree, got %+v", got)
	}
	if tree.Size() != 0 {
		t.Fatalf("expected size 0, got %d", tree.Size())
	}
}

func TestFindContainedNested(t *testing.T) {
	tree := New(
		Interval{Start: 0, Stop: 9, Value: 1},
		Interval{Start: 2, Stop: 5, Value: 2},
		Interval{Start: 3, Stop: 4, Value: 3},
	)
	got := sortedIntervals(tree.FindContained(0, 9))
	if len(got) != 3 {
		t.Fatalf("expected all three nested intervals, got %+v", got)
	}
}
