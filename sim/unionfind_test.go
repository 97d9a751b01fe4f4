package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/lrperc/lrperc/sim/internal/testutil"
)

func TestUnionFind_New_SingletonRoots(t *testing.T) {
	uf := NewUnionFind(3)
	for i := 0; i < 3; i++ {
		assert.Equal(t, i, uf.Find(i))
		assert.Equal(t, 1, uf.SizeOf(i))
	}
	assert.Equal(t, 3, uf.NumSets())
}

func TestUnionFind_Union_Basic(t *testing.T) {
	uf := NewUnionFind(4)
	assert.True(t, uf.Union(0, 1))
	assert.Equal(t, uf.Find(0), uf.Find(1))
	assert.NotEqual(t, uf.Find(0), uf.Find(2))
	assert.Equal(t, 3, uf.NumSets())
}

func TestUnionFind_Union_Multiple(t *testing.T) {
	uf := NewUnionFind(5)
	uf.Union(0, 1)
	uf.Union(1, 2)
	uf.Union(3, 4)

	assert.Equal(t, uf.Find(0), uf.Find(1))
	assert.Equal(t, uf.Find(1), uf.Find(2))
	assert.Equal(t, uf.Find(3), uf.Find(4))
	assert.NotEqual(t, uf.Find(0), uf.Find(3))
	assert.Equal(t, 3, uf.SizeOf(2))
	assert.Equal(t, 2, uf.SizeOf(4))
}

func TestUnionFind_Union_SameElementIsNoOp(t *testing.T) {
	uf := NewUnionFind(3)
	assert.False(t, uf.Union(1, 1))
	assert.Equal(t, 1, uf.Find(1))
	assert.Equal(t, 3, uf.NumSets())
}

func TestUnionFind_Union_RepeatedIsNoOp(t *testing.T) {
	uf := NewUnionFind(4)
	require.True(t, uf.Union(0, 2))
	before := append([]node(nil), uf.nodes...)

	assert.False(t, uf.Union(0, 2))
	assert.False(t, uf.Union(2, 0))
	assert.Equal(t, before, uf.nodes)
}

func TestUnionFind_Union_TieAttachesSecondUnderFirst(t *testing.T) {
	uf := NewUnionFind(2)
	uf.Union(0, 1)
	assert.Equal(t, 0, uf.nodes[1].parent)
	assert.Equal(t, 2, uf.nodes[0].size)
}

func TestUnionFind_Union_SmallerUnderLarger(t *testing.T) {
	// GIVEN a set of three rooted at 0 and a singleton 3
	uf := NewUnionFind(4)
	uf.Union(0, 1)
	uf.Union(0, 2)

	// WHEN the singleton is passed first
	uf.Union(3, 0)

	// THEN the singleton's root goes under the larger root
	assert.Equal(t, 0, uf.nodes[3].parent)
	assert.Equal(t, 4, uf.nodes[0].size)
}

func TestUnionFind_PathCompression_Chain(t *testing.T) {
	uf := NewUnionFind(4)
	uf.Union(0, 1)
	uf.Union(1, 2)
	uf.Union(2, 3)

	root := uf.Find(3)
	for i := 0; i < 4; i++ {
		uf.Find(i)
	}
	for i := 0; i < 4; i++ {
		assert.Equal(t, root, uf.nodes[i].parent, "node %d not flattened", i)
	}
}

func TestUnionFind_PathCompression_FlattensDeepPath(t *testing.T) {
	// GIVEN two equal trees merged, leaving 3 two levels below the root
	uf := NewUnionFind(4)
	uf.Union(0, 1)
	uf.Union(2, 3)
	uf.Union(0, 2)
	require.Equal(t, 2, uf.nodes[3].parent)
	require.Equal(t, 0, uf.nodes[2].parent)

	// WHEN 3 is looked up
	root := uf.Find(3)

	// THEN 3 points straight at the root and a second lookup is one hop
	assert.Equal(t, 0, root)
	assert.Equal(t, root, uf.nodes[3].parent)
	assert.Equal(t, root, uf.nodes[uf.nodes[3].parent].parent)
}

func TestUnionFind_Find_Idempotent(t *testing.T) {
	uf := NewUnionFind(10)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 8; i++ {
		uf.Union(rng.Intn(10), rng.Intn(10))
	}
	for i := 0; i < 10; i++ {
		assert.Equal(t, uf.Find(i), uf.Find(i))
		assert.Equal(t, uf.Find(i), uf.Find(uf.Find(i)))
	}
}

func TestUnionFind_DisjointSets(t *testing.T) {
	uf := NewUnionFind(6)
	uf.Union(0, 1)
	uf.Union(2, 3)
	uf.Union(4, 5)

	assert.NotEqual(t, uf.Find(0), uf.Find(2))
	assert.NotEqual(t, uf.Find(0), uf.Find(4))
	assert.NotEqual(t, uf.Find(2), uf.Find(4))
	assert.ElementsMatch(t, []int{2, 2, 2}, uf.SetSizes())
}

func TestUnionFind_Sets_ThreeGroups(t *testing.T) {
	// GIVEN {0,1,2}, {3,4}, {5}
	uf := NewUnionFind(6)
	uf.Union(0, 1)
	uf.Union(1, 2)
	uf.Union(3, 4)

	// WHEN the sets are extracted
	groups := uf.Sets()

	// THEN exactly three groups, keyed by size
	require.Len(t, groups, 3)
	bySize := map[int][]int{}
	for _, g := range groups {
		bySize[len(g)] = g
	}
	assert.ElementsMatch(t, []int{5}, bySize[1])
	assert.ElementsMatch(t, []int{3, 4}, bySize[2])
	assert.ElementsMatch(t, []int{0, 1, 2}, bySize[3])
}

func TestUnionFind_Sets_NoUnionsAllSingletons(t *testing.T) {
	uf := NewUnionFind(7)
	groups := uf.Sets()
	assert.Len(t, groups, 7)
	testutil.AssertPartition(t, groups, 7)
}

func TestUnionFind_Sets_ZeroElements(t *testing.T) {
	uf := NewUnionFind(0)
	assert.Empty(t, uf.Sets())
}

func TestUnionFind_Sets_ConsumesStructure(t *testing.T) {
	uf := NewUnionFind(2)
	uf.Sets()
	assert.Panics(t, func() { uf.Find(0) })
	assert.Panics(t, func() { uf.Sets() })
	assert.Panics(t, func() { uf.SetSizes() })
}

func TestUnionFind_OutOfRange_Panics(t *testing.T) {
	uf := NewUnionFind(3)
	assert.Panics(t, func() { uf.Find(3) })
	assert.Panics(t, func() { uf.Find(-1) })
	assert.Panics(t, func() { uf.Union(0, 5) })
	assert.Panics(t, func() { NewUnionFind(-1) })
}

// TestUnionFind_RandomUnions_MatchesReference checks find(a) == find(b) iff a
// and b were transitively unioned, against a naive label-propagation model.
func TestUnionFind_RandomUnions_MatchesReference(t *testing.T) {
	const n = 200
	rng := rand.New(rand.NewSource(42))
	uf := NewUnionFind(n)
	label := make([]int, n)
	for i := range label {
		label[i] = i
	}
	for step := 0; step < 150; step++ {
		a, b := rng.Intn(n), rng.Intn(n)
		uf.Union(a, b)
		la, lb := label[a], label[b]
		if la != lb {
			for i := range label {
				if label[i] == lb {
					label[i] = la
				}
			}
		}
	}
	for a := 0; a < n; a += 7 {
		for b := 0; b < n; b += 3 {
			if (uf.Find(a) == uf.Find(b)) != (label[a] == label[b]) {
				t.Fatalf("Find disagrees with reference for %d,%d", a, b)
			}
		}
	}

	distinct := map[int]bool{}
	for _, l := range label {
		distinct[l] = true
	}
	assert.Equal(t, len(distinct), uf.NumSets())

	sizes := uf.SetSizes()
	groups := uf.Sets()
	testutil.AssertPartition(t, groups, n)
	assert.Equal(t, testutil.SortedSizes(groups), sortedCopy(sizes))
}

func BenchmarkUnionFind_RandomUnions(b *testing.B) {
	const n = 1 << 16
	rng := rand.New(rand.NewSource(1))
	pairs := make([][2]int, n)
	for i := range pairs {
		pairs[i] = [2]int{rng.Intn(n), rng.Intn(n)}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		uf := NewUnionFind(n)
		for _, p := range pairs {
			uf.Union(p[0], p[1])
		}
	}
}
