package sim

import "fmt"

// node is one element of the disjoint-set forest. size is only meaningful
// while the node is a root (parent == own index).
type node struct {
	parent int
	size   int
}

// UnionFind partitions the elements 0..n-1 into disjoint sets.
// Sets are stored as trees; find uses path compression and union attaches
// the smaller tree under the larger one.
//
// Thread-safety: NOT thread-safe. Each trial owns its own instance.
type UnionFind struct {
	nodes    []node
	numSets  int
	consumed bool
}

// NewUnionFind creates size singleton sets. size may be 0.
func NewUnionFind(size int) *UnionFind {
	if size < 0 {
		panic(fmt.Sprintf("unionfind: negative size %d", size))
	}
	nodes := make([]node, size)
	for i := range nodes {
		nodes[i] = node{parent: i, size: 1}
	}
	return &UnionFind{nodes: nodes, numSets: size}
}

// Len returns the number of elements.
func (u *UnionFind) Len() int {
	return len(u.nodes)
}

// NumSets returns the current number of disjoint sets.
func (u *UnionFind) NumSets() int {
	return u.numSets
}

func (u *UnionFind) check(x int) {
	if u.consumed {
		panic("unionfind: use after Sets")
	}
	if x < 0 || x >= len(u.nodes) {
		panic(fmt.Sprintf("unionfind: index %d out of range [0, %d)", x, len(u.nodes)))
	}
}

// Find returns the root of the set containing x and re-points every node on
// the walked path directly at that root.
func (u *UnionFind) Find(x int) int {
	u.check(x)
	return u.find(x)
}

func (u *UnionFind) find(x int) int {
	root := x
	for u.nodes[root].parent != root {
		root = u.nodes[root].parent
	}
	for x != root {
		next := u.nodes[x].parent
		u.nodes[x].parent = root
		x = next
	}
	return root
}

// Union merges the sets containing x and y and reports whether a merge
// happened. On equal sizes y's root is attached under x's root.
func (u *UnionFind) Union(x, y int) bool {
	u.check(x)
	u.check(y)
	rx, ry := u.find(x), u.find(y)
	if rx == ry {
		return false
	}
	if u.nodes[rx].size < u.nodes[ry].size {
		rx, ry = ry, rx
	}
	u.nodes[ry].parent = rx
	u.nodes[rx].size += u.nodes[ry].size
	u.numSets--
	return true
}

// Connected reports whether a and b are in the same set.
func (u *UnionFind) Connected(a, b int) bool {
	return u.Find(a) == u.Find(b)
}

// SizeOf returns the size of the set containing x.
func (u *UnionFind) SizeOf(x int) int {
	return u.nodes[u.Find(x)].size
}

// SetSizes returns the size of every set, in increasing order of root index.
// Unlike Sets it leaves the structure usable.
func (u *UnionFind) SetSizes() []int {
	if u.consumed {
		panic("unionfind: use after Sets")
	}
	sizes := make([]int, 0, u.numSets)
	for i := range u.nodes {
		if u.nodes[i].parent == i {
			sizes = append(sizes, u.nodes[i].size)
		}
	}
	return sizes
}

// Sets finalizes the structure: it compresses every path, groups the
// elements by root and returns the groups. Group order is unspecified.
// The UnionFind must not be used afterwards.
func (u *UnionFind) Sets() [][]int {
	if u.consumed {
		panic("unionfind: Sets called twice")
	}
	slot := make(map[int]int, u.numSets)
	groups := make([][]int, 0, u.numSets)
	for i := range u.nodes {
		root := u.find(i)
		idx, ok := slot[root]
		if !ok {
			idx = len(groups)
			slot[root] = idx
			groups = append(groups, make([]int, 0, u.nodes[root].size))
		}
		groups[idx] = append(groups[idx], i)
	}
	u.nodes = nil
	u.consumed = true
	return groups
}
