// Package treemap provides the ordered multiset behind the order-statistics
// aggregates: a binary search tree mapping each distinct key to the number of
// times it was inserted.
//
// The tree is not rebalanced. Insertion degrades to O(n) on sorted input,
// which is an accepted bound for the column cardinalities these aggregates
// see in practice.
package treemap

// Map is an ordered multiset keyed by K. Keys are ordered by the comparator
// supplied to New; inserting an existing key increments its count instead of
// creating a duplicate node.
type Map[K any] struct {
	root     *node[K]
	cmp      func(a, b K) int
	distinct int
	total    int64
}

type node[K any] struct {
	left, right *node[K]
	key         K
	count       int64
}

// New creates an empty multiset ordered by cmp, which must return a negative
// number, zero, or a positive number when a is respectively smaller than,
// equal to, or greater than b.
func New[K any](cmp func(a, b K) int) *Map[K] {
	return &Map[K]{cmp: cmp}
}

// Insert adds one occurrence of key to the multiset.
func (m *Map[K]) Insert(key K) {
	m.total++

	pos := &m.root
	for *pos != nil {
		switch c := m.cmp(key, (*pos).key); {
		case c == 0:
			(*pos).count++
			return
		case c < 0:
			pos = &(*pos).left
		default:
			pos = &(*pos).right
		}
	}
	*pos = &node[K]{key: key, count: 1}
	m.distinct++
}

// Ascend visits every distinct key in strictly increasing order together
// with its occurrence count. The walk stops early when fn returns false.
func (m *Map[K]) Ascend(fn func(key K, count int64) bool) {
	// Explicit stack instead of recursion; an unbalanced tree built from
	// sorted input would otherwise grow the call stack linearly.
	var stack []*node[K]
	n := m.root
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n.key, n.count) {
			return
		}
		n = n.right
	}
}

// Len returns the number of distinct keys.
func (m *Map[K]) Len() int { return m.distinct }

// Total returns the number of insertions, counting duplicates.
func (m *Map[K]) Total() int64 { return m.total }

// CompareInt64 is a three-way comparator for integer keys.
func CompareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareFloat64 is a three-way comparator for float keys. NaN does not
// order consistently against other values; callers must keep NaN out of the
// multiset.
func CompareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
