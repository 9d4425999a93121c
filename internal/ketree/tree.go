package ketree

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// Separator delimits key segments.
	Separator = "/"
	// SingleWildcard matches exactly one segment.
	SingleWildcard = "*"
	// MultiWildcard matches zero or more segments.
	MultiWildcard = "**"
)

var (
	ErrEmptyKey       = errors.New("empty key")
	ErrEmptySegment   = errors.New("key contains an empty segment")
	ErrWildcardInKey  = errors.New("key contains a wildcard")
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrKeyExists      = errors.New("key already holds a value")
)

const rootIndex = 0

type node[V any] struct {
	children []int          // insertion order
	index    map[string]int // segment -> child index
	value    V
	hasValue bool
}

// Tree maps '/'-separated keys to values of type V.
type Tree[V any] struct {
	nodes []node[V]
	size  int
}

// New returns an empty tree.
func New[V any]() *Tree[V] {
	return &Tree[V]{nodes: []node[V]{{}}}
}

// Len returns the number of values stored in the tree.
func (t *Tree[V]) Len() int { return t.size }

// Insert stores v at key. The key must be a non-empty sequence of
// non-empty segments without wildcards. If key already holds a value,
// ErrKeyExists is returned and the tree is left unchanged.
func (t *Tree[V]) Insert(key string, v V) error {
	segs, err := splitKey(key)
	if err != nil {
		return err
	}
	if n, ok := t.find(segs); ok && t.nodes[n].hasValue {
		return fmt.Errorf("%w: %q", ErrKeyExists, key)
	}

	cur := rootIndex
	for _, seg := range segs {
		cur = t.childOrCreate(cur, seg)
	}
	t.nodes[cur].value = v
	t.nodes[cur].hasValue = true
	t.size++
	return nil
}

// Get returns the value stored at exactly key. Wildcards in key are not
// interpreted.
func (t *Tree[V]) Get(key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}
	n, ok := t.find(strings.Split(key, Separator))
	if !ok || !t.nodes[n].hasValue {
		return zero, false
	}
	return t.nodes[n].value, true
}

// Query returns every value whose key matches pattern, ordered by the
// creation order of their nodes.
func (t *Tree[V]) Query(pattern string) ([]V, error) {
	segs, err := splitPattern(pattern)
	if err != nil {
		return nil, err
	}

	m := matcher[V]{tree: t, pattern: segs, matched: make(map[int]bool)}
	if hasMultiWildcard(segs) {
		m.visited = make(map[visit]bool)
	}
	m.match(rootIndex, 0)

	hits := make([]int, 0, len(m.matched))
	for n := range m.matched {
		hits = append(hits, n)
	}
	sort.Ints(hits)

	out := make([]V, len(hits))
	for i, n := range hits {
		out[i] = t.nodes[n].value
	}
	return out, nil
}

func (t *Tree[V]) find(segs []string) (int, bool) {
	cur := rootIndex
	for _, seg := range segs {
		next, ok := t.nodes[cur].index[seg]
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

func (t *Tree[V]) childOrCreate(parent int, seg string) int {
	if idx, ok := t.nodes[parent].index[seg]; ok {
		return idx
	}
	idx := len(t.nodes)
	t.nodes = append(t.nodes, node[V]{})
	p := &t.nodes[parent]
	if p.index == nil {
		p.index = make(map[string]int)
	}
	p.index[seg] = idx
	p.children = append(p.children, idx)
	return idx
}

type visit struct {
	node int
	pos  int
}

type matcher[V any] struct {
	tree    *Tree[V]
	pattern []string
	matched map[int]bool
	visited map[visit]bool // only set when the pattern contains "**"
}

func (m *matcher[V]) match(n, pos int) {
	if m.visited != nil {
		v := visit{n, pos}
		if m.visited[v] {
			return
		}
		m.visited[v] = true
	}

	nd := &m.tree.nodes[n]
	if pos == len(m.pattern) {
		if nd.hasValue {
			m.matched[n] = true
		}
		return
	}

	switch seg := m.pattern[pos]; seg {
	case MultiWildcard:
		// Consume nothing, or consume one child segment and stay on "**".
		m.match(n, pos+1)
		for _, c := range nd.children {
			m.match(c, pos)
		}
	case SingleWildcard:
		for _, c := range nd.children {
			m.match(c, pos+1)
		}
	default:
		if c, ok := nd.index[seg]; ok {
			m.match(c, pos+1)
		}
	}
}

func hasMultiWildcard(segs []string) bool {
	for _, s := range segs {
		if s == MultiWildcard {
			return true
		}
	}
	return false
}

func splitKey(key string) ([]string, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	segs := strings.Split(key, Separator)
	for _, s := range segs {
		if s == "" {
			return nil, fmt.Errorf("%w: %q", ErrEmptySegment, key)
		}
		if strings.Contains(s, SingleWildcard) {
			return nil, fmt.Errorf("%w: %q", ErrWildcardInKey, key)
		}
	}
	return segs, nil
}

func splitPattern(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, ErrEmptyKey)
	}
	segs := strings.Split(pattern, Separator)
	for _, s := range segs {
		if s == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPattern, pattern)
		}
		if s != SingleWildcard && s != MultiWildcard && strings.Contains(s, SingleWildcard) {
			return nil, fmt.Errorf("%w: %q mixes a wildcard with literal text in segment %q", ErrInvalidPattern, pattern, s)
		}
	}
	return segs, nil
}
