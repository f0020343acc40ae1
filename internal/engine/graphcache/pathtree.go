package graphcache

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/pathcache/internal/core/ports"
)

type nodeID int32

const (
	rootNode nodeID = 0
	noNode   nodeID = -1
)

// pathNode is one property step below the roots. The root node has an empty
// path and stands for the root objects themselves.
type pathNode struct {
	name      domain.InternedString
	parent    nodeID
	depth     int
	path      domain.Path
	children  map[domain.InternedString]nodeID
	listeners []ports.PathListener
	live      bool
}

// pathTree owns every registered path. Nodes live in an arena and are
// referenced by index; released slots are reused.
type pathTree struct {
	nodes []pathNode
	free  []nodeID
}

func newPathTree() *pathTree {
	t := &pathTree{}
	t.nodes = append(t.nodes, pathNode{
		parent:   noNode,
		children: make(map[domain.InternedString]nodeID),
		live:     true,
	})
	return t
}

func (t *pathTree) name(id nodeID) string {
	return t.nodes[id].name.String()
}

func (t *pathTree) parent(id nodeID) nodeID {
	return t.nodes[id].parent
}

func (t *pathTree) path(id nodeID) domain.Path {
	return t.nodes[id].path
}

func (t *pathTree) hasChildren(id nodeID) bool {
	return len(t.nodes[id].children) > 0
}

func (t *pathTree) listeners(id nodeID) []ports.PathListener {
	return t.nodes[id].listeners
}

func (t *pathTree) child(id nodeID, name string) (nodeID, bool) {
	c, ok := t.nodes[id].children[domain.NewInternedString(name)]
	return c, ok
}

// children returns the child nodes of id ordered by property name.
func (t *pathTree) children(id nodeID) []nodeID {
	n := &t.nodes[id]
	if len(n.children) == 0 {
		return nil
	}
	out := make([]nodeID, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b nodeID) int {
		return cmp.Compare(t.name(a), t.name(b))
	})
	return out
}

func (t *pathTree) lookup(p domain.Path) (nodeID, bool) {
	cur := rootNode
	for _, seg := range p {
		c, ok := t.child(cur, seg)
		if !ok {
			return noNode, false
		}
		cur = c
	}
	return cur, true
}

// addListener merges the missing segments of p into the tree and attaches l
// to the terminal node. It returns the first node created, or noNode when the
// whole path already existed, and whether l was newly attached.
func (t *pathTree) addListener(p domain.Path, l ports.PathListener) (nodeID, bool) {
	first := noNode
	cur := rootNode
	for _, seg := range p {
		if c, ok := t.child(cur, seg); ok {
			cur = c
			continue
		}
		cur = t.alloc(cur, domain.NewInternedString(seg))
		if first == noNode {
			first = cur
		}
	}

	n := &t.nodes[cur]
	if slices.Contains(n.listeners, l) {
		return first, false
	}
	n.listeners = append(n.listeners, l)
	return first, true
}

// removeListener detaches l from the node at p. It returns the top of the
// subtree that no longer has a reason to exist, or noNode, and whether l was
// attached at all.
func (t *pathTree) removeListener(p domain.Path, l ports.PathListener) (nodeID, bool) {
	id, ok := t.lookup(p)
	if !ok {
		return noNode, false
	}
	n := &t.nodes[id]
	idx := slices.Index(n.listeners, l)
	if idx < 0 {
		return noNode, false
	}
	n.listeners = slices.Delete(n.listeners, idx, idx+1)
	return t.prunePoint(id), true
}

// prunePoint walks up from a node that lost its last listener while each
// ancestor has a single child and no listeners of its own.
func (t *pathTree) prunePoint(id nodeID) nodeID {
	n := &t.nodes[id]
	if id == rootNode || len(n.listeners) > 0 || len(n.children) > 0 {
		return noNode
	}
	cur := id
	for {
		up := t.nodes[cur].parent
		if up == rootNode || up == noNode {
			return cur
		}
		pn := &t.nodes[up]
		if len(pn.listeners) > 0 || len(pn.children) > 1 {
			return cur
		}
		cur = up
	}
}

// detach removes the subtree rooted at id and releases its nodes.
func (t *pathTree) detach(id nodeID) {
	n := &t.nodes[id]
	delete(t.nodes[n.parent].children, n.name)
	t.release(id)
}

func (t *pathTree) release(id nodeID) {
	for _, c := range t.nodes[id].children {
		t.release(c)
	}
	t.nodes[id] = pathNode{parent: noNode}
	t.free = append(t.free, id)
}

func (t *pathTree) alloc(parent nodeID, name domain.InternedString) nodeID {
	pn := &t.nodes[parent]
	n := pathNode{
		name:     name,
		parent:   parent,
		depth:    pn.depth + 1,
		path:     pn.path.Child(name.String()),
		children: make(map[domain.InternedString]nodeID),
		live:     true,
	}

	var id nodeID
	if k := len(t.free); k > 0 {
		id = t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[id] = n
	} else {
		id = nodeID(len(t.nodes))
		t.nodes = append(t.nodes, n)
	}
	t.nodes[parent].children[name] = id
	return id
}

// commonAncestor equalizes depths and then walks both nodes toward the root.
func (t *pathTree) commonAncestor(a, b nodeID) nodeID {
	for t.nodes[a].depth > t.nodes[b].depth {
		a = t.nodes[a].parent
	}
	for t.nodes[b].depth > t.nodes[a].depth {
		b = t.nodes[b].parent
	}
	for a != b {
		a = t.nodes[a].parent
		b = t.nodes[b].parent
	}
	return a
}

// size counts the live nodes below the root.
func (t *pathTree) size() int {
	return len(t.nodes) - len(t.free) - 1
}

// paths returns every registered node path in lexical order, each followed by
// its listener count.
func (t *pathTree) paths() []string {
	out := make([]string, 0, t.size())
	for i := range t.nodes {
		n := &t.nodes[i]
		if !n.live || nodeID(i) == rootNode {
			continue
		}
		out = append(out, n.path.String()+" ("+strconv.Itoa(len(n.listeners))+")")
	}
	slices.Sort(out)
	return out
}

// digest fingerprints the tree structure. Two trees with the same paths and
// listener counts have the same digest regardless of arena layout.
func (t *pathTree) digest() uint64 {
	h := xxhash.New()
	for _, line := range t.paths() {
		_, _ = h.WriteString(line)
		_, _ = h.WriteString("\n")
	}
	return h.Sum64()
}
