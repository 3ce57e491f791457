// Package node implements the Path Node Graph (C2): a deduplicated,
// parent-linked graph of path nodes anchored at labeled roots, carrying
// write-permission inheritance and a lazily-populated filesystem status
// cache.
package node

import (
	"io/fs"
	"os"
	"sync"

	"github.com/mwantia/contentvfs/path"
)

// Node is one element in the shared parent-pointed graph. Two nodes
// with the same normalized path are always the same *Node (deduplicated
// by the owning Manager); its parent chain's concatenated elements equal
// Path().
type Node struct {
	mu sync.Mutex

	element  string
	parent   *Node
	root     *RootNode // nil unless this node descends from a RootNode
	relative bool

	allowWrites bool
	writeable   bool // sticky cache: once true, permission can't be revoked

	hasStatus bool
	status    fs.FileInfo
	statusErr error
}

// RootNode is a parentless path node carrying a label. Its underlying
// path fragment may be reassigned post-construction (Manager.SetRootPath) — every
// node chained through it observes the change automatically because
// descendants recompute Path() through the shared *RootNode pointer
// rather than a copied string.
type RootNode struct {
	mu sync.RWMutex

	label       string
	fragment    string
	allowWrites bool
}

// newRoot constructs a root node. allowWrites is the root's own
// permission grant; descendants may still inherit a grant from it even
// if they themselves disallow writes.
func newRoot(label, fragment string, allowWrites bool) *RootNode {
	return &RootNode{label: label, fragment: fragment, allowWrites: allowWrites}
}

// Label returns the root's registered label.
func (r *RootNode) Label() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.label
}

// Fragment returns the root's current path fragment.
func (r *RootNode) Fragment() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fragment
}

// setFragment reassigns the root's path fragment post-construction.
func (r *RootNode) setFragment(fragment string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fragment = fragment
}

func (r *RootNode) writeable() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.allowWrites
}

// asNode returns a *Node view of the root for use as an ordinary parent
// pointer within the graph.
func (r *RootNode) asNode() *Node {
	return &Node{
		element:     r.label,
		root:        r,
		allowWrites: r.allowWrites,
		writeable:   r.allowWrites,
	}
}

// IsRoot reports whether n has no parent (it is a root, or the single
// synthetic node representing a relative-root path).
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// Parent returns n's parent node, or nil if n is a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Element returns the path fragment this node contributes to its
// parent chain.
func (n *Node) Element() string {
	if n.root != nil {
		return n.root.Fragment()
	}
	return n.element
}

// Path returns the fully assembled, normalized path this node resolves
// to by walking the parent chain from the root down.
func (n *Node) Path() string {
	if n.parent == nil {
		return n.Element()
	}

	parentPath := n.parent.Path()
	elem := n.Element()
	if elem == "" || elem == path.RelativeRootToken {
		return parentPath
	}
	if parentPath == "" {
		return elem
	}
	return parentPath + "/" + elem
}

// IsRelative reports whether this node is, or descends from, a
// relative-root path. Relativity is inherited down the chain.
func (n *Node) IsRelative() bool {
	if n.relative {
		return true
	}
	if n.parent != nil {
		return n.parent.IsRelative()
	}
	return false
}

// Root walks up the parent chain and returns the RootNode this node
// descends from, or nil if it doesn't descend from a registered root
// (e.g. it is purely relative).
func (n *Node) Root() *RootNode {
	if n.root != nil {
		return n.root
	}
	if n.parent != nil {
		return n.parent.Root()
	}
	return nil
}

// HasAncestor reports whether other appears somewhere in n's parent
// chain, compared by resolved path (so it survives root path
// reassignment).
func (n *Node) HasAncestor(other *Node) bool {
	if other == nil || n.parent == nil {
		return false
	}
	if n.parent.Path() == other.Path() {
		return true
	}
	return n.parent.HasAncestor(other)
}

// IsOrContainedBy reports whether n resolves to base or is contained
// within it. An empty base matches only the root.
func (n *Node) IsOrContainedBy(base string) bool {
	if base == "" {
		return n.IsRoot()
	}
	if n.Path() == base {
		return true
	}
	if n.parent != nil {
		return n.parent.IsOrContainedBy(base)
	}
	return false
}

// PortionFrom returns the path fragment that, appended to base, yields
// n.Path(). If n is not contained by base, it returns
// (path.InvalidToken, false).
func (n *Node) PortionFrom(base string) (string, bool) {
	if n.Path() == base {
		return "", true
	}

	if n.parent == nil {
		return path.InvalidToken, false
	}

	parentPortion, ok := n.parent.PortionFrom(base)
	if !ok {
		return path.InvalidToken, false
	}

	elem := n.Element()
	if parentPortion == "" {
		return elem, true
	}
	return parentPortion + "/" + elem, true
}

// Writeable reports whether this node or any ancestor permits writes.
// Once a true result is observed it is cached, since write permission
// is monotonic for the lifetime of the chain (a child cannot revoke a
// grant made higher up).
func (n *Node) Writeable() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.writeableLocked()
}

func (n *Node) writeableLocked() bool {
	if n.writeable {
		return true
	}

	if n.allowWrites {
		n.writeable = true
		return true
	}

	if n.root != nil && n.root.writeable() {
		n.writeable = true
		return true
	}

	if n.parent != nil && n.parent.Writeable() {
		n.writeable = true
		return true
	}

	return false
}

// SetWriteable grants (or attempts to revoke) this node's own write
// permission. A parent-granted permission can never be revoked this
// way: the effective result is always the disjunction with the
// inherited value.
func (n *Node) SetWriteable(allowWrites bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.allowWrites = allowWrites
	n.writeable = false // recompute lazily, honoring inheritance
	n.writeableLocked()
}

// Status returns the cached filesystem status for this node's resolved
// path, probing the disk on first access. Relative nodes never probe
// disk and always return a zero status with ok=false. Filesystem
// errors are swallowed into a default/unknown status; callers should
// treat a false ok as "unknown", not "does not exist".
func (n *Node) Status() (fs.FileInfo, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.IsRelative() {
		return nil, false
	}

	if n.hasStatus {
		return n.status, n.statusErr == nil
	}

	info, err := os.Stat(n.Path())
	n.hasStatus = true
	n.status = info
	n.statusErr = err

	return info, err == nil
}

// ResetStatus evicts the cached filesystem status so the next Status
// call re-probes the disk.
func (n *Node) ResetStatus() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hasStatus = false
	n.status = nil
	n.statusErr = nil
}

// Exists reports whether this node currently exists on the filesystem.
func (n *Node) Exists() bool {
	_, ok := n.Status()
	return ok
}
