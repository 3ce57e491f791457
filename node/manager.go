package node

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/mwantia/contentvfs/log"
	contentpath "github.com/mwantia/contentvfs/path"
)

// Manager hands out one Node per normalized path, chained through
// parents, and exposes write-permission, relativity and status
// queries. It protects its container with a mutex covering insertion,
// eviction and root mutation, since background directory iteration may
// be triggered from I/O-helper goroutines while the main goroutine
// queries or mutates the graph.
type Manager struct {
	mu sync.Mutex

	byPath map[string]*Node
	roots  map[string]*RootNode

	norm *contentpath.Normalizer
	log  *log.Logger
}

// NewManager constructs an empty Manager. A nil logger falls back to a
// package-default logger at Warn level.
func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.NewLogger("node", log.Warn, "", false)
	}

	return &Manager{
		byPath: make(map[string]*Node),
		roots:  make(map[string]*RootNode),
		norm:   contentpath.NewNormalizer(contentpath.DefaultMemoSize, logger),
		log:    logger,
	}
}

// Find returns the existing node for path, or nil if none has been
// created yet.
func (m *Manager) Find(path string) *Node {
	if path == "" {
		return nil
	}

	kind := contentpath.Classify(path)
	if kind == contentpath.Dot || kind == contentpath.DotDot {
		return nil
	}

	normal := m.norm.Normalize(path)

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byPath[normal.Value]
}

// InitRoot registers a labeled root at path. Calling InitRoot again
// with the same label replaces the root's registration (a fresh
// RootNode is created); existing nodes chained through the old root
// value keep resolving against the old fragment, matching the
// upstream implementation's "insert or reuse" semantics around root
// re-registration.
func (m *Manager) InitRoot(label, path string, allowWrites bool) *RootNode {
	m.mu.Lock()
	defer m.mu.Unlock()

	root := newRoot(label, path, allowWrites)
	m.roots[label] = root
	m.byPath[path] = root.asNode()

	return root
}

// SetRootPath mutates a registered root's underlying path fragment. All
// nodes reachable through that root observe the change automatically
// because they recompute Path() through the shared *RootNode pointer.
func (m *Manager) SetRootPath(label, newPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	root, ok := m.roots[label]
	if !ok {
		m.log.Error("no root path registered with label %s", label)
		return
	}

	normal := m.norm.Normalize(newPath)
	root.setFragment(normal.Value)
}

// Emplace returns the existing node for path, or creates one,
// constructing every missing ancestor on the way. Ancestor construction
// stops at a RootNode whose absolute path is a prefix of the input —
// the root is reused and only the tail is freshly materialized.
func (m *Manager) Emplace(path string) *Node {
	if path == "" {
		m.log.Error("passed empty path")
		return nil
	}

	if existing := m.Find(path); existing != nil {
		return existing
	}

	return m.insert(path, false)
}

// EmplaceTry behaves like Emplace but, if a node already exists for a
// different input string that normalizes equal, updates its
// write-permission and returns it. If normalization of the existing
// node's stored path differs from the freshly normalized input (i.e.
// the key changed), the stale entry is evicted first.
func (m *Manager) EmplaceTry(path string, allowWrites bool) *Node {
	if path == "" {
		m.log.Error("passed empty path")
		return nil
	}

	normal := m.norm.Normalize(path)

	if existing := m.Find(path); existing != nil {
		if existing.Path() == normal.Value {
			existing.SetWriteable(allowWrites)
			return existing
		}

		m.mu.Lock()
		delete(m.byPath, existing.Path())
		m.mu.Unlock()
	}

	return m.insert(path, allowWrites)
}

// insert normalizes path, resolves (and creates as needed) every
// ancestor, and materializes the final node.
func (m *Manager) insert(rawPath string, allowWrites bool) *Node {
	normal := m.norm.Normalize(rawPath)
	if normal.Value == "" {
		m.log.Warn("path %s had no remaining elements after normalization", rawPath)
		return nil
	}

	parent := m.emplaceParent(normal.Value)

	elements := splitPath(normal.Value)
	element := elements[len(elements)-1]

	node := &Node{
		element:     element,
		parent:      parent,
		relative:    normal.Relative,
		allowWrites: allowWrites || (parent != nil && parent.Writeable()),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.byPath[normal.Value] = node
	return node
}

// emplaceParent resolves (creating as needed) every node on the way to
// normalizedPath's parent, reusing a registered root whenever its path
// is a prefix of normalizedPath.
func (m *Manager) emplaceParent(normalizedPath string) *Node {
	dir := filepath.Dir(normalizedPath)
	if dir == "." || dir == normalizedPath {
		return nil
	}

	m.mu.Lock()
	if root := m.rootContaining(dir); root != nil {
		if existing, ok := m.byPath[dir]; ok {
			m.mu.Unlock()
			return existing
		}
		m.mu.Unlock()
		// fall through to the general case; the root itself is
		// already a valid parent if dir == root's path.
		if root.Fragment() == dir {
			return root.asNode()
		}
	} else {
		m.mu.Unlock()
	}

	if existing := m.Find(dir); existing != nil {
		return existing
	}

	return m.insert(dir, false)
}

// rootContaining returns a registered root whose fragment is a prefix
// of dir, preferring the longest match. Caller must hold m.mu.
func (m *Manager) rootContaining(dir string) *RootNode {
	var best *RootNode
	bestLen := -1
	for _, root := range m.roots {
		frag := root.Fragment()
		if frag == dir || (len(frag) < len(dir) && dir[:len(frag)] == frag && dir[len(frag)] == '/') {
			if len(frag) > bestLen {
				best = root
				bestLen = len(frag)
			}
		}
	}
	return best
}

func splitPath(p string) []string {
	if p == "" {
		return []string{""}
	}
	var parts []string
	start := 0
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			parts = append(parts, p[start:i])
			start = i + 1
		}
	}
	parts = append(parts, p[start:])
	return parts
}

// IterateDirectory enumerates actual on-disk entries under absDir,
// inserting a node for each discovered entry and returning the
// absolute paths found. Filesystem errors are logged and yield an
// empty result rather than propagating to the caller.
func (m *Manager) IterateDirectory(absDir string, recursive bool) []string {
	var found []string

	walker := func(p string, d os.DirEntry, err error) error {
		if err != nil {
			m.log.Error("error walking %s: %v", p, err)
			return nil
		}
		if p == absDir {
			return nil
		}
		m.Emplace(p)
		found = append(found, p)
		if !recursive && d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}

	if err := filepath.WalkDir(absDir, walker); err != nil {
		m.log.Error("failed to iterate directory %s: %v", absDir, err)
		return nil
	}

	return found
}

// Reset evicts the node registered for path, if any.
func (m *Manager) Reset(path string) {
	node := m.Find(path)
	if node == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byPath, node.Path())
}

// ResetAll evicts every node.
func (m *Manager) ResetAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byPath = make(map[string]*Node)
}

// Normalize exposes the manager's normalizer for callers that need
// canonicalization without a node.
func (m *Manager) Normalize(path string) contentpath.Normalized {
	return m.norm.Normalize(path)
}
