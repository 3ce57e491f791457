package content

import (
	"sync"

	"github.com/mwantia/contentvfs/log"
	"github.com/mwantia/contentvfs/node"
	"github.com/mwantia/contentvfs/verrors"
)

// Cache is the lazily-rebuilt resolution map (C5): relative path to
// the absolute path it currently resolves to across every enabled
// content directory.
//
// Rebuild walks enabled directories in descending dependency-depth
// order and, for each file found beneath a directory, either inserts
// the mapping only if no deeper (already-walked, thus
// higher-precedence) directory already claimed that relative path, or
// — if the owning directory declared the path under Retain —
// unconditionally overwrites it. The net effect, intentionally
// preserved from upstream: a deeper directory wins a tie by default,
// since it is visited first and "insert if absent" lets it claim the
// path before any shallower directory gets a chance.
type Cache struct {
	mu    sync.RWMutex
	paths map[string]string
	dirty bool

	registry *Registry
	nodes    *node.Manager
	log      *log.Logger
}

// NewCache constructs a Cache that rebuilds itself from registry using
// nodes to enumerate and resolve filesystem paths.
func NewCache(registry *Registry, nodes *node.Manager, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.NewLogger("content/cache", log.Warn, "", false)
	}

	return &Cache{
		paths:    make(map[string]string),
		dirty:    true,
		registry: registry,
		nodes:    nodes,
		log:      logger,
	}
}

// MarkDirty flags the cache for rebuild on next GetPath/refresh call.
// Registry mutations (Add, Enable, Disable) call this.
func (c *Cache) MarkDirty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = true
}

// GetPath resolves relativePath against the current resolution state,
// rebuilding first if the cache is dirty.
func (c *Cache) GetPath(relativePath string) (string, error) {
	c.mu.Lock()
	if c.dirty {
		c.rebuildLocked()
	}
	abs, ok := c.paths[relativePath]
	c.mu.Unlock()

	if !ok {
		return "", verrors.NotFound(nil, "no content directory resolves %q", relativePath)
	}
	return abs, nil
}

// Refresh forces an immediate rebuild regardless of the dirty flag.
func (c *Cache) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rebuildLocked()
}

// rebuildLocked recomputes the entire resolution map. Caller must hold
// c.mu.
func (c *Cache) rebuildLocked() {
	c.dirty = false
	c.registry.Validate()

	c.paths = make(map[string]string)

	c.registry.mu.RLock()
	var dirs []*Dir
	c.registry.depth.Reverse(func(e depthEntry) bool {
		dirs = append(dirs, e.dir)
		return true
	})
	c.registry.mu.RUnlock()

	for _, dir := range dirs {
		if !dir.Enabled() {
			continue
		}

		base := c.nodes.Emplace(dir.Path())
		if base == nil {
			c.log.Error("content directory %q has unresolvable path %q", dir.Label(), dir.Path())
			continue
		}

		for _, abs := range c.nodes.IterateDirectory(dir.Path(), true) {
			n := c.nodes.Emplace(abs)
			if n == nil {
				continue
			}

			relative, ok := n.PortionFrom(base.Path())
			if !ok {
				c.log.Warn("path %q is not contained by content directory %q", abs, dir.Path())
				continue
			}

			if dir.IsExplicit(relative) {
				c.paths[relative] = abs
				continue
			}

			if _, exists := c.paths[relative]; !exists {
				c.paths[relative] = abs
			}
		}
	}
}
