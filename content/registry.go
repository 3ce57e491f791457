package content

import (
	"sync"

	"github.com/google/uuid"
	"github.com/tidwall/btree"

	"github.com/mwantia/contentvfs/log"
	"github.com/mwantia/contentvfs/verrors"
)

// depthEntry is one ordering key in the registry's depth index: sorted
// ascending by dependency depth, then by label for a stable tiebreak
// among directories of equal depth.
type depthEntry struct {
	depth int
	label string
	dir   *Dir
}

func depthLess(a, b depthEntry) bool {
	if a.depth != b.depth {
		return a.depth < b.depth
	}
	return a.label < b.label
}

// Registry is the multi-indexed set of discovered content directories
// (C4): by identity, by label, and by dependency depth. The depth
// index is what the resolution cache walks to decide precedence
// between directories.
type Registry struct {
	mu sync.RWMutex

	byID    map[uuid.UUID]*Dir
	byLabel map[string]*Dir
	depth   *btree.BTreeG[depthEntry]

	log *log.Logger
}

// NewRegistry constructs an empty Registry.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.NewLogger("content/registry", log.Warn, "", false)
	}

	return &Registry{
		byID:    make(map[uuid.UUID]*Dir),
		byLabel: make(map[string]*Dir),
		depth:   btree.NewBTreeG(depthLess),
		log:     logger,
	}
}

// Add registers dir under its identity and label indexes and places it
// in the depth index at depth 0; depths are recomputed the next time
// validation runs. Returns an error if the label is already claimed.
func (r *Registry) Add(dir *Dir) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byLabel[dir.Label()]; exists {
		return verrors.Duplicate(nil, "content directory label %q already registered", dir.Label())
	}

	r.byID[dir.ID()] = dir
	r.byLabel[dir.Label()] = dir
	r.depth.Set(depthEntry{depth: dir.Depth(), label: dir.Label(), dir: dir})

	return nil
}

// Get returns the directory registered under label, if any.
func (r *Registry) Get(label string) (*Dir, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byLabel[label]
	return d, ok
}

// GetByID returns the directory registered under id, if any.
func (r *Registry) GetByID(id uuid.UUID) (*Dir, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byID[id]
	return d, ok
}

// AllLabels returns every registered label, ordered by ascending
// dependency depth.
func (r *Registry) AllLabels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var labels []string
	r.depth.Scan(func(e depthEntry) bool {
		labels = append(labels, e.label)
		return true
	})
	return labels
}

// GetLabels returns the labels of every directory whose Enabled state
// matches enabled, ordered by ascending dependency depth. Validation
// runs first so a directory whose prerequisite lapsed is already
// reflected.
func (r *Registry) GetLabels(enabled bool) []string {
	r.mu.Lock()
	r.validateAllLocked()
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var labels []string
	r.depth.Scan(func(e depthEntry) bool {
		if e.dir.Enabled() == enabled {
			labels = append(labels, e.label)
		}
		return true
	})
	return labels
}

// Enable marks the directory under label enabled, after validating
// that every prerequisite it declares is itself present and enabled.
// Reports whether the enabled state actually changed (false if it was
// already enabled, or if validation rejected the request).
func (r *Registry) Enable(label string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir, ok := r.byLabel[label]
	if !ok {
		return false, verrors.NotFound(nil, "no content directory registered for label %q", label)
	}

	if !r.validateOneLocked(label) {
		return false, verrors.DependencyViolation(nil, "content directory %q failed prerequisite validation", label)
	}

	changed := dir.SetEnabled(true)
	if changed {
		r.reindexLocked(dir)
	}
	return changed, nil
}

// Disable marks the directory under label disabled. This does not
// cascade to dependents; the next validation pass (triggered by
// GetLabels, a resolution cache rebuild, or an explicit Validate call)
// disables any directory whose prerequisite this lapsed.
func (r *Registry) Disable(label string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir, ok := r.byLabel[label]
	if !ok {
		return false, verrors.NotFound(nil, "no content directory registered for label %q", label)
	}

	changed := dir.SetEnabled(false)
	if changed {
		r.reindexLocked(dir)
	}
	return changed, nil
}

// Validate walks every enabled directory in descending depth order and
// cascades disablement to any whose prerequisite is missing or
// disabled, matching ValidateDirs in the original implementation.
func (r *Registry) Validate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validateAllLocked()
}

// validateOneLocked checks dir_label's own prerequisites (not its
// dependents) and computes its depth. Caller must hold r.mu.
func (r *Registry) validateOneLocked(label string) bool {
	dir, ok := r.byLabel[label]
	if !ok {
		return false
	}

	depth := 0
	for reqLabel := range dir.Requires() {
		req, ok := r.byLabel[reqLabel]
		if !ok {
			r.log.Error("content directory %q missing requirement %q", label, reqLabel)
			return false
		}

		if req.Depth()+1 > depth {
			depth = req.Depth() + 1
		}

		if !req.Enabled() {
			if dir.SetEnabled(false) {
				r.reindexLocked(dir)
				r.log.Error("enabled directory %q has disabled requirement %q", label, reqLabel)
			}
			return false
		}
	}

	dir.SetDepth(depth)
	r.reindexLocked(dir)
	return true
}

// validateAllLocked walks every enabled directory in descending depth
// order and disables any whose prerequisite is missing or disabled.
// Caller must hold r.mu.
func (r *Registry) validateAllLocked() {
	var entries []depthEntry
	r.depth.Reverse(func(e depthEntry) bool {
		entries = append(entries, e)
		return true
	})

	for _, e := range entries {
		dir := e.dir
		if !dir.Enabled() {
			continue
		}

		for reqLabel := range dir.Requires() {
			req, ok := r.byLabel[reqLabel]
			if ok && req.Enabled() {
				continue
			}

			r.log.Error("content directory %q missing or disabled requirement %q", dir.Label(), reqLabel)
			dir.SetEnabled(false)
			break
		}
	}
}

// reindexLocked re-inserts dir into the depth index under its current
// depth/label. The depth index orders by (depth, label), so a plain
// delete-by-label can't locate the stale entry once depth has changed
// underneath it; this first finds the entry actually carrying dir by
// scanning (cheap: the registry is expected to hold at most a few
// hundred directories) and deletes that exact key. Caller must hold
// r.mu.
func (r *Registry) reindexLocked(dir *Dir) {
	var stale depthEntry
	found := false
	r.depth.Scan(func(e depthEntry) bool {
		if e.label == dir.Label() {
			stale = e
			found = true
			return false
		}
		return true
	})
	if found {
		r.depth.Delete(stale)
	}

	r.depth.Set(depthEntry{depth: dir.Depth(), label: dir.Label(), dir: dir})
}
