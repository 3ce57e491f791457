package content

import (
	"sync"

	"github.com/google/uuid"
)

// DefinitionFilename is the name a content directory's definition
// file must carry for the search-dir scan to pick it up.
const DefinitionFilename = "Content.inf"

// Dir describes one content directory discovered on disk: its
// definition metadata plus the mutable enabled/depth state the
// registry maintains over it.
type Dir struct {
	mu sync.RWMutex

	id   uuid.UUID
	path string

	label       string
	description string
	version     SemVer

	requires      map[string]string // label -> required version (display only)
	explicitPaths map[string]struct{}

	enabled bool
	depth   int
}

// NewDir constructs a Dir with a fresh identity. path is the absolute
// directory the definition was read from.
func NewDir(path, label, description, version string, requires map[string]string, explicitPaths []string) *Dir {
	explicit := make(map[string]struct{}, len(explicitPaths))
	for _, p := range explicitPaths {
		explicit[p] = struct{}{}
	}

	if requires == nil {
		requires = make(map[string]string)
	}

	return &Dir{
		id:            uuid.Must(uuid.NewV7()),
		path:          path,
		label:         label,
		description:   description,
		version:       ParseSemVer(version),
		requires:      requires,
		explicitPaths: explicit,
	}
}

func (d *Dir) ID() uuid.UUID       { return d.id }
func (d *Dir) Path() string        { return d.path }
func (d *Dir) Label() string       { return d.label }
func (d *Dir) Description() string { return d.description }
func (d *Dir) Version() SemVer     { return d.version }

// SetPath reassigns the absolute directory this definition resolves
// against, used once after the parser loads the definition without yet
// knowing its containing directory.
func (d *Dir) SetPath(path string) { d.path = path }

// Requires returns the label -> required-version map this directory
// declared as prerequisites.
func (d *Dir) Requires() map[string]string {
	out := make(map[string]string, len(d.requires))
	for k, v := range d.requires {
		out[k] = v
	}
	return out
}

// IsExplicit reports whether relativePath was declared under Retain,
// meaning this directory's copy of the path always wins ties instead
// of only winning when no shallower directory already claimed it.
func (d *Dir) IsExplicit(relativePath string) bool {
	_, ok := d.explicitPaths[relativePath]
	return ok
}

// Enabled reports whether this directory currently participates in
// resolution.
func (d *Dir) Enabled() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.enabled
}

// SetEnabled sets the enabled flag and reports whether it changed,
// matching the upstream Dir::SetEnabled contract that registry code
// uses to decide whether the resolution cache needs to be rebuilt.
func (d *Dir) SetEnabled(enabled bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.enabled == enabled {
		return false
	}
	d.enabled = enabled
	return true
}

// Depth returns 1 + the maximum depth of this directory's
// prerequisites, or 0 if it has none.
func (d *Dir) Depth() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.depth
}

// SetDepth records a freshly computed dependency depth.
func (d *Dir) SetDepth(depth int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.depth = depth
}
