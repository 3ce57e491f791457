// Package content implements the content directory overlay (C3-C5): a
// declarative Content.inf grammar, a dependency-aware registry of
// discovered directories, and a lazily-rebuilt path resolution cache.
package content

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mwantia/contentvfs/log"
	"github.com/mwantia/contentvfs/node"
	"github.com/mwantia/contentvfs/verrors"
)

// ActivationRecorder is the optional activation-history sink a Manager
// reports Enable/Disable transitions to. content/store's SQLite and
// Postgres backends implement it; a Manager with none configured skips
// recording without otherwise changing behavior.
type ActivationRecorder interface {
	RecordActivation(label string, enabled bool, at time.Time) error
	LastKnownEnabled() ([]string, error)
}

// EnabledSync is the optional cluster-wide enabled-label publisher a
// Manager reports to after every successful Enable/Disable.
// content/consulsync implements it.
type EnabledSync interface {
	Publish(labels []string) error
}

// Manager is the process-wide entry point over a Registry and Cache:
// it scans search directories for Content.inf files, registers what it
// finds, and resolves relative paths against whichever directories are
// currently enabled.
type Manager struct {
	mu sync.Mutex

	registry *Registry
	cache    *Cache
	nodes    *node.Manager

	searchDirs map[string]struct{}

	store       ActivationRecorder
	clusterSync EnabledSync
	log         *log.Logger
}

var (
	instance     *Manager
	instanceOnce sync.Once
)

// InitManager constructs (or, if already constructed, returns) the
// process-wide Manager, scanning searchDir immediately. Subsequent
// calls ignore searchDir (logging a warning when it is non-empty) and
// return the existing instance — use AddSearchDir to register
// additional directories later.
func InitManager(searchDir string, logger *log.Logger) *Manager {
	created := false
	instanceOnce.Do(func() {
		created = true
		instance = newManager(logger)
		if searchDir != "" {
			instance.AddSearchDir(searchDir)
		}
	})
	if !created && searchDir != "" {
		instance.log.Warn("content manager already initialized; ignoring search dir %q", searchDir)
	}
	return instance
}

// GetManager returns the process-wide Manager. Panics if InitManager
// was never called, matching the upstream "must be initialized first"
// contract.
func GetManager() *Manager {
	if instance == nil {
		panic("contentvfs: content manager not initialized")
	}
	return instance
}

func newManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.NewLogger("content", log.Warn, "", false)
	}

	registry := NewRegistry(logger.Named("registry"))
	nodes := node.NewManager(logger.Named("node"))

	return &Manager{
		registry:   registry,
		cache:      NewCache(registry, nodes, logger.Named("cache")),
		nodes:      nodes,
		searchDirs: make(map[string]struct{}),
		log:        logger,
	}
}

// NewManager constructs a standalone Manager, bypassing the process
// singleton. Intended for tests and for embedding contentvfs inside a
// larger host that wants more than one independent overlay.
func NewManager(logger *log.Logger) *Manager {
	return newManager(logger)
}

// SetStore attaches an activation-history recorder. Best-effort replays
// LastKnownEnabled against the registry immediately.
func (m *Manager) SetStore(store ActivationRecorder) {
	m.mu.Lock()
	m.store = store
	m.mu.Unlock()

	if store == nil {
		return
	}

	labels, err := store.LastKnownEnabled()
	if err != nil {
		m.log.Warn("failed to replay activation history: %v", err)
		return
	}
	for _, label := range labels {
		if _, err := m.Enable(label); err != nil {
			m.log.Warn("failed to replay enabled state for %q: %v", label, err)
		}
	}
}

// SetEnabledSync attaches a cluster-wide enabled-label publisher.
func (m *Manager) SetEnabledSync(sync EnabledSync) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clusterSync = sync
}

// SearchDirs returns every search directory registered so far.
func (m *Manager) SearchDirs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	dirs := make([]string, 0, len(m.searchDirs))
	for d := range m.searchDirs {
		dirs = append(dirs, d)
	}
	return dirs
}

// AddSearchDir scans path for Content.inf definition files (recursively)
// and registers any content directory found. Scanning the same path
// twice is a no-op.
func (m *Manager) AddSearchDir(path string) {
	m.mu.Lock()
	if _, seen := m.searchDirs[path]; seen {
		m.mu.Unlock()
		return
	}
	m.searchDirs[path] = struct{}{}
	m.mu.Unlock()

	for _, defFile := range node.FilesInDir(path, true, "") {
		if filepath.Base(defFile) != DefinitionFilename {
			continue
		}

		source, ok := node.ReadTextFile(defFile)
		if !ok {
			m.log.Error("failed to read %s", defFile)
			continue
		}

		dirs, err := ParseDefinitions(source)
		if err != nil {
			m.log.Error("errors parsing %s: %v", defFile, err)
		}

		containingDir := filepath.Dir(defFile)
		for _, dir := range dirs {
			dir.SetPath(containingDir)
			if addErr := m.registry.Add(dir); addErr != nil {
				m.log.Error("failed to register content directory from %s: %v", defFile, addErr)
				continue
			}
			m.log.Info("registered content directory %q from %s", dir.Label(), defFile)
		}
	}

	m.cache.MarkDirty()
}

// GetPath resolves relativePath against every currently enabled
// content directory.
func (m *Manager) GetPath(relativePath string) (string, error) {
	relativePath = strings.TrimPrefix(relativePath, "/")
	return m.cache.GetPath(relativePath)
}

// AllLabels returns every registered directory's label, ordered by
// ascending dependency depth.
func (m *Manager) AllLabels() []string {
	return m.registry.AllLabels()
}

// GetLabels returns the labels whose enabled state matches enabled.
func (m *Manager) GetLabels(enabled bool) []string {
	return m.registry.GetLabels(enabled)
}

// Enable enables the directory registered under label, invalidates the
// resolution cache on success, and reports the transition to any
// attached store or cluster sync.
func (m *Manager) Enable(label string) (bool, error) {
	changed, err := m.registry.Enable(label)
	if err != nil {
		return false, err
	}
	if changed {
		m.cache.MarkDirty()
		m.afterTransition(label, true)
	}
	return changed, nil
}

// Disable disables the directory registered under label.
func (m *Manager) Disable(label string) (bool, error) {
	changed, err := m.registry.Disable(label)
	if err != nil {
		return false, err
	}
	if changed {
		m.cache.MarkDirty()
		m.afterTransition(label, false)
	}
	return changed, nil
}

func (m *Manager) afterTransition(label string, enabled bool) {
	if m.store != nil {
		if err := m.store.RecordActivation(label, enabled, time.Now()); err != nil {
			m.log.Warn("failed to record activation history for %q: %v", label, err)
		}
	}
	if m.clusterSync != nil {
		if err := m.clusterSync.Publish(m.registry.GetLabels(true)); err != nil {
			m.log.Warn("failed to publish enabled-label set: %v", err)
		}
	}
}

// Get returns the Dir registered under label, if any.
func (m *Manager) Get(label string) (*Dir, error) {
	dir, ok := m.registry.Get(label)
	if !ok {
		return nil, verrors.NotFound(nil, "no content directory registered for label %q", label)
	}
	return dir, nil
}

// Nodes exposes the underlying node manager for callers that need
// direct path-graph access.
func (m *Manager) Nodes() *node.Manager {
	return m.nodes
}
