package cmd

import (
	"fmt"
	"strings"

	"github.com/mwantia/contentvfs/content"
)

// ManagerAPI adapts a *content.Manager to the API interface commands
// are executed against.
type ManagerAPI struct {
	Manager *content.Manager
}

func (a *ManagerAPI) SearchDirs() []string            { return a.Manager.SearchDirs() }
func (a *ManagerAPI) AddSearchDir(path string)         { a.Manager.AddSearchDir(path) }
func (a *ManagerAPI) AllLabels() []string             { return a.Manager.AllLabels() }
func (a *ManagerAPI) GetLabels(enabled bool) []string { return a.Manager.GetLabels(enabled) }
func (a *ManagerAPI) Enable(label string) (bool, error)  { return a.Manager.Enable(label) }
func (a *ManagerAPI) Disable(label string) (bool, error) { return a.Manager.Disable(label) }
func (a *ManagerAPI) GetPath(relativePath string) (string, error) {
	return a.Manager.GetPath(relativePath)
}

func (a *ManagerAPI) Describe(label string) (string, error) {
	dir, err := a.Manager.Get(label)
	if err != nil {
		return "", err
	}

	var reqs []string
	for reqLabel, version := range dir.Requires() {
		if version != "" {
			reqs = append(reqs, fmt.Sprintf("%s@%s", reqLabel, version))
		} else {
			reqs = append(reqs, reqLabel)
		}
	}

	status := "disabled"
	if dir.Enabled() {
		status = "enabled"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", dir.Label(), status)
	fmt.Fprintf(&sb, "  path:        %s\n", dir.Path())
	fmt.Fprintf(&sb, "  description: %s\n", dir.Description())
	fmt.Fprintf(&sb, "  version:     %s\n", dir.Version())
	fmt.Fprintf(&sb, "  depth:       %d\n", dir.Depth())
	if len(reqs) > 0 {
		fmt.Fprintf(&sb, "  requires:    %s\n", strings.Join(reqs, ", "))
	}

	return sb.String(), nil
}
