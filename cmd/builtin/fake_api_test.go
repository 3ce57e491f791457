package builtin

import "fmt"

// fakeAPI is an in-memory stand-in for cmd.API, used to exercise each
// builtin command without a real content.Manager.
type fakeAPI struct {
	search  []string
	enabled map[string]bool
	depth   map[string]int
	paths   map[string]string
	descErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		enabled: make(map[string]bool),
		depth:   make(map[string]int),
		paths:   make(map[string]string),
	}
}

func (f *fakeAPI) SearchDirs() []string { return f.search }

func (f *fakeAPI) AddSearchDir(path string) {
	f.search = append(f.search, path)
}

func (f *fakeAPI) AllLabels() []string {
	labels := make([]string, 0, len(f.enabled))
	for l := range f.enabled {
		labels = append(labels, l)
	}
	return labels
}

func (f *fakeAPI) GetLabels(enabled bool) []string {
	var labels []string
	for l, e := range f.enabled {
		if e == enabled {
			labels = append(labels, l)
		}
	}
	return labels
}

func (f *fakeAPI) Enable(label string) (bool, error) {
	if _, known := f.enabled[label]; !known {
		return false, fmt.Errorf("unknown label %q", label)
	}
	if f.enabled[label] {
		return false, nil
	}
	f.enabled[label] = true
	return true, nil
}

func (f *fakeAPI) Disable(label string) (bool, error) {
	if _, known := f.enabled[label]; !known {
		return false, fmt.Errorf("unknown label %q", label)
	}
	if !f.enabled[label] {
		return false, nil
	}
	f.enabled[label] = false
	return true, nil
}

func (f *fakeAPI) GetPath(relativePath string) (string, error) {
	abs, ok := f.paths[relativePath]
	if !ok {
		return "", fmt.Errorf("no content directory provides %q", relativePath)
	}
	return abs, nil
}

func (f *fakeAPI) Describe(label string) (string, error) {
	if f.descErr != nil {
		return "", f.descErr
	}
	if _, known := f.enabled[label]; !known {
		return "", fmt.Errorf("unknown label %q", label)
	}
	return fmt.Sprintf("%s (depth %d)\n", label, f.depth[label]), nil
}
