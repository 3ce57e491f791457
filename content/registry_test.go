package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddRejectsDuplicateLabel(t *testing.T) {
	r := NewRegistry(nil)

	require.NoError(t, r.Add(NewDir("/a", "core", "", "1.0.0", nil, nil)))
	err := r.Add(NewDir("/b", "core", "", "1.0.0", nil, nil))
	assert.Error(t, err)
}

func TestRegistry_EnableRejectsMissingPrerequisite(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Add(NewDir("/a", "addon", "", "1.0.0", map[string]string{"core": "1.0.0"}, nil)))

	changed, err := r.Enable("addon")
	assert.False(t, changed)
	assert.Error(t, err)
}

func TestRegistry_EnableSucceedsWhenPrerequisiteEnabled(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Add(NewDir("/a", "core", "", "1.0.0", nil, nil)))
	require.NoError(t, r.Add(NewDir("/b", "addon", "", "1.0.0", map[string]string{"core": "1.0.0"}, nil)))

	changed, err := r.Enable("core")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = r.Enable("addon")
	require.NoError(t, err)
	assert.True(t, changed)

	dir, ok := r.Get("addon")
	require.True(t, ok)
	assert.Equal(t, 1, dir.Depth())
}

func TestRegistry_DisablingPrerequisiteCascades(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Add(NewDir("/a", "core", "", "1.0.0", nil, nil)))
	require.NoError(t, r.Add(NewDir("/b", "addon", "", "1.0.0", map[string]string{"core": "1.0.0"}, nil)))

	_, err := r.Enable("core")
	require.NoError(t, err)
	_, err = r.Enable("addon")
	require.NoError(t, err)

	changed, err := r.Disable("core")
	require.NoError(t, err)
	assert.True(t, changed)

	r.Validate()

	addon, _ := r.Get("addon")
	assert.False(t, addon.Enabled())
}

func TestRegistry_EnableUnknownLabel(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Enable("missing")
	assert.Error(t, err)
}

func TestRegistry_AllLabelsOrderedByDepth(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Add(NewDir("/a", "core", "", "1.0.0", nil, nil)))
	require.NoError(t, r.Add(NewDir("/b", "addon", "", "1.0.0", map[string]string{"core": "1.0.0"}, nil)))

	_, err := r.Enable("core")
	require.NoError(t, err)
	_, err = r.Enable("addon")
	require.NoError(t, err)

	assert.Equal(t, []string{"core", "addon"}, r.AllLabels())
}

func TestRegistry_GetLabelsFiltersByEnabled(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Add(NewDir("/a", "core", "", "1.0.0", nil, nil)))
	require.NoError(t, r.Add(NewDir("/b", "extra", "", "1.0.0", nil, nil)))

	_, err := r.Enable("core")
	require.NoError(t, err)

	assert.Equal(t, []string{"core"}, r.GetLabels(true))
	assert.Equal(t, []string{"extra"}, r.GetLabels(false))
}
