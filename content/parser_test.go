package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefinitions_SingleBlock(t *testing.T) {
	source := `
ContentDefinition
Label "core"
Description "base content"
Version "1.0.0"
`
	dirs, err := ParseDefinitions(source)
	require.NoError(t, err)
	require.Len(t, dirs, 1)

	assert.Equal(t, "core", dirs[0].Label())
	assert.Equal(t, "base content", dirs[0].Description())
	assert.Equal(t, SemVer{Major: 1, Minor: 0, Patch: 0}, dirs[0].Version())
	assert.Empty(t, dirs[0].Requires())
}

func TestParseDefinitions_WithPrerequisitesAndRetain(t *testing.T) {
	source := `
ContentDefinition
Label "hd-textures"
Description "high-res texture overrides"
Version "2.1.0"
Prerequisites [
	File "core" = "1.0.0"
]
Retain [
	"textures/special.png"
]
`
	dirs, err := ParseDefinitions(source)
	require.NoError(t, err)
	require.Len(t, dirs, 1)

	d := dirs[0]
	assert.Equal(t, map[string]string{"core": "1.0.0"}, d.Requires())
	assert.True(t, d.IsExplicit("textures/special.png"))
}

func TestParseDefinitions_PrerequisiteWithoutVersionAcceptsAny(t *testing.T) {
	source := `
ContentDefinition
Label "addon"
Description "no version constraint"
Version "1.0.0"
Prerequisites [
	File "core"
]
`
	dirs, err := ParseDefinitions(source)
	require.NoError(t, err)
	require.Len(t, dirs, 1)

	assert.Equal(t, map[string]string{"core": ""}, dirs[0].Requires())
}

func TestParseDefinitions_UnbracketedSingleEntryForms(t *testing.T) {
	source := `
ContentDefinition
Label "addon"
Description "single-entry forms"
Version "1.0.0"
Prerequisites File "core" = "1.0.0"
Retain "textures/a.png"
`
	dirs, err := ParseDefinitions(source)
	require.NoError(t, err)
	require.Len(t, dirs, 1)

	d := dirs[0]
	assert.Equal(t, map[string]string{"core": "1.0.0"}, d.Requires())
	assert.True(t, d.IsExplicit("textures/a.png"))
}

func TestParseDefinitions_MultipleBlocks(t *testing.T) {
	source := `
ContentDefinition
Label "core"
Description "base"
Version "1.0.0"

ContentDefinition
Label "addon"
Description "extra"
Version "1.0.0"
`
	dirs, err := ParseDefinitions(source)
	require.NoError(t, err)
	require.Len(t, dirs, 2)
	assert.Equal(t, "core", dirs[0].Label())
	assert.Equal(t, "addon", dirs[1].Label())
}

func TestParseDefinitions_SyntaxErrorResyncsToNextBlock(t *testing.T) {
	source := `
ContentDefinition
Label "broken"
Description
Version "1.0.0"

ContentDefinition
Label "good"
Description "fine"
Version "1.0.0"
`
	dirs, err := ParseDefinitions(source)
	require.Error(t, err)
	require.Len(t, dirs, 1)
	assert.Equal(t, "good", dirs[0].Label())
}

func TestParseDefinitions_EmptySourceYieldsNothing(t *testing.T) {
	dirs, err := ParseDefinitions("")
	assert.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestParseDefinitions_GarbageYieldsErrorAndNoInfiniteLoop(t *testing.T) {
	dirs, err := ParseDefinitions("completely not a definition file !!! ===")
	assert.Error(t, err)
	assert.Empty(t, dirs)
}
