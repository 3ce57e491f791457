package builtin

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwantia/contentvfs/cmd"
)

func TestListCommand_NoDirectoriesRegistered(t *testing.T) {
	c := &ListCommand{}
	var buf bytes.Buffer

	code, err := c.Execute(context.Background(), newFakeAPI(), &cmd.CommandArgs{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "no content directories registered")
}

func TestListCommand_FiltersByFlag(t *testing.T) {
	api := newFakeAPI()
	api.enabled["core"] = true
	api.enabled["addon"] = false

	c := &ListCommand{}
	var buf bytes.Buffer

	code, err := c.Execute(context.Background(), api, &cmd.CommandArgs{Flags: map[string]any{"enabled": true}}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "core")
	assert.NotContains(t, buf.String(), "addon")
}

func TestListCommand_DefaultListsEverythingWithStatus(t *testing.T) {
	api := newFakeAPI()
	api.enabled["core"] = true
	api.enabled["addon"] = false

	c := &ListCommand{}
	var buf bytes.Buffer

	_, err := c.Execute(context.Background(), api, &cmd.CommandArgs{}, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "core")
	assert.Contains(t, out, "enabled")
	assert.Contains(t, out, "addon")
	assert.Contains(t, out, "disabled")
}
