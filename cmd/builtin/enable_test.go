package builtin

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwantia/contentvfs/cmd"
)

func TestEnableCommand_RequiresLabel(t *testing.T) {
	c := &EnableCommand{}
	var buf bytes.Buffer

	code, err := c.Execute(context.Background(), newFakeAPI(), &cmd.CommandArgs{}, &buf)
	assert.Error(t, err)
	assert.Equal(t, 1, code)
}

func TestEnableCommand_EnablesAndReportsChange(t *testing.T) {
	api := newFakeAPI()
	api.enabled["core"] = false

	c := &EnableCommand{}
	var buf bytes.Buffer

	code, err := c.Execute(context.Background(), api, &cmd.CommandArgs{Args: []string{"core"}}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "enabled core")
	assert.True(t, api.enabled["core"])
}

func TestEnableCommand_AlreadyEnabledReportsNoChange(t *testing.T) {
	api := newFakeAPI()
	api.enabled["core"] = true

	c := &EnableCommand{}
	var buf bytes.Buffer

	_, err := c.Execute(context.Background(), api, &cmd.CommandArgs{Args: []string{"core"}}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "already enabled")
}

func TestEnableCommand_UnknownLabelPropagatesError(t *testing.T) {
	c := &EnableCommand{}
	var buf bytes.Buffer

	code, err := c.Execute(context.Background(), newFakeAPI(), &cmd.CommandArgs{Args: []string{"missing"}}, &buf)
	assert.Error(t, err)
	assert.Equal(t, 1, code)
}
