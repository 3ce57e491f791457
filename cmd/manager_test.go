package cmd

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommand struct {
	name  string
	flags *CommandFlagSet
	run   func(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error)
}

type noopAPI struct{}

func (noopAPI) SearchDirs() []string                   { return nil }
func (noopAPI) AddSearchDir(path string)                {}
func (noopAPI) AllLabels() []string                    { return nil }
func (noopAPI) GetLabels(enabled bool) []string        { return nil }
func (noopAPI) Enable(label string) (bool, error)      { return false, nil }
func (noopAPI) Disable(label string) (bool, error)     { return false, nil }
func (noopAPI) GetPath(relativePath string) (string, error) { return "", nil }
func (noopAPI) Describe(label string) (string, error)  { return "", nil }

func TestManager_RegisterRejectsNilAndDuplicates(t *testing.T) {
	m := NewManager(noopAPI{})

	assert.Error(t, m.Register(nil))

	cmdA := &stubCommand{name: "greet"}
	require.NoError(t, m.Register(cmdA))
	assert.Error(t, m.Register(cmdA))
}

func TestManager_RegisterRejectsEmptyName(t *testing.T) {
	m := NewManager(noopAPI{})
	assert.Error(t, m.Register(&stubCommand{name: ""}))
}

func TestManager_GetReturnsRegisteredCommand(t *testing.T) {
	m := NewManager(noopAPI{})
	cmdA := &stubCommand{name: "greet"}
	require.NoError(t, m.Register(cmdA))

	got, err := m.Get("greet")
	require.NoError(t, err)
	assert.Same(t, cmdA, got)

	_, err = m.Get("missing")
	assert.Error(t, err)
}

func TestManager_ListReturnsEveryCommand(t *testing.T) {
	m := NewManager(noopAPI{})
	require.NoError(t, m.Register(&stubCommand{name: "a"}))
	require.NoError(t, m.Register(&stubCommand{name: "b"}))

	assert.Len(t, m.List(), 2)
}

func TestManager_ExecuteRunsMatchingCommand(t *testing.T) {
	m := NewManager(noopAPI{})
	ran := false
	require.NoError(t, m.Register(&stubCommand{
		name: "greet",
		run: func(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error) {
			ran = true
			return 0, nil
		},
	}))

	var buf bytes.Buffer
	code, err := m.Execute(context.Background(), &buf, "greet")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.True(t, ran)
}

func TestManager_ExecuteNoArgsFails(t *testing.T) {
	m := NewManager(noopAPI{})
	var buf bytes.Buffer

	code, err := m.Execute(context.Background(), &buf)
	assert.Error(t, err)
	assert.Equal(t, 1, code)
}

func TestManager_ExecuteUnknownCommandFails(t *testing.T) {
	m := NewManager(noopAPI{})
	var buf bytes.Buffer

	code, err := m.Execute(context.Background(), &buf, "missing")
	assert.Error(t, err)
	assert.Equal(t, 1, code)
}

func (c *stubCommand) Name() string            { return c.name }
func (c *stubCommand) Description() string     { return "" }
func (c *stubCommand) Usage() string           { return "" }
func (c *stubCommand) GetFlags() *CommandFlagSet { return c.flags }
func (c *stubCommand) Execute(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error) {
	if c.run != nil {
		return c.run(ctx, api, args, writer)
	}
	return 0, nil
}
