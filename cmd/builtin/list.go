package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/contentvfs/cmd"
)

// ListCommand prints every registered content directory, in
// dependency order, along with its enabled state.
type ListCommand struct{}

func (c *ListCommand) Name() string        { return "list" }
func (c *ListCommand) Description() string { return "list registered content directories" }
func (c *ListCommand) Usage() string       { return "list [-e|--enabled] [-d|--disabled]" }

func (c *ListCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"enabled":  {Name: "enabled", Short: "e", Type: "bool", Description: "only list enabled directories"},
			"disabled": {Name: "disabled", Short: "d", Type: "bool", Description: "only list disabled directories"},
		},
	}
}

func (c *ListCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	onlyEnabled, _ := args.Flags["enabled"].(bool)
	onlyDisabled, _ := args.Flags["disabled"].(bool)

	var labels []string
	switch {
	case onlyEnabled:
		labels = api.GetLabels(true)
	case onlyDisabled:
		labels = api.GetLabels(false)
	default:
		labels = api.AllLabels()
	}

	if len(labels) == 0 {
		fmt.Fprintln(writer, "no content directories registered")
		return 0, nil
	}

	enabled := make(map[string]bool, len(labels))
	for _, l := range api.GetLabels(true) {
		enabled[l] = true
	}

	for _, label := range labels {
		status := "disabled"
		if enabled[label] {
			status = "enabled"
		}
		fmt.Fprintf(writer, "%-30s %s\n", label, status)
	}

	return 0, nil
}
