package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/contentvfs/cmd"
)

// DisableCommand disables a registered content directory by label.
type DisableCommand struct{}

func (c *DisableCommand) Name() string        { return "disable" }
func (c *DisableCommand) Description() string { return "disable a content directory" }
func (c *DisableCommand) Usage() string       { return "disable <label>" }
func (c *DisableCommand) GetFlags() *cmd.CommandFlagSet { return nil }

func (c *DisableCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) == 0 {
		return 1, fmt.Errorf("disable: label required")
	}

	label := args.Args[0]
	changed, err := api.Disable(label)
	if err != nil {
		return 1, err
	}

	if changed {
		fmt.Fprintf(writer, "disabled %s\n", label)
	} else {
		fmt.Fprintf(writer, "%s already disabled\n", label)
	}

	return 0, nil
}
