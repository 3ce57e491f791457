package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/contentvfs/cmd"
)

// EnableCommand enables a registered content directory by label.
type EnableCommand struct{}

func (c *EnableCommand) Name() string        { return "enable" }
func (c *EnableCommand) Description() string { return "enable a content directory" }
func (c *EnableCommand) Usage() string       { return "enable <label>" }
func (c *EnableCommand) GetFlags() *cmd.CommandFlagSet { return nil }

func (c *EnableCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) == 0 {
		return 1, fmt.Errorf("enable: label required")
	}

	label := args.Args[0]
	changed, err := api.Enable(label)
	if err != nil {
		return 1, err
	}

	if changed {
		fmt.Fprintf(writer, "enabled %s\n", label)
	} else {
		fmt.Fprintf(writer, "%s already enabled\n", label)
	}

	return 0, nil
}
