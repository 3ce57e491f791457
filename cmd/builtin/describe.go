package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/contentvfs/cmd"
)

// DescribeCommand prints the full definition of one content directory.
type DescribeCommand struct{}

func (c *DescribeCommand) Name() string        { return "describe" }
func (c *DescribeCommand) Description() string { return "describe a content directory" }
func (c *DescribeCommand) Usage() string       { return "describe <label>" }
func (c *DescribeCommand) GetFlags() *cmd.CommandFlagSet { return nil }

func (c *DescribeCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) == 0 {
		return 1, fmt.Errorf("describe: label required")
	}

	summary, err := api.Describe(args.Args[0])
	if err != nil {
		return 1, err
	}

	fmt.Fprint(writer, summary)
	return 0, nil
}
