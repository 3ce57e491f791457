package builtin

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/mwantia/contentvfs/cmd"
)

// ResolveCommand resolves a relative path against every enabled
// content directory and prints the absolute path it resolves to.
type ResolveCommand struct{}

func (c *ResolveCommand) Name() string        { return "resolve" }
func (c *ResolveCommand) Description() string { return "resolve a relative path" }
func (c *ResolveCommand) Usage() string       { return "resolve <relative-path>" }
func (c *ResolveCommand) GetFlags() *cmd.CommandFlagSet { return nil }

func (c *ResolveCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) == 0 {
		return 1, fmt.Errorf("resolve: relative path required")
	}

	abs, err := api.GetPath(args.Args[0])
	if err != nil {
		return 1, err
	}

	fmt.Fprintln(writer, abs)

	if info, statErr := os.Stat(abs); statErr == nil {
		fmt.Fprintf(writer, "  size:     %s\n", humanize.Bytes(uint64(info.Size())))
		fmt.Fprintf(writer, "  modified: %s\n", humanize.Time(info.ModTime()))
	}

	return 0, nil
}
