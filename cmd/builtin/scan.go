package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/mwantia/contentvfs/cmd"
)

// ScanCommand registers an additional search directory and reports the
// directories newly discovered there.
type ScanCommand struct{}

func (c *ScanCommand) Name() string        { return "scan" }
func (c *ScanCommand) Description() string { return "scan a directory for content directories" }
func (c *ScanCommand) Usage() string       { return "scan <path>" }
func (c *ScanCommand) GetFlags() *cmd.CommandFlagSet { return nil }

func (c *ScanCommand) Execute(ctx context.Context, api cmd.API, args *cmd.CommandArgs, writer io.Writer) (int, error) {
	if len(args.Args) == 0 {
		return 1, fmt.Errorf("scan: path required")
	}

	before := make(map[string]bool, len(api.AllLabels()))
	for _, l := range api.AllLabels() {
		before[l] = true
	}

	api.AddSearchDir(args.Args[0])

	found := 0
	for _, l := range api.AllLabels() {
		if !before[l] {
			fmt.Fprintf(writer, "discovered %s\n", l)
			found++
		}
	}

	fmt.Fprintf(writer, "scan complete: %d new content directories\n", found)
	return 0, nil
}
