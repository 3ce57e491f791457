package cmd

import (
	"context"
	"io"
)

// API is the surface content directory commands are allowed to act
// against — a deliberately narrow view over *content.Manager so
// commands can't reach past what their flags describe.
type API interface {
	// SearchDirs returns every directory currently being scanned for
	// content directories.
	SearchDirs() []string

	// AddSearchDir scans path for Content.inf definitions and registers
	// any content directory found.
	AddSearchDir(path string)

	// AllLabels returns every registered content directory's label,
	// ordered by ascending dependency depth.
	AllLabels() []string

	// GetLabels returns the labels whose enabled state matches enabled.
	GetLabels(enabled bool) []string

	// Enable enables the content directory registered under label.
	Enable(label string) (bool, error)

	// Disable disables the content directory registered under label.
	Disable(label string) (bool, error)

	// GetPath resolves relativePath against every enabled content
	// directory.
	GetPath(relativePath string) (string, error)

	// Describe returns a human-readable summary of the content
	// directory registered under label (label, description, version,
	// requirements, enabled state, dependency depth).
	Describe(label string) (string, error)
}

// Command represents an executable contentvfs CLI command.
type Command interface {
	// Name returns the command identifier.
	Name() string

	// Description returns human-readable help text.
	Description() string

	// Usage returns a usage string for help (e.g. "enable <label>").
	Usage() string

	// Execute runs the command with parsed arguments, writing output to
	// writer. Returns an exit code (0 = success) and an error, if any.
	Execute(ctx context.Context, api API, args *CommandArgs, writer io.Writer) (int, error)

	// GetFlags returns the flag set for this command (may be nil).
	GetFlags() *CommandFlagSet
}
