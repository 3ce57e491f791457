package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Manager handles command registration, parsing, and execution against
// an API.
type Manager struct {
	mu   sync.RWMutex
	api  API
	cmds map[string]Command
}

// NewManager constructs a command Manager bound to api.
func NewManager(api API) *Manager {
	return &Manager{
		api:  api,
		cmds: make(map[string]Command),
	}
}

// Register registers a command under its own Name().
func (m *Manager) Register(command Command) error {
	if command == nil {
		return fmt.Errorf("command cannot be nil")
	}

	name := command.Name()
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.cmds[name]; exists {
		return fmt.Errorf("command already registered: %s", name)
	}

	m.cmds[name] = command
	return nil
}

// Get returns a registered command by name.
func (m *Manager) Get(name string) (Command, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	command, exists := m.cmds[name]
	if !exists {
		return nil, fmt.Errorf("command not found: %s", name)
	}
	return command, nil
}

// List returns every registered command.
func (m *Manager) List() []Command {
	m.mu.RLock()
	defer m.mu.RUnlock()

	commands := make([]Command, 0, len(m.cmds))
	for _, command := range m.cmds {
		commands = append(commands, command)
	}
	return commands
}

// Execute parses args[1:] against the flag set of args[0]'s command
// and runs it, writing its output to writer.
func (m *Manager) Execute(ctx context.Context, writer io.Writer, args ...string) (int, error) {
	if len(args) == 0 {
		return 1, fmt.Errorf("no command specified")
	}

	command, err := m.Get(args[0])
	if err != nil {
		return 1, err
	}

	flagSet := command.GetFlags()
	if flagSet == nil {
		flagSet = &CommandFlagSet{Flags: make(map[string]*CommandFlag)}
	}

	parsedArgs, err := NewParser(flagSet).Parse(args[1:])
	if err != nil {
		return 1, fmt.Errorf("parse error: %w", err)
	}

	return command.Execute(ctx, m.api, parsedArgs, writer)
}
