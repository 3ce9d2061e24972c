// Package commands is the registry of named editor commands. Commands are
// invoked directly or posted to the UI goroutine.
package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/compedit/internal/logger"
)

// ErrUnknownCommand is returned when invoking a name nobody registered.
var ErrUnknownCommand = errors.New("unknown command")

// ID names a command, e.g. "undo" or "scheme".
type ID string

// InvocationInfo describes one invocation.
type InvocationInfo struct {
	Command ID
	Args    []string
	// Origin is the component that triggered the command, if any.
	Origin any
}

// Func runs a command.
type Func func(info InvocationInfo) error

// Manager holds the registered commands.
type Manager struct {
	mu       sync.RWMutex
	commands map[ID]Func
	post     func(func())
}

// NewManager creates a manager. post queues work for the UI goroutine and
// is used by asynchronous invocations; nil runs them in place.
func NewManager(post func(func())) *Manager {
	return &Manager{commands: make(map[ID]Func), post: post}
}

// Register adds a command. Registering a name twice is an error.
func (m *Manager) Register(id ID, fn Func) error {
	if id == "" || fn == nil {
		return fmt.Errorf("invalid command registration %q", id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.commands[id]; exists {
		return fmt.Errorf("command '%s' already registered", id)
	}
	m.commands[id] = fn
	logger.DebugTagf("commands", "Registered command '%s'", id)
	return nil
}

// Has reports whether id is registered.
func (m *Manager) Has(id ID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.commands[id]
	return ok
}

// List returns the registered names, sorted.
func (m *Manager) List() []ID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]ID, 0, len(m.commands))
	for id := range m.commands {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Invoke runs the command named by info. With async set the command is
// posted and any error it returns is logged rather than returned.
func (m *Manager) Invoke(info InvocationInfo, async bool) error {
	m.mu.RLock()
	fn, ok := m.commands[info.Command]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, info.Command)
	}

	if async && m.post != nil {
		m.post(func() {
			if err := fn(info); err != nil {
				logger.Warnf("Command '%s' failed: %v", info.Command, err)
			}
		})
		return nil
	}
	logger.Debugf("Commands: executing '%s' with args %v", info.Command, info.Args)
	return fn(info)
}

// Execute parses a command line ("scheme Default (Dark)") and invokes it.
func (m *Manager) Execute(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	return m.Invoke(InvocationInfo{Command: ID(parts[0]), Args: parts[1:]}, false)
}
