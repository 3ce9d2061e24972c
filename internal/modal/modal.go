// Package modal tracks modal components (prompts and dialogs that take
// all input while open) and retries commands that a modal interrupted.
package modal

import (
	"sync"
	"time"

	"github.com/bethropolis/compedit/internal/commands"
	"github.com/bethropolis/compedit/internal/logger"
)

// Component is something that can be shown modally.
type Component interface {
	// ExitModalState closes the component with a result code.
	ExitModalState(result int)
}

// Manager is the stack of open modal components, innermost last.
type Manager struct {
	mu    sync.Mutex
	stack []Component
}

// NewManager creates an empty manager.
func NewManager() *Manager { return &Manager{} }

// Enter pushes c. Entering a component that is already modal does nothing.
func (m *Manager) Enter(c Component) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, open := range m.stack {
		if open == c {
			return
		}
	}
	m.stack = append(m.stack, c)
}

// Exit removes c without calling it. It reports whether c was open.
func (m *Manager) Exit(c Component) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, open := range m.stack {
		if open == c {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			return true
		}
	}
	return false
}

// Count is the number of open modal components.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stack)
}

// Top returns the innermost modal component, or nil.
func (m *Manager) Top() Component {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// IsModal reports whether c is open.
func (m *Manager) IsModal(c Component) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, open := range m.stack {
		if open == c {
			return true
		}
	}
	return false
}

// CancelAll exits every open component with result 0, innermost first,
// and reports whether there were any.
func (m *Manager) CancelAll() bool {
	m.mu.Lock()
	open := m.stack
	m.stack = nil
	m.mu.Unlock()

	for i := len(open) - 1; i >= 0; i-- {
		open[i].ExitModalState(0)
	}
	if len(open) > 0 {
		logger.DebugTagf("modal", "Cancelled %d modal component(s)", len(open))
	}
	return len(open) > 0
}

// RetryDelay is how long a cancelled command waits before running again.
const RetryDelay = 500 * time.Millisecond

// ReinvokeAfterCancelling cancels any open modal components. If there
// were some, info is re-invoked asynchronously after RetryDelay with its
// origin cleared, and true is returned. Otherwise nothing happens.
func ReinvokeAfterCancelling(m *Manager, s *Scheduler, cmds *commands.Manager, info commands.InvocationInfo) bool {
	if !m.CancelAll() {
		return false
	}
	info.Origin = nil
	s.After(RetryDelay, func() {
		if err := cmds.Invoke(info, true); err != nil {
			logger.Warnf("Retrying command '%s' failed: %v", info.Command, err)
		}
	})
	return true
}
