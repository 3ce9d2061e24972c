package commands

import (
	"fmt"
	"strings"

	"github.com/bethropolis/compedit/internal/logger"
)

// SchemeAPI is what the scheme commands need from the application.
type SchemeAPI interface {
	SelectScheme(name string) error
	CurrentScheme() string
	ListSchemes() []string
	SetStatusMessage(format string, args ...interface{})
}

// RegisterSchemeCommands adds "scheme [name]" and "schemes".
func RegisterSchemeCommands(m *Manager, api SchemeAPI) {
	schemeCmd := func(info InvocationInfo) error {
		if len(info.Args) == 0 {
			current := api.CurrentScheme()
			if current == "" {
				current = "(custom)"
			}
			api.SetStatusMessage("Current scheme: %s", current)
			return nil
		}

		name := strings.Join(info.Args, " ") // scheme names may contain spaces
		if err := api.SelectScheme(name); err != nil {
			return fmt.Errorf("scheme '%s' not found. Available: %s", name, strings.Join(api.ListSchemes(), ", "))
		}
		api.SetStatusMessage("Scheme set to: %s", name)
		return nil
	}

	listCmd := func(info InvocationInfo) error {
		api.SetStatusMessage("Available schemes: %s", strings.Join(api.ListSchemes(), ", "))
		return nil
	}

	if err := m.Register("scheme", schemeCmd); err != nil {
		logger.Warnf("Failed to register 'scheme' command: %v", err)
	}
	if err := m.Register("schemes", listCmd); err != nil {
		logger.Warnf("Failed to register 'schemes' command: %v", err)
	}
}
