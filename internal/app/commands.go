package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/compedit/internal/codegen"
	"github.com/bethropolis/compedit/internal/commands"
	"github.com/bethropolis/compedit/internal/logger"
)

// registerCommands installs the commands bound to keys and available
// from the ':' prompt.
func (a *App) registerCommands() {
	register := func(id commands.ID, fn commands.Func) {
		if err := a.commands.Register(id, fn); err != nil {
			logger.Warnf("Failed to register '%s' command: %v", id, err)
		}
	}

	register("undo", func(commands.InvocationInfo) error {
		desc := a.doc.History().UndoDescription()
		if !a.doc.Undo() {
			a.SetStatusMessage("Nothing to undo")
			return nil
		}
		a.SetStatusMessage("Undo: %s", desc)
		return nil
	})
	register("redo", func(commands.InvocationInfo) error {
		desc := a.doc.History().RedoDescription()
		if !a.doc.Redo() {
			a.SetStatusMessage("Nothing to redo")
			return nil
		}
		a.SetStatusMessage("Redo: %s", desc)
		return nil
	})
	register("save", func(info commands.InvocationInfo) error {
		path := strings.Join(info.Args, " ")
		return a.doc.SaveFile(path)
	})
	register("generate", func(info commands.InvocationInfo) error {
		path := strings.Join(info.Args, " ")
		if path == "" {
			path = GeneratedCodePath(a.doc.FilePath())
		}
		if path == "" {
			return fmt.Errorf("save the layout first or give a file name")
		}
		source, problems := a.generate()
		if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if problems > 0 {
			a.SetStatusMessage("Wrote %s (%d syntax problem(s))", path, problems)
		} else {
			a.SetStatusMessage("Wrote %s", path)
		}
		return nil
	})
	register("copy", func(commands.InvocationInfo) error {
		source, _ := a.generate()
		if err := a.clipboard(source); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
		a.SetStatusMessage("Copied generated code (%d lines)", strings.Count(source, "\n"))
		return nil
	})
	register("literal", func(info commands.InvocationInfo) error {
		text := strings.Join(info.Args, " ")
		lit := codegen.StringLiteral(text, a.cfg.Generator.LiteralLineLength)
		if err := a.clipboard(lit); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
		a.SetStatusMessage("Copied %s", lit)
		return nil
	})
	register("add", func(info commands.InvocationInfo) error {
		types := a.doc.Registry().Types()
		if len(types) == 0 {
			return fmt.Errorf("no component types registered")
		}
		typeName := types[0]
		name := ""
		if len(info.Args) > 0 {
			typeName = info.Args[0]
			name = strings.Join(info.Args[1:], " ")
		}
		id, err := a.doc.Add(typeName, name)
		if err != nil {
			return err
		}
		a.ShowTabFor(id)
		return nil
	})
	register("remove", func(commands.InvocationInfo) error {
		c := a.selectedComponent()
		if c == nil {
			return fmt.Errorf("nothing selected")
		}
		return a.doc.Remove(c.ID)
	})
	commands.RegisterSchemeCommands(a.commands, a)
}

// generate returns the generated source and, when validation is on, the
// number of syntax problems found in the constructor code.
func (a *App) generate() (string, int) {
	code := a.doc.GenerateCode(a.cfg.Generator.ClassName)
	if !a.cfg.Generator.ValidateCode {
		return code.Source(), 0
	}
	problems, err := codegen.NewValidator().CheckStatements(context.Background(), code.ConstructorCode)
	if err != nil {
		logger.Warnf("App: code check failed: %v", err)
		return code.Source(), 0
	}
	for _, p := range problems {
		logger.Warnf("Generated code: %s", p)
	}
	return code.Source(), len(problems)
}

// GeneratedCodePath is the layout path with a .cpp extension, or "".
func GeneratedCodePath(layoutPath string) string {
	if layoutPath == "" {
		return ""
	}
	return strings.TrimSuffix(layoutPath, filepath.Ext(layoutPath)) + ".cpp"
}

// SelectScheme implements commands.SchemeAPI.
func (a *App) SelectScheme(name string) error {
	if err := a.settings.RefreshPresetSchemeList(); err != nil {
		return err
	}
	return a.settings.SelectPresetByName(name)
}

// CurrentScheme implements commands.SchemeAPI.
func (a *App) CurrentScheme() string { return a.settings.Current() }

// ListSchemes implements commands.SchemeAPI.
func (a *App) ListSchemes() []string {
	if err := a.settings.RefreshPresetSchemeList(); err != nil {
		logger.Warnf("App: %v", err)
	}
	return a.settings.PresetSchemes()
}
