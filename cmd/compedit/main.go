// Command compedit edits component layouts in the terminal and prints the
// C++ that recreates them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	stlog "log" // for errors before the logger is ready
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/compedit/internal/app"
	"github.com/bethropolis/compedit/internal/appearance"
	"github.com/bethropolis/compedit/internal/codegen"
	"github.com/bethropolis/compedit/internal/component"
	"github.com/bethropolis/compedit/internal/config"
	"github.com/bethropolis/compedit/internal/event"
	"github.com/bethropolis/compedit/internal/history"
	"github.com/bethropolis/compedit/internal/imagebutton"
	"github.com/bethropolis/compedit/internal/logger"
	"github.com/bethropolis/compedit/internal/tui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// --- Argument & Flag Parsing ---
	flags := &config.Flags{}
	args, err := flags.ParseFlags(nil, os.Args[1:])
	if err != nil {
		return 2
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return 0
	}

	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, flags)
	if cfgErr != nil {
		stlog.Printf("Warning: %v; using defaults", cfgErr)
	}

	oneShot := *flags.Generate || *flags.Check || *flags.WriteSchemes || flags.IsSet("literal")

	// --- Logger Initialization ---
	logCfg := cfg.Logger
	if logCfg.LogFilePath == "" {
		if oneShot {
			// keep stdout output clean
			if !flags.IsSet("loglevel") {
				logCfg.LogLevel = "warn"
			}
		} else {
			logCfg.LogFilePath = config.DefaultLogPath()
			if err := os.MkdirAll(filepath.Dir(logCfg.LogFilePath), 0o755); err != nil {
				stlog.Fatalf("Failed to create log directory: %v", err)
			}
		}
	}
	if err := logger.Init(logCfg, nil); err != nil {
		stlog.Fatalf("Failed to initialise logger: %v", err)
	}
	defer logger.Close()
	logger.Infof("Starting %s %s", config.AppName, version)
	cfg.ReportUndecoded()

	// --- Document & Appearance ---
	reg := component.NewRegistry()
	if err := reg.Register(imagebutton.New()); err != nil {
		logger.Errorf("Failed to register component types: %v", err)
		return 1
	}
	events := event.NewManager()
	doc := component.NewDocument(reg, component.Options{
		Events: events,
		History: history.Options{
			MaxHistory:  cfg.Editor.MaxHistory,
			MergeWindow: cfg.Editor.MergeWindow(),
		},
	})
	settings := appearance.New(appearance.Options{Events: events, SchemesDir: cfg.Appearance.SchemesDir})

	if *flags.WriteSchemes {
		if err := settings.WriteDefaultSchemes(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		dir, _ := settings.SchemesFolder()
		fmt.Printf("Wrote default schemes to %s\n", dir)
		return 0
	}
	if cfg.Appearance.Scheme != "" {
		if err := settings.RefreshPresetSchemeList(); err != nil {
			logger.Warnf("Failed to read schemes: %v", err)
		}
		if err := settings.SelectPresetByName(cfg.Appearance.Scheme); err != nil {
			logger.Warnf("Scheme '%s': %v", cfg.Appearance.Scheme, err)
		}
	}

	if flags.IsSet("literal") {
		return printCode(codegen.StringLiteral(*flags.Literal, cfg.Generator.LiteralLineLength)+"\n", cfg, settings, flags)
	}

	if len(args) > 0 {
		path := args[0]
		err := doc.LoadFile(path)
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist) && !oneShot:
			logger.Infof("New layout: %s", path)
			doc.SetFilePath(path)
		default:
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	if *flags.Generate || *flags.Check {
		return generate(doc, cfg, settings, flags)
	}

	// --- Create and Run App ---
	tm, err := tui.New()
	if err != nil {
		logger.Errorf("Error initializing terminal: %v", err)
		return 1
	}
	defer tm.Close()

	editor, err := app.New(app.Options{TUI: tm, Document: doc, Settings: settings, Config: cfg})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := editor.Run(ctx); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return 1
	}
	logger.Infof("%s finished.", config.AppName)
	return 0
}

// generate prints the layout's code, optionally checking it first.
// Returns 1 when -check finds problems.
func generate(doc *component.Document, cfg *config.Config, settings *appearance.Settings, flags *config.Flags) int {
	code := doc.GenerateCode(cfg.Generator.ClassName)
	status := 0
	if *flags.Check {
		problems, err := codegen.NewValidator().CheckStatements(context.Background(), code.ConstructorCode)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, p)
		}
		if len(problems) > 0 {
			status = 1
		} else if !*flags.Generate {
			fmt.Println("OK")
		}
	}
	if *flags.Generate {
		if s := printCode(code.Source(), cfg, settings, flags); s != 0 {
			return s
		}
	}
	return status
}

func printCode(code string, cfg *config.Config, settings *appearance.Settings, flags *config.Flags) int {
	if *flags.Highlight {
		style, err := settings.ChromaStyle()
		if err != nil {
			logger.Warnf("%v", err)
		}
		if err := codegen.Highlight(os.Stdout, code, style, ""); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	} else {
		fmt.Print(code)
	}
	if *flags.Copy {
		if !cfg.Editor.SystemClipboard {
			logger.Warnf("-copy ignored: system clipboard disabled")
			return 0
		}
		if err := clipboard.WriteAll(code); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to copy: %v\n", err)
			return 1
		}
	}
	return 0
}
