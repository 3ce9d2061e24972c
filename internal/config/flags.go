package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/compedit/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Pointers are bound to the flag set; only flags that were set are applied.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	EnableTags     *string
	DisableTags    *string
	EnablePkgs     *string
	DisablePkgs    *string
	EnableFiles    *string
	DisableFiles   *string

	MaxHistory      *int
	MergeWindowMS   *int
	SystemClipboard *bool
	SchemesDir      *string
	Scheme          *string
	ClassName       *string

	// One-shot modes
	Generate     *bool
	Highlight    *bool
	Check        *bool
	Literal      *string
	Copy         *bool
	WriteSchemes *bool
}

// DefineFlags sets up the flags on fs (flag.CommandLine when nil).
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	if fs == nil {
		fs = flag.CommandLine
	}
	f.fs = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")

	f.MaxHistory = fs.Int("max-history", 0, "Number of undo steps to keep - Overrides config file")
	f.MergeWindowMS = fs.Int("merge-window", -1, "Milliseconds within which edits to one property merge (0 disables) - Overrides config file")
	f.SystemClipboard = fs.Bool("system-clipboard", SystemClipboard, "Copy to the system clipboard")
	f.SchemesDir = fs.String("schemes-dir", "", "Folder holding .scheme files - Overrides config file")
	f.Scheme = fs.String("scheme", "", "Colour scheme to select - Overrides config file")
	f.ClassName = fs.String("class", "", "Class name for generated code - Overrides config file")

	f.Generate = fs.Bool("generate", false, "Print the generated code for the layout and exit")
	f.Highlight = fs.Bool("highlight", false, "Syntax-highlight printed code")
	f.Check = fs.Bool("check", false, "Check the generated code for syntax errors and exit")
	f.Literal = fs.String("literal", "", "Print TEXT as a C++ string literal and exit")
	f.Copy = fs.Bool("copy", false, "Also copy printed code to the clipboard")
	f.WriteSchemes = fs.Bool("write-schemes", false, "Write the default .scheme files and exit")
}

// ParseFlags defines and parses the flags from args on fs (flag.CommandLine
// and os.Args[1:] when nil). It returns the remaining non-flag arguments.
func (f *Flags) ParseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	f.DefineFlags(fs)
	if fs == nil {
		flag.Parse()
		return flag.Args(), nil
	}
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// IsSet reports whether the named flag was given.
func (f *Flags) IsSet(name string) bool {
	if f.fs == nil {
		return false
	}
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath // "-" is valid
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		case "max-history":
			if *f.MaxHistory > 0 {
				cfg.Editor.MaxHistory = *f.MaxHistory
			}
		case "merge-window":
			if *f.MergeWindowMS >= 0 {
				cfg.Editor.MergeWindowMS = *f.MergeWindowMS
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "schemes-dir":
			cfg.Appearance.SchemesDir = *f.SchemesDir
		case "scheme":
			cfg.Appearance.Scheme = *f.Scheme
		case "class":
			if *f.ClassName != "" {
				cfg.Generator.ClassName = *f.ClassName
			}
		}
	})
}

// splitCommaList splits "a, b,,c" into [a b c].
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
