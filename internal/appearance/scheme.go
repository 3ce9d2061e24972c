package appearance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bethropolis/compedit/internal/colour"
	"github.com/bethropolis/compedit/internal/event"
	"github.com/bethropolis/compedit/internal/logger"
	"github.com/bethropolis/compedit/internal/xmldoc"
	"github.com/mitchellh/go-homedir"
)

const (
	SchemeFileSuffix = ".scheme"
	schemeTag        = "COLOUR_SCHEME"
	colourTag        = "COLOUR"
)

var ErrNotScheme = errors.New("not a colour scheme")

var defaultDark = map[string]colour.Colour{
	MainBackground:    0xff29292a,
	TreeviewHighlight: 0x401111ee,
	DefaultText:       0xffc5cdd9,
	StatusBackground:  0xff2a2f38,
	StatusText:        0xffc5cdd9,
	ModifiedMarker:    0xffe5c07b,
	TooltipBackground: 0xff3a3f4b,
	TokenError:        0xffe60000,
	TokenComment:      0xff72d20c,
	TokenKeyword:      0xffee6f6f,
	TokenOperator:     0xffc4eb19,
	TokenIdentifier:   0xffcfcfcf,
	TokenInteger:      0xff42c8c4,
	TokenFloat:        0xff885500,
	TokenString:       0xffbc45dd,
	TokenBracket:      0xff058202,
	TokenPunctuation:  0xffcfbeff,
	TokenPreprocessor: 0xfff8f631,
}

var defaultLight = map[string]colour.Colour{
	MainBackground:    0xffdddddd,
	TreeviewHighlight: 0x2d000000,
	DefaultText:       0xff000000,
	StatusBackground:  0xffc0c0c0,
	StatusText:        0xff202020,
	ModifiedMarker:    0xffb05000,
	TooltipBackground: 0xffeeeebb,
	TokenError:        0xffcc0000,
	TokenComment:      0xff00aa00,
	TokenKeyword:      0xff0000cc,
	TokenOperator:     0xff225500,
	TokenIdentifier:   0xff000000,
	TokenInteger:      0xff880000,
	TokenFloat:        0xff885500,
	TokenString:       0xff990099,
	TokenBracket:      0xff000055,
	TokenPunctuation:  0xff004400,
	TokenPreprocessor: 0xff660000,
}

// ToXML writes the scheme as a COLOUR_SCHEME element.
func (s *Settings) ToXML() *xmldoc.Element {
	root := xmldoc.NewElement(schemeTag)
	root.SetAttribute("font", s.CodeFont().String())
	for _, name := range s.names {
		c, ok := s.Colour(name)
		if !ok {
			continue
		}
		el := root.NewChild(colourTag)
		el.SetAttribute("name", name)
		el.SetAttribute("colour", c.String())
	}
	return root
}

// ReadFromXML loads a COLOUR_SCHEME element. Unknown colour names are
// ignored and malformed colours keep their current value.
func (s *Settings) ReadFromXML(root *xmldoc.Element) error {
	if !root.HasTag(schemeTag) {
		return fmt.Errorf("%w: root element is <%s>", ErrNotScheme, root.Tag)
	}
	s.batch(func() {
		s.pending = true // a new scheme always counts as a change
		if root.HasAttribute("font") {
			s.SetCodeFont(ParseFont(root.StringAttribute("font", "")))
		}
		for _, el := range root.ChildrenNamed(colourTag) {
			name := el.StringAttribute("name", "")
			c, err := colour.Parse(el.StringAttribute("colour", ""))
			if err != nil {
				logger.Warnf("Scheme: colour %q is malformed: %v", name, err)
				continue
			}
			if !s.SetColour(name, c) {
				logger.DebugTagf("appearance", "Scheme: ignoring unknown colour %q", name)
			}
		}
	})
	logger.DebugTagf("appearance", "Scheme loaded: %s", s.describe())
	return nil
}

// ReadFromFile loads a .scheme file.
func (s *Settings) ReadFromFile(path string) error {
	root, err := xmldoc.ParseFile(path)
	if err != nil {
		return err
	}
	if err := s.ReadFromXML(root); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// WriteToFile saves the scheme to path.
func (s *Settings) WriteToFile(path string) error {
	return s.ToXML().WriteFile(path)
}

// SchemesFolder is where preset schemes live: the configured override
// (with "~" expanded) or <user config dir>/compedit/schemes.
func (s *Settings) SchemesFolder() (string, error) {
	if s.schemesDir != "" {
		dir, err := homedir.Expand(s.schemesDir)
		if err != nil {
			return "", fmt.Errorf("failed to expand schemes dir '%s': %w", s.schemesDir, err)
		}
		return dir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find user config dir: %w", err)
	}
	return filepath.Join(configDir, "compedit", "schemes"), nil
}

// WriteDefaultSchemes creates the built-in presets in the schemes folder,
// leaving existing files alone.
func (s *Settings) WriteDefaultSchemes() error {
	dir, err := s.SchemesFolder()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create schemes dir: %w", err)
	}
	for name, colours := range map[string]map[string]colour.Colour{
		"Default (Dark)":  defaultDark,
		"Default (Light)": defaultLight,
	} {
		path := filepath.Join(dir, name+SchemeFileSuffix)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		preset := New(Options{})
		preset.batch(func() {
			for cname, c := range colours {
				preset.SetColour(cname, c)
			}
		})
		if err := preset.WriteToFile(path); err != nil {
			return err
		}
		logger.Infof("Appearance: wrote default scheme %s", path)
	}
	return nil
}

// RefreshPresetSchemeList rescans the schemes folder. It dispatches
// TypeSchemeListChanged when the set of files differs.
func (s *Settings) RefreshPresetSchemeList() error {
	dir, err := s.SchemesFolder()
	if err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read schemes dir '%s': %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), SchemeFileSuffix) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	if equalStrings(files, s.presetFiles) {
		return nil
	}
	s.presetFiles = files
	logger.Debugf("Appearance: %d preset scheme(s) in %s", len(files), dir)
	if s.events != nil {
		s.events.Dispatch(event.TypeSchemeListChanged, nil)
	}
	return nil
}

// PresetSchemes names the presets found by the last refresh.
func (s *Settings) PresetSchemes() []string {
	names := make([]string, len(s.presetFiles))
	for i, f := range s.presetFiles {
		names[i] = strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
	}
	return names
}

// SelectPresetScheme loads preset i.
func (s *Settings) SelectPresetScheme(i int) error {
	if i < 0 || i >= len(s.presetFiles) {
		return fmt.Errorf("no preset scheme %d (have %d)", i, len(s.presetFiles))
	}
	s.current = s.PresetSchemes()[i]
	if err := s.ReadFromFile(s.presetFiles[i]); err != nil {
		return err
	}
	logger.Infof("Appearance: selected scheme %q", s.current)
	return nil
}

// SelectPresetByName loads the preset with the given name (case-insensitive).
func (s *Settings) SelectPresetByName(name string) error {
	for i, n := range s.PresetSchemes() {
		if strings.EqualFold(n, name) {
			return s.SelectPresetScheme(i)
		}
	}
	return fmt.Errorf("scheme '%s' not found", name)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
