package projectutil

import (
	"strings"
	"unicode"
)

// Def is one preprocessor definition. An empty Value means a bare NAME.
type Def struct {
	Name, Value string
}

// Defs is an ordered set of definitions. Names compare case-insensitively.
type Defs []Def

func (d Defs) index(name string) int {
	for i, def := range d {
		if strings.EqualFold(def.Name, name) {
			return i
		}
	}
	return -1
}

// Set replaces the value of an existing name in place, or appends.
func (d *Defs) Set(name, value string) {
	if i := d.index(name); i >= 0 {
		(*d)[i].Value = value
		return
	}
	*d = append(*d, Def{Name: name, Value: value})
}

// Get looks a name up.
func (d Defs) Get(name string) (string, bool) {
	if i := d.index(name); i >= 0 {
		return d[i].Value, true
	}
	return "", false
}

// ParsePreprocessorDefs reads "NAME", "NAME=value" tokens separated by
// whitespace. A comma also ends a value. Inside a value "\ " and "\,"
// stand for a literal space and comma.
func ParsePreprocessorDefs(text string) Defs {
	var result Defs
	s := []rune(text)
	i := 0
	skipSpace := func() {
		for i < len(s) && unicode.IsSpace(s[i]) {
			i++
		}
	}

	for i < len(s) {
		skipSpace()
		var token, value strings.Builder
		for i < len(s) && s[i] != '=' && !unicode.IsSpace(s[i]) {
			token.WriteRune(s[i])
			i++
		}
		skipSpace()

		if i < len(s) && s[i] == '=' {
			i++
			skipSpace()
			for i < len(s) && !unicode.IsSpace(s[i]) {
				if s[i] == ',' {
					i++
					break
				}
				if s[i] == '\\' && i+1 < len(s) && (s[i+1] == ' ' || s[i+1] == ',') {
					i++
				}
				value.WriteRune(s[i])
				i++
			}
		}

		if token.Len() > 0 {
			result.Set(token.String(), value.String())
		}
	}
	return result
}

// MergePreprocessorDefs returns inherited with every overriding
// definition applied on top. Neither argument is modified.
func MergePreprocessorDefs(inherited, overriding Defs) Defs {
	merged := append(Defs(nil), inherited...)
	for _, def := range overriding {
		merged.Set(def.Name, def.Value)
	}
	return merged
}

// CreateGCCPreprocessorFlags renders defs as ` -D "NAME=value"` flags.
// A definition already ending in a double quote is left unquoted.
func CreateGCCPreprocessorFlags(defs Defs) string {
	var sb strings.Builder
	for _, def := range defs {
		d := def.Name
		if def.Value != "" {
			d += "=" + def.Value
		}
		if !strings.HasSuffix(d, `"`) {
			d = quoted(d)
		}
		sb.WriteString(" -D ")
		sb.WriteString(d)
	}
	return sb.String()
}

// ReplacePreprocessorDefs substitutes every ${NAME} in src.
func ReplacePreprocessorDefs(defs Defs, src string) string {
	for _, def := range defs {
		src = strings.ReplaceAll(src, "${"+def.Name+"}", def.Value)
	}
	return src
}
