// Package codegen turns component properties into C++ initialisation
// source, and checks and highlights the result.
package codegen

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/compedit/internal/colour"
	"github.com/rivo/uniseg"
)

// BoolLiteral returns "true" or "false".
func BoolLiteral(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// FloatLiteral formats v with exactly decimals places and an f suffix:
// FloatLiteral(1, 3) is "1.000f". With decimals <= 0 it is "1.0f".
func FloatLiteral(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.ContainsRune(s, '.') {
		return s + "f"
	}
	return s + ".0f"
}

var namedColours = []struct {
	name string
	c    colour.Colour
}{
	{"black", 0xff000000},
	{"white", 0xffffffff},
	{"red", 0xffff0000},
	{"green", 0xff008000},
	{"blue", 0xff0000ff},
	{"yellow", 0xffffff00},
	{"cyan", 0xff00ffff},
	{"magenta", 0xffff00ff},
	{"grey", 0xff808080},
	{"darkgrey", 0xff555555},
	{"lightgrey", 0xffd3d3d3},
	{"orange", 0xffffa500},
	{"purple", 0xff800080},
}

// ColourToCode returns "Colours::name" for the standard named colours and
// "Colour (0xaarrggbb)" otherwise.
func ColourToCode(c colour.Colour) string {
	for _, nc := range namedColours {
		if nc.c == c {
			return "Colours::" + nc.name
		}
	}
	return "Colour (0x" + c.Hex8() + ")"
}

// StringLiteral renders text as a C++ string literal. Empty text is
// "String::empty". Text is split after each newline and wherever a line
// exceeds maxLineLength characters (never inside a grapheme cluster);
// each piece becomes an adjacent literal on its own line. Text with
// non-ASCII characters is wrapped in CharPointer_UTF8 (...).
func StringLiteral(text string, maxLineLength int) string {
	if text == "" {
		return "String::empty"
	}

	var pieces []string
	for _, line := range splitLinesKeepEnds(text) {
		pieces = append(pieces, splitByLength(line, maxLineLength)...)
	}

	quoted := make([]string, 0, len(pieces))
	for _, p := range pieces {
		escaped := EscapeChars(p)
		if escaped == "" {
			continue
		}
		quoted = append(quoted, `"`+escaped+`"`)
	}
	result := strings.Join(quoted, "\n")

	if !isASCII(text) {
		result = "CharPointer_UTF8 (" + result + ")"
	}
	return result
}

// splitLinesKeepEnds splits after "\n", "\r" and "\r\n", keeping the terminators.
func splitLinesKeepEnds(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i+1])
			start = i + 1
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// splitByLength cuts line into chunks of at most max runes, only at
// grapheme cluster boundaries.
func splitByLength(line string, max int) []string {
	if max <= 0 || utf8.RuneCountInString(line) <= max {
		return []string{line}
	}
	var out []string
	var cur strings.Builder
	count := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		cluster := gr.Str()
		n := utf8.RuneCountInString(cluster)
		if count > 0 && count+n > max {
			out = append(out, cur.String())
			cur.Reset()
			count = 0
		}
		cur.WriteString(cluster)
		count += n
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// EscapeChars escapes text for use between C++ double quotes. Bytes
// outside printable ASCII become \xNN; a hex digit directly after such an
// escape is separated with "" so the compiler does not swallow it.
func EscapeChars(text string) string {
	var sb strings.Builder
	lastWasHex := false
	lastChar := byte(0)
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\t':
			sb.WriteString(`\t`)
			lastWasHex = false
		case c == '\r':
			sb.WriteString(`\r`)
			lastWasHex = false
		case c == '\n':
			sb.WriteString(`\n`)
			lastWasHex = false
		case c == '\\':
			sb.WriteString(`\\`)
			lastWasHex = false
		case c == '"':
			sb.WriteString(`\"`)
			lastWasHex = false
		case c == '?' && lastChar == '?':
			sb.WriteString(`\?`) // avoid trigraphs
			lastWasHex = false
		case c >= 32 && c < 127:
			if lastWasHex && isHexDigit(c) {
				sb.WriteString(`""`)
			}
			sb.WriteByte(c)
			lastWasHex = false
		default:
			sb.WriteString(`\x`)
			sb.WriteString(strconv.FormatUint(uint64(c), 16))
			lastWasHex = true
		}
		lastChar = c
	}
	return sb.String()
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// MakeValidIdentifier turns free text into a C++ identifier: words are
// joined in camel case, other characters dropped, and a leading digit is
// prefixed with an underscore. Empty input gives "unknown".
func MakeValidIdentifier(s string, capitalise bool) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !(r == '_' || r < utf8.RuneSelf && (isHexDigit(byte(r)) || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'))
	})
	if len(words) == 0 {
		return "unknown"
	}

	var sb strings.Builder
	for i, w := range words {
		first, rest := w[:1], w[1:]
		if i == 0 && !capitalise {
			first = strings.ToLower(first)
		} else {
			first = strings.ToUpper(first)
		}
		sb.WriteString(first)
		sb.WriteString(rest)
	}
	id := sb.String()
	if id[0] >= '0' && id[0] <= '9' {
		id = "_" + id
	}
	return id
}
