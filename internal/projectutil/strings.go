// Package projectutil holds the small string and plist helpers the
// project exporters share.
package projectutil

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"
)

const uidChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// CreateAlphaNumericUID returns a random six character ID whose first
// character is always a letter.
func CreateAlphaNumericUID() string {
	var sb strings.Builder
	sb.WriteByte(uidChars[rand.Intn(52)])
	for i := 0; i < 5; i++ {
		sb.WriteByte(uidChars[rand.Intn(len(uidChars))])
	}
	return sb.String()
}

// HexString8Digits formats v as eight lowercase hex digits; negative
// values wrap to their 32-bit two's complement.
func HexString8Digits(v int) string {
	return fmt.Sprintf("%08x", uint32(v))
}

// CreateGUID derives a stable GUID in {XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}
// form from seed.
func CreateGUID(seed string) string {
	sum := md5.Sum([]byte(seed + "_guidsalt"))
	h := strings.ToUpper(hex.EncodeToString(sum[:]))
	return "{" + h[0:8] + "-" + h[8:12] + "-" + h[12:16] + "-" + h[16:20] + "-" + h[20:32] + "}"
}

// EscapeSpaces backslash-escapes every space.
func EscapeSpaces(s string) string {
	return strings.ReplaceAll(s, " ", `\ `)
}

// AddQuotesIfContainsSpaces double-quotes text containing a space unless
// it is already quoted.
func AddQuotesIfContainsSpaces(text string) string {
	if strings.ContainsRune(text, ' ') && !isQuoted(text) {
		return quoted(text)
	}
	return text
}

func isQuoted(s string) bool {
	t := strings.TrimLeft(s, " \t\r\n")
	return strings.HasPrefix(t, `"`) || strings.HasPrefix(t, "'")
}

// quoted adds double quotes at whichever ends lack them.
func quoted(s string) string {
	if !strings.HasPrefix(s, `"`) {
		s = `"` + s
	}
	if len(s) == 1 || !strings.HasSuffix(s, `"`) {
		s += `"`
	}
	return s
}

// SearchPathsFromString splits a path list on semicolons and newlines,
// trimming entries and dropping empty and repeated ones.
func SearchPathsFromString(searchPath string) []string {
	fields := strings.FieldsFunc(searchPath, func(r rune) bool {
		return r == ';' || r == '\r' || r == '\n'
	})
	seen := make(map[string]struct{}, len(fields))
	paths := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		paths = append(paths, f)
	}
	return paths
}

// IndexOfLineStartingWith returns the index of the first line at or after
// start that begins with text once leading whitespace is skipped, or -1.
func IndexOfLineStartingWith(lines []string, text string, start int) int {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimLeft(lines[i], " \t\r\n"), text) {
			return i
		}
	}
	return -1
}
