package projectutil

import (
	"strconv"
	"strings"

	"github.com/bethropolis/compedit/internal/xmldoc"
)

// AddPlistDictionaryKey appends <key>key</key><string>value</string> to a
// plist dict unless the key is already there. A key left without a value
// (followed directly by another key) is dropped and written again.
func AddPlistDictionaryKey(dict *xmldoc.Element, key, value string) {
	for _, e := range dict.ChildrenNamed("key") {
		if !strings.EqualFold(strings.TrimSpace(e.AllSubText()), key) {
			continue
		}
		if next := e.NextElement(); next != nil && next.HasTag("key") {
			dict.RemoveChild(e)
			break
		}
		return
	}
	dict.NewChild("key").AddText(key)
	dict.NewChild("string").AddText(value)
}

// AddPlistDictionaryKeyBool appends a key followed by <true/> or <false/>.
func AddPlistDictionaryKeyBool(dict *xmldoc.Element, key string, value bool) {
	dict.NewChild("key").AddText(key)
	if value {
		dict.NewChild("true")
	} else {
		dict.NewChild("false")
	}
}

// AddPlistDictionaryKeyInt appends a key followed by <integer>value</integer>.
func AddPlistDictionaryKeyInt(dict *xmldoc.Element, key string, value int) {
	dict.NewChild("key").AddText(key)
	dict.NewChild("integer").AddText(strconv.Itoa(value))
}
