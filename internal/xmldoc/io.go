package xmldoc

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoRoot is returned when a document has no element.
var ErrNoRoot = errors.New("xml document has no root element")

const header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n\n"

// Parse reads a document and returns its root element. Whitespace-only
// text, comments and processing instructions are dropped.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := NewElement(qualified(t.Name))
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: qualified(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("failed to parse xml: multiple root elements")
				}
				root = el
			} else {
				stack[len(stack)-1].AddChild(el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 && strings.TrimSpace(string(t)) != "" {
				stack[len(stack)-1].AddText(string(t))
			}
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Element, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile reads and parses a file.
func ParseFile(path string) (*Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open '%s': %w", path, err)
	}
	defer f.Close()
	root, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", path, err)
	}
	return root, nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Write emits the XML declaration followed by e, indented by two spaces.
func (e *Element) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(header); err != nil {
		return err
	}
	e.write(bw, 0)
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteFile writes the document to path.
func (e *Element) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := e.Write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	return nil
}

// String renders e without the XML declaration.
func (e *Element) String() string {
	var sb strings.Builder
	bw := bufio.NewWriter(&sb)
	e.write(bw, 0)
	_ = bw.Flush()
	return sb.String()
}

func (e *Element) write(w *bufio.Writer, depth int) {
	indent := strings.Repeat("  ", depth)
	if e.IsText() {
		w.WriteString(indent)
		escape(w, e.Text)
		return
	}

	w.WriteString(indent)
	w.WriteByte('<')
	w.WriteString(e.Tag)
	for _, a := range e.Attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		escape(w, a.Value)
		w.WriteByte('"')
	}

	if len(e.Children) == 0 {
		w.WriteString("/>")
		return
	}
	w.WriteByte('>')

	if e.textOnly() {
		for _, c := range e.Children {
			escape(w, c.Text)
		}
	} else {
		for _, c := range e.Children {
			w.WriteByte('\n')
			c.write(w, depth+1)
		}
		w.WriteByte('\n')
		w.WriteString(indent)
	}
	w.WriteString("</")
	w.WriteString(e.Tag)
	w.WriteByte('>')
}

func (e *Element) textOnly() bool {
	for _, c := range e.Children {
		if !c.IsText() {
			return false
		}
	}
	return true
}

func escape(w *bufio.Writer, s string) {
	_ = xml.EscapeText(w, []byte(s))
}
