package codegen

import (
	"fmt"
	"strings"
)

// GeneratedCode collects the pieces of a component class as handlers
// fill them in.
type GeneratedCode struct {
	ClassName          string
	MemberDeclarations string
	ConstructorCode    string
	DestructorCode     string
}

// NewGeneratedCode starts an empty class.
func NewGeneratedCode(className string) *GeneratedCode {
	return &GeneratedCode{ClassName: className}
}

// AddMember appends a private member declaration line.
func (g *GeneratedCode) AddMember(decl string) {
	g.MemberDeclarations += decl + "\n"
}

// AddConstructorCode appends code to the constructor body.
func (g *GeneratedCode) AddConstructorCode(code string) {
	g.ConstructorCode += code
}

// AddDestructorCode appends code to the destructor body.
func (g *GeneratedCode) AddDestructorCode(code string) {
	g.DestructorCode += code
}

// Source renders the collected sections as marked blocks, the layout the
// editor writes between user code regions.
func (g *GeneratedCode) Source() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "//[Members] %s\n", g.ClassName)
	sb.WriteString(g.MemberDeclarations)
	sb.WriteString("//[/Members]\n\n")
	fmt.Fprintf(&sb, "%s::%s ()\n{\n", g.ClassName, g.ClassName)
	sb.WriteString(Indent(g.ConstructorCode, 4))
	sb.WriteString("}\n\n")
	fmt.Fprintf(&sb, "%s::~%s()\n{\n", g.ClassName, g.ClassName)
	sb.WriteString(Indent(g.DestructorCode, 4))
	sb.WriteString("}\n")
	return sb.String()
}

// Indent prefixes every non-empty line with n spaces.
func Indent(code string, n int) string {
	if code == "" {
		return ""
	}
	pad := strings.Repeat(" ", n)
	lines := strings.SplitAfter(code, "\n")
	var sb strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			sb.WriteString(pad)
		}
		sb.WriteString(line)
	}
	return sb.String()
}
