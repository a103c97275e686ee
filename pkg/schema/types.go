package schema

import "strings"

// Label marks the cardinality modifier of a message field.
type Label string

const (
	LabelNone     Label = ""
	LabelOptional Label = "optional"
	LabelRequired Label = "required"
	LabelRepeated Label = "repeated"
)

// Field represents a single field declaration inside a message.
type Field struct {
	Name       string
	Type       string
	Number     int
	Label      Label
	Comment    string
	Deprecated bool
}

// Message represents a message declaration. Fields keep declaration order.
type Message struct {
	Name       string
	Fields     []*Field
	Comment    string
	SourceFile string
}

// Enum represents an enum declaration. Value names are unique per enum.
type Enum struct {
	Name       string
	Values     map[string]int
	Comment    string
	SourceFile string
}

// Method represents an rpc declaration inside a service, together with the
// HTTP binding recovered from its option block, if any.
type Method struct {
	Name       string
	InputType  string
	OutputType string
	Comment    string
	HTTPMethod string
	HTTPPath   string
	HTTPBody   string
}

// Service represents a service declaration. Methods keep declaration order.
type Service struct {
	Name       string
	Methods    []*Method
	Comment    string
	SourceFile string
}

// SimpleName returns the last dot-separated segment of a type name.
func SimpleName(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
