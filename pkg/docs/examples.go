package docs

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/platinummonkey/protodoc/pkg/schema"
)

// nestedExampleFields caps how many fields a nested example object shows.
const nestedExampleFields = 3

// scalarExampleValues are the canned defaults for scalar field types, keyed
// by the lowercased simple type name.
var scalarExampleValues = map[string]any{
	"int32":  123,
	"int64":  123456789,
	"bool":   true,
	"double": 123.45,
	"float":  123.45,
	"bytes":  "base64_encoded_data",
}

// orderedObject is a JSON object that encodes its keys in insertion order,
// so example payloads list fields the way the schema declares them.
type orderedObject struct {
	keys   []string
	values map[string]any
}

func newOrderedObject() *orderedObject {
	return &orderedObject{values: make(map[string]any)}
}

func (o *orderedObject) set(key string, v any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// ExamplePayload synthesizes an indented JSON example for a message.
// Messages with no usable fields render as "{}".
func ExamplePayload(reg *schema.Registry, msg *schema.Message) string {
	obj := newOrderedObject()
	for _, field := range msg.Fields {
		if field.Deprecated {
			continue
		}
		obj.set(field.Name, fieldExample(reg, field, true))
	}
	return encodeJSON(obj, 0)
}

// fieldExample produces the example value for a single field. Repeated
// fields wrap their value in a one-element array.
func fieldExample(reg *schema.Registry, field *schema.Field, expand bool) any {
	v := exampleValue(reg, field, expand)
	if field.Label == schema.LabelRepeated {
		return []any{v}
	}
	return v
}

// exampleValue picks a value by inspecting the field's type and name:
// scalar defaults first, then a timestamp literal, then name heuristics for
// string-like values, then a nested object for expandable message types.
func exampleValue(reg *schema.Registry, field *schema.Field, expand bool) any {
	baseType := strings.ToLower(schema.SimpleName(field.Type))

	if baseType == "string" {
		return stringExample(field.Name)
	}
	if v, ok := scalarExampleValues[baseType]; ok {
		return v
	}
	if strings.Contains(baseType, "timestamp") {
		return "2023-12-01T12:00:00Z"
	}
	if expand && shouldExpand(reg, field.Type) {
		return nestedExample(reg, field.Type)
	}
	return "example_" + field.Name
}

// stringExample picks a representative string for a field by its name.
func stringExample(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, "_id"):
		return "unique_identifier_123"
	case strings.Contains(lower, "email"):
		return "user@example.com"
	case strings.Contains(lower, "name"), strings.Contains(lower, "message"):
		return "example_name"
	default:
		return "example_string"
	}
}

// nestedExample builds a shallow object from the first few fields of an
// expandable message type. It does not recurse further; a type that fails
// to resolve (an enum, typically) degrades to a placeholder string.
func nestedExample(reg *schema.Registry, typeName string) any {
	msg := resolveMessage(reg, typeName)
	if msg == nil {
		return "example_" + strings.ToLower(schema.SimpleName(typeName))
	}
	obj := newOrderedObject()
	fields := msg.Fields
	if len(fields) > nestedExampleFields {
		fields = fields[:nestedExampleFields]
	}
	for _, field := range fields {
		if field.Deprecated {
			continue
		}
		obj.set(field.Name, fieldExample(reg, field, false))
	}
	return obj
}

// encodeJSON renders a value with two-space indentation, preserving the
// key order of orderedObject containers.
func encodeJSON(v any, indent int) string {
	switch val := v.(type) {
	case *orderedObject:
		if len(val.keys) == 0 {
			return "{}"
		}
		var b strings.Builder
		inner := strings.Repeat("  ", indent+1)
		b.WriteString("{\n")
		for i, key := range val.keys {
			b.WriteString(inner)
			b.WriteString(encodeScalar(key))
			b.WriteString(": ")
			b.WriteString(encodeJSON(val.values[key], indent+1))
			if i < len(val.keys)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat("  ", indent))
		b.WriteString("}")
		return b.String()
	case []any:
		if len(val) == 0 {
			return "[]"
		}
		var b strings.Builder
		inner := strings.Repeat("  ", indent+1)
		b.WriteString("[\n")
		for i, item := range val {
			b.WriteString(inner)
			b.WriteString(encodeJSON(item, indent+1))
			if i < len(val)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat("  ", indent))
		b.WriteString("]")
		return b.String()
	default:
		return encodeScalar(v)
	}
}

func encodeScalar(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return `""`
	}
	return string(data)
}

// sortedEnumValues returns an enum's value names ordered by number, for
// stable rendering of value tables.
func sortedEnumValues(enum *schema.Enum) []string {
	names := make([]string, 0, len(enum.Values))
	for name := range enum.Values {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ni, nj := enum.Values[names[i]], enum.Values[names[j]]
		if ni != nj {
			return ni < nj
		}
		return names[i] < names[j]
	})
	return names
}
