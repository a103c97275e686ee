package docs

import (
	"strings"

	"github.com/platinummonkey/protodoc/pkg/schema"
)

// maxReferenceDepth bounds traversal from a method signature: the seed
// message, plus two levels of referenced types.
const maxReferenceDepth = 2

// scalarTypes never expand into the type appendix.
var scalarTypes = map[string]bool{
	"string": true,
	"int32":  true,
	"int64":  true,
	"bool":   true,
	"double": true,
	"float":  true,
	"bytes":  true,
}

// expandableWellKnown is the allow-list of built-in types eligible for
// documentation; every other well-known wrapper stays opaque.
var expandableWellKnown = map[string]bool{
	"google.protobuf.Timestamp": true,
	"google.protobuf.Duration":  true,
	"google.protobuf.Any":       true,
	"spoke.common.v1.Payload":   true,
}

// excludedWrapperTypes are well-known wrappers that add no documentation value.
var excludedWrapperTypes = map[string]bool{
	"google.protobuf.Empty":       true,
	"google.protobuf.StringValue": true,
	"google.protobuf.Int64Value":  true,
	"google.protobuf.BoolValue":   true,
}

// genericSimpleNames are denied from the appendix regardless of package;
// names this generic collide constantly and document nothing.
var genericSimpleNames = map[string]bool{
	"status":   true,
	"state":    true,
	"error":    true,
	"metadata": true,
	"config":   true,
	"info":     true,
	"data":     true,
	"result":   true,
}

// ReferencedType is one externally-defined type reachable from a method
// signature. Exactly one of Message or Enum is set.
type ReferencedType struct {
	Name    string
	Message *schema.Message
	Enum    *schema.Enum
	Package string
}

// ReferenceGraph holds the referenced types keyed by name, preserving
// first-seen order so rendering is deterministic.
type ReferenceGraph struct {
	order   []string
	entries map[string]*ReferencedType
}

func newReferenceGraph() *ReferenceGraph {
	return &ReferenceGraph{entries: make(map[string]*ReferencedType)}
}

func (g *ReferenceGraph) add(t *ReferencedType) {
	if _, ok := g.entries[t.Name]; ok {
		return
	}
	g.entries[t.Name] = t
	g.order = append(g.order, t.Name)
}

// Lookup returns the entry for a type name as referenced in a field.
func (g *ReferenceGraph) Lookup(name string) (*ReferencedType, bool) {
	t, ok := g.entries[name]
	return t, ok
}

// Names returns type names in first-seen order.
func (g *ReferenceGraph) Names() []string {
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

// Len returns the number of referenced types.
func (g *ReferenceGraph) Len() int {
	return len(g.entries)
}

// CollectReferencedTypes walks every service method's input and output
// messages and gathers the externally-owned types their fields reach,
// bounded by maxReferenceDepth. Types owned by a primary package (one that
// declares a service) are excluded, as are types failing the relevance
// filter. Deduplication across packages happens later, at render time, by
// simple name.
func CollectReferencedTypes(reg *schema.Registry) *ReferenceGraph {
	graph := newReferenceGraph()
	primary := primaryPackages(reg)

	for _, name := range reg.ServiceNames() {
		for _, method := range reg.Services[name].Methods {
			if input := resolveMessage(reg, method.InputType); input != nil {
				collectFromMessage(reg, graph, primary, input, make(map[string]bool), 0)
			}
			if output := resolveMessage(reg, method.OutputType); output != nil {
				collectFromMessage(reg, graph, primary, output, make(map[string]bool), 0)
			}
		}
	}
	return graph
}

// collectFromMessage visits one message's fields. The visited set is copied
// for each recursive call: only ancestors suppress revisiting, so sibling
// fields of the same type are each considered, while reference cycles
// terminate.
func collectFromMessage(reg *schema.Registry, graph *ReferenceGraph, primary map[string]bool, msg *schema.Message, visited map[string]bool, depth int) {
	if visited[msg.Name] || depth > maxReferenceDepth {
		return
	}
	visited[msg.Name] = true

	for _, field := range msg.Fields {
		if field.Deprecated {
			continue
		}
		if !shouldExpand(reg, field.Type) {
			continue
		}

		pkg := typePackage(reg, field.Type)
		if pkg == "" || primary[pkg] || !isRelevant(field.Type) {
			continue
		}

		if resolved := resolveMessage(reg, field.Type); resolved != nil {
			graph.add(&ReferencedType{Name: field.Type, Message: resolved, Package: pkg})
			collectFromMessage(reg, graph, primary, resolved, copyVisited(visited), depth+1)
		} else if resolved := resolveEnum(reg, field.Type); resolved != nil {
			graph.add(&ReferencedType{Name: field.Type, Enum: resolved, Package: pkg})
		}
	}
}

func copyVisited(visited map[string]bool) map[string]bool {
	dup := make(map[string]bool, len(visited))
	for name := range visited {
		dup[name] = true
	}
	return dup
}

// primaryPackages returns the packages of every file that declares a service.
func primaryPackages(reg *schema.Registry) map[string]bool {
	primary := make(map[string]bool)
	for _, name := range reg.ServiceNames() {
		if pkg, ok := reg.Packages[reg.Services[name].SourceFile]; ok {
			primary[pkg] = true
		}
	}
	return primary
}

// resolveMessage resolves a type reference to its message, trying the exact
// name first and the simple name second.
func resolveMessage(reg *schema.Registry, name string) *schema.Message {
	if msg, ok := reg.Messages[name]; ok {
		return msg
	}
	if msg, ok := reg.Messages[schema.SimpleName(name)]; ok {
		return msg
	}
	return nil
}

// resolveEnum resolves a type reference to its enum, like resolveMessage.
func resolveEnum(reg *schema.Registry, name string) *schema.Enum {
	if enum, ok := reg.Enums[name]; ok {
		return enum
	}
	if enum, ok := reg.Enums[schema.SimpleName(name)]; ok {
		return enum
	}
	return nil
}

// typePackage determines which package owns a referenced type.
func typePackage(reg *schema.Registry, name string) string {
	if strings.HasPrefix(name, "google.protobuf.") {
		return schema.WellKnownPackage
	}
	if strings.HasPrefix(name, "spoke.common.") {
		return schema.PayloadPackage
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[:idx]
	}
	if msg := resolveMessage(reg, name); msg != nil {
		return reg.Packages[msg.SourceFile]
	}
	if enum := resolveEnum(reg, name); enum != nil {
		return reg.Packages[enum.SourceFile]
	}
	return ""
}

// shouldExpand reports whether a field type is eligible for inline or linked
// documentation rather than opaque text.
func shouldExpand(reg *schema.Registry, name string) bool {
	if scalarTypes[name] {
		return false
	}
	if strings.HasPrefix(name, "google.protobuf.") || strings.HasPrefix(name, "spoke.common.") {
		return expandableWellKnown[name]
	}
	return resolveMessage(reg, name) != nil || resolveEnum(reg, name) != nil
}

// isRelevant filters out types too generic to be worth an appendix entry.
func isRelevant(name string) bool {
	if excludedWrapperTypes[name] {
		return false
	}
	if strings.HasPrefix(name, "google.protobuf.") || strings.HasPrefix(name, "spoke.common.") {
		return expandableWellKnown[name]
	}
	return !genericSimpleNames[strings.ToLower(schema.SimpleName(name))]
}
