package schema

// Virtual source paths for the built-in well-known types. They never collide
// with real files because sources only list files that exist on disk.
const (
	timestampVirtualFile = "google/protobuf/timestamp.proto"
	durationVirtualFile  = "google/protobuf/duration.proto"
	anyVirtualFile       = "google/protobuf/any.proto"
	payloadVirtualFile   = "spoke/common/v1/payload.proto"

	// WellKnownPackage is the virtual package of the protobuf built-ins.
	WellKnownPackage = "google.protobuf"
	// PayloadPackage is the virtual package of the opaque payload type.
	PayloadPackage = "spoke.common.v1"
)

// SeedBuiltins registers the well-known types under both simple and qualified
// keys, as if they had been ingested from virtual files. This runs once per
// registry; it is order-independent relative to directory ingestion and must
// happen before Qualify.
func (r *Registry) SeedBuiltins() {
	timestamp := &Message{
		Name:       "Timestamp",
		Comment:    "A Timestamp represents a point in time independent of any time zone or local calendar, encoded as a count of seconds and fractions of seconds at nanosecond resolution.",
		SourceFile: timestampVirtualFile,
		Fields: []*Field{
			{Name: "seconds", Type: "int64", Number: 1, Comment: "Represents seconds of UTC time since Unix epoch 1970-01-01T00:00:00Z."},
			{Name: "nanos", Type: "int32", Number: 2, Comment: "Non-negative fractions of a second at nanosecond resolution."},
		},
	}
	r.registerBuiltin(timestamp, WellKnownPackage)

	duration := &Message{
		Name:       "Duration",
		Comment:    "A Duration represents a signed, fixed-length span of time represented as a count of seconds and fractions of seconds at nanosecond resolution.",
		SourceFile: durationVirtualFile,
		Fields: []*Field{
			{Name: "seconds", Type: "int64", Number: 1, Comment: "Signed seconds of the span of time."},
			{Name: "nanos", Type: "int32", Number: 2, Comment: "Signed fractions of a second at nanosecond resolution of the span of time."},
		},
	}
	r.registerBuiltin(duration, WellKnownPackage)

	anyMsg := &Message{
		Name:       "Any",
		Comment:    "Any contains an arbitrary serialized protocol buffer message along with a URL that describes the type of the serialized message.",
		SourceFile: anyVirtualFile,
		Fields: []*Field{
			{Name: "type_url", Type: "string", Number: 1, Comment: "A URL/resource name that uniquely identifies the type of the serialized protocol buffer message."},
			{Name: "value", Type: "bytes", Number: 2, Comment: "Must be a valid serialized protocol buffer of the above specified type."},
		},
	}
	r.registerBuiltin(anyMsg, WellKnownPackage)

	payload := &Message{
		Name:       "Payload",
		Comment:    "Payload carries serialized data passed across service boundaries in a language-agnostic envelope.",
		SourceFile: payloadVirtualFile,
		Fields: []*Field{
			{Name: "metadata", Type: "map<string,bytes>", Number: 1, Comment: "Metadata contains additional context information for this payload."},
			{Name: "data", Type: "bytes", Number: 2, Comment: "Serialized data."},
		},
	}
	r.registerBuiltin(payload, PayloadPackage)
}

// registerBuiltin stores a built-in message under its simple and qualified
// names. Both keys reference the identical entity, never a copy.
func (r *Registry) registerBuiltin(msg *Message, pkg string) {
	r.Messages[msg.Name] = msg
	r.Messages[pkg+"."+msg.Name] = msg
	r.Packages[msg.SourceFile] = pkg
}
