package schema

// Qualify inserts "<package>.<simple-name>" registry keys for every message
// and enum whose source file declared a package. The qualified key points at
// the same entity as the simple-name key. Run once after all ingestion
// (including SeedBuiltins); re-running is idempotent, but the registry is not
// designed for incremental re-ingestion afterwards.
func (r *Registry) Qualify() {
	qualifiedMessages := make(map[string]*Message)
	qualifiedEnums := make(map[string]*Enum)

	for path, pkg := range r.Packages {
		for _, msg := range r.Messages {
			if msg.SourceFile == path {
				qualifiedMessages[pkg+"."+msg.Name] = msg
			}
		}
		for _, enum := range r.Enums {
			if enum.SourceFile == path {
				qualifiedEnums[pkg+"."+enum.Name] = enum
			}
		}
	}

	for name, msg := range qualifiedMessages {
		r.Messages[name] = msg
	}
	for name, enum := range qualifiedEnums {
		r.Enums[name] = enum
	}
}
