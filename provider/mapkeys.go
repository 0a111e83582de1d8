package provider

// FieldMapping pairs a source key with the destination key it maps to
// in the processor's wire schema.
type FieldMapping struct {
	Source string
	Dest   string
}

// FieldSchema is an ordered set of field mappings. Keeping the schema
// tables declarative lets each one be tested in isolation.
type FieldSchema []FieldMapping

// MapKeys remaps the keys of src according to schema. Source keys that
// are absent or empty are left out of the result rather than set to a
// placeholder.
func MapKeys(schema FieldSchema, src map[string]string) map[string]any {
	out := make(map[string]any, len(schema))
	for _, m := range schema {
		if v, ok := src[m.Source]; ok && v != "" {
			out[m.Dest] = v
		}
	}
	return out
}
