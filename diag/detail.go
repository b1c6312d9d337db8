package diag

// Detail provides key-value context for diagnostic issues.
//
// Details are used to add structured information to issues that can be
// programmatically inspected by tools. Use the standard detail key constants
// to ensure consistent key naming across the codebase.
type Detail struct {
	Key   string
	Value string
}

// Standard detail keys for consistent diagnostic metadata.
//
// Use these constants to avoid stringly-typed drift and enable programmatic
// inspection of diagnostic details. Custom detail keys are permitted for
// domain-specific diagnostics; use lower_snake_case for custom keys.
const (
	// DetailKeyExpected is the expected value or type.
	DetailKeyExpected = "expected"

	// DetailKeyGot is the actual value or type received.
	DetailKeyGot = "got"

	// DetailKeyTypeName is the $type tag value involved in an adapter
	// type-tag diagnostic.
	DetailKeyTypeName = "type"

	// DetailKeyPropertyName is the object key involved in the diagnostic.
	DetailKeyPropertyName = "property"

	// DetailKeyField is the data-level field name (for unknown/unexpected
	// array elements during $type-tagged array ingestion).
	DetailKeyField = "field"

	// DetailKeyIndex is the array index involved in an out-of-bounds or
	// element-level diagnostic.
	DetailKeyIndex = "index"

	// DetailKeyContext is contextual information (e.g., "reader", "scanner").
	DetailKeyContext = "context"

	// DetailKeyId is the identifier value (e.g., synthetic SourceID).
	DetailKeyId = "id"

	// DetailKeyFormat is the adapter format identifier (e.g., "json", "xjs", "jsonc").
	DetailKeyFormat = "format"

	// DetailKeyReason is the failure reason discriminant for value-model
	// contract violations (e.g. "frozen", "wrong_variant", "out_of_range").
	DetailKeyReason = "reason"
)

// ExpectedGot creates a pair of details for type-coercion diagnostics.
//
// This is the standard pattern for reporting "expected X, got Y" errors,
// e.g. when a strict accessor like AsString is invoked on an Integer value.
func ExpectedGot(expected, got string) []Detail {
	return []Detail{
		{Key: DetailKeyExpected, Value: expected},
		{Key: DetailKeyGot, Value: got},
	}
}

// TypeProp creates detail entries for $type-tagged object diagnostics.
//
// Use for diagnostics involving a specific property on a type-tagged object
// ingested through the adapter (e.g. a missing or malformed property under
// a known $type).
func TypeProp(typeName, propName string) []Detail {
	return []Detail{
		{Key: DetailKeyTypeName, Value: typeName},
		{Key: DetailKeyPropertyName, Value: propName},
	}
}

// TypeField creates detail entries for unknown-field diagnostics.
//
// Use for diagnostics like an unexpected property on a type-tagged object.
func TypeField(typeName, fieldName string) []Detail {
	return []Detail{
		{Key: DetailKeyTypeName, Value: typeName},
		{Key: DetailKeyField, Value: fieldName},
	}
}
