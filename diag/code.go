package diag

// CodeCategory represents the semantic domain of an error code.
//
// Categories represent the semantic domain of an error, not necessarily the
// API layer that emits it. Most codes are emitted exclusively by their
// category's layer, but some codes represent cross-cutting concerns.
type CodeCategory uint8

const (
	// CategorySentinel is for sentinel codes like E_LIMIT_REACHED and E_INTERNAL.
	CategorySentinel CodeCategory = iota

	// CategorySyntax is for reader/scanner/tokenizer/parser errors.
	CategorySyntax

	// CategoryValue is for value-model contract violations (frozen
	// references, strict-accessor type mismatches, out-of-bounds access).
	CategoryValue

	// CategoryAdapter is for file/stream adapter errors (I/O, decode,
	// type-tag validation at the convenience layer).
	CategoryAdapter
)

// String returns a human-readable label for the category.
func (c CodeCategory) String() string {
	switch c {
	case CategorySentinel:
		return "sentinel"
	case CategorySyntax:
		return "syntax"
	case CategoryValue:
		return "value"
	case CategoryAdapter:
		return "adapter"
	default:
		return "unknown"
	}
}

// Code is a stable programmatic identifier for an Issue.
//
// Error codes are stable identifiers that tools can match on, even when
// message text changes. The Code type uses unexported fields to enforce
// a closed set of valid codes—only codes defined in this package are valid.
//
// Code.String() values are globally unique across all categories. The
// CodeCategory is informational metadata for filtering and grouping.
type Code struct {
	value string
	cat   CodeCategory
}

// String returns the code's string representation (e.g., "E_SYNTAX").
func (c Code) String() string {
	return c.value
}

// Category returns the programmatic category for this code.
func (c Code) Category() CodeCategory {
	return c.cat
}

// IsZero reports whether the code is unset.
func (c Code) IsZero() bool {
	return c.value == ""
}

// code is the unexported constructor—callers cannot create arbitrary codes.
func code(value string, cat CodeCategory) Code {
	return Code{value: value, cat: cat}
}

// Sentinel codes.
var (
	// E_LIMIT_REACHED is a sentinel code for explicit limit notification.
	// It does not automatically trigger Result.LimitReached(); use
	// Collector.LimitReached() to check limit status. Callers may inject
	// this code manually when desired.
	E_LIMIT_REACHED = code("E_LIMIT_REACHED", CategorySentinel)

	// E_INTERNAL indicates an unexpected invariant failure (internal bug indicator).
	// Use for conditions that should never occur in correct code.
	E_INTERNAL = code("E_INTERNAL", CategorySentinel)
)

// Syntax codes — spec §7's "Syntax" error kind, one code per recognizable
// failure mode so tooling can distinguish them without parsing messages.
var (
	// E_SYNTAX is the general malformed-input code: unexpected end of
	// input, bad escape, bad hex digit, unterminated string or comment,
	// stray closer, bad numeric exponent.
	E_SYNTAX = code("E_SYNTAX", CategorySyntax)

	// E_UNBALANCED_CONTAINER indicates a container token ({, [, or () was
	// opened but never closed, or a closer appeared with no matching opener.
	E_UNBALANCED_CONTAINER = code("E_UNBALANCED_CONTAINER", CategorySyntax)

	// E_EMPTY_IMPLICIT_STRING indicates an implicit string in value
	// position contains only whitespace, or an implicit string was used
	// as an object key with zero length.
	E_EMPTY_IMPLICIT_STRING = code("E_EMPTY_IMPLICIT_STRING", CategorySyntax)
)

// Value-model codes — spec §7's "Type / Coercion" and "Contract" error kinds.
var (
	// E_UNSUPPORTED_OPERATION indicates a strict accessor was invoked on a
	// Value variant it does not support (e.g. AsString on an Integer).
	E_UNSUPPORTED_OPERATION = code("E_UNSUPPORTED_OPERATION", CategoryValue)

	// E_IMMUTABLE_REFERENCE indicates a mutating operation (Set/Update/
	// Mutate/Apply) was attempted through a frozen Reference.
	E_IMMUTABLE_REFERENCE = code("E_IMMUTABLE_REFERENCE", CategoryValue)

	// E_INVALID_STATE indicates reader/scanner capture misuse (e.g. ending
	// a capture that was never started) — non-fatal within the library
	// boundary, but surfaced so callers can fix the calling sequence.
	E_INVALID_STATE = code("E_INVALID_STATE", CategoryValue)

	// E_CYCLIC_REFERENCE indicates an insertion would create a reference
	// cycle (spec §9's redesign: cycles are rejected, not permitted).
	E_CYCLIC_REFERENCE = code("E_CYCLIC_REFERENCE", CategoryValue)

	// E_OUT_OF_BOUNDS indicates an indexed container access beyond the
	// current length.
	E_OUT_OF_BOUNDS = code("E_OUT_OF_BOUNDS", CategoryValue)
)

// Adapter codes.
var (
	// E_ADAPTER_PARSE indicates a format-specific parsing error surfaced
	// by the file/stream adapter.
	E_ADAPTER_PARSE = code("E_ADAPTER_PARSE", CategoryAdapter)

	// E_ADAPTER_IO indicates a file or stream I/O failure in the adapter
	// (file not found, permission denied, write failure).
	E_ADAPTER_IO = code("E_ADAPTER_IO", CategoryAdapter)

	// E_MISSING_TYPE_TAG indicates a $type field is missing from an array
	// element.
	E_MISSING_TYPE_TAG = code("E_MISSING_TYPE_TAG", CategoryAdapter)

	// E_INVALID_TYPE_TAG indicates a $type field has the wrong shape.
	E_INVALID_TYPE_TAG = code("E_INVALID_TYPE_TAG", CategoryAdapter)
)

// allCodes contains all defined codes for AllCodes() and uniqueness verification.
var allCodes = []Code{
	// Sentinel
	E_LIMIT_REACHED,
	E_INTERNAL,
	// Syntax
	E_SYNTAX,
	E_UNBALANCED_CONTAINER,
	E_EMPTY_IMPLICIT_STRING,
	// Value
	E_UNSUPPORTED_OPERATION,
	E_IMMUTABLE_REFERENCE,
	E_INVALID_STATE,
	E_CYCLIC_REFERENCE,
	E_OUT_OF_BOUNDS,
	// Adapter
	E_ADAPTER_PARSE,
	E_ADAPTER_IO,
	E_MISSING_TYPE_TAG,
	E_INVALID_TYPE_TAG,
}

// AllCodes returns all defined codes.
//
// This function is useful for tooling and testing. The returned slice is a
// copy; modifications do not affect the original.
func AllCodes() []Code {
	result := make([]Code, len(allCodes))
	copy(result, allCodes)
	return result
}

// CodesByCategory returns codes in the given category.
//
// The returned slice is a new allocation; modifications do not affect
// internal state.
func CodesByCategory(cat CodeCategory) []Code {
	var result []Code
	for _, c := range allCodes {
		if c.cat == cat {
			result = append(result, c)
		}
	}
	return result
}
