package location

// PositionRegistry provides byte-offset-to-position conversion.
//
// This interface is the bridge between callers that hold byte offsets and
// source content registries that perform the actual conversion.
//
// The implementation in this module is the source registry in
// internal/source (*source.Registry), which the lsp package uses to map
// byte offsets in already-read content back to positions.
//
// Design rationale:
//
//  1. Foundation tier placement: PositionRegistry is defined in location
//     (foundation tier) because the interface operates on location.Position and
//     location.SourceID — natural cohesion with the location package.
//
//  2. Decoupling: callers depend on the interface rather than on a concrete
//     registry. This enables testing with mock registries and supports
//     alternative implementations.
type PositionRegistry interface {
	// PositionAt converts a byte offset to a Position for the given source.
	//
	// Returns a zero Position (check via IsZero()) if:
	//   - The source is not registered
	//   - The byte offset is out of range
	//   - The byte offset is negative
	//
	// The returned Position has:
	//   - Line: 1-based line number
	//   - Column: 1-based rune offset from line start
	//   - Byte: The input byteOffset (echoed back for convenience)
	PositionAt(source SourceID, byteOffset int) Position
}

// RuneOffsetConverter converts a 0-based rune offset within a source to a
// byte offset.
type RuneOffsetConverter interface {
	// RuneToByteOffset returns the byte offset of the rune at runeOffset.
	// It returns ok=false if the source is not registered or the offset is
	// negative or out of range.
	RuneToByteOffset(source SourceID, runeOffset int) (byteOffset int, ok bool)
}
