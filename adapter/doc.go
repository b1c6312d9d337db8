// Package adapter provides the file/stream convenience layer on top of
// parse, write, and value: [Load] and [LoadLenient] read a document from
// disk into a [value.Value] tree, and [Save] writes one back out.
//
// # Architectural Boundary
//
// adapter lives at the outermost tier of the module, the way the teacher's
// original JSON adapter did: consumers who only need the in-memory value
// model and its parsers/writers never pull in adapter's extra dependency
// (tidwall/jsonc). That dependency is pulled only when this package is
// imported.
//
// # Dependency Direction
//
//	adapter  ──imports──▶  value, parse/json, parse/xjs, write/json, write/xjs
//	adapter  ──imports──▶  diag
//	adapter  ──imports──▶  location
//
// value, parse, write, and diag never import adapter.
//
// # Two loading paths
//
// [Load] parses through reader/token/parse, preserving every formatting
// trivia (comments, blank lines, quote style) in each value's Metadata.
// Writing the result back out through write/xjs reproduces the source
// bytes exactly, since that writer consults Metadata; write/json does not,
// so a JSON document saved through this package is always reformatted to
// write/json's Pretty layout. This is the default, and the only loading
// path that supports format-preserving XJS edits.
//
// [LoadLenient] is the "just get me the data" path: it strips comments and
// trailing commas with tidwall/jsonc and decodes with encoding/json,
// discarding all formatting trivia. It is faster and has no failure modes
// tied to XJS's relaxed grammar, but the result can only be re-serialized
// from scratch (via write/json or write/xjs's defaults), never round-tripped
// back to the original bytes.
package adapter
