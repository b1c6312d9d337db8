// Package xjs provides format-preserving parsing and serialization for the
// JSON document family: strict JSON, JSON with comments, and the relaxed XJS
// syntax (unquoted keys and values, trailing commas, flexible quoting,
// comments, optional root braces).
//
// The defining property of this module is round-trip fidelity: reading a
// document and writing it back out without modification reproduces the
// original bytes exactly, including whitespace, comment placement, quote
// style, and key ordering. Editing a value in place changes only the bytes
// that value's representation occupies; everything else in the document is
// left untouched.
//
// # Architecture Overview
//
// The module is organized into layers with strict dependency ordering:
//
//	Foundation tier (no internal dependencies):
//	  - location: Source positions, spans, and canonical paths
//	  - diag: Structured diagnostics with stable error codes
//
//	Core library tier:
//	  - value: The tagged-union Value model, comments, and formatting metadata
//	  - reader: Position-tracking cursor over raw document bytes
//	  - scanner: Implicit-string (unquoted token) scanning
//	  - token: Lazy tokenization and containerization
//	  - parse/json, parse/xjs: Strict and relaxed parsers producing a Value tree
//	  - write/json, write/xjs: Strict and format-preserving serializers
//
//	Adapter tier:
//	  - adapter: File and stream I/O, including a non-preserving jsonc-backed
//	    ingestion path for interoperating with plain encoding/json consumers
//
// # Entry Points
//
// Parsing a document while preserving its formatting:
//
//	import "github.com/simon-lentz/xjs/adapter"
//
//	doc, result := adapter.Load("config.xjs")
//	if result.HasErrors() {
//	    // I/O failure (E_ADAPTER_IO) or syntax errors
//	}
//
// Editing and writing back:
//
//	obj, err := doc.AsObject()
//	if err != nil {
//	    // the root is not an object
//	}
//	obj.Set("version", value.NewReference(value.NewInteger(2)))
//	if err := adapter.Save("config.xjs", doc); err != nil {
//	    // I/O error
//	}
//
// Non-preserving ingestion of arbitrary JSON-ish data, discarding formatting:
//
//	doc, result := adapter.LoadLenient("data.jsonc")
//
// # Subpackages
//
// See the individual package documentation for detailed usage:
//
//   - [github.com/simon-lentz/xjs/diag]: Structured diagnostics
//   - [github.com/simon-lentz/xjs/location]: Source location tracking
//   - [github.com/simon-lentz/xjs/value]: The Value model
//   - [github.com/simon-lentz/xjs/reader]: Position-tracking cursor
//   - [github.com/simon-lentz/xjs/scanner]: Implicit-string scanning
//   - [github.com/simon-lentz/xjs/token]: Tokenization
//   - [github.com/simon-lentz/xjs/parse/json], [github.com/simon-lentz/xjs/parse/xjs]: Parsers
//   - [github.com/simon-lentz/xjs/write/json], [github.com/simon-lentz/xjs/write/xjs]: Serializers
//   - [github.com/simon-lentz/xjs/adapter]: File and stream I/O
//   - [github.com/simon-lentz/xjs/lsp]: Language Server Protocol server
package xjs
