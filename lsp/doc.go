// Package lsp implements a Language Server Protocol server for JSON,
// JSON-with-comments, and XJS documents.
//
// The server provides the editor features that make sense for a
// single-document formatting/validation engine:
//   - Real-time diagnostics (parse errors) via textDocument/publishDiagnostics
//   - Format-on-save via textDocument/formatting, using write/xjs for
//     .xjs/.jsonc files and write/json for strict .json files
//
// Unlike the schema/instance engine this package is descended from, XJS
// documents do not import each other, so there is no workspace-wide import
// graph to track: analysis is scoped to one open document at a time.
//
// The server communicates via JSON-RPC 2.0 over stdio and implements LSP
// 3.16.
//
// # Architecture
//
// The server consists of:
//   - Server: protocol lifecycle and request dispatch
//   - Workspace: open-document tracking and debounced analyze-publish
//   - Analyzer: parses a document's text into a value.Value tree plus
//     diagnostics, picking the parser by file extension
//   - provider_format.go: textDocument/formatting backed by write/xjs and
//     write/json
//
// # Limitations
//
// value.Metadata records formatting trivia, not source positions, so this
// server does not offer hover or go-to-definition: there is no per-node
// span to resolve a cursor position against. Diagnostics use the spans
// diag already attaches to parse errors, which is sufficient for
// publishDiagnostics without a general position index.
//
// Only file:// URIs are supported. Documents with other URI schemes (such
// as untitled:, vscode-notebook-cell://, or custom editor schemes) are
// silently ignored in textDocument/didOpen.
package lsp
