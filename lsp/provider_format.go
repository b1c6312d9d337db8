package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/simon-lentz/xjs/config"
	"github.com/simon-lentz/xjs/location"
	parsejson "github.com/simon-lentz/xjs/parse/json"
	parsexjs "github.com/simon-lentz/xjs/parse/xjs"
	writejson "github.com/simon-lentz/xjs/write/json"
	writexjs "github.com/simon-lentz/xjs/write/xjs"
)

// textDocumentFormatting handles textDocument/formatting requests.
// params.Options (tab size, spaces-vs-tabs) is intentionally ignored: XJS
// formatting follows the project's .xjsfmt.toml settings (or write/xjs's
// Default and write/json's Pretty options, absent a config file), the
// same way gofmt ignores per-editor style preferences.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := params.TextDocument.URI

	doc := s.workspace.GetDocumentSnapshot(uri)
	if doc == nil {
		return nil, nil
	}

	formatted, ok := formatDocumentText(doc.SourceID, doc.Text, FormatForURI(uri), s.workspace.FormatConfig())
	if !ok || formatted == doc.Text {
		return []protocol.TextEdit{}, nil
	}

	lines := strings.Split(doc.Text, "\n")
	lastLine := len(lines) - 1
	lastLineContent := []byte(lines[lastLine])

	var lastChar int
	switch s.workspace.PositionEncoding() {
	case PositionEncodingUTF8:
		lastChar = len(lastLineContent)
	default:
		lastChar = ByteToUTF16Offset(lastLineContent, 0, len(lastLineContent))
	}

	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End: protocol.Position{
					Line:      protocol.UInteger(lastLine), //nolint:gosec // document line counts are small
					Character: protocol.UInteger(lastChar),  //nolint:gosec // document line lengths are small
				},
			},
			NewText: formatted,
		},
	}, nil
}

// formatDocumentText parses text per format and re-serializes it with the
// matching writer configured per cfg. It returns ok=false if the document
// does not parse, in which case formatting is skipped rather than risking
// corrupting an unparseable file.
func formatDocumentText(id location.SourceID, text string, format DocumentFormat, cfg config.Config) (string, bool) {
	if format == FormatJSON {
		v, result := parsejson.Parse(id, []byte(text))
		if result.HasErrors() {
			return "", false
		}
		return cfg.ApplyEOL(writejson.Write(v, cfg.JSONOptions())), true
	}

	v, result := parsexjs.Parse(id, []byte(text))
	if result.HasErrors() {
		return "", false
	}
	return cfg.ApplyEOL(writexjs.Write(v, cfg.XJSOptions())), true
}
