package lsp

import (
	"log/slog"
	"strings"
	"time"

	"github.com/simon-lentz/xjs/diag"
	"github.com/simon-lentz/xjs/internal/source"
	"github.com/simon-lentz/xjs/location"
	parsejson "github.com/simon-lentz/xjs/parse/json"
	parsexjs "github.com/simon-lentz/xjs/parse/xjs"
	"github.com/simon-lentz/xjs/value"
)

// DocumentFormat is the syntax dialect a document is parsed as, chosen by
// file extension.
type DocumentFormat int

const (
	// FormatXJS covers .xjs and .jsonc files: comments, unquoted keys and
	// values, trailing commas, root-brace omission.
	FormatXJS DocumentFormat = iota
	// FormatJSON is strict RFC 8259 JSON, used for .json files.
	FormatJSON
)

// FormatForURI picks the document format from a file URI's extension.
// Anything other than a recognized .json extension is treated as XJS,
// since XJS is a superset of JSON and JSON-with-comments.
func FormatForURI(uri string) DocumentFormat {
	path, err := URIToPath(uri)
	if err != nil {
		path = uri
	}
	if strings.EqualFold(fileExt(path), ".json") {
		return FormatJSON
	}
	return FormatXJS
}

func fileExt(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return ""
	}
	return path[idx:]
}

// Snapshot is an immutable analysis result for one open document.
type Snapshot struct {
	CreatedAt time.Time
	SourceID  location.SourceID
	Version   int
	Format    DocumentFormat
	Value     *value.Value
	Result    diag.Result
}

// Analyzer parses document text into a value tree and diagnostics,
// dispatching to the strict or relaxed parser by format.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer returns an Analyzer that logs via logger. A nil logger falls
// back to slog.Default().
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger.With(slog.String("component", "analyzer"))}
}

// Analyze parses text as id in format and returns a snapshot. It never
// returns nil: a document that fails to parse still produces a snapshot
// whose Result carries the errors and whose Value may be nil.
func (a *Analyzer) Analyze(id location.SourceID, version int, text string, format DocumentFormat) *Snapshot {
	var v *value.Value
	var result *diag.Result

	switch format {
	case FormatJSON:
		v, result = parsejson.Parse(id, []byte(text))
	default:
		v, result = parsexjs.Parse(id, []byte(text))
	}

	a.logger.Debug("analyzed document",
		slog.String("source", id.String()),
		slog.Int("version", version),
		slog.Bool("has_errors", result.HasErrors()),
	)

	return &Snapshot{
		CreatedAt: time.Now(),
		SourceID:  id,
		Version:   version,
		Format:    format,
		Value:     v,
		Result:    *result,
	}
}

// sourcesForRendering builds a throwaway registry holding just this
// snapshot's content, for diagnostics that need line-start byte offsets.
func sourcesForRendering(id location.SourceID, text string) *source.Registry {
	reg := source.NewRegistry()
	_ = reg.Register(id, []byte(text))
	return reg
}
