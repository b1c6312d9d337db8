package adapter

import (
	"log/slog"
	"os"

	"github.com/simon-lentz/xjs/diag"
	"github.com/simon-lentz/xjs/location"
	parsejson "github.com/simon-lentz/xjs/parse/json"
	parsexjs "github.com/simon-lentz/xjs/parse/xjs"
	"github.com/simon-lentz/xjs/value"
)

// Adapter loads and saves documents from the filesystem, on top of the
// in-memory parse/write/value machinery.
//
// Thread Safety: Adapter is safe for concurrent Load/Save calls after
// construction. No shared mutable state exists; all context flows through
// parameters.
type Adapter struct {
	format Format
	logger *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// NewAdapter creates a new file adapter with the given options.
func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{format: FormatAuto}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithFormat overrides format detection for every subsequent Load/Save
// call made through this Adapter, instead of inferring it from each path's
// extension.
func WithFormat(f Format) Option {
	return func(a *Adapter) { a.format = f }
}

// WithLogger attaches logger to every subsequent Load call made through
// this Adapter, enabling the XJS parser's debug-level containerization
// tracing (see internal/trace). Has no effect on strict-JSON loads.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) { a.logger = logger }
}

// WithStrictJSON forces every document loaded through this Adapter to be
// parsed as strict JSON (no comments, no trailing commas, no unquoted
// keys), regardless of its extension. Useful when a caller already knows
// a file is plain JSON despite a non-".json" extension.
func WithStrictJSON(strict bool) Option {
	return func(a *Adapter) {
		if strict {
			a.format = FormatJSON
		}
	}
}

// Load reads path and parses it, preserving every formatting trivia so the
// result round-trips through write/xjs unchanged (write/json always
// re-renders in its own pretty layout; see [Save]). A failure
// to open or read the file is reported as a single E_ADAPTER_IO issue; a
// failure to parse the content surfaces the parser's own diagnostics.
func Load(path string) (*value.Value, diag.Result) {
	return NewAdapter().Load(path)
}

// Load is the Adapter-configured equivalent of the package-level [Load].
func (a *Adapter) Load(path string) (*value.Value, diag.Result) {
	data, id, res, ok := a.readFile(path)
	if !ok {
		return nil, res
	}

	format := resolveFormat(path, a.format)

	var v *value.Value
	var result *diag.Result
	if format == FormatJSON {
		v, result = parsejson.Parse(id, data)
	} else {
		v, result = parsexjs.Parse(id, data, parsexjs.WithLogger(a.logger))
	}
	return v, *result
}

// readFile opens path, reads its full content, and derives a file-backed
// SourceID for it. ok is false if the file could not be opened or read, in
// which case res carries a single E_ADAPTER_IO issue and the other return
// values are zero.
func (a *Adapter) readFile(path string) (data []byte, id location.SourceID, res diag.Result, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		issue := diag.NewIssue(diag.Fatal, diag.E_ADAPTER_IO, err.Error()).
			WithPath(path, "").
			Build()
		c := diag.NewCollector(1)
		c.Collect(issue)
		return nil, location.SourceID{}, c.Result(), false
	}

	id, err = location.SourceIDFromPath(path)
	if err != nil {
		issue := diag.NewIssue(diag.Fatal, diag.E_ADAPTER_IO, err.Error()).
			WithPath(path, "").
			Build()
		c := diag.NewCollector(1)
		c.Collect(issue)
		return nil, location.SourceID{}, c.Result(), false
	}

	return data, id, diag.OK(), true
}
