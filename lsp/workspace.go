package lsp

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/simon-lentz/xjs/config"
	"github.com/simon-lentz/xjs/diag"
	"github.com/simon-lentz/xjs/location"
)

// PositionEncoding represents the position encoding used for LSP communication.
// LSP 3.17 introduced position encoding negotiation; prior versions assumed UTF-16.
type PositionEncoding string

const (
	// PositionEncodingUTF16 counts positions in UTF-16 code units, the
	// default for LSP compatibility (VS Code and most editors use UTF-16
	// internally).
	PositionEncodingUTF16 PositionEncoding = "utf-16"
	// PositionEncodingUTF8 counts positions in UTF-8 bytes.
	PositionEncodingUTF8 PositionEncoding = "utf-8"
)

// debounceDelay is the delay before triggering analysis after a change.
const debounceDelay = 150 * time.Millisecond

// Notifier is a function that sends LSP notifications. This narrows a
// glsp.Context down to just the notification capability it takes, so
// debounce timers can capture it without holding the whole context.
type Notifier func(method string, params any)

// Document is an open document tracked by the workspace.
type Document struct {
	URI      string
	SourceID location.SourceID
	Version  int
	Text     string
}

// DocumentSnapshot is an immutable view of a document at a point in time.
type DocumentSnapshot struct {
	URI      string
	SourceID location.SourceID
	Version  int
	Text     string
}

// Workspace tracks open documents and their debounced analysis.
type Workspace struct {
	logger   *slog.Logger
	analyzer *Analyzer

	mu        sync.RWMutex
	documents map[string]*Document
	snapshots map[string]*Snapshot

	debounceMu sync.Mutex
	debounce   map[string]*time.Timer

	posEncoding  PositionEncoding
	formatConfig config.Config
}

// NewWorkspace creates an empty workspace.
func NewWorkspace(logger *slog.Logger, cfg Config) *Workspace {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workspace{
		logger:       logger.With(slog.String("component", "workspace")),
		analyzer:     NewAnalyzer(logger),
		documents:    make(map[string]*Document),
		snapshots:    make(map[string]*Snapshot),
		debounce:     make(map[string]*time.Timer),
		posEncoding:  PositionEncodingUTF16,
		formatConfig: cfg.FormatConfig,
	}
}

// FormatConfig returns the project's .xjsfmt.toml settings used by the
// textDocument/formatting provider.
func (w *Workspace) FormatConfig() config.Config {
	return w.formatConfig
}

// SetPositionEncoding sets the position encoding to use for diagnostics.
func (w *Workspace) SetPositionEncoding(enc PositionEncoding) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.posEncoding = enc
}

// PositionEncoding returns the negotiated position encoding.
func (w *Workspace) PositionEncoding() PositionEncoding {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.posEncoding
}

// sourceIDFor derives a SourceID for an open document's URI: a file-backed
// SourceID when the URI converts to an absolute path, otherwise a fresh
// synthetic "inline:<uuid>" identifier.
func sourceIDFor(uri string) location.SourceID {
	if path, err := URIToPath(uri); err == nil {
		if id, err := location.SourceIDFromAbsolutePath(path); err == nil {
			return id
		}
	}
	return location.MustNewSourceID("inline:" + uuid.NewString())
}

// DocumentOpened records a newly opened document.
func (w *Workspace) DocumentOpened(uri string, version int, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.documents[uri] = &Document{
		URI:      uri,
		SourceID: sourceIDFor(uri),
		Version:  version,
		Text:     text,
	}
}

// DocumentChanged updates a tracked document's content.
func (w *Workspace) DocumentChanged(uri string, version int, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	doc, ok := w.documents[uri]
	if !ok {
		doc = &Document{URI: uri, SourceID: sourceIDFor(uri)}
		w.documents[uri] = doc
	}
	doc.Version = version
	doc.Text = text
}

// DocumentClosed forgets a document and clears its published diagnostics.
func (w *Workspace) DocumentClosed(notify Notifier, uri string) {
	w.cancelPendingAnalysis(uri)

	w.mu.Lock()
	delete(w.documents, uri)
	delete(w.snapshots, uri)
	w.mu.Unlock()

	w.publishDiagnostics(notify, uri, nil)
}

// GetDocumentSnapshot returns an immutable view of an open document, or nil
// if it is not open.
func (w *Workspace) GetDocumentSnapshot(uri string) *DocumentSnapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	doc, ok := w.documents[uri]
	if !ok {
		return nil
	}
	return &DocumentSnapshot{URI: doc.URI, SourceID: doc.SourceID, Version: doc.Version, Text: doc.Text}
}

// LatestAnalysis returns the most recent analysis snapshot for uri, or nil
// if the document has never been analyzed.
func (w *Workspace) LatestAnalysis(uri string) *Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshots[uri]
}

// ScheduleAnalysis debounces an analyze-and-publish cycle for uri.
func (w *Workspace) ScheduleAnalysis(glspCtx *glsp.Context, uri string) {
	w.cancelPendingAnalysis(uri)

	var notify Notifier
	if glspCtx != nil {
		notify = func(method string, params any) { glspCtx.Notify(method, params) }
	}

	timer := time.AfterFunc(debounceDelay, func() {
		w.debounceMu.Lock()
		delete(w.debounce, uri)
		w.debounceMu.Unlock()
		w.AnalyzeAndPublish(notify, context.Background(), uri)
	})

	w.debounceMu.Lock()
	w.debounce[uri] = timer
	w.debounceMu.Unlock()
}

func (w *Workspace) cancelPendingAnalysis(uri string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	if t, ok := w.debounce[uri]; ok {
		t.Stop()
		delete(w.debounce, uri)
	}
}

// AnalyzeAndPublish parses uri's current text and publishes diagnostics.
func (w *Workspace) AnalyzeAndPublish(notify Notifier, _ context.Context, uri string) {
	doc := w.GetDocumentSnapshot(uri)
	if doc == nil {
		return
	}

	snapshot := w.analyzer.Analyze(doc.SourceID, doc.Version, doc.Text, FormatForURI(uri))

	w.mu.Lock()
	w.snapshots[uri] = snapshot
	w.mu.Unlock()

	w.publishDiagnostics(notify, uri, w.toLSPDiagnostics(snapshot, doc.Text))
}

func (w *Workspace) toLSPDiagnostics(snapshot *Snapshot, text string) []protocol.Diagnostic {
	reg := sourcesForRendering(snapshot.SourceID, text)
	renderer := diag.NewRenderer(diag.WithSourceProvider(reg), diag.WithLSPByteFallback(diag.LSPByteFallbackApproximate))
	lspDiags := renderer.LSPDiagnostics(snapshot.Result)

	out := make([]protocol.Diagnostic, 0, len(lspDiags))
	for _, d := range lspDiags {
		severity := protocol.DiagnosticSeverity(d.Severity) //nolint:gosec // LSP severities are small positive ints
		source := d.Source
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(d.Range.Start.Line), Character: protocol.UInteger(d.Range.Start.Character)},   //nolint:gosec
				End:   protocol.Position{Line: protocol.UInteger(d.Range.End.Line), Character: protocol.UInteger(d.Range.End.Character)}, //nolint:gosec
			},
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		})
	}
	return out
}

// publishDiagnostics sends textDocument/publishDiagnostics for uri.
func (w *Workspace) publishDiagnostics(notify Notifier, uri string, diagnostics []protocol.Diagnostic) {
	if notify == nil {
		return
	}
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	notify("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// Shutdown cancels all pending debounced analyses.
func (w *Workspace) Shutdown() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	for uri, t := range w.debounce {
		t.Stop()
		delete(w.debounce, uri)
	}
}

// URIToPath converts a file:// URI to a filesystem path.
//
// On POSIX systems: file:///path/to/file -> /path/to/file
// On Windows: file:///C:/path/to/file -> C:\path\to\file
func URIToPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse URI %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("not a file URI: %s", uri)
	}

	path := u.Path
	if runtime.GOOS == "windows" {
		if len(path) >= 3 && path[0] == '/' && isWindowsDriveLetter(path[1]) && path[2] == ':' {
			path = path[1:]
		}
		path = filepath.FromSlash(path)
	}
	return path, nil
}

// PathToURI converts a filesystem path to a file:// URI.
func PathToURI(path string) string {
	if !filepath.IsAbs(path) {
		if absPath, err := filepath.Abs(path); err == nil {
			path = absPath
		}
	}
	path = filepath.ToSlash(path)
	if runtime.GOOS == "windows" && len(path) >= 2 && isWindowsDriveLetter(path[0]) && path[1] == ':' {
		path = "/" + path
	}
	u := url.URL{Scheme: "file", Path: path}
	return u.String()
}

func isWindowsDriveLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
