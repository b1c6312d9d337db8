package adapter

import (
	"fmt"
	"os"

	"github.com/simon-lentz/xjs/value"
	writejson "github.com/simon-lentz/xjs/write/json"
	writexjs "github.com/simon-lentz/xjs/write/xjs"
)

// Save renders v and writes it to path, choosing the writer by path's
// format (extension-detected, or overridden via [WithFormat]/[WithStrictJSON]
// on an [Adapter]). For [FormatXJS], a value produced by [Load] keeps its
// recorded layout (blank lines, comments, quoting, commas) since write/xjs
// consults its formatting metadata; write/json
// never does, so FormatJSON output always uses [writejson.Pretty]'s
// two-space layout regardless of the source file's original spacing.
// A value produced by [LoadLenient] or constructed in memory carries no
// recorded metadata, so it is rendered with that writer's default options
// either way.
func Save(path string, v *value.Value) error {
	return NewAdapter().Save(path, v)
}

// Save is the Adapter-configured equivalent of the package-level [Save].
func (a *Adapter) Save(path string, v *value.Value) error {
	format := resolveFormat(path, a.format)

	var out string
	if format == FormatJSON {
		out = writejson.Write(v, writejson.Pretty)
	} else {
		opts := writexjs.Default
		opts.Logger = a.logger
		out = writexjs.Write(v, opts)
	}

	if err := os.WriteFile(path, []byte(out), 0o644); err != nil { //nolint:gosec // documents are not secrets
		return fmt.Errorf("adapter: write %s: %w", path, err)
	}
	return nil
}
