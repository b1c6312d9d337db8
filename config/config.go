// Package config loads the project-level `.xjsfmt.toml` formatting
// configuration shared by cmd/xjsfmt and the lsp server's format-on-save
// provider, via github.com/BurntSushi/toml - the same config-loading
// library the retrieved CPI-SI repo's config layer uses.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	writejson "github.com/simon-lentz/xjs/write/json"
	writexjs "github.com/simon-lentz/xjs/write/xjs"
)

// Config is the decoded shape of a .xjsfmt.toml file. Every field's zero
// value falls back to the writer package's own default, so a project with
// no config file formats exactly the way it always would.
type Config struct {
	// Indent is the per-level indentation string for both JSON and XJS
	// output. Empty falls back to each writer's own default ("  ").
	Indent string `toml:"indent"`
	// EOL selects the line ending written to disk: "crlf" or "lf"
	// (default). Applied by ApplyEOL as a post-process over the writer's \n
	// output; write/json has no line-ending option, and XJSOptions leaves
	// write/xjs's own EOL option unset.
	EOL string `toml:"eol"`
	// QuoteOmission controls whether XJS object keys that are safe to
	// write unquoted are emitted without quotes. A nil value falls back
	// to write/xjs.Default's true; set explicitly to override either way.
	QuoteOmission *bool `toml:"quote_omission"`
	// TrailingComma sets write/xjs's DefaultTrailingComma, which applies
	// only to a container whose Flags were never initialized (a zero
	// Metadata). Containers parsed from source or created with the value
	// package's constructors carry initialized Flags, so their own
	// trailing-comma flag decides and this setting does not change them.
	TrailingComma bool `toml:"trailing_comma"`
}

// Load reads a .xjsfmt.toml file at path. A missing file is not an error:
// it returns the zero Config, which resolves to each writer's built-in
// defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("config: stat %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// JSONOptions converts c into write/json.Options.
func (c Config) JSONOptions() writejson.Options {
	indent := c.Indent
	if indent == "" {
		indent = writejson.Pretty.Indent
	}
	return writejson.Options{Indent: indent}
}

// XJSOptions converts c into write/xjs.Options, starting from
// write/xjs.Default and overriding only the fields c sets explicitly.
func (c Config) XJSOptions() writexjs.Options {
	opts := writexjs.Default
	if c.Indent != "" {
		opts.Indent = c.Indent
	}
	if c.QuoteOmission != nil {
		opts.OmitQuotes = *c.QuoteOmission
	}
	opts.DefaultTrailingComma = c.TrailingComma
	return opts
}

// ApplyEOL rewrites text's line endings per c.EOL. "crlf" (case
// insensitive) rewrites every "\n" to "\r\n"; anything else, including an
// empty EOL, leaves text's "\n" endings untouched.
func (c Config) ApplyEOL(text string) string {
	if strings.EqualFold(c.EOL, "crlf") {
		return strings.ReplaceAll(text, "\n", "\r\n")
	}
	return text
}
