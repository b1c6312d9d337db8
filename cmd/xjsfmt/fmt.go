package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simon-lentz/xjs/adapter"
	"github.com/simon-lentz/xjs/config"
	"github.com/simon-lentz/xjs/value"
	writejson "github.com/simon-lentz/xjs/write/json"
	writexjs "github.com/simon-lentz/xjs/write/xjs"
)

func newFmtCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Reformat a JSON, JSONC, or XJS file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			cfg, err := config.Load(formatConfigFileName)
			if err != nil {
				return fmt.Errorf("loading %s: %w", formatConfigFileName, err)
			}

			logger, err := loggerFromFlag()
			if err != nil {
				return err
			}

			v, result := adapter.NewAdapter(adapter.WithLogger(logger)).Load(path)
			if result.HasErrors() {
				return fmt.Errorf("parsing %s: %d issue(s) found, run 'xjsfmt check' for details", path, result.Len())
			}

			out := renderFormatted(v, path, cfg, logger)

			if write {
				if err := os.WriteFile(path, []byte(out), 0o644); err != nil { //nolint:gosec // documents are not secrets
					return fmt.Errorf("writing %s: %w", path, err)
				}
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to the source file instead of stdout")
	return cmd
}

// isJSONPath reports whether path's extension selects the strict JSON
// writer rather than the XJS writer, mirroring adapter's own detection.
func isJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func renderFormatted(v *value.Value, path string, cfg config.Config, logger *slog.Logger) string {
	if isJSONPath(path) {
		return cfg.ApplyEOL(writejson.Write(v, cfg.JSONOptions()))
	}
	opts := cfg.XJSOptions()
	opts.Logger = logger
	return cfg.ApplyEOL(writexjs.Write(v, opts))
}
