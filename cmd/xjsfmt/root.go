// Package main implements xjsfmt: a CLI to reformat, validate, and convert
// JSON, JSON-with-comments, and XJS documents.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// formatConfigFileName is the project config file xjsfmt looks for in the
// current working directory, shared with the lsp server's format-on-save
// provider.
const formatConfigFileName = ".xjsfmt.toml"

// logLevelFlag backs the root command's --log-level flag. Empty (the
// default) leaves tracing disabled: commands pass a nil logger through to
// the library, which internal/trace treats as a no-op at nil-check cost.
var logLevelFlag string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "xjsfmt",
		Short:         "xjsfmt formats, checks, and converts JSON/JSONC/XJS documents",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "debug-level parse/serialize tracing: error|warn|info|debug (empty disables tracing)")
	root.AddCommand(newFmtCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newJSONCmd())
	return root
}

// loggerFromFlag builds the *slog.Logger for --log-level, writing to
// stderr so it never interleaves with a command's stdout output. A nil
// return (the default, empty flag) disables internal/trace tracing.
func loggerFromFlag() (*slog.Logger, error) {
	if logLevelFlag == "" {
		return nil, nil
	}
	var level slog.Level
	switch logLevelFlag {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		return nil, fmt.Errorf("invalid --log-level: %q", logLevelFlag)
	}
	handler := slog.NewJSONHandler(io.Writer(os.Stderr), &slog.HandlerOptions{Level: level})
	return slog.New(handler), nil
}
