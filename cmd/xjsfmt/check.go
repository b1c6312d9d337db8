package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simon-lentz/xjs/adapter"
	"github.com/simon-lentz/xjs/diag"
	"github.com/simon-lentz/xjs/location"
)

// fileSourceProvider serves a single file's bytes as diag.Renderer excerpt
// content, regardless of which span is asked for - check only ever loads
// one file per invocation, so every span it sees belongs to that file.
type fileSourceProvider struct {
	data []byte
}

func (p fileSourceProvider) Content(_ location.Span) ([]byte, bool) {
	return p.data, true
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse a file and report diagnostics without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			logger, err := loggerFromFlag()
			if err != nil {
				return err
			}

			_, result := adapter.NewAdapter(adapter.WithLogger(logger)).Load(path)

			if result.Len() > 0 {
				renderer := diag.NewRenderer(diag.WithSourceProvider(fileSourceProvider{data: data}))
				fmt.Fprint(cmd.ErrOrStderr(), renderer.FormatResult(result))
			}

			if result.HasErrors() {
				return fmt.Errorf("%s has parse errors", path)
			}
			return nil
		},
	}
}
