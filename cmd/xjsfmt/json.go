package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simon-lentz/xjs/adapter"
	"github.com/simon-lentz/xjs/config"
	writejson "github.com/simon-lentz/xjs/write/json"
)

func newJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "json <file>",
		Short: "Convert an XJS or JSONC file to strict JSON on stdout",
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

			fmt.Fprint(cmd.OutOrStdout(), writejson.Write(v, cfg.JSONOptions()))
			return nil
		},
	}
}
