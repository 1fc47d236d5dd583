// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/luxfi/jsonrpc/idl"
)

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	c := &cobra.Command{
		Use:   "generate <definition>",
		Short: "Generate the Go client of a definition",
		Long: `Generate the request, response and builder declarations of every method
of a YAML or JSON interface definition. The output defaults to <definition>_gen.go
next to the definition; "-" writes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(v)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			api, err := compileFile(args[0])
			if err != nil {
				return err
			}
			src, err := idl.Source(api)
			if err != nil {
				return err
			}

			out := v.GetString(keyOutput)
			if out == "" {
				out = defaultOutput(args[0])
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			if err := os.WriteFile(out, src, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			log.Info("generated",
				zap.String("api", api.Name),
				zap.String("output", out),
				zap.Int("methods", len(api.Methods)),
			)
			return nil
		},
	}
	c.Flags().StringP(keyOutput, "o", "", "output file, - for stdout")
	_ = v.BindPFlag(keyOutput, c.Flags().Lookup(keyOutput))
	return c
}

func defaultOutput(definition string) string {
	return strings.TrimSuffix(definition, filepath.Ext(definition)) + "_gen.go"
}
