// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luxfi/jsonrpc/idl"
)

func newCheckCmd(v *viper.Viper) *cobra.Command {
	c := &cobra.Command{
		Use:   "check <definition>",
		Short: "Validate a definition",
		Long: `Validate a definition and print every violation. With --generated, also
fail when the given file differs from what generate would write.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := idl.Load(args[0])
			if err != nil {
				return err
			}
			api, err := idl.Compile(def)
			if err != nil {
				violations := idl.Errors(err)
				for _, violation := range violations {
					fmt.Fprintln(cmd.OutOrStdout(), violation)
				}
				return fmt.Errorf("%s: %d violation(s)", args[0], len(violations))
			}

			if generated := v.GetString(keyGenerate); generated != "" {
				src, err := idl.Source(api)
				if err != nil {
					return err
				}
				current, err := os.ReadFile(generated)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", generated, err)
				}
				if !bytes.Equal(src, current) {
					return fmt.Errorf("%s is out of date, run jsonrpc-gen generate", generated)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d method(s) ok\n", args[0], len(api.Methods))
			return nil
		},
	}
	c.Flags().String(keyGenerate, "", "generated file to compare against")
	_ = v.BindPFlag(keyGenerate, c.Flags().Lookup(keyGenerate))
	return c
}
