// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/luxfi/jsonrpc"
	"github.com/luxfi/jsonrpc/idl"
)

const envPrefix = "JSONRPC_GEN"

// Config keys
const (
	keyConfig   = "config"
	keyLogLevel = "log-level"
	keyOutput   = "output"
	keyURL      = "url"
	keyTimeout  = "timeout"
	keyHeader   = "header"
	keyID       = "id"
	keyNotify   = "notify"
	keyGenerate = "generated"
)

// NewRootCmd returns the jsonrpc-gen command tree. Every setting can also be
// given as a JSONRPC_GEN_* environment variable or in the --config file.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:           "jsonrpc-gen",
		Short:         "compile interface definitions into typed JSON-RPC 2.0 clients",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v)
		},
	}

	root.PersistentFlags().String(keyConfig, "", "config file")
	root.PersistentFlags().String(keyLogLevel, "info", "log level")
	_ = v.BindPFlag(keyConfig, root.PersistentFlags().Lookup(keyConfig))
	_ = v.BindPFlag(keyLogLevel, root.PersistentFlags().Lookup(keyLogLevel))

	root.AddCommand(
		newGenerateCmd(v),
		newCheckCmd(v),
		newCallCmd(v),
	)
	return root
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if path := v.GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

func newLogger(v *viper.Viper) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(v.GetString(keyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	jsonrpc.SetLogger(log)
	return log, nil
}

func compileFile(path string) (*idl.API, error) {
	def, err := idl.Load(path)
	if err != nil {
		return nil, err
	}
	return idl.Compile(def)
}
