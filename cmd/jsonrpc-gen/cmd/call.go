// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luxfi/jsonrpc"
	"github.com/luxfi/jsonrpc/httpclient"
)

func newCallCmd(v *viper.Viper) *cobra.Command {
	c := &cobra.Command{
		Use:   "call <definition> <method> [json-param...]",
		Short: "Call a method of a definition",
		Long: `Call a method of a definition against a live peer. Each parameter is a JSON
value; the result is printed as JSON. The id is 0 unless --id is set to a
number, a string, or "random".`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(v)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			url := v.GetString(keyURL)
			if url == "" {
				return errors.New("--url is required")
			}

			api, err := compileFile(args[0])
			if err != nil {
				return err
			}
			method, ok := api.Method(args[1])
			if !ok {
				return fmt.Errorf("%s has no method %q", api.Name, args[1])
			}
			reg, err := api.Registry()
			if err != nil {
				return err
			}
			params := make([]any, 0, len(args)-2)
			for i, arg := range args[2:] {
				if !json.Valid([]byte(arg)) {
					return fmt.Errorf("parameter %d is not JSON: %s", i, arg)
				}
				params = append(params, json.RawMessage(arg))
			}
			req, err := reg.Request(method.WireName, params...)
			if err != nil {
				return err
			}

			client := httpclient.NewClient(httpclient.WithLogger(log))
			rb := client.Post(url)
			for _, header := range v.GetStringSlice(keyHeader) {
				key, value, ok := strings.Cut(header, ":")
				if !ok {
					return fmt.Errorf("header %q is not key:value", header)
				}
				rb.Header(strings.TrimSpace(key), strings.TrimSpace(value))
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout := v.GetDuration(keyTimeout); timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			if v.GetBool(keyNotify) {
				return httpclient.Notify(ctx, rb, req)
			}
			out, err := httpclient.Send(ctx, rb, req, commonPart(v.GetString(keyID)))
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	c.Flags().String(keyURL, "", "endpoint of the peer")
	c.Flags().Duration(keyTimeout, 0, "timeout of the call")
	c.Flags().StringSlice(keyHeader, nil, "extra header as key:value")
	c.Flags().String(keyID, "", "request id: a number, a string, or random")
	c.Flags().Bool(keyNotify, false, "send as a notification")
	for _, key := range []string{keyURL, keyTimeout, keyHeader, keyID, keyNotify} {
		_ = v.BindPFlag(key, c.Flags().Lookup(key))
	}
	return c
}

func commonPart(id string) jsonrpc.CommonPart {
	switch {
	case id == "":
		return jsonrpc.DefaultCommonPart()
	case id == "random":
		return jsonrpc.Random()
	}
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		return jsonrpc.Num(n)
	}
	return jsonrpc.Str(id)
}
