// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// jsonrpc-gen compiles interface definitions into typed JSON-RPC clients.
package main

import (
	"fmt"
	"os"

	"github.com/luxfi/jsonrpc/cmd/jsonrpc-gen/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
