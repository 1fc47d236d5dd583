// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var pkgLogger atomic.Pointer[zap.Logger]

// SetLogger sets the logger used to trace envelope parsing. A nil logger
// restores the default no-op logger.
func SetLogger(lg *zap.Logger) {
	if lg == nil {
		lg = zap.NewNop()
	}
	pkgLogger.Store(lg.Named("jsonrpc"))
}

func logger() *zap.Logger {
	if lg := pkgLogger.Load(); lg != nil {
		return lg
	}
	return zap.NewNop()
}
