// Copyright (c) 2024 The Pocketnet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package social

import "github.com/decred/slog"

// log is the package-level logger used to record materializer and
// consensus decisions. It defaults to the disabled backend so the package
// is silent until a host wires a real backend in with UseLogger.
var log = slog.Disabled

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger slog.Logger) {
	log = logger
}
