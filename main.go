// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// putparam creates a tagged SecureString parameter in AWS SSM Parameter
// Store from a CI/CD pipeline without ever overwriting an existing one.
package main

import (
	"log/slog"
	"os"

	"git.sr.ht/~wombelix/putparam/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		slog.Error("putparam failed", "error", err)
		os.Exit(1)
	}
}
