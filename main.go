// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltaic Labs
//
// Portscope - USB Type-C Connector Analyzer
//
// A CLI tool for monitoring, decoding and simulating UCSI mailbox
// traffic between an OS Policy Manager and a Platform Policy Manager.

package main

import (
	"os"

	"github.com/voltaiclabs/portscope/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
