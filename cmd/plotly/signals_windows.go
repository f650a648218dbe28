//go:build windows

package main

import "os"

// shutdownSignals cancel a running command. Console programs on Windows
// never receive SIGTERM.
var shutdownSignals = []os.Signal{os.Interrupt}
