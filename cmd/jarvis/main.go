// Package main is the jarvis agent: it serves operator sessions over
// WebSocket and runs approved actions on the host.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(defaultDependencies()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
