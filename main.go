// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Keyporter.
//
// Usage:
//
//	go run . [flags]
//	./keyporter [flags]
//
// This runs the export pipeline. See --help for options.
package main

import (
	"log"
	"os"

	"github.com/toeirei/keyporter/ui/cli"
)

// main is the entrypoint for the Keyporter CLI.
func main() {
	if err := cli.Execute(); err != nil {
		log.Printf("Keyporter error: %v", err)
		os.Exit(1)
	}
}
