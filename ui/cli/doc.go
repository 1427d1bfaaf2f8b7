// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

// Package cli implements the Keyporter command-line interface: the root
// command running the export pipeline and its subcommands.
package cli
