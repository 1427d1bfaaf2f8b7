// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

// Package sshconfig renders the generated SSH client include file: one
// host block per exported key, rewritten wholesale on every run. The
// output carries no timestamps so that two runs over the same vault state
// produce byte-identical files.
package sshconfig

import (
	"fmt"
	"os"
	"strings"
)

// Block is one host stanza of the generated file.
type Block struct {
	// Labels are the alias tokens for the Host pattern line.
	Labels []string
	// HostName is the address the aliases resolve to.
	HostName string
	// IdentityFile is the exported .pub path for this key.
	IdentityFile string
	// User is the login user.
	User string
}

// header marks the file as generated. Mirrors the warning the exporter
// has always written; manual edits do not survive the next run.
const header = "# This file was created by Keyporter, the 1Password SSH key exporter.\n" +
	"# Manual changes to this file will be overwritten on the next run.\n"

// Render produces the full file contents: header, then the blocks in the
// given order, separated by blank lines.
func Render(blocks []Block) string {
	var b strings.Builder
	b.WriteString(header)
	for _, blk := range blocks {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Host %s\n", strings.Join(blk.Labels, " ")))
		b.WriteString(fmt.Sprintf("  HostName %s\n", blk.HostName))
		b.WriteString(fmt.Sprintf("  IdentityFile %s\n", blk.IdentityFile))
		b.WriteString("  IdentitiesOnly yes\n")
		b.WriteString(fmt.Sprintf("  User %s\n", blk.User))
	}
	return b.String()
}

// Write replaces the file at path with the rendered blocks. There is no
// merge with prior contents; the file belongs to the exporter.
func Write(path string, blocks []Block) error {
	if err := os.WriteFile(path, []byte(Render(blocks)), 0600); err != nil {
		return fmt.Errorf("write ssh config %s: %w", path, err)
	}
	return nil
}
