// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

// Package export writes public key files into the export directory.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/toeirei/keyporter/internal/logging"
	"github.com/toeirei/keyporter/internal/sshkey"
)

// Exporter writes one .pub file per key under Dir. Files are overwritten
// unconditionally; the vault is the source of truth.
type Exporter struct {
	Dir string
}

// KeyPath returns the deterministic export path for a short title.
func (e *Exporter) KeyPath(shortTitle string) string {
	return filepath.Join(e.Dir, shortTitle+".pub")
}

// WriteKey writes the public key text verbatim to <Dir>/<shortTitle>.pub,
// creating the directory first if needed, and returns the path written.
// Key text that does not parse as an authorized_keys line is still
// exported; the vault stores it, we mirror it.
func (e *Exporter) WriteKey(shortTitle, publicKey string) (string, error) {
	if err := os.MkdirAll(e.Dir, 0700); err != nil {
		return "", fmt.Errorf("create export directory %s: %w", e.Dir, err)
	}

	if alg, _, _, err := sshkey.Parse(publicKey); err != nil {
		logging.Warnf("public key for %q does not look like an authorized_keys line: %v", shortTitle, err)
	} else {
		logging.Debugf("exporting %s key as %s.pub", alg, shortTitle)
	}

	path := e.KeyPath(shortTitle)
	if err := os.WriteFile(path, []byte(publicKey), 0600); err != nil {
		return "", fmt.Errorf("write key file %s: %w", path, err)
	}
	return path, nil
}
