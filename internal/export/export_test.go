// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

package export

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "1password")
	e := &Exporter{Dir: dir}

	path, err := e.WriteKey("myserver", "ssh-ed25519 AAAA me@host")
	if err != nil {
		t.Fatalf("WriteKey failed: %v", err)
	}
	if path != filepath.Join(dir, "myserver.pub") {
		t.Errorf("unexpected path: %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}
	// Verbatim: no trailing newline added, nothing trimmed.
	if string(data) != "ssh-ed25519 AAAA me@host" {
		t.Errorf("exported content = %q", string(data))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("key file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestWriteKeyOverwrites(t *testing.T) {
	e := &Exporter{Dir: t.TempDir()}

	if _, err := e.WriteKey("box", "old key text"); err != nil {
		t.Fatal(err)
	}
	path, err := e.WriteKey("box", "ssh-rsa AAAB new")
	if err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "ssh-rsa AAAB new" {
		t.Errorf("file not overwritten: %q", string(data))
	}
}

func TestWriteKeyUnparseableStillExports(t *testing.T) {
	e := &Exporter{Dir: t.TempDir()}

	path, err := e.WriteKey("odd", "not an authorized_keys line")
	if err != nil {
		t.Fatalf("unparseable key text must still export: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "not an authorized_keys line" {
		t.Errorf("exported content = %q", string(data))
	}
}

func TestWriteKeyDirFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	// Dir path runs through a regular file, MkdirAll has to fail.
	e := &Exporter{Dir: filepath.Join(blocker, "sub")}
	if _, err := e.WriteKey("box", "ssh-rsa AAAB x"); err == nil {
		t.Error("expected error when export dir cannot be created")
	}
}
