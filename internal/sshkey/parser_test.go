// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

package sshkey

import (
	"crypto/ed25519"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name      string
		line      string
		algorithm string
		keyData   string
		comment   string
		wantErr   bool
	}{
		{
			name:      "plain ed25519",
			line:      "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIFoo me@laptop",
			algorithm: "ssh-ed25519",
			keyData:   "AAAAC3NzaC1lZDI1NTE5AAAAIFoo",
			comment:   "me@laptop",
		},
		{
			name:      "no comment",
			line:      "ssh-rsa AAAAB3NzaC1yc2EAAA",
			algorithm: "ssh-rsa",
			keyData:   "AAAAB3NzaC1yc2EAAA",
		},
		{
			name:      "leading options",
			line:      `no-pty,command="true" ecdsa-sha2-nistp256 AAAAE2VjZHNh host key`,
			algorithm: "ecdsa-sha2-nistp256",
			keyData:   "AAAAE2VjZHNh",
			comment:   "host key",
		},
		{name: "empty", line: "   ", wantErr: true},
		{name: "garbage", line: "not a key at all", wantErr: true},
		{name: "missing data", line: "ssh-ed25519", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alg, data, comment, err := Parse(tc.line)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %q %q %q", tc.line, alg, data, comment)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tc.line, err)
			}
			if alg != tc.algorithm || data != tc.keyData || comment != tc.comment {
				t.Errorf("Parse(%q) = %q %q %q, want %q %q %q", tc.line, alg, data, comment, tc.algorithm, tc.keyData, tc.comment)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	pubKey, err := ssh.NewPublicKey(ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey))
	if err != nil {
		t.Fatalf("building test key: %v", err)
	}
	pub := strings.TrimSpace(string(ssh.MarshalAuthorizedKey(pubKey))) + " test@keyporter"

	fp, err := Fingerprint(pub)
	if err != nil {
		t.Fatalf("Fingerprint returned error: %v", err)
	}
	if !strings.HasPrefix(fp, "SHA256:") {
		t.Errorf("fingerprint %q does not have SHA256: prefix", fp)
	}

	if _, err := Fingerprint("not a key"); err == nil {
		t.Error("Fingerprint on garbage input should fail")
	}
}
