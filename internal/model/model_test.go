// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"errors"
	"testing"
)

func TestResolvedKeyString(t *testing.T) {
	r := ResolvedKey{User: "deploy", Host: "web-01.example.com"}
	if got := r.String(); got != "deploy@web-01.example.com" {
		t.Errorf("unexpected ResolvedKey.String(): %q", got)
	}
}

func TestCredentialItemField(t *testing.T) {
	item := CredentialItem{Fields: map[string]string{"URL": "10.0.0.5", "Labels": ""}}

	if v, ok := item.Field("URL"); !ok || v != "10.0.0.5" {
		t.Errorf("Field(URL) = %q, %v; want 10.0.0.5, true", v, ok)
	}
	// An empty value counts as missing so the resolver falls through to
	// the interactive source.
	if _, ok := item.Field("Labels"); ok {
		t.Error("Field(Labels) should report empty value as missing")
	}
	if _, ok := item.Field("User"); ok {
		t.Error("Field(User) should report absent label as missing")
	}
}

func TestRunSummaryOK(t *testing.T) {
	s := RunSummary{Exported: []ResolvedKey{{ShortTitle: "web"}}}
	if !s.OK() {
		t.Error("summary without failures should be OK")
	}

	s.Failures = append(s.Failures, ItemFailure{Title: "SSH-Key Broken", Err: errors.New("boom")})
	if s.OK() {
		t.Error("summary with failures must not be OK")
	}
	if got := s.Failures[0].String(); got != "SSH-Key Broken: boom" {
		t.Errorf("unexpected ItemFailure.String(): %q", got)
	}
}
