// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the transient data types that flow through one
// export run. Nothing in here is persisted; every value is rebuilt from
// the vault on the next invocation.
package model

import "fmt"

// ItemSummary is one row of the vault's item listing.
type ItemSummary struct {
	ID    string
	Title string
	Tags  []string
}

// CredentialItem is the full read of a single vault item. Fields maps the
// item's labelled metadata fields (e.g. "User", "URL", "Labels") to their
// values; absent labels are simply missing from the map.
type CredentialItem struct {
	ID        string
	Title     string
	Tags      []string
	PublicKey string
	Fields    map[string]string
}

// Field returns the value for a labelled field and whether it is present
// and non-empty.
func (c CredentialItem) Field(label string) (string, bool) {
	v, ok := c.Fields[label]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// ResolvedKey is the per-item result of field resolution and title
// normalization. It is immutable after creation and only lives until the
// end of the run.
type ResolvedKey struct {
	ShortTitle string
	User       string
	Host       string
	Labels     []string
	PublicKey  string
}

// String returns the user@host representation.
func (r ResolvedKey) String() string {
	return fmt.Sprintf("%s@%s", r.User, r.Host)
}

// ItemFailure records why a single item could not be exported.
type ItemFailure struct {
	Title string
	Err   error
}

func (f ItemFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Title, f.Err)
}

// RunSummary is the end-of-run report: which keys were exported and which
// items failed along the way.
type RunSummary struct {
	Exported []ResolvedKey
	Failures []ItemFailure
}

// OK reports whether the run completed without any per-item failure.
func (s RunSummary) OK() bool {
	return len(s.Failures) == 0
}
