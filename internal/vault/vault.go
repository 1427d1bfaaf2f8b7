// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

// Package vault talks to the external credential store. The pipeline only
// ever sees the narrow Client interface; the real implementation shells
// out to the 1Password CLI, tests use the mock.
package vault

import (
	"context"
	"errors"

	"github.com/toeirei/keyporter/internal/model"
)

// ErrVaultUnavailable is returned when the vault CLI cannot be executed
// or refuses the request (not installed, not signed in, vault missing).
// It is fatal for the run; no files are written after it.
var ErrVaultUnavailable = errors.New("vault is unavailable")

// ErrItemNotFound is returned when an item id from the listing can no
// longer be read (deleted between list and get).
var ErrItemNotFound = errors.New("vault item not found")

// Client is the read-only view of the vault the exporter needs.
type Client interface {
	// ListTaggedItems returns the summaries of all items in the named
	// vault carrying at least one of the given tags, in the order the
	// vault reports them.
	ListTaggedItems(ctx context.Context, vaultName string, tags []string) ([]model.ItemSummary, error)

	// ReadItem fetches the full item, including the public key text and
	// all labelled fields.
	ReadItem(ctx context.Context, id string) (model.CredentialItem, error)
}

// HasAnyTag reports whether the item's tag set intersects the accepted
// tags. The CLI filters server-side as well; listings re-check the tags
// on this side of the boundary.
func HasAnyTag(itemTags, accepted []string) bool {
	for _, t := range itemTags {
		for _, a := range accepted {
			if t == a {
				return true
			}
		}
	}
	return false
}
