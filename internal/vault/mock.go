// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

package vault

import (
	"context"
	"fmt"

	"github.com/toeirei/keyporter/internal/model"
)

// MockClient is an in-memory Client for tests. Items are served in the
// order given; individual methods can be overwritten per test.
type MockClient struct {
	Items      []model.CredentialItem
	Overwrites MockClientOverwrites
}

type MockClientOverwrites struct {
	ListTaggedItems func(ctx context.Context, vaultName string, tags []string) ([]model.ItemSummary, error)
	ReadItem        func(ctx context.Context, id string) (model.CredentialItem, error)
}

var _ Client = (*MockClient)(nil)

// client := NewMockClient(items, MockClientOverwrites{ /* overwrite Client methods here... */ })
func NewMockClient(items []model.CredentialItem, overwrites MockClientOverwrites) *MockClient {
	return &MockClient{Items: items, Overwrites: overwrites}
}

func (m *MockClient) ListTaggedItems(ctx context.Context, vaultName string, tags []string) ([]model.ItemSummary, error) {
	if m.Overwrites.ListTaggedItems != nil {
		return m.Overwrites.ListTaggedItems(ctx, vaultName, tags)
	}
	var summaries []model.ItemSummary
	for _, item := range m.Items {
		if HasAnyTag(item.Tags, tags) {
			summaries = append(summaries, model.ItemSummary{ID: item.ID, Title: item.Title, Tags: item.Tags})
		}
	}
	return summaries, nil
}

func (m *MockClient) ReadItem(ctx context.Context, id string) (model.CredentialItem, error) {
	if m.Overwrites.ReadItem != nil {
		return m.Overwrites.ReadItem(ctx, id)
	}
	for _, item := range m.Items {
		if item.ID == id {
			return item, nil
		}
	}
	return model.CredentialItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}
