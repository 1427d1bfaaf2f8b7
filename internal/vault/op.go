// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/toeirei/keyporter/internal/logging"
	"github.com/toeirei/keyporter/internal/model"
)

// PublicKeyLabel is the field label under which the 1Password SSH key
// item type exposes the public key text.
const PublicKeyLabel = "public key"

// OpClient drives the 1Password CLI (`op`). It requires an existing,
// signed-in session; authentication is the CLI's business, not ours.
type OpClient struct {
	// Bin is the op binary to invoke. Defaults to "op" on PATH.
	Bin string
}

var _ Client = (*OpClient)(nil)

// NewOpClient returns a client using the given op binary, or "op" from
// PATH when empty.
func NewOpClient(bin string) *OpClient {
	if bin == "" {
		bin = "op"
	}
	return &OpClient{Bin: bin}
}

// opItemSummary mirrors one row of `op item list --format=json`.
type opItemSummary struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

// opItem mirrors `op item get <id> --format=json`.
type opItem struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Tags   []string  `json:"tags"`
	Fields []opField `json:"fields"`
}

type opField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ListTaggedItems runs `op item list` for the vault and tag filter.
func (c *OpClient) ListTaggedItems(ctx context.Context, vaultName string, tags []string) ([]model.ItemSummary, error) {
	out, err := c.run(ctx,
		"item", "list",
		"--vault", vaultName,
		"--tags", strings.Join(tags, ","),
		"--format", "json",
	)
	if err != nil {
		return nil, err
	}

	summaries, err := parseItemList(out)
	if err != nil {
		return nil, fmt.Errorf("decoding op item list output: %w", err)
	}

	// op matches tags server-side, but keep only items that really carry
	// one of the accepted tags in case the filter semantics drift.
	kept := summaries[:0]
	for _, s := range summaries {
		if HasAnyTag(s.Tags, tags) {
			kept = append(kept, s)
		} else {
			logging.Debugf("skipping %q: tags %v not in accepted set", s.Title, s.Tags)
		}
	}
	return kept, nil
}

// ReadItem runs `op item get` and flattens the labelled fields into the
// CredentialItem map. The public key travels in its own attribute.
func (c *OpClient) ReadItem(ctx context.Context, id string) (model.CredentialItem, error) {
	out, err := c.run(ctx, "item", "get", id, "--format", "json")
	if err != nil {
		if strings.Contains(err.Error(), "isn't an item") || strings.Contains(err.Error(), "not found") {
			return model.CredentialItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
		}
		return model.CredentialItem{}, err
	}

	item, err := parseItem(out)
	if err != nil {
		return model.CredentialItem{}, fmt.Errorf("decoding op item get output: %w", err)
	}
	return item, nil
}

// run executes the op binary and maps any failure to ErrVaultUnavailable.
func (c *OpClient) run(ctx context.Context, args ...string) ([]byte, error) {
	bin := c.Bin
	if bin == "" {
		bin = "op"
	}

	out, err := exec.CommandContext(ctx, bin, args...).Output()
	if err != nil {
		msg := err.Error()
		var ee *exec.ExitError
		if errors.As(err, &ee) && len(ee.Stderr) > 0 {
			msg = strings.TrimSpace(string(ee.Stderr))
		}
		return nil, fmt.Errorf("%w: %s %s: %s", ErrVaultUnavailable, bin, strings.Join(args, " "), msg)
	}
	return out, nil
}

func parseItemList(data []byte) ([]model.ItemSummary, error) {
	var rows []opItemSummary
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	summaries := make([]model.ItemSummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, model.ItemSummary{ID: r.ID, Title: r.Title, Tags: r.Tags})
	}
	return summaries, nil
}

func parseItem(data []byte) (model.CredentialItem, error) {
	var raw opItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.CredentialItem{}, err
	}

	item := model.CredentialItem{
		ID:     raw.ID,
		Title:  raw.Title,
		Tags:   raw.Tags,
		Fields: make(map[string]string, len(raw.Fields)),
	}
	for _, f := range raw.Fields {
		if f.Label == "" || f.Value == "" {
			continue
		}
		if f.Label == PublicKeyLabel {
			item.PublicKey = f.Value
			continue
		}
		item.Fields[f.Label] = f.Value
	}
	return item, nil
}
