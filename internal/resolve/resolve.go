// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

// Package resolve turns a vault item into a ResolvedKey. Field values are
// looked up through a chain of FieldSources: stored vault fields first,
// the interactive prompt last. Prompted values hold for the current run
// only and are never written back to the vault.
package resolve

import (
	"fmt"
	"io"
	"strings"

	"github.com/toeirei/keyporter/internal/i18n"
	"github.com/toeirei/keyporter/internal/model"
	"github.com/toeirei/keyporter/internal/normalize"
	"github.com/toeirei/keyporter/internal/prompt"
)

// Labels of the vault fields consulted for every item.
const (
	FieldUser   = "User"
	FieldURL    = "URL"
	FieldLabels = "Labels"
)

// FieldSource yields a value for one labelled field of an item. ok is
// false when this source has nothing to offer and the next one should be
// asked.
type FieldSource interface {
	Lookup(item model.CredentialItem, label string) (value string, ok bool)
}

// VaultFields serves the labelled fields stored on the item itself.
type VaultFields struct{}

func (VaultFields) Lookup(item model.CredentialItem, label string) (string, bool) {
	return item.Field(label)
}

// StaticField serves one fixed value for one label, e.g. the --user
// override applied to every item.
type StaticField struct {
	Label string
	Value string
}

func (s StaticField) Lookup(_ model.CredentialItem, label string) (string, bool) {
	if label == s.Label && s.Value != "" {
		return s.Value, true
	}
	return "", false
}

// PromptSource asks the invoking user for the missing field. Empty input
// is accepted as-is; pure-whitespace input is rejected and re-prompted
// once, then the second answer counts.
type PromptSource struct {
	ReadLine prompt.LineReader
	Out      io.Writer
}

func (p PromptSource) Lookup(item model.CredentialItem, label string) (string, bool) {
	fmt.Fprintln(p.Out, i18n.T("prompt.missing_field", item.Title, label))

	value, err := p.ReadLine(i18n.T("prompt.enter_value", label, item.Title))
	if err != nil {
		return "", false
	}
	if value != "" && strings.TrimSpace(value) == "" {
		fmt.Fprintln(p.Out, i18n.T("prompt.blank_retry"))
		value, err = p.ReadLine(i18n.T("prompt.enter_value", label, item.Title))
		if err != nil {
			return "", false
		}
	}
	return value, true
}

// Resolver produces ResolvedKeys by consulting its sources in priority
// order.
type Resolver struct {
	Sources []FieldSource
}

// NewResolver wires the standard chain: optional run-wide user override,
// the item's own fields, then the interactive prompt.
func NewResolver(userOverride string, readLine prompt.LineReader, out io.Writer) *Resolver {
	sources := []FieldSource{}
	if userOverride != "" {
		sources = append(sources, StaticField{Label: FieldUser, Value: userOverride})
	}
	sources = append(sources, VaultFields{}, PromptSource{ReadLine: readLine, Out: out})
	return &Resolver{Sources: sources}
}

// Resolve derives the short title and the three connection fields for one
// item. Labels split into whitespace-separated alias tokens; when none
// are given the short title doubles as the single alias, like the export
// file name.
func (r *Resolver) Resolve(item model.CredentialItem) (model.ResolvedKey, error) {
	short, err := normalize.ShortTitle(item.Title)
	if err != nil {
		return model.ResolvedKey{}, fmt.Errorf("item %q: %w", item.Title, err)
	}
	if item.PublicKey == "" {
		return model.ResolvedKey{}, fmt.Errorf("item %q has no public key", item.Title)
	}

	labels := strings.Fields(r.lookup(item, FieldLabels))
	if len(labels) == 0 {
		labels = []string{short}
	}

	return model.ResolvedKey{
		ShortTitle: short,
		User:       r.lookup(item, FieldUser),
		Host:       r.lookup(item, FieldURL),
		Labels:     labels,
		PublicKey:  item.PublicKey,
	}, nil
}

func (r *Resolver) lookup(item model.CredentialItem, label string) string {
	for _, src := range r.Sources {
		if v, ok := src.Lookup(item, label); ok {
			return v
		}
	}
	return ""
}
