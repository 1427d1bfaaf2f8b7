// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

// Package importer runs the export pipeline: list the tagged vault items,
// resolve each one, write its key file, and finish with a single rewrite
// of the generated SSH config. Items fail individually; only an
// unreachable vault and the final config write abort the run.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toeirei/keyporter/internal/export"
	"github.com/toeirei/keyporter/internal/i18n"
	"github.com/toeirei/keyporter/internal/logging"
	"github.com/toeirei/keyporter/internal/model"
	"github.com/toeirei/keyporter/internal/resolve"
	"github.com/toeirei/keyporter/internal/sshconfig"
	"github.com/toeirei/keyporter/internal/vault"
)

// Options wires the pipeline's collaborators.
type Options struct {
	Client   vault.Client
	Resolver *resolve.Resolver
	Exporter *export.Exporter

	// Vault and Tags scope the item listing.
	Vault string
	Tags  []string

	// ConfigPath is the generated file; defaults to <Exporter.Dir>/config.
	ConfigPath string
}

// ConfigPath returns the effective path of the generated SSH config.
func (o Options) configPath() string {
	if o.ConfigPath != "" {
		return o.ConfigPath
	}
	return filepath.Join(o.Exporter.Dir, "config")
}

// Run executes one full export. The returned summary lists exported keys
// and per-item failures; err is non-nil only for run-fatal conditions
// (vault unavailable, final config write failed).
func Run(ctx context.Context, opts Options) (model.RunSummary, error) {
	var summary model.RunSummary

	logging.Infof("%s", i18n.T("import.loading", opts.Vault, strings.Join(opts.Tags, ",")))
	items, err := opts.Client.ListTaggedItems(ctx, opts.Vault, opts.Tags)
	if err != nil {
		return summary, fmt.Errorf("%s", i18n.T("import.error_vault", err))
	}
	if len(items) == 0 {
		logging.Warnf("%s", i18n.T("import.no_items", opts.Vault, strings.Join(opts.Tags, ",")))
	}

	// Key files are written before their block is buffered, so every
	// IdentityFile in the final config exists on disk by the time the
	// config itself lands.
	var blocks []sshconfig.Block
	for _, sum := range items {
		item, err := opts.Client.ReadItem(ctx, sum.ID)
		if err != nil {
			summary.Failures = append(summary.Failures, model.ItemFailure{Title: sum.Title, Err: err})
			continue
		}
		logging.Debugf("%s", i18n.T("import.loaded", item.Title))

		key, err := opts.Resolver.Resolve(item)
		if err != nil {
			summary.Failures = append(summary.Failures, model.ItemFailure{Title: sum.Title, Err: err})
			continue
		}

		path, err := opts.Exporter.WriteKey(key.ShortTitle, key.PublicKey)
		if err != nil {
			summary.Failures = append(summary.Failures, model.ItemFailure{Title: sum.Title, Err: err})
			continue
		}
		logging.Infof("%s", i18n.T("import.exporting", item.Title, path))

		blocks = append(blocks, sshconfig.Block{
			Labels:       key.Labels,
			HostName:     key.Host,
			IdentityFile: path,
			User:         key.User,
		})
		summary.Exported = append(summary.Exported, key)
	}

	cfgPath := opts.configPath()
	logging.Infof("%s", i18n.T("import.writing_config", cfgPath))
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0700); err != nil {
		return summary, fmt.Errorf("%s", i18n.T("import.error_write_config", err))
	}
	if err := sshconfig.Write(cfgPath, blocks); err != nil {
		return summary, fmt.Errorf("%s", i18n.T("import.error_write_config", err))
	}

	return summary, nil
}
