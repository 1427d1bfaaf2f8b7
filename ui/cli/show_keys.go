// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/toeirei/keyporter/internal/i18n"
	"github.com/toeirei/keyporter/internal/logging"
	"github.com/toeirei/keyporter/internal/sshkey"
)

var copyToClipboard bool

// showKeyCmd prints a previously exported public key. Useful for pasting
// a key into an authorized_keys file or a web UI.
var showKeyCmd = &cobra.Command{
	Use:   "show <short-title>",
	Short: "Show an exported public key",
	Long: `Displays the exported public key for the given short title, together
with its SHA256 fingerprint. With --copy the key is also placed on the
system clipboard.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		short := args[0]
		path := filepath.Join(appConfig.ExportDir, short+".pub")

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%s", i18n.T("show.not_found", short, appConfig.ExportDir))
		}
		key := strings.TrimRight(string(data), "\n")

		if fp, err := sshkey.Fingerprint(key); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", fp)
		} else {
			logging.Debugf("no fingerprint for %q: %v", short, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), key)

		if copyToClipboard {
			if err := clipboard.WriteAll(key); err != nil {
				logging.Warnf("%s", i18n.T("show.error_clipboard", err))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("show.copied"))
			}
		}
		return nil
	},
}

func init() {
	showKeyCmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "Copy the public key to the clipboard")
}
