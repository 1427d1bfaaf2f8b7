// Copyright (c) 2026 ToeiRei
// Keyporter - 1Password SSH key exporter
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for Keyporter using
// the Cobra library. It defines the root command (which runs the full
// export pipeline), subcommands, flags, and the entry point for
// execution.

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toeirei/keyporter/buildvars"
	"github.com/toeirei/keyporter/internal/config"
	"github.com/toeirei/keyporter/internal/export"
	"github.com/toeirei/keyporter/internal/i18n"
	"github.com/toeirei/keyporter/internal/importer"
	"github.com/toeirei/keyporter/internal/logging"
	"github.com/toeirei/keyporter/internal/prompt"
	"github.com/toeirei/keyporter/internal/resolve"
	"github.com/toeirei/keyporter/internal/vault"
)

var cfgFile string
var verbose bool
var showVersionFlag bool

var appConfig config.Config

// newVaultClient is a package-level variable so tests can inject a mock
// vault instead of shelling out to the real op binary.
var newVaultClient = func(bin string) vault.Client {
	return vault.NewOpClient(bin)
}

// readLine is swapped by tests to script interactive answers.
var readLine = prompt.Stdin

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	// Load optional config file argument from cli
	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, config.Defaults(), optionalConfigPath)
	// A "file not found" error is expected on first run, so we handle it
	// specifically. Other errors during loading are fatal.
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		// First run, or the config file was deleted. Create a default one.
		if writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			// Log a warning but don't fail, the app can run on defaults.
			log.Warnf("%s", i18n.T("config.error_writing", writeErr))
		}
	} else if err != nil {
		return fmt.Errorf("%s", i18n.T("config.error_loading", err))
	}

	// Post-process config to ensure critical values are not empty,
	// falling back to defaults. This handles config files with empty
	// values for these fields.
	if appConfig.Vault == "" {
		appConfig.Vault = "Personal"
	}
	if len(appConfig.Tags) == 0 {
		appConfig.Tags = []string{"SSH-Key", "SSH-Keys"}
	}
	if appConfig.OpBin == "" {
		appConfig.OpBin = "op"
	}
	if appConfig.Language == "" {
		appConfig.Language = "en"
	}
	if appConfig.ExportDir == "" {
		dir, err := config.DefaultExportDir()
		if err != nil {
			return err
		}
		appConfig.ExportDir = dir
	}

	i18n.Init(appConfig.Language)
	logging.SetDebug(verbose)

	return nil
}

// Execute runs the CLI entrypoint. The main package calls this function
// and handles process exit.
func Execute() error {
	return NewRootCmd().Execute()
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if cmd.Flags().Changed("config") {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return nil, fmt.Errorf("could not read --config flag: %w", err)
		}
		if path == "" {
			return nil, nil
		}
		// Make sure the user-provided file exists to avoid unwanted behavior.
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
		}
		return &path, nil
	}
	return nil, nil
}

// NewRootCmd creates and configures a new root cobra command. This
// function is used to create the main application command as well as
// fresh instances for isolated testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyporter",
		Short: "Keyporter exports SSH public keys from 1Password to your ~/.ssh.",
		Long: `Keyporter reads the SSH key items of a 1Password vault (via the op CLI),
writes each public key to ~/.ssh/1password/<name>.pub and generates an SSH
client config mapping host aliases to the exported keys.

Add the following line to your ~/.ssh/config to use the generated file:

    Include ~/.ssh/1password/config

Running without a subcommand performs a full export.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersionFlag {
				fmt.Printf("%s\n", buildvars.VersionOrDefault("dev"))
				os.Exit(0)
			}
			return setupDefaultServices(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd)
		},
	}

	cmd.Version = buildvars.VersionOrDefault("dev")

	cmd.AddCommand(showKeyCmd)

	// Define flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&showVersionFlag, "version", "V", false, "Print version and exit")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "", `Output language ("en", "de")`)
	applyDefaultFlags(cmd)

	applyDefaultFlags(showKeyCmd)

	return cmd
}

func applyDefaultFlags(cmd *cobra.Command) {
	// Avoid redefining flags if they already exist (NewRootCmd may be
	// called multiple times in tests which creates a new root but uses
	// package-level subcommands). pflag will panic on duplicate flag
	// definitions, so check first.
	if cmd.Flags().Lookup("vault") == nil {
		cmd.Flags().String("vault", "", "1Password vault holding the SSH key items")
	}
	if cmd.Flags().Lookup("tags") == nil {
		cmd.Flags().StringSlice("tags", nil, "Tags marking an item as an SSH key")
	}
	if cmd.Flags().Lookup("export_dir") == nil {
		cmd.Flags().String("export_dir", "", "Directory for exported keys and the generated config")
	}
	if cmd.Flags().Lookup("op_bin") == nil {
		cmd.Flags().String("op_bin", "", "Path to the 1Password CLI binary")
	}
	if cmd.Flags().Lookup("user") == nil {
		cmd.Flags().StringP("user", "u", "", "Login user for every generated host block")
	}
}

// runImport executes the export pipeline and reports the summary.
func runImport(cmd *cobra.Command) error {
	summary, err := importer.Run(cmd.Context(), importer.Options{
		Client:   newVaultClient(appConfig.OpBin),
		Resolver: resolve.NewResolver(appConfig.User, readLine(), cmd.OutOrStdout()),
		Exporter: &export.Exporter{Dir: appConfig.ExportDir},
		Vault:    appConfig.Vault,
		Tags:     appConfig.Tags,
	})
	if err != nil {
		return err
	}

	if !summary.OK() {
		fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("import.failures", len(summary.Failures)))
		for _, f := range summary.Failures {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", f)
		}
		return fmt.Errorf("%d item(s) failed to export", len(summary.Failures))
	}

	fmt.Fprintln(cmd.OutOrStdout(), i18n.T("import.done"))
	fmt.Fprintf(cmd.OutOrStdout(), "Include %s\n", filepath.Join(appConfig.ExportDir, "config"))
	return nil
}
