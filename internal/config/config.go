package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds everything an export run needs to know. Values come from
// (highest precedence first) CLI flags, KEYPORTER_* environment
// variables, and keyporter.yaml.
type Config struct {
	// Vault is the 1Password vault the SSH key items live in.
	Vault string `mapstructure:"vault" yaml:"vault"`
	// Tags select which items count as SSH keys.
	Tags []string `mapstructure:"tags" yaml:"tags"`
	// ExportDir is where public key files and the config file land.
	// Empty means ~/.ssh/1password.
	ExportDir string `mapstructure:"export_dir" yaml:"export_dir"`
	// OpBin is the 1Password CLI binary, "op" on PATH by default.
	OpBin string `mapstructure:"op_bin" yaml:"op_bin"`
	// User overrides the login user for every generated host block.
	User string `mapstructure:"user" yaml:"user"`
	// Language selects the output language ("en", "de").
	Language string `mapstructure:"language" yaml:"language"`
}

// Defaults are the baseline settings for a fresh installation.
func Defaults() map[string]any {
	return map[string]any{
		"vault":    "Personal",
		"tags":     []string{"SSH-Key", "SSH-Keys"},
		"op_bin":   "op",
		"language": "en",
	}
}

// DefaultExportDir returns ~/.ssh/1password, the directory the generated
// Include line points into.
func DefaultExportDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".ssh", "1password"), nil
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Keyporter")
		default: // Linux, macOS, etc.
			configDir = "/etc/keyporter"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "keyporter")
	}

	return filepath.Join(configDir, "keyporter.yaml"), nil
}

// LoadConfig builds a T from defaults, config file discovery, KEYPORTER_*
// environment variables, and the command's flags, in ascending precedence.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, additionalConfigFilePath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("keyporter")
	v.SetConfigType("yaml")

	// An explicit --config path has the highest precedence for
	// file-based configuration.
	if additionalConfigFilePath != nil {
		v.SetConfigFile(*additionalConfigFilePath)
	}

	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// It's okay if the file is not found, but other errors are fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("keyporter")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, err
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// WriteConfigFile persists the configuration as YAML to the user or
// system config path.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := getConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600 since the file may carry a user override and vault name.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}

	return nil
}
