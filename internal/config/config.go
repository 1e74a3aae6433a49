package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"github.com/stackup-dev/stackup/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyPackageManager   = "package_manager"
	KeyScaffoldTool     = "scaffold_tool"
	KeyScaffoldTemplate = "scaffold_template"
	KeyClientSDK        = "client_sdk"
)

var defaultValues = map[string]string{
	KeyPackageManager:   "npm",
	KeyScaffoldTool:     "vite",
	KeyScaffoldTemplate: "react",
	KeyClientSDK:        "firebase",
}

// Settings is the resolved view of the configuration used by the scaffolder.
type Settings struct {
	PackageManager   string // executable used for create/install, e.g. "npm"
	ScaffoldTool     string // generator package run via "<pm> create <tool>@latest"
	ScaffoldTemplate string // generator sub-template, e.g. "react"
	ClientSDK        string // client-side SDK installed by the firebase template
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		PackageManager:   defaultValues[KeyPackageManager],
		ScaffoldTool:     defaultValues[KeyScaffoldTool],
		ScaffoldTemplate: defaultValues[KeyScaffoldTemplate],
		ClientSDK:        defaultValues[KeyClientSDK],
	}
}

// Dir returns the path to the config directory (~/.stackup/).
// STACKUP_HOME overrides it.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.stackup/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Calling it again discards previously loaded state.
func Load() {
	viper.Reset()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	for k, v := range defaultValues {
		viper.SetDefault(k, v)
	}

	if err := viper.ReadInConfig(); err != nil && !isMissingConfig(err) {
		slog.Warn("ignoring unreadable config file", "path", FilePath(), "err", err)
	}
}

// isMissingConfig reports whether err only means no config file was written yet.
func isMissingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Current returns the settings resolved by the last Load.
func Current() (Settings, error) {
	s := Settings{
		PackageManager:   viper.GetString(KeyPackageManager),
		ScaffoldTool:     viper.GetString(KeyScaffoldTool),
		ScaffoldTemplate: viper.GetString(KeyScaffoldTemplate),
		ClientSDK:        viper.GetString(KeyClientSDK),
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports the first empty or whitespace-containing value.
func (s Settings) Validate() error {
	fields := []struct {
		key, value string
	}{
		{KeyPackageManager, s.PackageManager},
		{KeyScaffoldTool, s.ScaffoldTool},
		{KeyScaffoldTemplate, s.ScaffoldTemplate},
		{KeyClientSDK, s.ClientSDK},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("config key %q must not be empty", f.key)
		}
		if strings.ContainsAny(f.value, " \t\n") && f.key != KeyPackageManager {
			return fmt.Errorf("config key %q must not contain whitespace: %q", f.key, f.value)
		}
	}
	return nil
}

// Keys returns the supported setting keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaultValues))
	for k := range defaultValues {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKnownKey reports whether key is a supported setting.
func IsKnownKey(key string) bool {
	_, ok := defaultValues[key]
	return ok
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q (supported: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
