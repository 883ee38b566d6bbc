// Package config resolves myrecipes settings from the config file,
// MYRECIPES_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	dirName   = ".myrecipes"
	fileName  = "config"
	fileType  = "yaml"
	envPrefix = "MYRECIPES"
)

// Keys understood in the config file and environment.
const (
	KeyDB     = "db"
	KeyKey    = "key"
	KeyFormat = "format"
)

// Config is the resolved configuration.
type Config struct {
	// DB is the SQLite database path.
	DB string
	// Key is the storage key holding the recipe collection.
	Key string
	// Format is the default output format.
	Format string
	// File is the config file that was read, empty if none existed.
	File string
}

// Dir returns the myrecipes directory (~/.myrecipes/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(home, dirName)
}

// FilePath returns the default config file path (~/.myrecipes/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load reads configuration. An empty file means FilePath(); a missing file
// is not an error. Flags in fs named after a key override file and
// environment values when they were set explicitly.
func Load(file string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault(KeyDB, filepath.Join(Dir(), "recipes.db"))
	v.SetDefault(KeyKey, "customrecipes")
	v.SetDefault(KeyFormat, "text")

	if file == "" {
		file = FilePath()
	}
	v.SetConfigFile(file)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{KeyDB, KeyKey, KeyFormat} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", key, err)
				}
			}
		}
	}

	cfg := Config{}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config %s: %w", file, err)
		}
	} else {
		cfg.File = v.ConfigFileUsed()
	}

	cfg.DB = v.GetString(KeyDB)
	cfg.Key = v.GetString(KeyKey)
	cfg.Format = v.GetString(KeyFormat)
	return cfg, nil
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}
