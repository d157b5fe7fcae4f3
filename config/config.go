// Package config loads rchidrun settings from an optional config file and
// RCHIDRUN_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caffeineduck/rchidrun/registry"
	"github.com/caffeineduck/rchidrun/sdk"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	fileName  = "config"
	fileType  = "yaml"
	envPrefix = "RCHIDRUN"
)

// Config holds resolved settings.
type Config struct {
	Root            string           `mapstructure:"root"`
	PackageManager  string           `mapstructure:"package_manager"`
	DownloadTimeout time.Duration    `mapstructure:"download_timeout"`
	MemoryLimit     string           `mapstructure:"memory_limit"`
	Cache           bool             `mapstructure:"cache"`
	CacheDir        string           `mapstructure:"cache_dir"`
	Verbose         bool             `mapstructure:"verbose"`
	Languages       []registry.Entry `mapstructure:"languages"`
}

// Default returns the built-in settings. Root is left empty and resolved
// from the home directory on Load.
func Default() Config {
	return Config{
		PackageManager:  "wasmer",
		DownloadTimeout: 5 * time.Minute,
		Cache:           true,
	}
}

// Dir returns ~/.rchidrun, or "" when the home directory is unknown.
func Dir() string {
	home, err := sdk.HomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rchidrun")
}

// FilePath returns the default config file path (~/.rchidrun/config.yaml).
func FilePath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, fileName+"."+fileType)
}

// Options control where Load reads from.
type Options struct {
	// File overrides the config file. It must exist when set.
	File string
	// Flags, when non-nil, override file and environment values for the
	// flags that were set: root, package-manager, memory, verbose, no-cache.
	Flags *pflag.FlagSet
}

// Load reads the config file (if any), the environment and flags, and
// resolves Root. It fails with sdk.ErrConfiguration when no root is
// configured and the home directory is unknown.
func Load(opts Options) (Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("root", defaults.Root)
	v.SetDefault("package_manager", defaults.PackageManager)
	v.SetDefault("download_timeout", defaults.DownloadTimeout)
	v.SetDefault("memory_limit", defaults.MemoryLimit)
	v.SetDefault("cache", defaults.Cache)
	v.SetDefault("cache_dir", defaults.CacheDir)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	file := opts.File
	if file == "" {
		file = FilePath()
		if _, err := os.Stat(file); file == "" || err != nil {
			file = ""
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType(fileType)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	if opts.Flags != nil {
		bindFlag(v, opts.Flags, "root", "root")
		bindFlag(v, opts.Flags, "package_manager", "package-manager")
		bindFlag(v, opts.Flags, "memory_limit", "memory")
		bindFlag(v, opts.Flags, "verbose", "verbose")
		if f := opts.Flags.Lookup("no-cache"); f != nil && f.Changed {
			v.Set("cache", false)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := registry.Validate(cfg.Languages); err != nil {
		return Config{}, fmt.Errorf("config languages: %w", err)
	}

	if cfg.Root == "" {
		root, err := sdk.DefaultRoot()
		if err != nil {
			return Config{}, err
		}
		cfg.Root = root
	}
	return cfg, nil
}

func bindFlag(v *viper.Viper, fs *pflag.FlagSet, key, flag string) {
	if f := fs.Lookup(flag); f != nil {
		// BindPFlag only fails for a nil flag.
		_ = v.BindPFlag(key, f)
	}
}

// Registry returns the built-in registry extended with the configured
// languages.
func (c Config) Registry() *registry.Registry {
	return registry.NewDefault(c.Languages...)
}

// Layout returns the SDK layout rooted at c.Root.
func (c Config) Layout() sdk.Layout {
	return sdk.New(c.Root)
}
