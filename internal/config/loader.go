package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "KEYIP_DESC"

// newViper builds a Viper instance with the standard settings: YAML file
// type, KEYIP_DESC_ env prefix, automatic env binding, "." -> "_" key
// replacement (so "cache.addr" resolves KEYIP_DESC_CACHE_ADDR) and defaults.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerDefaults(v)
	return v
}

// Load reads the YAML file at configPath, merges KEYIP_DESC_* overrides and
// validates the result. An empty path loads defaults and environment only.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return LoadFromEnv()
	}
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config from defaults and KEYIP_DESC_* variables only.
//
//	KEYIP_DESC_<SECTION>_<FIELD>   e.g.  KEYIP_DESC_EVALUATOR_WORKERS=4
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

// Discover returns the first existing file among the standard locations:
// ./keyip-desc.yaml, $HOME/.keyip/descriptors.yaml, /etc/keyip/descriptors.yaml.
// It returns "" when none exists.
func Discover() string {
	candidates := []string{"keyip-desc.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".keyip", "descriptors.yaml"))
	}
	candidates = append(candidates, "/etc/keyip/descriptors.yaml")
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Watch re-reads configPath whenever it changes on disk and hands the new
// Config to onChange. Invalid revisions are reported to onError and otherwise
// ignored, so a broken edit never replaces a working configuration.
// Watch returns after the initial read; the watcher runs in the background.
func Watch(configPath string, onChange func(*Config), onError func(error)) error {
	if configPath == "" {
		return errors.New("config: watch requires a config file path")
	}
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

// MustLoad wraps Load and panics on error.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
