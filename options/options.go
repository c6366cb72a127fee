// Package options handles garnet.toml runtime configuration.
package options

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultCache is the fallback size for every lookup cache.
const DefaultCache = 8

// Options represents a garnet.toml runtime configuration.
type Options struct {
	Cache CacheOptions `toml:"cache"`
}

// CacheOptions configures per-site-kind lookup cache limits. A limit left
// at zero inherits Default.
type CacheOptions struct {
	Default                 int `toml:"default"`
	BindingLocalVariableGet int `toml:"binding-local-variable-get"`
	BindingLocalVariableSet int `toml:"binding-local-variable-set"`
}

// Default returns the built-in configuration.
func Default() Options {
	var o Options
	o.finish()
	return o
}

// Load parses a garnet.toml file from the given directory. A missing file
// yields the default configuration.
func Load(dir string) (Options, error) {
	path := filepath.Join(dir, "garnet.toml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Options{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var o Options
	if err := toml.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if err := o.validate(); err != nil {
		return Options{}, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	o.finish()
	return o, nil
}

// validate rejects explicitly configured values that make no sense.
func (o *Options) validate() error {
	for _, c := range []struct {
		name  string
		value int
	}{
		{"cache.default", o.Cache.Default},
		{"cache.binding-local-variable-get", o.Cache.BindingLocalVariableGet},
		{"cache.binding-local-variable-set", o.Cache.BindingLocalVariableSet},
	} {
		if c.value < 0 {
			return fmt.Errorf("%s must not be negative, got %d", c.name, c.value)
		}
	}
	return nil
}

// finish fills unset limits from the default chain.
func (o *Options) finish() {
	if o.Cache.Default == 0 {
		o.Cache.Default = DefaultCache
	}
	if o.Cache.BindingLocalVariableGet == 0 {
		o.Cache.BindingLocalVariableGet = o.Cache.Default
	}
	if o.Cache.BindingLocalVariableSet == 0 {
		o.Cache.BindingLocalVariableSet = o.Cache.Default
	}
}
