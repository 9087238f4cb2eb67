package config

import (
	"reflect"
	"sync"

	"github.com/spf13/viper"

	"github.com/kochabx/seccure/core/validator"
	"github.com/kochabx/seccure/log"
)

// Config manages application configuration
type Config struct {
	mu        sync.RWMutex        // protects concurrent access to target
	loadMu    sync.Mutex          // serializes loader calls
	viper     *viper.Viper        // viper instance for configuration management
	validate  validator.Validator // validator for configuration validation
	target    any                 // target is the destination where the configuration will be unmarshalled
	loader    Loader              // loader is responsible for loading configuration
	watch     bool                // whether Watch installs a file watcher
	name      string              // file name for the default loader
	paths     []string            // search paths for the default loader
	envPrefix string              // environment variable prefix for the default loader
	onChange  []func()            // invoked after a successful reload
}

// New creates a new Config instance with the given options
// If no loader is provided, a default FileLoader will be created with:
//   - filename: "seccure.yaml"
//   - paths: ["."]
func New(target any, opts ...Option) *Config {
	c := &Config{
		viper:    viper.New(),
		validate: validator.Validate,
		target:   target,
		watch:    true,
		name:     "seccure.yaml",
		paths:    []string{"."},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.loader == nil {
		c.loader = NewFileLoaderWithPrefix(c.name, c.paths, c.envPrefix, c.viper, c.validate)
	}

	return c
}

// Load reads the configuration into a staging value and copies it into the
// target only when loading and validation succeed, so a bad file never leaks
// into the live configuration.
func (c *Config) Load() error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	staged, ok := stage(c.target)
	if !ok {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.loader.Load(c.target)
	}

	if err := c.loader.Load(staged.Interface()); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	commit(reflect.ValueOf(c.target).Elem(), staged.Elem())
	return nil
}

// stage returns a zero value of the struct target points to.
func stage(target any) (reflect.Value, bool) {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	return reflect.New(v.Elem().Type()), true
}

// commit copies the exported fields of src into dst; unexported state such
// as injected loggers stays untouched.
func commit(dst, src reflect.Value) {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			dst.Field(i).Set(src.Field(i))
		}
	}
}

// Reload reloads the configuration from the loader
func (c *Config) Reload() error {
	if err := c.Load(); err != nil {
		return err
	}

	for _, fn := range c.onChange {
		fn()
	}
	return nil
}

// Read runs fn with the current target under a read lock
func (c *Config) Read(fn func(target any)) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fn(c.target)
}

// Watch sets up automatic configuration watching if enabled
func (c *Config) Watch() error {
	if !c.watch {
		return nil
	}

	return c.loader.Watch(func() {
		log.Info().Msg("config change detected")

		if err := c.Reload(); err != nil {
			log.Error().Err(err).Msg("failed to reload config after change")
			return
		}

		log.Info().Msg("config reloaded successfully")
	})
}

// GetViper returns the underlying viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.viper
}
