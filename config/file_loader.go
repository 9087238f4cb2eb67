package config

import (
	"path"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/kochabx/seccure/core/validator"
	"github.com/kochabx/seccure/errors"
)

var (
	ErrNotFound = errors.New(404, "config file not found")
	ErrParse    = errors.Decode("config parse error")
	ErrInvalid  = errors.Precondition("config validation failed")
)

// FileLoader loads configuration from file
type FileLoader struct {
	viper    *viper.Viper
	validate validator.Validator
	name     string
	paths    []string
}

// NewFileLoader creates a new file loader
func NewFileLoader(name string, paths []string, v *viper.Viper, validate validator.Validator) *FileLoader {
	return NewFileLoaderWithPrefix(name, paths, "", v, validate)
}

// NewFileLoaderWithPrefix creates a file loader whose environment overrides
// are read from PREFIX_KEY variables
func NewFileLoaderWithPrefix(name string, paths []string, prefix string, v *viper.Viper, validate validator.Validator) *FileLoader {
	// Determine config type from file extension
	extension := path.Ext(name)
	configType := strings.TrimPrefix(extension, ".")

	for _, configPath := range paths {
		v.AddConfigPath(configPath)
	}

	v.SetConfigName(strings.TrimSuffix(name, extension))
	v.SetConfigType(configType)

	if prefix != "" {
		v.SetEnvPrefix(prefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &FileLoader{
		viper:    v,
		paths:    paths,
		name:     name,
		validate: validate,
	}
}

// Load implements Loader interface
func (l *FileLoader) Load(target any) error {
	// Defaults must be registered before reading so unset keys still unmarshal
	if d, ok := target.(Defaulter); ok {
		d.SetDefaults(l.viper)
	}

	if err := l.viper.ReadInConfig(); err != nil {
		return ErrNotFound.WithCause(err)
	}

	if err := l.viper.Unmarshal(target); err != nil {
		return ErrParse.WithCause(err)
	}

	if l.validate != nil {
		if err := l.validate.Struct(target); err != nil {
			return ErrInvalid.WithCause(err)
		}
	}

	return nil
}

// Watch implements Loader interface
func (l *FileLoader) Watch(callback func()) error {
	l.viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		if callback != nil {
			callback()
		}
	})

	l.viper.WatchConfig()
	return nil
}
