package config

import "github.com/spf13/viper"

// Loader defines the interface for configuration loaders
type Loader interface {
	// Load loads the configuration into the target
	Load(target any) error

	// Watch starts watching for configuration changes
	// The callback is invoked when configuration changes are detected
	Watch(callback func()) error
}

// Defaulter is implemented by targets that register their own default values.
// Defaults are registered on the viper instance so that environment variables
// can override keys absent from the file.
type Defaulter interface {
	SetDefaults(v *viper.Viper)
}
