package ecc

import (
	playground "github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/kochabx/seccure/config"
	"github.com/kochabx/seccure/core/crypto/curve"
	"github.com/kochabx/seccure/core/validator"
	"github.com/kochabx/seccure/log"
)

// EnvPrefix prefixes environment overrides read by LoadOptions, e.g.
// SECCURE_CURVE
const EnvPrefix = "SECCURE"

// Options configures a State. A State copies its Options on Open.
type Options struct {
	Curve        string `json:"curve" mapstructure:"curve" validate:"required,curve"`
	SecureRandom *bool  `json:"secure_random" mapstructure:"secure_random"`
	SecureMemory int    `json:"secure_memory" mapstructure:"secure_memory" validate:"gte=0"`

	logger  *log.Logger
	metrics *Metrics
}

// Option configures Options
type Option func(*Options)

// WithCurve selects the curve by name or alias
func WithCurve(name string) Option {
	return func(o *Options) {
		o.Curve = name
	}
}

// WithSecureRandom selects the unbuffered random source
func WithSecureRandom(enable bool) Option {
	return func(o *Options) {
		o.SecureRandom = &enable
	}
}

// WithSecureMemory sets the secure pool size in bytes
func WithSecureMemory(limit int) Option {
	return func(o *Options) {
		o.SecureMemory = limit
	}
}

// WithLogger sets the logger for States opened with these Options
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.logger = l
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		o.metrics = m
	}
}

// NewOptions returns defaults with opts applied.
func NewOptions(opts ...Option) *Options {
	secure := true
	o := &Options{
		Curve:        DefaultCurve,
		SecureRandom: &secure,
		SecureMemory: DefaultSecureMemory,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SetDefaults registers the defaults for file and environment loading.
func (o *Options) SetDefaults(v *viper.Viper) {
	v.SetDefault("curve", DefaultCurve)
	v.SetDefault("secure_random", true)
	v.SetDefault("secure_memory", DefaultSecureMemory)
}

// Validate checks the curve name and pool size.
func (o *Options) Validate() error {
	if err := optionsValidator.Struct(o); err != nil {
		return ErrInvalidOptions.WithCause(err)
	}
	return nil
}

func (o *Options) secureRandom() bool {
	return o.SecureRandom == nil || *o.SecureRandom
}

func (o *Options) clone() *Options {
	c := *o
	if o.SecureRandom != nil {
		v := *o.SecureRandom
		c.SecureRandom = &v
	}
	return &c
}

var optionsValidator = validator.New(
	validator.WithTranslator("en"),
	validator.WithRules(validator.Rule{
		Tag: "curve",
		Func: func(fl playground.FieldLevel) bool {
			return curve.Known(fl.Field().String())
		},
		Message: "{0} must name a supported curve, got {1}",
	}),
)

// LoadOptions reads Options from a YAML, JSON or TOML file found in paths
// (default "."), with SECCURE_* environment overrides.
func LoadOptions(name string, paths ...string) (*Options, error) {
	o := NewOptions()
	if err := newOptionsConfig(o, name, paths...).Load(); err != nil {
		return nil, err
	}
	return o, nil
}

func newOptionsConfig(o *Options, name string, paths ...string) *config.Config {
	return config.New(o,
		config.WithFile(name, paths...),
		config.WithEnvPrefix(EnvPrefix),
		config.WithValidator(optionsValidator),
	)
}

// OptionsWatcher keeps Options in sync with a config file. Reloaded values
// only affect States opened afterwards.
type OptionsWatcher struct {
	cfg  *config.Config
	opts *Options
}

// WatchOptions loads Options from a file and reloads them on change.
func WatchOptions(name string, paths ...string) (*OptionsWatcher, error) {
	o := NewOptions()
	cfg := newOptionsConfig(o, name, paths...)
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	if err := cfg.Watch(); err != nil {
		return nil, err
	}
	return &OptionsWatcher{cfg: cfg, opts: o}, nil
}

// Current returns a copy of the latest Options.
func (w *OptionsWatcher) Current() *Options {
	var out *Options
	w.cfg.Read(func(any) {
		out = w.opts.clone()
	})
	return out
}
