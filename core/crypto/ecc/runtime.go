package ecc

import (
	"crypto/rand"
	"io"
	"sync"

	"github.com/kochabx/seccure/core/crypto/securemem"
	"github.com/kochabx/seccure/log"
)

// Runtime is the process-wide crypto runtime shared by every State opened
// from it. The first Open performs provider negotiation and pool setup; the
// last Close tears the pool down.
type Runtime struct {
	mu        sync.Mutex
	refs      int
	setups    int
	teardowns int

	provider Provider
	pool     *securemem.Pool
	logger   *log.Logger
	rand     io.Reader
	secure   bool
}

// RuntimeOption configures a Runtime
type RuntimeOption func(*Runtime)

// WithProvider replaces the native primitive provider
func WithProvider(p Provider) RuntimeOption {
	return func(rt *Runtime) {
		rt.provider = p
	}
}

// WithPool sets the secure memory pool
func WithPool(p *securemem.Pool) RuntimeOption {
	return func(rt *Runtime) {
		rt.pool = p
	}
}

// WithRuntimeLogger sets the logger used for setup and teardown diagnostics
func WithRuntimeLogger(l *log.Logger) RuntimeOption {
	return func(rt *Runtime) {
		rt.logger = l
	}
}

// NewRuntime creates an idle runtime.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	rt := &Runtime{
		provider: NativeProvider{},
		pool:     securemem.NewPool(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

var (
	defaultRuntime     *Runtime
	defaultRuntimeOnce sync.Once
)

// DefaultRuntime returns the lazily created process runtime used by Open.
func DefaultRuntime() *Runtime {
	defaultRuntimeOnce.Do(func() {
		defaultRuntime = NewRuntime()
	})
	return defaultRuntime
}

// log returns the injected logger, or the redacting global logger tagged
// with component=ecc.
func (rt *Runtime) log() *log.Logger {
	if rt.logger != nil {
		return rt.logger
	}
	return log.For("ecc")
}

// acquire increments the reference count, running setup on the first call.
// A provider version mismatch fails without touching the count.
func (rt *Runtime) acquire(o *Options) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.refs > 0 {
		rt.refs++
		return nil
	}

	p := rt.provider
	if !compatible(p) {
		rt.log().Error().
			Str("provider", p.Name()).
			Str("version", p.Version()).
			Str("required", RequiredProviderVersion).
			Stringer("capabilities", p.Capabilities()).
			Msg("primitive provider is incompatible")
		return ErrProviderVersion.WithMetadata(map[string]string{
			"provider": p.Name(),
			"version":  p.Version(),
		})
	}

	if err := rt.pool.Init(o.SecureMemory); err != nil {
		rt.log().Warn().Err(err).Int("limit", o.SecureMemory).Msg("secure memory is not locked")
	}

	rt.rand, rt.secure = p.DefaultRandom(), false
	if o.secureRandom() {
		if err := rt.enableSecureRandom(p); err != nil {
			rt.log().Warn().Err(err).Msg("secure random source unavailable, using default")
		}
	}

	rt.setups++
	rt.refs = 1
	return nil
}

func (rt *Runtime) enableSecureRandom(p Provider) error {
	if !p.Capabilities().Has(CapSecureRandom) {
		return ErrProviderVersion.WithCausef("provider %s lacks secure random", p.Name())
	}
	r, err := p.SecureRandom()
	if err != nil {
		return err
	}
	sample := make([]byte, 1)
	if _, err := io.ReadFull(r, sample); err != nil {
		return err
	}
	rt.rand, rt.secure = r, true
	return nil
}

// release decrements the reference count and tears the runtime down at zero.
func (rt *Runtime) release() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.refs == 0 {
		return
	}
	rt.refs--
	if rt.refs > 0 {
		return
	}

	if err := rt.pool.Term(); err != nil {
		rt.log().Warn().Err(err).Msg("secure memory teardown failed")
	}
	rt.rand, rt.secure = nil, false
	rt.teardowns++
}

func (rt *Runtime) random() io.Reader {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.rand == nil {
		return rand.Reader
	}
	return rt.rand
}

// Refs returns the number of live States.
func (rt *Runtime) Refs() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.refs
}

// Initialized reports whether the runtime is set up.
func (rt *Runtime) Initialized() bool {
	return rt.Refs() > 0
}

// Setups returns how many times the runtime has been set up.
func (rt *Runtime) Setups() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.setups
}

// Teardowns returns how many times the runtime has been torn down.
func (rt *Runtime) Teardowns() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.teardowns
}

// SecureRandom reports whether the runtime reads randomness unbuffered.
func (rt *Runtime) SecureRandom() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.secure
}

// Pool returns the secure memory pool.
func (rt *Runtime) Pool() *securemem.Pool {
	return rt.pool
}

// Open acquires the runtime and binds a curve, returning a new State.
func (rt *Runtime) Open(opts *Options) (*State, error) {
	if opts == nil {
		opts = NewOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return newState(rt, opts.clone())
}

// Open opens a State on the default runtime.
func Open(opts ...Option) (*State, error) {
	return DefaultRuntime().Open(NewOptions(opts...))
}
