package ecc

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kochabx/seccure/core/crypto/curve"
	"github.com/kochabx/seccure/core/crypto/securemem"
	"github.com/kochabx/seccure/errors"
	"github.com/kochabx/seccure/log"
)

// State is a handle on the runtime bound to one curve. It is safe for
// concurrent use by the pipelines; Close must not race with them.
type State struct {
	id          uuid.UUID
	rt          *Runtime
	params      *curve.Params
	opts        *Options
	log         zerolog.Logger
	metrics     *Metrics
	initialized bool
	closed      atomic.Bool
}

func newState(rt *Runtime, o *Options) (*State, error) {
	st := &State{
		id:      uuid.New(),
		rt:      rt,
		opts:    o,
		metrics: o.metrics,
	}

	logger := o.logger
	if logger == nil {
		logger = rt.log()
	}
	st.log = logger.With().Str("state_id", st.id.String()).Str("curve", o.Curve).Logger()

	if err := rt.acquire(o); err != nil {
		st.Close()
		return nil, err
	}
	st.initialized = true
	st.metrics.setRefs(rt.Refs())

	params, err := curve.ByName(o.Curve)
	if err != nil {
		st.log.Warn().Err(err).Msg("curve unavailable")
		st.Close()
		return nil, ErrUnknownCurve.WithCause(err)
	}
	st.params = params

	st.log.Debug().Int("refs", rt.Refs()).Bool("secure_random", rt.SecureRandom()).Msg("state opened")
	return st, nil
}

// ID returns the unique identifier used in log output.
func (st *State) ID() string {
	return st.id.String()
}

// Curve returns the bound curve parameters, nil once closed.
func (st *State) Curve() *curve.Params {
	if st == nil || st.closed.Load() {
		return nil
	}
	return st.params
}

// Runtime returns the runtime the State was opened from.
func (st *State) Runtime() *Runtime {
	return st.rt
}

// Initialized reports whether the State holds a runtime reference.
func (st *State) Initialized() bool {
	return st != nil && st.initialized && !st.closed.Load()
}

// Close releases the runtime reference, the curve parameters and the
// options. It is idempotent and safe on a partially opened State.
func (st *State) Close() error {
	if st == nil || !st.closed.CompareAndSwap(false, true) {
		return nil
	}
	if st.initialized {
		st.rt.release()
		st.metrics.setRefs(st.rt.Refs())
	}
	if st.params != nil {
		st.params.Release()
	}
	st.opts = nil
	st.log.Debug().Msg("state closed")
	return nil
}

func (st *State) pool() *securemem.Pool {
	return st.rt.pool
}

// observe records the outcome of op. Failures are logged at Warn with the
// op, state and curve fields; rejected signatures only at Debug.
func (st *State) observe(op string, start time.Time, err error) {
	if st == nil {
		if err != nil {
			log.For("ecc").Warn().Str("op", op).Err(err).Msg("operation failed")
		}
		return
	}

	st.metrics.observe(op, start, err)
	st.metrics.setSecureMemory(st.rt.pool.InUse())

	switch {
	case err == nil:
	case errors.KindOf(err) == errors.KindRejected:
		st.log.Debug().Str("op", op).Err(err).Msg("operation rejected")
	default:
		st.log.Warn().Str("op", op).Err(err).Msg("operation failed")
	}
}
