// Package securemem is a bounded pool of wiped, page-locked buffers for key
// material.
//
// On platforms with mlock every buffer lives in its own anonymous mapping so
// it can be locked and unlocked without touching neighbouring allocations.
// Elsewhere buffers come from the Go heap and are only wiped on release.
package securemem

import (
	"sync"

	"github.com/kochabx/seccure/core/crypto/internal"
	"github.com/kochabx/seccure/errors"
)

// DefaultLimit is the default pool capacity. The limit counts requested bytes,
// not pages: on mmap platforms every buffer occupies at least one whole page,
// so the locked footprint reported by Mapped can be far larger than InUse.
const DefaultLimit = 64 * 1024

var (
	ErrInactive        = errors.Exhausted("securemem: pool not initialized")
	ErrExhausted       = errors.Exhausted("securemem: out of secure memory")
	ErrLockUnavailable = errors.Provider("securemem: memory locking unavailable")
	ErrInvalidSize     = errors.Precondition("securemem: invalid allocation size")
)

// Pool hands out secure buffers up to a byte limit.
type Pool struct {
	mu      sync.Mutex
	limit   int
	inUse   int
	mapped  int
	active  bool
	locked  bool
	buffers map[*Buffer]struct{}
}

// NewPool returns an inactive pool; call Init before allocating.
func NewPool() *Pool {
	return &Pool{buffers: make(map[*Buffer]struct{})}
}

// Init activates the pool with the given capacity (DefaultLimit if <= 0) and
// checks whether memory can be locked. When it cannot, the pool still works
// with unlocked buffers and ErrLockUnavailable is returned so the caller can
// warn about it.
func (p *Pool) Init(limit int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if limit <= 0 {
		limit = DefaultLimit
	}
	p.limit = limit
	p.active = true

	mem, err := allocate(1)
	if err != nil {
		p.locked = false
		return ErrLockUnavailable.WithCause(err)
	}
	defer release(mem)

	if err := lock(mem); err != nil {
		p.locked = false
		return ErrLockUnavailable.WithCause(err)
	}
	unlock(mem)
	p.locked = true
	return nil
}

// Term wipes and frees every outstanding buffer and deactivates the pool.
func (p *Pool) Term() error {
	p.mu.Lock()
	outstanding := make([]*Buffer, 0, len(p.buffers))
	for b := range p.buffers {
		outstanding = append(outstanding, b)
	}
	p.mu.Unlock()

	for _, b := range outstanding {
		b.Free()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = false
	p.locked = false
	p.inUse = 0
	p.mapped = 0
	return nil
}

// Active reports whether Init has been called without a matching Term.
func (p *Pool) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Locked reports whether buffers are page-locked.
func (p *Pool) Locked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.locked
}

// InUse returns the number of requested bytes currently allocated. This is
// the figure checked against Limit.
func (p *Pool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inUse
}

// Mapped returns the bytes actually backing live buffers, rounded up to whole
// pages where buffers are mmap'd.
func (p *Pool) Mapped() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mapped
}

// Limit returns the pool capacity in requested bytes.
func (p *Pool) Limit() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.limit
}

// Alloc returns a zeroed buffer of n bytes.
func (p *Pool) Alloc(n int) (*Buffer, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}

	p.mu.Lock()
	if !p.active {
		p.mu.Unlock()
		return nil, ErrInactive
	}
	if p.inUse+n > p.limit {
		p.mu.Unlock()
		return nil, ErrExhausted.WithCausef("requested %d, in use %d of %d", n, p.inUse, p.limit)
	}
	p.inUse += n
	wantLock := p.locked
	p.mu.Unlock()

	mem, err := allocate(n)
	if err != nil {
		p.mu.Lock()
		p.inUse -= n
		p.mu.Unlock()
		return nil, ErrExhausted.WithCause(err)
	}

	b := &Buffer{pool: p, mem: mem, data: mem[:n]}
	if wantLock && lock(mem) == nil {
		b.locked = true
	}

	p.mu.Lock()
	p.buffers[b] = struct{}{}
	p.mapped += len(mem)
	p.mu.Unlock()
	return b, nil
}

// Copy allocates a buffer holding a copy of src.
func (p *Pool) Copy(src []byte) (*Buffer, error) {
	b, err := p.Alloc(len(src))
	if err != nil {
		return nil, err
	}
	copy(b.data, src)
	return b, nil
}

func (p *Pool) forget(b *Buffer, n, mapped int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.buffers[b]; ok {
		delete(p.buffers, b)
		p.inUse -= n
		p.mapped -= mapped
	}
}

// Buffer is a secure allocation. It must be released with Free.
type Buffer struct {
	mu     sync.Mutex
	pool   *Pool
	mem    []byte
	data   []byte
	locked bool
}

// Bytes returns the buffer contents, or nil after Free.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// Len returns the usable length.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Locked reports whether the buffer's pages are locked in memory.
func (b *Buffer) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locked
}

// Wipe zeroes the contents without releasing the buffer.
func (b *Buffer) Wipe() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	internal.Wipe(b.mem)
}

// Free wipes, unlocks and releases the buffer. Calling Free twice is safe.
func (b *Buffer) Free() {
	if b == nil {
		return
	}
	b.mu.Lock()
	if b.mem == nil {
		b.mu.Unlock()
		return
	}
	n, mapped := len(b.data), len(b.mem)
	internal.Wipe(b.mem)
	if b.locked {
		unlock(b.mem)
		b.locked = false
	}
	release(b.mem)
	b.mem, b.data = nil, nil
	b.mu.Unlock()

	b.pool.forget(b, n, mapped)
}
