package ecc

import (
	"bufio"
	"crypto/rand"
	"io"
	"strings"
	"sync"

	"golang.org/x/mod/semver"
)

// Capability is a bit set of primitives a Provider offers.
type Capability uint8

const (
	CapDigest Capability = 1 << iota
	CapCipher
	CapMAC
	CapSecureRandom
	CapSecureMemory
)

// requiredCapabilities must all be present or Open fails
const requiredCapabilities = CapDigest | CapCipher | CapMAC

func (c Capability) Has(other Capability) bool {
	return c&other == other
}

func (c Capability) String() string {
	names := []string{"digest", "cipher", "mac", "secure-random", "secure-memory"}
	var parts []string
	for i, name := range names {
		if c&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Provider is the primitive provider a Runtime negotiates with on first Open.
type Provider interface {
	// Name identifies the provider in logs
	Name() string
	// Version is a semantic version such as "v1.2.0"
	Version() string
	// Capabilities lists the primitives the provider offers
	Capabilities() Capability
	// SecureRandom returns the unbuffered system source
	SecureRandom() (io.Reader, error)
	// DefaultRandom returns the buffered source used when secure mode is off
	DefaultRandom() io.Reader
}

// compatible reports whether p can be used at all.
func compatible(p Provider) bool {
	v := p.Version()
	if !semver.IsValid(v) {
		return false
	}
	if semver.Compare(v, RequiredProviderVersion) < 0 {
		return false
	}
	return p.Capabilities().Has(requiredCapabilities)
}

// NativeProvider backs the engine with the Go standard library and x/crypto.
type NativeProvider struct{}

func (NativeProvider) Name() string    { return "go-native" }
func (NativeProvider) Version() string { return "v1.0.0" }

func (NativeProvider) Capabilities() Capability {
	return CapDigest | CapCipher | CapMAC | CapSecureRandom | CapSecureMemory
}

func (NativeProvider) SecureRandom() (io.Reader, error) {
	return rand.Reader, nil
}

func (NativeProvider) DefaultRandom() io.Reader {
	return newBufferedRandom(rand.Reader)
}

// bufferedRandom stages randomness in an ordinary heap buffer.
type bufferedRandom struct {
	mu sync.Mutex
	r  *bufio.Reader
}

func newBufferedRandom(src io.Reader) *bufferedRandom {
	return &bufferedRandom{r: bufio.NewReaderSize(src, 256)}
}

func (b *bufferedRandom) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return io.ReadFull(b.r, p)
}
