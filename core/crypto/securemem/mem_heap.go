//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package securemem

import "errors"

var errNoLock = errors.New("mlock not supported on this platform")

func allocate(n int) ([]byte, error) {
	return make([]byte, n), nil
}

func release([]byte) error {
	return nil
}

func lock([]byte) error {
	return errNoLock
}

func unlock([]byte) error {
	return nil
}
