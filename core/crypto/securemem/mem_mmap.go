//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package securemem

import (
	"golang.org/x/sys/unix"
)

// allocate maps n bytes rounded up to whole pages.
func allocate(n int) ([]byte, error) {
	page := unix.Getpagesize()
	size := (n + page - 1) / page * page
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func release(mem []byte) error {
	return unix.Munmap(mem)
}

func lock(mem []byte) error {
	return unix.Mlock(mem)
}

func unlock(mem []byte) error {
	return unix.Munlock(mem)
}
