//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package arena

import (
	"errors"

	"golang.org/x/sys/unix"
)

// MmapSupported reports whether BackingMmap can be used on this platform.
const MmapSupported = true

func mapAnon(n int) ([]byte, error) {
	return unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func unmap(data []byte) error {
	err := unix.Munmap(data)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}
