//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package arena

// MmapSupported reports whether BackingMmap can be used on this platform.
const MmapSupported = false

func mapAnon(int) ([]byte, error) { return nil, ErrMmapUnsupported }

func unmap([]byte) error { return nil }
