// Package buf contains overflow-safe range arithmetic for arena offsets.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// Fits reports whether n more bytes can be placed at used without passing limit.
// A request that lands exactly on limit fits.
func Fits(used, n, limit int) bool {
	if used < 0 || n < 0 {
		return false
	}
	end, ok := AddOverflowSafe(used, n)
	return ok && end <= limit
}

// CheckRange validates that [off, off+n) lies inside a region of size limit
// and returns the end offset.
//
//	end, err := buf.CheckRange(len(data), rec.offset, rec.size)
//	if err != nil {
//	    return fmt.Errorf("block %d: %w", rec.handle, err)
//	}
func CheckRange(limit, off, n int) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset: %d", off)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative length: %d", n)
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d", off, n)
	}
	if end > limit {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, limit)
	}
	return end, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
// The result has its capacity clipped so appends cannot spill into
// neighbouring bytes.
func Slice(b []byte, off, n int) ([]byte, bool) {
	end, err := CheckRange(len(b), off, n)
	if err != nil {
		return nil, false
	}
	return b[off:end:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
