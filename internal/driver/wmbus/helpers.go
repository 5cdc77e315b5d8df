package wmbus

import (
	"errors"
	"fmt"
)

// HeaderLen is the fixed link header length (L, C, M, A, version, type, CI)
// that precedes the application data in a framed telegram.
const HeaderLen = 11

// maxBCDBytes keeps decoded values inside uint64 (18 digits).
const maxBCDBytes = 9

var (
	ErrInvalidBCD = errors.New("invalid BCD digit")
	ErrBCDTooLong = errors.New("BCD field too long")
)

// DecodeBCDBigEndian converts a BCD run (most significant byte first, high
// nibble first) to an integer. Any nibble above 9 yields ErrInvalidBCD.
func DecodeBCDBigEndian(b []byte) (uint64, error) {
	if len(b) > maxBCDBytes {
		return 0, fmt.Errorf("%w: %d bytes", ErrBCDTooLong, len(b))
	}
	var value uint64
	for _, by := range b {
		high := uint64(by >> 4)
		low := uint64(by & 0x0F)
		if high > 9 || low > 9 {
			return 0, fmt.Errorf("%w: 0x%02X", ErrInvalidBCD, by)
		}
		value = value*100 + high*10 + low
	}
	return value, nil
}

// readCode assembles width bytes starting at b[0] into a big-endian integer.
// Callers guarantee len(b) >= width.
func readCode(b []byte, width int) uint32 {
	var code uint32
	for i := 0; i < width; i++ {
		code = code<<8 | uint32(b[i])
	}
	return code
}
