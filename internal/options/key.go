package options

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// KeyLen is the size of a Wireless M-Bus AES-128 key in bytes.
const KeyLen = 16

// ParseKeyHex validates and decodes a 32-hex-digit AES key string. Separators
// are ignored as in DecodeHex. An empty input means no key.
func ParseKeyHex(input string) ([]byte, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	clean := stripSeparators(input)
	if len(clean) != KeyLen*2 {
		return nil, fmt.Errorf("AES key must be %d hex digits (%d bytes), got %d", KeyLen*2, KeyLen, len(clean))
	}
	dst := make([]byte, KeyLen)
	if _, err := hex.Decode(dst, []byte(clean)); err != nil {
		return nil, fmt.Errorf("invalid AES key hex: %w", err)
	}
	return dst, nil
}
