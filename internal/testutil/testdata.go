package testutil

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// header is a T1 link header of an Apator (APA) electricity meter with
// address 12345678: L, C, M(2), A(4), version, device type, CI. The length
// byte is filled in by Telegram.
var header = []byte{0x00, 0x44, 0x01, 0x06, 0x78, 0x56, 0x34, 0x12, 0x02, 0x02, 0x7A}

// Telegram prepends the link header to the given application bytes.
func Telegram(parts ...[]byte) []byte {
	out := append([]byte(nil), header...)
	for _, p := range parts {
		out = append(out, p...)
	}
	out[0] = byte(len(out) - 1)
	return out
}

// Bytes decodes a hex string, ignoring spaces, failing the test on error.
func Bytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("hex decode %q: %v", s, err)
	}
	return b
}

// LoadJSON loads a JSON fixture from testdata relative to the repo root.
func LoadJSON(t *testing.T, rel string, v any) {
	t.Helper()
	data := ReadTestdata(t, rel)
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
}

// LoadHex returns a trimmed hex string from testdata relative path.
func LoadHex(t *testing.T, rel string) string {
	t.Helper()
	data := ReadTestdata(t, rel)
	return strings.TrimSpace(string(data))
}

// ReadTestdata returns the raw contents of a testdata file.
func ReadTestdata(t *testing.T, rel string) []byte {
	t.Helper()
	candidates := []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
		filepath.Join("..", "..", "..", "testdata", rel),
	}
	for _, path := range candidates {
		if data, err := os.ReadFile(path); err == nil {
			return data
		}
	}
	t.Fatalf("unable to locate testdata file %s", rel)
	return nil
}
