// Package amiplus decodes Apator Amiplus electricity meter telegrams that were
// already received, framed and decrypted by the host.
package amiplus

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/d21d3q/amiplus/internal/driver"
	drvamiplus "github.com/d21d3q/amiplus/internal/driver/amiplus"
	"github.com/d21d3q/amiplus/internal/driver/wmbus"
	internalopts "github.com/d21d3q/amiplus/internal/options"
)

// ErrNoValues is returned when the telegram carried none of the catalog fields.
var ErrNoValues = driver.ErrNoValues

type (
	FieldSpec = wmbus.FieldSpec
	Catalog   = wmbus.Catalog
)

// DefaultCatalog returns the built-in Amiplus register catalog.
func DefaultCatalog() Catalog { return drvamiplus.Catalog() }

// LoadCatalogFile reads a YAML register catalog.
func LoadCatalogFile(path string) (Catalog, error) { return wmbus.LoadCatalogFile(path) }

// Result captures the outcome of DecodeHex.
type Result struct {
	Driver    string
	RawHex    string
	ByteCount int
	Fields    map[string]float64
}

var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}
}

func (r Result) summary() map[string]any {
	summary := map[string]any{
		"driver":     r.Driver,
		"byte_count": r.ByteCount,
		"raw_hex":    r.RawHex,
	}
	if len(r.Fields) > 0 {
		summary["fields"] = r.Fields
	}
	return summary
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	data, err := json.MarshalIndent(r.summary(), "", "  ")
	if err != nil {
		return fmt.Sprintf("driver: %s bytes:%d raw:%s (marshal error: %v)", r.Driver, r.ByteCount, r.RawHex, err)
	}
	return string(data)
}

// CBOR encodes the result deterministically (canonical key order).
func (r Result) CBOR() ([]byte, error) {
	return cborEncMode.Marshal(r.summary())
}

// DecodeHex decodes a hex telegram with the built-in catalog.
func DecodeHex(raw string) (Result, error) {
	return DecodeHexWithOptions(raw, Options{})
}

// DecodeHexWithOptions decodes a hex telegram. Malformed input yields an error
// and a zero Result; a well formed telegram without any known register yields
// the populated Result together with ErrNoValues.
func DecodeHexWithOptions(raw string, opts Options) (Result, error) {
	drv, err := opts.driver()
	if err != nil {
		return Result{}, err
	}
	data, err := internalopts.DecodeHex(raw)
	if err != nil {
		return Result{}, err
	}
	result := Result{
		Driver:    drv.Name(),
		RawHex:    strings.ToUpper(hex.EncodeToString(data)),
		ByteCount: len(data),
	}
	values, err := drv.Decode(data)
	if err != nil {
		if errors.Is(err, driver.ErrNoValues) {
			return result, err
		}
		return Result{}, err
	}
	result.Fields = values
	return result, nil
}
