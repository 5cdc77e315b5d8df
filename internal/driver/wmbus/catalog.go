package wmbus

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidCatalog = errors.New("invalid register catalog")

const (
	minCodeWidth = 2
	maxCodeWidth = 4
	// maxSkip bounds the gap after a code; a wM-Bus frame is at most 255 bytes.
	maxSkip = 255
)

// FieldSpec describes one measurement located by a register code inside the
// telegram. Skip counts bytes between the end of the code and the selector
// (when Selector is set) or the BCD payload. The decoded integer is divided by
// Divisor to produce the physical value.
type FieldSpec struct {
	Name     string  `yaml:"name"`
	Code     uint32  `yaml:"code"`
	Width    int     `yaml:"width"`
	Skip     int     `yaml:"skip"`
	Selector *uint8  `yaml:"selector,omitempty"`
	Digits   int     `yaml:"digits"`
	Divisor  float64 `yaml:"divisor"`
}

// PayloadLen is the number of BCD bytes following the code (and selector).
func (f FieldSpec) PayloadLen() int { return f.Digits / 2 }

// CodeHex renders the register code with its full width, e.g. "0AFDC9FC".
func (f FieldSpec) CodeHex() string {
	return fmt.Sprintf("%0*X", f.Width*2, f.Code)
}

// Validate reports the first structural problem with the spec.
func (f FieldSpec) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: field name is empty", ErrInvalidCatalog)
	}
	if f.Width < minCodeWidth || f.Width > maxCodeWidth {
		return fmt.Errorf("%w: %s: code width %d outside %d..%d", ErrInvalidCatalog, f.Name, f.Width, minCodeWidth, maxCodeWidth)
	}
	if f.Width < maxCodeWidth && f.Code>>(8*uint(f.Width)) != 0 {
		return fmt.Errorf("%w: %s: code 0x%X does not fit in %d bytes", ErrInvalidCatalog, f.Name, f.Code, f.Width)
	}
	if f.Skip < 0 || f.Skip > maxSkip {
		return fmt.Errorf("%w: %s: skip %d outside 0..%d", ErrInvalidCatalog, f.Name, f.Skip, maxSkip)
	}
	if f.Digits <= 0 || f.Digits%2 != 0 || f.Digits/2 > maxBCDBytes {
		return fmt.Errorf("%w: %s: digit count %d must be even and within 2..%d", ErrInvalidCatalog, f.Name, f.Digits, maxBCDBytes*2)
	}
	if !(f.Divisor > 0) || math.IsInf(f.Divisor, 1) {
		return fmt.Errorf("%w: %s: divisor must be positive and finite", ErrInvalidCatalog, f.Name)
	}
	return nil
}

// Catalog is the ordered list of fields a meter type exposes.
type Catalog []FieldSpec

// Validate checks every entry and rejects duplicate names.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidCatalog)
	}
	seen := make(map[string]struct{}, len(c))
	for _, f := range c {
		if err := f.Validate(); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidCatalog, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate a shared catalog.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for i, f := range c {
		if f.Selector != nil {
			sel := *f.Selector
			f.Selector = &sel
		}
		out[i] = f
	}
	return out
}

type catalogFile struct {
	Fields Catalog `yaml:"fields"`
}

// ParseCatalogYAML decodes and validates a catalog document. Unknown keys are
// rejected so a misspelled attribute cannot silently fall back to its zero value:
//
//	fields:
//	  - name: total_energy_consumption_kwh
//	    code: 0x0E03
//	    width: 2
//	    digits: 6
//	    divisor: 1000
func ParseCatalogYAML(data []byte) (Catalog, error) {
	var doc catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalog, err)
	}
	if err := doc.Fields.Validate(); err != nil {
		return nil, err
	}
	return doc.Fields, nil
}

// LoadCatalogFile reads a YAML catalog from disk.
func LoadCatalogFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cat, err := ParseCatalogYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}
