package amiplus

import (
	"github.com/sirupsen/logrus"

	"github.com/d21d3q/amiplus/internal/driver"
	"github.com/d21d3q/amiplus/internal/driver/wmbus"
)

// Name is the canonical driver name.
const Name = "amiplus"

// Driver decodes Apator Amiplus electricity meter telegrams.
type Driver struct {
	key     []byte
	catalog wmbus.Catalog
	scanner wmbus.Scanner
}

var _ driver.Driver = (*Driver)(nil)

// Option customises a Driver.
type Option func(*Driver) error

// WithCatalog replaces the built-in register catalog.
func WithCatalog(cat wmbus.Catalog) Option {
	return func(d *Driver) error {
		if err := cat.Validate(); err != nil {
			return err
		}
		d.catalog = cat.Clone()
		return nil
	}
}

// WithLogger routes register traces to log instead of the standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(d *Driver) error {
		d.scanner.Log = log
		return nil
	}
}

// New creates a driver. The key is kept for the host that decrypts telegrams
// upstream; decoding never uses it.
func New(key []byte, opts ...Option) (*Driver, error) {
	d := &Driver{catalog: defaultCatalog}
	if len(key) > 0 {
		d.key = append([]byte(nil), key...)
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Name implements driver.Driver.
func (*Driver) Name() string { return Name }

// Key returns a copy of the pre-shared key, or nil.
func (d *Driver) Key() []byte {
	if d.key == nil {
		return nil
	}
	return append([]byte(nil), d.key...)
}

// Decode scans the telegram once per catalog field and collects every value
// found. It returns driver.ErrNoValues when none of the fields are present.
func (d *Driver) Decode(telegram []byte) (driver.Values, error) {
	values := make(driver.Values, len(d.catalog))
	for _, spec := range d.catalog {
		if m, ok := d.scanner.Scan(telegram, spec); ok {
			values[spec.Name] = m.Value
		}
	}
	if len(values) == 0 {
		return nil, driver.ErrNoValues
	}
	return values, nil
}
