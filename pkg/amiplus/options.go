package amiplus

import (
	"github.com/sirupsen/logrus"

	drvamiplus "github.com/d21d3q/amiplus/internal/driver/amiplus"
	internalopts "github.com/d21d3q/amiplus/internal/options"
)

// Options configures decoding.
type Options struct {
	// KeyHex is the meter's AES key (32 hex digits). It is validated and handed
	// to the driver for the host's decryption step; decoding does not use it.
	KeyHex string
	// Catalog overrides the built-in register catalog when non-empty.
	Catalog Catalog
	Logger  logrus.FieldLogger
}

func (opts Options) driver() (*drvamiplus.Driver, error) {
	key, err := internalopts.ParseKeyHex(opts.KeyHex)
	if err != nil {
		return nil, err
	}
	var driverOpts []drvamiplus.Option
	if len(opts.Catalog) > 0 {
		driverOpts = append(driverOpts, drvamiplus.WithCatalog(opts.Catalog))
	}
	if opts.Logger != nil {
		driverOpts = append(driverOpts, drvamiplus.WithLogger(opts.Logger))
	}
	return drvamiplus.New(key, driverOpts...)
}
