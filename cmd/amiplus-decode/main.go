package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/d21d3q/amiplus/internal/config"
	"github.com/d21d3q/amiplus/pkg/amiplus"
)

type flags struct {
	key        string
	configPath string
	catalog    string
	format     string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "amiplus-decode [hex]",
		Short: "Decode Apator Amiplus Wireless M-Bus telegrams",
		Long: "amiplus-decode turns decrypted Amiplus telegrams into energy, power and voltage readings.\n" +
			"Without an argument it reads one hex telegram per line from stdin.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			d, err := newDecoder(cfg)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return d.runInteractive(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return d.run(cmd.OutOrStdout(), args[0])
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.key, "key", "", "hex-encoded 16-byte AES key (32 hex chars), passed through to the driver")
	fl.StringVar(&f.configPath, "config", "", "YAML config file")
	fl.StringVar(&f.catalog, "catalog", "", "YAML register catalog replacing the built-in one")
	fl.StringVar(&f.format, "format", config.FormatJSON, "output format: json or cbor (hex encoded)")
	fl.StringVar(&f.logLevel, "log-level", "info", "log level (trace prints every matched register)")
	return cmd
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx := context.Background()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

// resolveConfig layers explicitly set flags over the config file.
func resolveConfig(cmd *cobra.Command, f flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	changed := cmd.Flags().Changed
	if changed("key") {
		cfg.Key = f.key
	}
	if changed("catalog") {
		cfg.Catalog = f.catalog
	}
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

type decoder struct {
	opts   amiplus.Options
	format string
	log    logrus.FieldLogger
}

func newDecoder(cfg config.Config) (*decoder, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(level)
	opts := amiplus.Options{KeyHex: cfg.Key, Logger: logrus.StandardLogger()}
	if cfg.Catalog != "" {
		cat, err := amiplus.LoadCatalogFile(cfg.Catalog)
		if err != nil {
			return nil, err
		}
		logrus.WithFields(logrus.Fields{"path": cfg.Catalog, "fields": len(cat)}).Debug("loaded register catalog")
		opts.Catalog = cat
	}
	return &decoder{opts: opts, format: cfg.Format, log: logrus.StandardLogger()}, nil
}

func (d *decoder) runInteractive(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	d.log.Info("amiplus decode mode. Paste a hex telegram and press Enter (Ctrl+D to exit).")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := d.run(out, line); err != nil {
			if errors.Is(err, amiplus.ErrNoValues) {
				d.log.WithError(err).Warn("telegram decoded without measurements")
				continue
			}
			d.log.WithError(err).Error("failed to decode telegram")
		}
	}
	return scanner.Err()
}

func (d *decoder) run(out io.Writer, raw string) error {
	result, err := amiplus.DecodeHexWithOptions(raw, d.opts)
	if err != nil {
		return err
	}
	switch d.format {
	case config.FormatCBOR:
		data, err := result.CBOR()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, strings.ToUpper(hex.EncodeToString(data)))
	default:
		fmt.Fprintln(out, result.String())
	}
	return nil
}
