package rifx

import (
	"errors"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"

	"github.com/arloliu/rifx/compress"
	"github.com/arloliu/rifx/internal/options"
)

// Config holds the settings used to parse a movie and resolve its payloads.
type Config struct {
	logger   log.Interface
	registry *compress.Registry
	strict   bool
}

func newConfig() *Config {
	return &Config{
		logger:   &log.Logger{Handler: discard.New(), Level: log.InfoLevel},
		registry: compress.DefaultRegistry(),
	}
}

// Option configures Parse, Open and NewReader.
type Option = options.Option[*Config]

// WithLogger routes parse warnings to logger. The default discards them.
func WithLogger(logger log.Interface) Option {
	return options.New("WithLogger", func(c *Config) error {
		if logger == nil {
			return errors.New("logger is nil")
		}
		c.logger = logger

		return nil
	})
}

// WithCompressionTable replaces the compression identifiers known to the
// payload resolver.
func WithCompressionTable(table compress.Table) Option {
	return options.New("WithCompressionTable", func(c *Config) error {
		if len(table) == 0 {
			return errors.New("compression table is empty")
		}
		c.registry = compress.NewRegistry(table)

		return nil
	})
}

// WithRegistry uses registry to resolve compression identifiers and decode
// payloads. It allows decoders for sound or font map payloads to be plugged in.
func WithRegistry(registry *compress.Registry) Option {
	return options.New("WithRegistry", func(c *Config) error {
		if registry == nil {
			return errors.New("registry is nil")
		}
		c.registry = registry

		return nil
	})
}

// WithStrict turns recoverable table problems into parse errors and makes the
// payload resolver refuse entries with an unsupported compression.
func WithStrict(strict bool) Option {
	return options.NoError("WithStrict", func(c *Config) {
		c.strict = strict
	})
}

func buildConfig(opts []Option) (*Config, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}
