package quantities

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds engine settings read from the environment.
type Config struct {
	LogLevel         string `env:"QUANTITIES_LOG_LEVEL"         envDefault:"off"`
	LogFormat        string `env:"QUANTITIES_LOG_FORMAT"        envDefault:"text"`
	SparseGrowth     string `env:"QUANTITIES_SPARSE_GROWTH"     envDefault:"amortized"`
	DisplayPrecision int    `env:"QUANTITIES_DISPLAY_PRECISION" envDefault:"3"`
	DefaultStorage   string `env:"QUANTITIES_DEFAULT_STORAGE"   envDefault:"dense"`
}

// LoadConfigFromEnv returns the engine configuration with defaults.
func LoadConfigFromEnv() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{
			LogLevel:         "off",
			LogFormat:        "text",
			SparseGrowth:     "amortized",
			DisplayPrecision: DefaultDisplayPrecision,
			DefaultStorage:   "dense",
		}
	}
	return cfg
}

// Options converts cfg into options for Configure.
func (c Config) Options() ([]Option, error) {
	var opts []Option

	switch level := strings.ToLower(c.LogLevel); level {
	case "", "off", "none":
		opts = append(opts, WithLogger(NoopLogger()))
	default:
		var l slog.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("quantities: log level %q: %w", c.LogLevel, err)
		}
		switch strings.ToLower(c.LogFormat) {
		case "", "text":
			opts = append(opts, WithLogLevel(l))
		case "json":
			opts = append(opts, WithLogger(NewJSONLogger(l)))
		default:
			return nil, fmt.Errorf("quantities: unknown log format %q", c.LogFormat)
		}
	}

	g, err := ParseSparseGrowth(c.SparseGrowth)
	if err != nil {
		return nil, err
	}
	st, err := ParseStorageType(c.DefaultStorage)
	if err != nil {
		return nil, err
	}

	return append(opts,
		WithSparseGrowth(g),
		WithDisplayPrecision(c.DisplayPrecision),
		WithDefaultStorage(st),
	), nil
}
