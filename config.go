package partition

import (
	"time"

	"github.com/pkg/errors"
)

// Backend selects the storage engine of the catalog.
type Backend uint8

const (
	Badger Backend = iota
	Bbolt
)

const (
	GCReclaimIntervalDefault = time.Minute * 5
	GCDiscardRatioDefault    = 0.5
)

// Config contains catalog configuration parameters
type Config struct {
	Backend           Backend
	InMemory          bool
	GCReclaimInterval time.Duration
	GCDiscardRatio    float64
}

func defaultConfig() *Config {
	return &Config{
		Backend:           Badger,
		InMemory:          false,
		GCReclaimInterval: GCReclaimIntervalDefault,
		GCDiscardRatio:    GCDiscardRatioDefault,
	}
}

func (c *Config) applyOptions(opts []Option) (*Config, error) {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.InMemory && c.Backend != Badger {
		return nil, errors.New("in-memory mode requires the badger backend")
	}
	return c, nil
}

// Option is a function that takes a config struct and modifies it
type Option func(c *Config) error

// InMemoryMode allows to enable/disable in-memory mode.
func InMemoryMode(enable bool) Option {
	return func(c *Config) error {
		c.InMemory = enable
		return nil
	}
}

func WithBackend(backend Backend) Option {
	return func(c *Config) error {
		if backend != Badger && backend != Bbolt {
			return errors.Errorf("unknown backend %d", backend)
		}
		c.Backend = backend
		return nil
	}
}

// WithGCReclaimInterval sets how often badger compacts its value log.
func WithGCReclaimInterval(interval time.Duration) Option {
	return func(c *Config) error {
		if interval <= 0 {
			return errors.Errorf("GC reclaim interval must be positive, got %s", interval)
		}
		c.GCReclaimInterval = interval
		return nil
	}
}

func WithGCDiscardRatio(ratio float64) Option {
	return func(c *Config) error {
		if ratio <= 0 || ratio >= 1 {
			return errors.Errorf("GC discard ratio must be in (0, 1), got %v", ratio)
		}
		c.GCDiscardRatio = ratio
		return nil
	}
}
