// Package config holds the storefront service configuration.
package config

import (
	"strings"

	"github.com/abgdnv/scentshop/pkg/config"
	"github.com/abgdnv/scentshop/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer     config.HTTPConfig           `koanf:"server"`
	Log            config.LogConfig            `koanf:"log"`
	PProf          config.PProfConfig          `koanf:"pprof"`
	Shutdown       config.ShutdownConfig       `koanf:"shutdown"`
	Nats           config.NATSConfig           `koanf:"nats"`
	Telemetry      config.TelemetryConfig      `koanf:"telemetry"`
	CircuitBreaker config.CircuitBreakerConfig `koanf:"circuitbreaker"`
	OrderSink      config.OrderSinkConfig      `koanf:"ordersink"`
	Cart           config.CartConfig           `koanf:"cart"`
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.OrderSink.String())
	b.WriteString(c.CircuitBreaker.String())
	b.WriteString(c.Cart.String())
	b.WriteString(c.Nats.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer,
		&c.Log,
		&c.PProf,
		&c.Shutdown,
		&c.Nats,
		&c.Telemetry,
		&c.CircuitBreaker,
		&c.OrderSink,
		&c.Cart,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
