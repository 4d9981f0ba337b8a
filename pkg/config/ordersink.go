package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// OrderSinkConfig points at the external order-placement endpoint.
type OrderSinkConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the order sink configuration.
func (c *OrderSinkConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Order Sink ---\n")
	b.WriteString(fmt.Sprintf("  url: %s\n", c.URL))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *OrderSinkConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("order sink URL is not configured")
	}
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("order sink URL must be an absolute http(s) URL: %s", c.URL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("order sink timeout is not configured")
	}
	return nil
}
