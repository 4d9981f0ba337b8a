package config

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// CartConfig controls eviction of idle in-memory carts.
type CartConfig struct {
	IdleTTL       time.Duration `koanf:"idlettl"`
	SweepInterval time.Duration `koanf:"sweepinterval"`
}

const defaultCartIdleTTL = 2 * time.Hour
const defaultCartSweepInterval = 5 * time.Minute

// String returns a string representation of the CartConfig.
func (c *CartConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Cart ---\n")
	b.WriteString(fmt.Sprintf("  idlettl: %s\n", c.IdleTTL))
	b.WriteString(fmt.Sprintf("  sweepinterval: %s\n", c.SweepInterval))
	return b.String()
}

func (c *CartConfig) Validate() error {
	if c.IdleTTL <= 0 {
		log.Println("Using default value for cart.idlettl")
		c.IdleTTL = defaultCartIdleTTL
	}
	if c.SweepInterval <= 0 {
		log.Println("Using default value for cart.sweepinterval")
		c.SweepInterval = defaultCartSweepInterval
	}
	return nil
}
