package testcfg

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds test-specific configuration for lcd client acceptance tests
type Config struct {
	Status      string        `env:"LCD_TEST_STATUS" envDefault:"BOND_STATUS_BONDED"`
	Limit       uint64        `env:"LCD_TEST_LIMIT" envDefault:"10"`
	HTTPTimeout time.Duration `env:"LCD_TEST_HTTP_TIMEOUT" envDefault:"30s"`
	BaseURL     string        `env:"LCD_TEST_BASE_URL" envDefault:"https://cosmos-rest.publicnode.com"`
}

// parseConfig wraps env.Parse to return (Config, error) for use with env.Must
func parseConfig() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}

// New loads test configuration from environment variables
func New() Config {
	return env.Must(parseConfig())
}
