// Package config loads the pipeline configuration from YAML with
// environment overrides for credentials.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"nuclear-grid-lab/internal/domain"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	ENTSOE     ENTSOEConfig     `yaml:"entsoe"`
	Terna      TernaConfig      `yaml:"terna"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Clickhouse ClickhouseConfig `yaml:"clickhouse"`
	Simulation SimulationConfig `yaml:"simulation"`
	Countries  []CountryConfig  `yaml:"countries"`
	Fetch      FetchConfig      `yaml:"fetch"`
}

// ENTSOEConfig configures the transparency-platform connector.
type ENTSOEConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// TernaConfig configures the OAuth2 load connector. Disabled unless
// credentials are present.
type TernaConfig struct {
	TokenURL        string `yaml:"token_url"`
	DataURL         string `yaml:"data_url"`
	ClientID        string `yaml:"client_id"`
	ClientSecret    string `yaml:"client_secret"`
	SubscriptionKey string `yaml:"subscription_key"`
}

// Enabled reports whether the Terna source should be wired into the run.
func (t TernaConfig) Enabled() bool {
	return t.ClientID != "" && t.ClientSecret != ""
}

// PostgresConfig configures the document store.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// ClickhouseConfig configures the optional observation archive.
type ClickhouseConfig struct {
	DSN     string `yaml:"dsn"`
	Enabled bool   `yaml:"enabled"`
}

// SimulationConfig holds the counterfactual assumptions.
type SimulationConfig struct {
	PUNPriceEURMWh     float64 `yaml:"pun_price_eur_mwh"`
	NuclearPriceEURMWh float64 `yaml:"nuclear_price_eur_mwh"`
	NuclearShare       float64 `yaml:"nuclear_share"`
	HouseholdCount     float64 `yaml:"household_count"`
}

// CountryConfig names one bidding zone whose generation mix is fetched.
type CountryConfig struct {
	Name string `yaml:"name"`
	Zone string `yaml:"zone"`
}

// FetchConfig bounds source acquisition.
type FetchConfig struct {
	Concurrency    int `yaml:"concurrency"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Default returns the configuration for the Italian run with the standard
// economic assumptions.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			PUNPriceEURMWh:     domain.DefaultItalianParams.PUNPriceEURMWh,
			NuclearPriceEURMWh: domain.DefaultItalianParams.NuclearPriceEURMWh,
			NuclearShare:       domain.DefaultItalianParams.NuclearShare,
			HouseholdCount:     domain.DefaultItalianParams.HouseholdCount,
		},
		Countries: []CountryConfig{
			{Name: "italy", Zone: domain.ZoneItaly},
			{Name: "france", Zone: domain.ZoneFrance},
			{Name: "spain", Zone: domain.ZoneSpain},
		},
		Fetch: FetchConfig{
			Concurrency:    3,
			TimeoutSeconds: 30,
		},
	}
}

// Load reads the YAML file at path on top of the defaults, applies
// environment overrides and validates. An empty path skips the file and
// uses defaults plus environment only.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// applyEnv overrides credentials and DSNs from the environment, so secrets
// never need to live in the YAML file.
func (c *Config) applyEnv() {
	if v := os.Getenv("ENTSOE_API_TOKEN"); v != "" {
		c.ENTSOE.Token = v
	}
	if v := os.Getenv("TERNA_CLIENT_ID"); v != "" {
		c.Terna.ClientID = v
	}
	if v := os.Getenv("TERNA_CLIENT_SECRET"); v != "" {
		c.Terna.ClientSecret = v
	}
	if v := os.Getenv("TERNA_SUBSCRIPTION_KEY"); v != "" {
		c.Terna.SubscriptionKey = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.Postgres.DSN = v
	}
	if v := os.Getenv("CLICKHOUSE_DSN"); v != "" {
		c.Clickhouse.DSN = v
	}
}

// Validate checks the numeric assumptions and fetch bounds.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Simulation.NuclearShare < 0 || c.Simulation.NuclearShare > 1 {
		return fmt.Errorf("nuclear_share must be in [0,1], got %v", c.Simulation.NuclearShare)
	}
	if c.Simulation.PUNPriceEURMWh < 0 || c.Simulation.NuclearPriceEURMWh < 0 {
		return errors.New("prices must be non-negative")
	}
	if c.Simulation.HouseholdCount <= 0 {
		return errors.New("household_count must be positive")
	}
	if c.Fetch.Concurrency < 1 {
		return fmt.Errorf("fetch concurrency must be >= 1, got %d", c.Fetch.Concurrency)
	}
	if c.Fetch.TimeoutSeconds < 1 {
		return fmt.Errorf("fetch timeout must be >= 1s, got %ds", c.Fetch.TimeoutSeconds)
	}
	if len(c.Countries) == 0 {
		return errors.New("at least one country is required")
	}
	for _, country := range c.Countries {
		if country.Name == "" || country.Zone == "" {
			return fmt.Errorf("country entries need both name and zone: %+v", country)
		}
	}
	if c.Clickhouse.Enabled && c.Clickhouse.DSN == "" {
		return errors.New("clickhouse enabled but no dsn configured")
	}
	return nil
}

// Params returns the simulation assumptions as engine parameters.
func (c *Config) Params() domain.SimulationParams {
	return domain.SimulationParams{
		PUNPriceEURMWh:     c.Simulation.PUNPriceEURMWh,
		NuclearPriceEURMWh: c.Simulation.NuclearPriceEURMWh,
		NuclearShare:       c.Simulation.NuclearShare,
		HouseholdCount:     c.Simulation.HouseholdCount,
	}
}

// Timeout returns the per-call fetch timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}
