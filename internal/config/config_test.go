package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"nuclear-grid-lab/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()

	if c.Simulation.PUNPriceEURMWh != 110 || c.Simulation.NuclearPriceEURMWh != 70 {
		t.Errorf("unexpected default prices: %+v", c.Simulation)
	}
	if c.Simulation.NuclearShare != 0.65 {
		t.Errorf("unexpected default share: %v", c.Simulation.NuclearShare)
	}
	if len(c.Countries) != 3 || c.Countries[0].Name != "italy" {
		t.Errorf("unexpected default countries: %+v", c.Countries)
	}
	if c.Countries[0].Zone != domain.ZoneItaly {
		t.Errorf("unexpected italy zone: %q", c.Countries[0].Zone)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
simulation:
  pun_price_eur_mwh: 95
  nuclear_price_eur_mwh: 60
  nuclear_share: 0.5
  household_count: 20000000
fetch:
  concurrency: 5
  timeout_seconds: 10
countries:
  - name: france
    zone: 10YFR-RTE------C
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Simulation.PUNPriceEURMWh != 95 {
		t.Errorf("expected file value 95, got %v", c.Simulation.PUNPriceEURMWh)
	}
	if c.Fetch.Concurrency != 5 {
		t.Errorf("expected concurrency 5, got %d", c.Fetch.Concurrency)
	}
	if c.Timeout() != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", c.Timeout())
	}
	if len(c.Countries) != 1 || c.Countries[0].Name != "france" {
		t.Errorf("file country list must replace defaults, got %+v", c.Countries)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
entsoe:
  token: from-file
`)
	t.Setenv("ENTSOE_API_TOKEN", "from-env")
	t.Setenv("POSTGRES_DSN", "postgres://env/db")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.ENTSOE.Token != "from-env" {
		t.Errorf("expected env token to win, got %q", c.ENTSOE.Token)
	}
	if c.Postgres.DSN != "postgres://env/db" {
		t.Errorf("expected env dsn, got %q", c.Postgres.DSN)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Simulation.HouseholdCount != 25_000_000 {
		t.Errorf("expected default household count, got %v", c.Simulation.HouseholdCount)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTernaConfig_Enabled(t *testing.T) {
	if (TernaConfig{}).Enabled() {
		t.Error("empty credentials must not enable the source")
	}
	if (TernaConfig{ClientID: "id"}).Enabled() {
		t.Error("secret is required too")
	}
	if !(TernaConfig{ClientID: "id", ClientSecret: "secret"}).Enabled() {
		t.Error("full credentials must enable the source")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"share above one", func(c *Config) { c.Simulation.NuclearShare = 1.5 }},
		{"negative price", func(c *Config) { c.Simulation.PUNPriceEURMWh = -1 }},
		{"zero households", func(c *Config) { c.Simulation.HouseholdCount = 0 }},
		{"zero concurrency", func(c *Config) { c.Fetch.Concurrency = 0 }},
		{"zero timeout", func(c *Config) { c.Fetch.TimeoutSeconds = 0 }},
		{"no countries", func(c *Config) { c.Countries = nil }},
		{"country without zone", func(c *Config) { c.Countries = []CountryConfig{{Name: "italy"}} }},
		{"clickhouse without dsn", func(c *Config) { c.Clickhouse.Enabled = true }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParams(t *testing.T) {
	params := Default().Params()
	if params != domain.DefaultItalianParams {
		t.Errorf("default params mismatch: %+v", params)
	}
}
