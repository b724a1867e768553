package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Duration accepts "120s" / "10m" style values from both YAML and env.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// WebhookConfig points at an optional notification relay. An empty URL
// disables notifications.
type WebhookConfig struct {
	URL   string `yaml:"url" env:"CASELEDGER_WEBHOOK_URL"`
	Token string `yaml:"token" env:"CASELEDGER_WEBHOOK_TOKEN"`
}

// Config is the server configuration: a YAML file with environment
// overrides on top.
type Config struct {
	Addr            string        `yaml:"addr" env:"CASELEDGER_ADDR"`
	SpreadsheetID   string        `yaml:"spreadsheet_id" env:"CASELEDGER_SPREADSHEET_ID"`
	CredentialsFile string        `yaml:"credentials_file" env:"CASELEDGER_CREDENTIALS_FILE"`
	CaseTable       string        `yaml:"case_table" env:"CASELEDGER_CASE_TABLE"`
	StatusTable     string        `yaml:"status_table" env:"CASELEDGER_STATUS_TABLE"`
	ConfigTable     string        `yaml:"config_table" env:"CASELEDGER_CONFIG_TABLE"`
	CacheTTL        Duration      `yaml:"cache_ttl" env:"CASELEDGER_CACHE_TTL"`
	Webhook         WebhookConfig `yaml:"webhook"`
}

// Load reads the optional YAML file at path, applies environment overrides,
// then fills defaults. An empty path means env-only configuration.
func Load(path string) (Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("apply env overrides: %w", err)
	}
	c.applyDefaults()
	if c.SpreadsheetID == "" {
		return Config{}, errors.New("spreadsheet_id is required")
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.CaseTable == "" {
		c.CaseTable = "case_log"
	}
	if c.StatusTable == "" {
		c.StatusTable = "status_log"
	}
	if c.ConfigTable == "" {
		c.ConfigTable = "config"
	}
	if c.CacheTTL <= 0 {
		// reference window; deployments have run anything up to 600s
		c.CacheTTL = Duration(120 * time.Second)
	}
}
