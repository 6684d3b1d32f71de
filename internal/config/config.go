// Package config loads storefront configuration from a YAML file with
// environment overrides for the secrets that should not live on disk.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all storefront configuration.
type Config struct {
	Shop    ShopConfig    `yaml:"shop"`
	Catalog CatalogConfig `yaml:"catalog"`
	Orders  OrdersConfig  `yaml:"orders"`
	SMTP    SMTPConfig    `yaml:"smtp"`
	Notify  NotifyConfig  `yaml:"notify"`
}

// ShopConfig identifies the shop in customer-facing messages.
type ShopConfig struct {
	// Name appears in email subjects and signatures.
	Name string `yaml:"name"`
	// OwnerEmail receives the new-order summary. Empty disables all email.
	OwnerEmail string `yaml:"owner_email"`
	// PaymentHandle is the peer-payment account customers are asked to pay.
	PaymentHandle string `yaml:"payment_handle"`
}

// CatalogConfig locates the product store file.
type CatalogConfig struct {
	Path string `yaml:"path"`
	// Watch reloads the file when it is edited outside the process.
	Watch bool `yaml:"watch"`
}

// OrdersConfig locates the order log database.
type OrdersConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// SMTPConfig configures outbound mail. An empty host disables sending.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// NotifyConfig bounds the notification step of checkout.
type NotifyConfig struct {
	// Timeout is a duration string; checkout gives up on email after this.
	Timeout string `yaml:"timeout"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Shop: ShopConfig{
			Name:          "Tyler's TechLab",
			PaymentHandle: "@TechLab-Parent",
		},
		Catalog: CatalogConfig{
			Path:  "products.json",
			Watch: true,
		},
		Orders: OrdersConfig{
			DatabasePath: "data/orders.db",
		},
		SMTP: SMTPConfig{
			Port: 465,
		},
		Notify: NotifyConfig{
			Timeout: "15s",
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults when
// the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides. The SMTP
// password in particular belongs in the environment, not the config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TECHLAB_SMTP_HOST"); v != "" {
		c.SMTP.Host = v
	}
	if v := os.Getenv("TECHLAB_SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.SMTP.Port = port
		}
	}
	if v := os.Getenv("TECHLAB_SMTP_USERNAME"); v != "" {
		c.SMTP.Username = v
	}
	if v := os.Getenv("TECHLAB_SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("TECHLAB_OWNER_EMAIL"); v != "" {
		c.Shop.OwnerEmail = v
	}
	if v := os.Getenv("TECHLAB_CATALOG"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("TECHLAB_DB"); v != "" {
		c.Orders.DatabasePath = v
	}
}

// GetNotifyTimeout returns the notification timeout as a duration.
func (c *Config) GetNotifyTimeout() time.Duration {
	d, err := time.ParseDuration(c.Notify.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}
