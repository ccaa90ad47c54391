package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Logging      LoggingConfig      `yaml:"logging"`
	Wallet       WalletConfig       `yaml:"wallet"`
	Transactions TransactionsConfig `yaml:"transactions"`
	Probe        ProbeConfig        `yaml:"probe"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`  // seconds
	WriteTimeout int    `yaml:"writeTimeout"` // seconds
	IdleTimeout  int    `yaml:"idleTimeout"`  // seconds
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // e.g., "debug", "info", "warn", "error"
	Encoding string `yaml:"encoding"` // "json" or "console"
}

// WalletConfig describes how the wallet is reached.
type WalletConfig struct {
	Endpoints          []string `yaml:"endpoints"` // http(s), ws(s) or ipc path; first reachable wins
	Connector          string   `yaml:"connector"` // injected, walletconnect, lattice, walletlink, fortmatic, portis, keystone
	Account            string   `yaml:"account"`
	ENSName            string   `yaml:"ensName"`
	ConnectTimeoutMs   int64    `yaml:"connectTimeoutMs"`
	CallTimeoutSeconds int      `yaml:"callTimeoutSeconds"` // 0 waits for the user indefinitely
}

// TransactionsConfig holds configuration for the transaction history.
type TransactionsConfig struct {
	HistoryFile         string `yaml:"historyFile"`
	RecentWindowMinutes int    `yaml:"recentWindowMinutes"`
}

// ProbeConfig holds configuration for RPC endpoint probing.
type ProbeConfig struct {
	Enabled                bool    `yaml:"enabled"`
	TimeoutMs              int64   `yaml:"timeoutMs"`
	RateLimit              float64 `yaml:"rateLimit"` // requests per second
	BurstLimit             int     `yaml:"burstLimit"`
	MaxConcurrentRequests  int     `yaml:"maxConcurrentRequests"`
	CacheTTLSeconds        int     `yaml:"cacheTTLSeconds"`
	CleanupIntervalSeconds int     `yaml:"cleanupIntervalSeconds"`
}

// TelemetryConfig toggles analytics events.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RecentWindow returns the display window for transactions.
func (c TransactionsConfig) RecentWindow() time.Duration {
	return time.Duration(c.RecentWindowMinutes) * time.Minute
}

// Timeout returns the per-request probe timeout.
func (c ProbeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// CacheTTL returns how long probe results are reused.
func (c ProbeConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// CleanupInterval returns how often expired probe results are purged.
func (c ProbeConfig) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalSeconds) * time.Second
}

// ConnectTimeout returns the wallet dial timeout.
func (c WalletConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutMs) * time.Millisecond
}

// CallTimeout returns the per-request wallet timeout, zero for none.
func (c WalletConfig) CallTimeout() time.Duration {
	return time.Duration(c.CallTimeoutSeconds) * time.Second
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if cfg.Wallet.CallTimeoutSeconds < 0 {
		return nil, fmt.Errorf("wallet.callTimeoutSeconds must not be negative, got %d", cfg.Wallet.CallTimeoutSeconds)
	}
	if cfg.Transactions.RecentWindowMinutes < 0 {
		return nil, fmt.Errorf("transactions.recentWindowMinutes must not be negative, got %d", cfg.Transactions.RecentWindowMinutes)
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Encoding == "" {
		cfg.Logging.Encoding = "json"
	}

	if cfg.Wallet.Connector == "" {
		cfg.Wallet.Connector = "injected"
		logrus.Infof("Wallet.Connector not set, defaulting to %s", cfg.Wallet.Connector)
	}
	if cfg.Wallet.ConnectTimeoutMs == 0 {
		cfg.Wallet.ConnectTimeoutMs = 10000
	}
	if len(cfg.Wallet.Endpoints) == 0 {
		logrus.Warn("Wallet.Endpoints is empty. Network switching will be unavailable.")
	}

	if cfg.Transactions.RecentWindowMinutes == 0 {
		cfg.Transactions.RecentWindowMinutes = 1440 // one day
		logrus.Infof("Transactions.RecentWindowMinutes not set, defaulting to %d minutes", cfg.Transactions.RecentWindowMinutes)
	}

	if cfg.Probe.TimeoutMs == 0 {
		cfg.Probe.TimeoutMs = 5000
	}
	if cfg.Probe.RateLimit <= 0 {
		cfg.Probe.RateLimit = 10
	}
	if cfg.Probe.BurstLimit <= 0 {
		cfg.Probe.BurstLimit = 5
	}
	if cfg.Probe.MaxConcurrentRequests <= 0 {
		cfg.Probe.MaxConcurrentRequests = 4
	}
	if cfg.Probe.CacheTTLSeconds == 0 {
		cfg.Probe.CacheTTLSeconds = 60
	}
	if cfg.Probe.CleanupIntervalSeconds == 0 {
		cfg.Probe.CleanupIntervalSeconds = 300
	}
}
