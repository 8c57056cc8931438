package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Storage settings
	Storage StorageConfig `yaml:"storage"`

	// Invoice settings
	Invoice InvoiceConfig `yaml:"invoice"`

	// User info pre-filled into a fresh invoice
	User UserConfig `yaml:"user"`

	// Logging settings
	Log LogConfig `yaml:"log"`
}

type StorageConfig struct {
	Path string `yaml:"path"` // Path to the encrypted blob database
}

type InvoiceConfig struct {
	DefaultDueDays int    `yaml:"default_due_days"` // Days until a fresh invoice is due
	OutputDir      string `yaml:"output_dir"`       // Directory for exported PDFs
}

type UserConfig struct {
	Name         string `yaml:"name"`
	BusinessType string `yaml:"business_type"`
	Address      string `yaml:"address"`
	Phone        string `yaml:"phone"`
	Email        string `yaml:"email"`
}

type LogConfig struct {
	Path  string `yaml:"path"`  // Log file path
	Level string `yaml:"level"` // logrus level name (error, warn, info, debug)
}

// DefaultConfigPath returns ~/.config/invoicepro/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "invoicepro", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "invoicepro", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Storage: StorageConfig{
			Path: filepath.Join(homeDir, ".config", "invoicepro", "invoicepro.db"),
		},
		Invoice: InvoiceConfig{
			DefaultDueDays: 30,
			OutputDir:      filepath.Join(homeDir, ".config", "invoicepro", "exports"),
		},
		User: UserConfig{},
		Log: LogConfig{
			Path:  filepath.Join(homeDir, ".config", "invoicepro", "invoicepro.log"),
			Level: "error",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (for storage, exports, logs)
func (c *Config) EnsureDirectories() error {
	// Create storage directory
	dbDir := filepath.Dir(c.Storage.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}

	// Create export output directory
	if err := os.MkdirAll(c.Invoice.OutputDir, 0755); err != nil {
		return err
	}

	// Create log directory
	return os.MkdirAll(filepath.Dir(c.Log.Path), 0755)
}
