package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `json:"server"`
	Signing SigningConfig `json:"signing"`
	Client  ClientConfig  `json:"client"`
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// SigningConfig controls upload limits and the stamp applied to each page.
type SigningConfig struct {
	MaxUploadBytes int64  `json:"max_upload_bytes"`
	TempDir        string `json:"temp_dir"`
	StampLabel     string `json:"stamp_label"`
	StampLocation  string `json:"stamp_location"`
}

// ClientConfig configures the signing client used by the wizard.
type ClientConfig struct {
	Endpoint string        `json:"endpoint"`
	Timeout  time.Duration `json:"timeout"`
}

// LoggingConfig
type LoggingConfig struct {
	Environment string `json:"environment"`
	Level       string `json:"level"`
}

// MaxUploadBytesDefault is the upload ceiling shared by the client validator
// and the server transport boundary.
const MaxUploadBytesDefault = 10 << 20 // 10 MiB

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Default config
	config := &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Signing: SigningConfig{
			MaxUploadBytes: MaxUploadBytesDefault,
			TempDir:        os.TempDir(),
			StampLabel:     "Digitally signed",
			StampLocation:  "Sign Portal",
		},
		Client: ClientConfig{
			Endpoint: "http://localhost:8080/sign",
			Timeout:  60 * time.Second,
		},
		Logging: LoggingConfig{
			Environment: "development",
			Level:       "info",
		},
	}

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if maxBytes := os.Getenv("SIGNING_MAX_UPLOAD_BYTES"); maxBytes != "" {
		if n, err := strconv.ParseInt(maxBytes, 10, 64); err == nil && n > 0 {
			config.Signing.MaxUploadBytes = n
		}
	}
	if dir := os.Getenv("SIGNING_TEMP_DIR"); dir != "" {
		config.Signing.TempDir = dir
	}
	if loc := os.Getenv("SIGNING_STAMP_LOCATION"); loc != "" {
		config.Signing.StampLocation = loc
	}
	if endpoint := os.Getenv("CLIENT_SIGN_ENDPOINT"); endpoint != "" {
		config.Client.Endpoint = endpoint
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		config.Logging.Environment = env
	}
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
