// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
)

const (
	DefaultClientServerURL = "http://localhost:4000"
	DefaultClientTimeout   = 10 * time.Second
)

// ClientConfig is the configuration of the console client. Environment
// variables carry the CLIENT_ prefix.
type ClientConfig struct {
	// ServerURL is the base URL of the imperial-command API.
	// Env: CLIENT_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// RequestTimeout is the default timeout for outbound requests.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// SessionFile is where the token and cached user are persisted.
	// Env: CLIENT_SESSION_FILE
	SessionFile string `env:"SESSION_FILE"`

	// LogFile receives client logs. Empty selects a file next to the binary.
	// Env: CLIENT_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// Env: CLIENT_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// GetClientConfig builds and validates the client configuration from a .env
// file, CLIENT_* environment variables and the command-line flags in args.
func GetClientConfig(args []string) (*ClientConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	envCfg := &ClientConfig{}
	if err := parseEnvWithPrefix(envCfg, "CLIENT_"); err != nil {
		return nil, err
	}

	flagCfg, err := parseClientFlags(args)
	if err != nil {
		return nil, err
	}

	cfg := new(ClientConfig)
	for _, src := range []*ClientConfig{envCfg, flagCfg} {
		if err := mergo.Merge(cfg, src, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseClientFlags(args []string) (*ClientConfig, error) {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	cfg := &ClientConfig{}

	fs.StringVar(&cfg.ServerURL, "s", "", "Server base URL")
	fs.StringVar(&cfg.SessionFile, "session", "", "Session file path")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", 0, "Request timeout (e.g., 10s)")
	fs.StringVar(&cfg.LogFile, "log-file", "", "Log file path")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultClientServerURL
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultClientTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = defaultSessionFile()
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "imperial-command", "session.json")
}
