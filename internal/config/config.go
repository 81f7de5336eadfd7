package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the settings a causalproofctl invocation needs: the
// agent identity a registry is bound to, where its key material lives
// on disk, the defaults applied to light/progressive verification, and
// structured-logging metadata.
type Config struct {
	Agent struct {
		AgentID string `yaml:"agent_id"`
	} `yaml:"agent"`

	Keys struct {
		PrivateKeyPath string `yaml:"private_key_path"`
		PublicKeyPath  string `yaml:"public_key_path"`
	} `yaml:"keys"`

	Verification struct {
		MaxAgeMs int64 `yaml:"max_age_ms"`
		MinDepth int   `yaml:"min_depth"`
	} `yaml:"verification"`

	Logging struct {
		Service string `yaml:"service"`
		Version string `yaml:"version"`
		Commit  string `yaml:"commit"`
	} `yaml:"logging"`
}

// Load reads and validates config from disk.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	cfg.expandEnv()
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Verification.MaxAgeMs <= 0 {
		c.Verification.MaxAgeMs = 300000
	}
	if c.Verification.MinDepth <= 0 {
		c.Verification.MinDepth = 3
	}
	if c.Logging.Service == "" {
		c.Logging.Service = "causalproofctl"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "dev"
	}
	if c.Logging.Commit == "" {
		c.Logging.Commit = "unknown"
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Agent.AgentID) == "" {
		return errors.New("agent.agent_id is required")
	}
	return nil
}

func (c *Config) expandEnv() {
	c.Agent.AgentID = os.ExpandEnv(strings.TrimSpace(c.Agent.AgentID))
	c.Keys.PrivateKeyPath = os.ExpandEnv(strings.TrimSpace(c.Keys.PrivateKeyPath))
	c.Keys.PublicKeyPath = os.ExpandEnv(strings.TrimSpace(c.Keys.PublicKeyPath))
}
