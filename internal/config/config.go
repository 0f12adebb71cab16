// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package config provides configuration management for the putparam tool.
//
// It handles loading and merging of YAML configuration files from the user
// home directory and the current directory, local settings taking precedence
// over global ones. Configuration files are named .putparam.yaml and hold
// defaults for the AWS session and for tagging. Command-line flags always
// override values from these files.
//
// This file is unrelated to template-configuration.json, which only supplies
// parameter tags and is handled by the tags package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file.
const FileName = ".putparam.yaml"

// Common errors returned by the package
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds defaults applied when the matching flag is not given.
type Config struct {
	// Region is the AWS region for the Parameter Store calls
	Region string `yaml:"region,omitempty"`
	// Profile is the AWS shared config profile to use
	Profile string `yaml:"profile,omitempty"`
	// Role is the AWS IAM role to assume for operations
	Role string `yaml:"role,omitempty"`
	// KMS is the KMS key used to encrypt the SecureString
	KMS string `yaml:"kms,omitempty"`
	// TagsFile overrides the name of the tag configuration file
	TagsFile string `yaml:"tags_file,omitempty"`
	// Provisioner overrides the value of the Provisioner tag
	Provisioner string `yaml:"provisioner,omitempty"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.TagsFile != "" && strings.ContainsAny(c.TagsFile, `/\`) {
		return fmt.Errorf("%w: tags_file %q must be a file name, not a path", ErrInvalidConfig, c.TagsFile)
	}
	if strings.TrimSpace(c.Profile) != c.Profile {
		return fmt.Errorf("%w: profile %q has surrounding whitespace", ErrInvalidConfig, c.Profile)
	}
	return nil
}

// LoadConfig loads configuration from files with precedence:
// 1. Current directory (.putparam.yaml)
// 2. Home directory (~/.putparam.yaml)
//
// If no configuration files are found, returns an empty configuration.
func LoadConfig() (*Config, error) {
	var cfg Config

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, FileName)
		if fileExists(homeConfig) {
			if err := loadFile(homeConfig, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load global config %s: %w", homeConfig, err)
			}
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid global config %s: %w", homeConfig, err)
			}
		}
	}

	if fileExists(FileName) {
		localCfg := Config{}
		if err := loadFile(FileName, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to load local config %s: %w", FileName, err)
		}
		if err := localCfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid local config %s: %w", FileName, err)
		}
		mergeConfig(&cfg, &localCfg)
	}

	return &cfg, nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

func loadFile(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", sanitizeForLog(filename), err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML in %s: %w", sanitizeForLog(filename), err)
	}
	return nil
}

// mergeConfig copies every non-empty local field over global.
func mergeConfig(global, local *Config) {
	if local.Region != "" {
		global.Region = local.Region
	}
	if local.Profile != "" {
		global.Profile = local.Profile
	}
	if local.Role != "" {
		global.Role = local.Role
	}
	if local.KMS != "" {
		global.KMS = local.KMS
	}
	if local.TagsFile != "" {
		global.TagsFile = local.TagsFile
	}
	if local.Provisioner != "" {
		global.Provisioner = local.Provisioner
	}
}

// sanitizeForLog removes control characters that could be used for log injection (CWE-117 mitigation)
func sanitizeForLog(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", "")
	return strings.ReplaceAll(s, "\x1b", "")
}
