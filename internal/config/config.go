// Package config holds the settings of a credential table: its starting
// capacity, growth threshold, salt length and password digest.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A config file (LoadFile) or an in-memory document (LoadBytes) in any
//     format viper understands (json, yaml, toml).
//  3. Environment variables prefixed with CREDTABLE_, e.g.
//     CREDTABLE_MAX_LOAD_FACTOR=0.5.
//
// Every loader validates the result before returning it.
package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/credtable/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "CREDTABLE"

// Config holds the tunables of a credential table.
//
// Fields:
//   - InitialCapacity: bucket count of a new table.
//   - MaxLoadFactor: growth threshold, size/buckets, strictly between 0 and 1.
//   - SaltLength: characters of alphanumeric salt per record.
//   - Digest: "argon2id" or "sha256".
//   - Argon2Time / Argon2MemoryKiB / Argon2Threads / DigestLength: argon2id
//     parameters, ignored by sha256.
//   - TokenSecret: HMAC key for session tokens. Empty means a random key is
//     generated per service, so tokens do not survive a restart.
//   - TokenValidity: lifetime of a session token.
type Config struct {
	InitialCapacity int     `mapstructure:"initial_capacity" validate:"gte=1"`
	MaxLoadFactor   float64 `mapstructure:"max_load_factor" validate:"gt=0,lt=1"`
	SaltLength      int     `mapstructure:"salt_length" validate:"gte=1,lte=256"`
	Digest          string  `mapstructure:"digest" validate:"oneof=argon2id sha256"`
	Argon2Time      uint32  `mapstructure:"argon2_time" validate:"gte=1"`
	Argon2MemoryKiB uint32  `mapstructure:"argon2_memory_kib" validate:"gte=8"`
	Argon2Threads   uint8   `mapstructure:"argon2_threads" validate:"gte=1"`
	DigestLength    uint32  `mapstructure:"digest_length" validate:"gte=4"`

	TokenSecret   string        `mapstructure:"token_secret"`
	TokenValidity time.Duration `mapstructure:"token_validity" validate:"gt=0"`
}

// LoadDefaults populates Config with the reference table settings.
func (c *Config) LoadDefaults() {
	c.InitialCapacity = 8
	c.MaxLoadFactor = 0.75
	c.SaltLength = 8
	c.Digest = "argon2id"
	c.Argon2Time = 1
	c.Argon2MemoryKiB = 64 * 1024
	c.Argon2Threads = 4
	c.DigestLength = 32
	c.TokenSecret = ""
	c.TokenValidity = 15 * time.Minute
}

// Default returns a Config holding the defaults.
func Default() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its constraints. The returned error
// wraps common.ErrorInvalidConfig.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInvalidConfig, err)
	}
	return nil
}

// LoadFile reads the config file at path over the defaults, applies
// environment overrides and validates the result.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config %s: %w", path, err)
	}

	return decode(v)
}

// LoadBytes is LoadFile for an in-memory document. configType is a format
// supported by viper ("json", "yaml", "toml").
func LoadBytes(configType string, data []byte) (*Config, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, fmt.Errorf("%w: config type is required", common.ErrorInvalidConfig)
	}

	v := newViper()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	return decode(v)
}

// LoadEnv returns the defaults with environment overrides applied.
func LoadEnv() (*Config, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("initial_capacity", d.InitialCapacity)
	v.SetDefault("max_load_factor", d.MaxLoadFactor)
	v.SetDefault("salt_length", d.SaltLength)
	v.SetDefault("digest", d.Digest)
	v.SetDefault("argon2_time", d.Argon2Time)
	v.SetDefault("argon2_memory_kib", d.Argon2MemoryKiB)
	v.SetDefault("argon2_threads", d.Argon2Threads)
	v.SetDefault("digest_length", d.DigestLength)
	v.SetDefault("token_secret", d.TokenSecret)
	v.SetDefault("token_validity", d.TokenValidity)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
