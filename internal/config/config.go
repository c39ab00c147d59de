// Package config loads and validates the relay configuration from the
// environment.
package config

import (
	"fmt"
	"time"

	"github.com/spalladino/hedera-json-rpc-relay/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// Config carries every runtime setting of the relay. Required fields have no
// sane default and must be provided by the environment.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Consensus network access. The network may be a well-known name
	// (mainnet, testnet, previewnet) or a JSON map of node address to
	// account id for local setups.
	HederaNetwork string `envconfig:"HEDERA_NETWORK" validate:"required"`
	OperatorID    string `envconfig:"OPERATOR_ID_MAIN" validate:"required"`
	OperatorKey   string `envconfig:"OPERATOR_KEY_MAIN" validate:"required"`

	MirrorNodeURL string `envconfig:"MIRROR_NODE_URL" validate:"required,url"`

	// ChainID is served verbatim by eth_chainId and must match what the
	// signing tooling on the other side expects.
	ChainID string `envconfig:"CHAIN_ID" default:"0x12a" validate:"required,hexadecimal"`

	ServerPort int `envconfig:"SERVER_PORT" default:"7546" validate:"min=1,max=65535"`

	// Optional gas price cache. Caching is disabled when no address is set.
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB"`
	GasPriceTTL   time.Duration `envconfig:"GAS_PRICE_TTL" default:"1h"`
}

// ServerAddr returns the listen address for the JSON-RPC server.
func (c Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
