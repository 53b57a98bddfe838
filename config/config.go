// Package config loads the compiler configuration from a YAML file, the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/smartcontractkit/txbundle/chains"
	"github.com/smartcontractkit/txbundle/types"
)

const (
	defaultLogLevel    = "info"
	defaultParallelism = 4
	defaultIPFSAPIURL  = "http://127.0.0.1:5001"
)

type AppConfig struct {
	URL string `mapstructure:"url" yaml:"url"` // The application URL recorded in escrow metadata
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // debug, info, warn or error
}

type IPFSConfig struct {
	APIURL     string `mapstructure:"api_url" yaml:"api_url"`         // The IPFS HTTP RPC endpoint
	AuthHeader string `mapstructure:"auth_header" yaml:"auth_header"` // Secret: Authorization header of a pinning service
}

type ResolverConfig struct {
	Parallelism int         `mapstructure:"parallelism" yaml:"parallelism"` // Max concurrent address lookups
	Names       []NameEntry `mapstructure:"names" yaml:"names"`             // Static name book
}

// NameEntry maps a name, such as an ENS name, to an address. Names contain dots, so the book is a
// list rather than a map of viper keys.
type NameEntry struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Address string `mapstructure:"address" yaml:"address"`
}

type ChainConfig struct {
	RPCURL        string `mapstructure:"rpc_url" yaml:"rpc_url"` // Secret: RPC used to read treasury balances
	WrappedNative string `mapstructure:"wrapped_native" yaml:"wrapped_native"`
	EscrowFactory string `mapstructure:"escrow_factory" yaml:"escrow_factory"`
	StreamBatcher string `mapstructure:"stream_batcher" yaml:"stream_batcher"`
}

type Config struct {
	App      AppConfig              `mapstructure:"app" yaml:"app"`
	Log      LogConfig              `mapstructure:"log" yaml:"log"`
	IPFS     IPFSConfig             `mapstructure:"ipfs" yaml:"ipfs"`
	Resolver ResolverConfig         `mapstructure:"resolver" yaml:"resolver"`
	Chains   map[string]ChainConfig `mapstructure:"chains" yaml:"chains"` // Keyed by chain selector
}

// Load reads the config file at filePath when it exists, then applies environment overrides. A
// .env file in the working directory is loaded into the environment first.
func Load(filePath string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	if filePath != "" {
		v.SetConfigFile(filePath)
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

var (
	envBindings = map[string][]string{
		"app.url":              {"TXBUNDLE_APP_URL", "APP_URL"},
		"log.level":            {"TXBUNDLE_LOG_LEVEL", "LOG_LEVEL"},
		"ipfs.api_url":         {"TXBUNDLE_IPFS_API_URL", "IPFS_API_URL"},
		"ipfs.auth_header":     {"TXBUNDLE_IPFS_AUTH_HEADER", "IPFS_AUTH_HEADER"},
		"resolver.parallelism": {"TXBUNDLE_RESOLVER_PARALLELISM"},
	}
)

func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(envs, 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("ipfs.api_url", defaultIPFSAPIURL)
	v.SetDefault("resolver.parallelism", defaultParallelism)
}

// Registry builds the chain registry from the configured contract addresses.
func (c *Config) Registry() (*chains.Registry, error) {
	overrides := make(map[types.ChainSelector]chains.Contracts, len(c.Chains))
	for key, chain := range c.Chains {
		sel, err := parseSelector(key)
		if err != nil {
			return nil, err
		}

		contracts := chains.Contracts{}
		for _, f := range []struct {
			name string
			raw  string
			dst  *common.Address
		}{
			{name: "wrapped_native", raw: chain.WrappedNative, dst: &contracts.WrappedNative},
			{name: "escrow_factory", raw: chain.EscrowFactory, dst: &contracts.EscrowFactory},
			{name: "stream_batcher", raw: chain.StreamBatcher, dst: &contracts.StreamBatcher},
		} {
			if f.raw == "" {
				continue
			}
			if !common.IsHexAddress(f.raw) {
				return nil, fmt.Errorf("chains.%s.%s: invalid address %q", key, f.name, f.raw)
			}
			*f.dst = common.HexToAddress(f.raw)
		}

		overrides[sel] = contracts
	}

	return chains.NewRegistry(overrides), nil
}

// RPCURL returns the RPC of a chain from the config, falling back to the RPC_URL_<selector>
// environment variable.
func (c *Config) RPCURL(sel types.ChainSelector) (string, error) {
	key := strconv.FormatUint(uint64(sel), 10)
	if chain, ok := c.Chains[key]; ok && chain.RPCURL != "" {
		return chain.RPCURL, nil
	}

	envKey := fmt.Sprintf("RPC_URL_%d", sel)
	if url := os.Getenv(envKey); url != "" {
		return url, nil
	}

	return "", fmt.Errorf("no rpc_url configured for chain %d and %s is not set", sel, envKey)
}

// NameBook returns the static name book with parsed addresses.
func (c *Config) NameBook() (map[string]common.Address, error) {
	book := make(map[string]common.Address, len(c.Resolver.Names))
	for _, entry := range c.Resolver.Names {
		if !common.IsHexAddress(entry.Address) {
			return nil, fmt.Errorf("resolver.names.%s: invalid address %q", entry.Name, entry.Address)
		}
		book[strings.ToLower(entry.Name)] = common.HexToAddress(entry.Address)
	}

	return book, nil
}

func parseSelector(key string) (types.ChainSelector, error) {
	sel, err := strconv.ParseUint(key, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("chains.%s: chain selector must be a number: %w", key, err)
	}

	return types.ChainSelector(sel), nil
}
