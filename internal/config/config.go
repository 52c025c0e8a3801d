package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Network settings
	Network string `mapstructure:"network" yaml:"network"`
	RPCUrl  string `mapstructure:"rpc_url" yaml:"rpc_url"`
	WSUrl   string `mapstructure:"ws_url" yaml:"ws_url"`

	// Program settings
	ProgramID  string `mapstructure:"program_id" yaml:"program_id"`
	Commitment string `mapstructure:"commitment" yaml:"commitment"`

	// Wallet settings
	KeypairPath string `mapstructure:"keypair_path" yaml:"keypair_path"`

	// Logging settings
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// SolanaCLIConfig mirrors the Solana CLI config.yml layout
type SolanaCLIConfig struct {
	JSONRPCURL  string `mapstructure:"json_rpc_url"`
	KeypairPath string `mapstructure:"keypair_path"`
	Commitment  string `mapstructure:"commitment"`
}

// LoadConfig loads configuration with defaults, optionally merging a YAML
// config file and the Solana CLI config if one is present.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("network", "devnet")
	v.SetDefault("program_id", DefaultProgramID)
	v.SetDefault("commitment", "confirmed")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The Solana CLI config fills gaps the app config leaves open.
	if cli, err := LoadSolanaCLIConfig(""); err == nil {
		if cfg.RPCUrl == "" {
			cfg.RPCUrl = cli.JSONRPCURL
		}
		if cfg.KeypairPath == "" {
			cfg.KeypairPath = cli.KeypairPath
		}
		if cfg.Commitment == "" {
			cfg.Commitment = cli.Commitment
		}
	}

	cfg.ApplyNetworkDefaults()
	return &cfg, nil
}

// ApplyNetworkDefaults fills endpoint URLs from the selected network. It is
// re-run after flag overrides change the network.
func (c *Config) ApplyNetworkDefaults() {
	if c.RPCUrl == "" {
		switch strings.ToLower(c.Network) {
		case "mainnet", "mainnet-beta":
			c.RPCUrl = MainnetRPCURL
		default:
			c.RPCUrl = DevnetRPCURL
		}
	}
	if c.WSUrl == "" {
		switch strings.ToLower(c.Network) {
		case "mainnet", "mainnet-beta":
			c.WSUrl = MainnetWSURL
		default:
			c.WSUrl = DevnetWSURL
		}
	}
}

// LoadSolanaCLIConfig reads a Solana CLI config.yml. With an empty path the
// conventional locations are tried in order: ./.config/solana/cli/config.yml
// then ~/.config/solana/cli/config.yml.
func LoadSolanaCLIConfig(path string) (*SolanaCLIConfig, error) {
	candidates := []string{path}
	if path == "" {
		home, _ := os.UserHomeDir()
		candidates = []string{
			filepath.Join(".", ".config", "solana", "cli", "config.yml"),
			filepath.Join(home, ".config", "solana", "cli", "config.yml"),
		}
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		v := viper.New()
		v.SetConfigFile(candidate)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read solana cli config %s: %w", candidate, err)
		}
		var cfg SolanaCLIConfig
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal solana cli config: %w", err)
		}
		return &cfg, nil
	}

	return nil, fmt.Errorf("no solana cli config found")
}

// ResolveKeypairPath picks the key-file path: explicit flag first, then the
// configured keypair_path, then the conventional per-user location. The
// resolved file must already exist; it is never created here.
func ResolveKeypairPath(flagPath string, cfg *Config) (string, error) {
	path := flagPath
	if path == "" && cfg != nil {
		path = cfg.KeypairPath
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("no keypair path given and home directory unknown: %w", err)
		}
		path = filepath.Join(home, ".config", "solana", "id.json")
	}
	path = expandHome(path)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("keypair file %s: %w", path, err)
	}
	return path, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
