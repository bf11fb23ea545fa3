package aori

import "os"

// Default service endpoints
const (
	DefaultRequestURL = "wss://api.aori.io"
	DefaultFeedURL    = "wss://feed.aori.io"
)

// ChainID represents a blockchain chain ID
type ChainID uint64

const (
	ChainIDMainnet  ChainID = 1
	ChainIDGoerli   ChainID = 5
	ChainIDArbitrum ChainID = 42161
)

// SupportedChainIDs lists the networks the matching service runs on
var SupportedChainIDs = []ChainID{ChainIDMainnet, ChainIDGoerli, ChainIDArbitrum}

// Config holds the credentials and endpoints a session needs. All of
// PrivateKey, WalletAddress and NodeURL must be present before any
// network activity starts.
type Config struct {
	PrivateKey    string
	WalletAddress string
	NodeURL       string
	RequestURL    string
	FeedURL       string
}

// ConfigFromEnv loads the configuration from the process environment:
// PRIVATE_KEY, WALLET_ADDRESS, NODE_URL, and optionally
// AORI_REQUEST_URL / AORI_FEED_URL to override the default endpoints.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		PrivateKey:    os.Getenv("PRIVATE_KEY"),
		WalletAddress: os.Getenv("WALLET_ADDRESS"),
		NodeURL:       os.Getenv("NODE_URL"),
		RequestURL:    os.Getenv("AORI_REQUEST_URL"),
		FeedURL:       os.Getenv("AORI_FEED_URL"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required fields and fills endpoint defaults
func (c *Config) Validate() error {
	if c.PrivateKey == "" {
		return &ConfigError{Field: "PRIVATE_KEY"}
	}
	if c.WalletAddress == "" {
		return &ConfigError{Field: "WALLET_ADDRESS"}
	}
	if c.NodeURL == "" {
		return &ConfigError{Field: "NODE_URL"}
	}
	if c.RequestURL == "" {
		c.RequestURL = DefaultRequestURL
	}
	if c.FeedURL == "" {
		c.FeedURL = DefaultFeedURL
	}
	return nil
}
