package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the agent's transport layer.
type ClientAdapter struct {
	// BaseURL is the sync server base URL used by the agent.
	BaseURL string
	// RequestTimeout is the default timeout for outbound agent requests.
	RequestTimeout time.Duration
}

// ClientCache contains local cache database settings for the agent.
type ClientCache struct {
	// DSN is the SQLite file path backing the offline cache.
	DSN string
}

// ClientStorage groups agent storage backend settings.
type ClientStorage struct {
	// Cache holds local cache database settings.
	Cache ClientCache
}

// ClientSync contains sync engine settings for the agent.
type ClientSync struct {
	// Interval defines how often the periodic sync job runs.
	Interval time.Duration
	// MaxRetries is the push retry budget per queued mutation.
	MaxRetries int
	// FreshnessWindow is the maximum acceptable age of a confirmed sync.
	FreshnessWindow time.Duration
	// ProbeInterval defines how often connectivity is probed.
	ProbeInterval time.Duration
}

// ClientCrypto contains local cache encryption settings for the agent.
type ClientCrypto struct {
	// CachePassphrase enables cached payload sealing when non-empty.
	CachePassphrase string
}

// ClientConfig is the top-level agent configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains agent transport settings.
	Adapter ClientAdapter
	// Storage contains agent storage settings.
	Storage ClientStorage
	// Sync contains sync engine settings.
	Sync ClientSync
	// Crypto contains cache encryption settings.
	Crypto ClientCrypto
}

// GetClientConfig builds and validates an agent-specific config view from
// the merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the agent runtime, applies defaults for optional sync tuning,
// and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			Cache: ClientCache{
				DSN: cfg.Storage.Cache.DSN,
			},
		},
		Sync: ClientSync{
			Interval:        cfg.Sync.Interval,
			MaxRetries:      cfg.Sync.MaxRetries,
			FreshnessWindow: cfg.Sync.FreshnessWindow,
			ProbeInterval:   cfg.Sync.ProbeInterval,
		},
		Crypto: ClientCrypto{CachePassphrase: cfg.Crypto.CachePassphrase},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

// applyDefaults fills optional sync tuning fields that were not supplied by
// any configuration source.
func (cfg *ClientConfig) applyDefaults() {
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = 5 * time.Minute
	}
	if cfg.Sync.MaxRetries == 0 {
		cfg.Sync.MaxRetries = 3
	}
	if cfg.Sync.FreshnessWindow == 0 {
		cfg.Sync.FreshnessWindow = 6 * time.Hour
	}
	if cfg.Sync.ProbeInterval == 0 {
		cfg.Sync.ProbeInterval = 30 * time.Second
	}
}
