// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SKIDS Health

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants required by the server runtime.
//
// The agent applies its own stricter checks in [ClientConfig.validate];
// here only the fields every binary depends on are verified.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenDuration < 0 {
		return ErrInvalidAuthConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.Cache.DSN == "" || strings.Contains(cfg.Storage.Cache.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.Interval <= 0 || cfg.Sync.MaxRetries <= 0 || cfg.Sync.FreshnessWindow <= 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
