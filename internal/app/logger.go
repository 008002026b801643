// Package app wires configuration, storage, the shop API client and the
// services into a runnable storefront.
package app

import (
	"github.com/semanticshop/storefront/config"
	"github.com/semanticshop/storefront/internal/logger"
)

// InitializeLogger configures the global zerolog logger.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
